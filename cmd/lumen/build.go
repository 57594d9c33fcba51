package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/cluster"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

type buildOptions struct {
	png       string
	pngWidth  int
	pngHeight int
	dump      string
	dumpLight string
	top       int
}

func newBuildCmd(o *options) *cobra.Command {
	bo := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build one frame and report cluster occupancy",
		Example: `  lumen build --lights 2000 --grid 16x9x24
  lumen build --scene hall.gltf --png heat.png --dump clusters.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, o, bo)
		},
	}
	f := cmd.Flags()
	f.StringVar(&bo.png, "png", "", "write a heatmap of lights per cluster to this PNG")
	f.IntVar(&bo.pngWidth, "png-width", 1600, "heatmap width in pixels")
	f.IntVar(&bo.pngHeight, "png-height", 900, "heatmap height in pixels")
	f.StringVar(&bo.dump, "dump", "", "write the cluster texture as little-endian float32 to this file")
	f.StringVar(&bo.dumpLight, "dump-lights", "", "write the light texture as little-endian float32 to this file")
	f.IntVar(&bo.top, "top", 5, "list the N most crowded clusters")
	return cmd
}

func runBuild(cmd *cobra.Command, o *options, bo *buildOptions) error {
	s, err := o.loadScene(cmd)
	if err != nil {
		return err
	}
	b, err := o.newBuilder()
	if err != nil {
		return err
	}
	cam, view := s.Frame()
	if _, err := b.Build(cam, view, s.Lights); err != nil {
		return err
	}

	if bo.png != "" {
		if err := writeHeatmap(bo, b); err != nil {
			return err
		}
	}
	if bo.dump != "" {
		if err := writeFile(bo.dump, func(w io.Writer) error {
			_, err := b.Buffer().WriteTo(w)
			return err
		}); err != nil {
			return fmt.Errorf("dump clusters: %w", err)
		}
	}
	if bo.dumpLight != "" {
		if err := writeFile(bo.dumpLight, func(w io.Writer) error {
			return binary.Write(w, binary.LittleEndian, cluster.PackLights(s.Lights))
		}); err != nil {
			return fmt.Errorf("dump lights: %w", err)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), report(s, cam, b, bo.top))
	return nil
}

func writeHeatmap(bo *buildOptions, b *cluster.Builder) error {
	g := b.Grid()
	hm := render.NewHeatmap(g.X, g.Y, g.Z, bo.pngWidth, bo.pngHeight)
	hm.Cap = b.Buffer().Capacity() - 1
	fb := render.NewFramebuffer(hm.Size())
	fb.Clear(render.ColorBlack)
	hm.Draw(fb, b.Buffer().Counts())
	if err := fb.SavePNG(bo.png); err != nil {
		return fmt.Errorf("write heatmap: %w", err)
	}
	return nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(13)
	valueStyle = lipgloss.NewStyle().Bold(true)
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F"))
)

func report(s *scene.Scene, cam cluster.Camera, b *cluster.Builder, top int) string {
	st := b.LastStats()
	buf := b.Buffer()

	var sb strings.Builder
	name := s.Name
	if name == "" {
		name = "scene"
	}
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s clusters", name, b.Grid())) + "\n")

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("camera", fmt.Sprintf("fov %.1f° aspect %.3f near %g far %g", cam.FOV, cam.Aspect, cam.Near, cam.Far))
	row("texture", fmt.Sprintf("%d×%d RGBA32F (%d bytes)", buf.Width(), buf.Height(), 4*len(buf.Data())))
	row("lights", fmt.Sprintf("%d (%d culled)", st.Lights, st.Culled))
	row("assignments", fmt.Sprintf("%d stored of %d", st.Stored, st.Assignments))
	row("elapsed", st.Elapsed.String())
	if st.Dropped > 0 {
		sb.WriteString(labelStyle.Render("dropped") +
			warnStyle.Render(fmt.Sprintf("%d in %d saturated clusters (cap %d)", st.Dropped, st.Saturated, buf.Capacity())) + "\n")
	}

	if top > 0 {
		sb.WriteString(titleStyle.Render("busiest clusters") + "\n")
		for _, cell := range busiest(buf.Counts(), top) {
			x, y, z := b.Grid().Coords(cell)
			row(fmt.Sprintf("(%d,%d,%d)", x, y, z), fmt.Sprintf("%d lights", buf.Count(cell)))
		}
	}
	return sb.String()
}

// busiest returns up to n non-empty cluster indices ordered by count,
// lowest index first among equals.
func busiest(counts []int, n int) []int {
	cells := make([]int, 0, len(counts))
	for i, c := range counts {
		if c > 0 {
			cells = append(cells, i)
		}
	}
	slices.SortStableFunc(cells, func(a, b int) int {
		return counts[b] - counts[a]
	})
	return cells[:min(n, len(cells))]
}
