package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/cluster"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

const viewHelp = `Controls:
  W/S         - Move camera forward/back
  A/D         - Strafe left/right
  Arrows      - Look around
  Space       - Pause/resume light animation
  C           - Toggle frustum culling
  Z           - Toggle depth clamping
  Esc, Q      - Quit`

func newViewCmd(o *options) *cobra.Command {
	var fps int
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Live terminal heatmap of lights per cluster",
		Long: `Animate the scene's lights and rebuild the cluster grid every frame.
Each z slice of the grid is drawn as a tile, nearest first; brighter cells
hold more lights.

` + viewHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := o.loadScene(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runView(ctx, o, s, max(fps, 1))
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "target frames per second")
	return cmd
}

// viewer owns all state of the interactive loop. It is only touched from
// the loop goroutine.
type viewer struct {
	opts     *options
	scene    *scene.Scene
	animator *scene.Animator
	builder  *cluster.Builder
	heatmap  render.Heatmap
	fb       *render.Framebuffer

	width, height int
	paused        bool
	fps           float64
	frames        int
	fpsTime       time.Time
}

func runView(ctx context.Context, o *options, s *scene.Scene, fps int) error {
	// Log lines would tear the alternate screen.
	cluster.SetLogger(nil)

	b, err := o.newBuilder()
	if err != nil {
		return err
	}
	v := &viewer{
		opts:     o,
		scene:    s,
		animator: scene.NewAnimator(s.Lights, scene.DefaultField, fps, o.seed),
		builder:  b,
		fpsTime:  time.Now(),
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	v.resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		_ = term.Shutdown(context.Background())
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				term.Resize(ev.Width, ev.Height)
				v.resize(ev.Width, ev.Height)
			case uv.KeyPressEvent:
				quit, err := v.key(ev)
				if err != nil {
					return err
				}
				if quit {
					return nil
				}
			}

		case <-ticker.C:
			if err := v.frame(); err != nil {
				return err
			}
			v.fb.Draw(term, uv.Rect(0, 0, v.width, v.height-1))
			v.status(term)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// resize fits the heatmap into the terminal, keeping the last row for the
// status line. Each terminal row shows two framebuffer rows.
func (v *viewer) resize(width, height int) {
	v.width, v.height = width, max(height, 2)
	fbW, fbH := width, 2*(v.height-1)
	g := v.builder.Grid()
	v.heatmap = render.NewHeatmap(g.X, g.Y, g.Z, fbW, fbH)
	v.heatmap.Cap = v.builder.Buffer().Capacity() - 1
	v.fb = render.NewFramebuffer(fbW, fbH)
}

func (v *viewer) key(ev uv.KeyPressEvent) (quit bool, err error) {
	const step, turn = 0.5, 0.05
	cam := v.scene.Camera
	switch {
	case ev.MatchString("escape", "q", "ctrl+c"):
		return true, nil
	case ev.MatchString("w"):
		cam.MoveForward(step)
	case ev.MatchString("s"):
		cam.MoveForward(-step)
	case ev.MatchString("a"):
		cam.MoveRight(-step)
	case ev.MatchString("d"):
		cam.MoveRight(step)
	case ev.MatchString("up"):
		cam.Rotate(turn, 0, 0)
	case ev.MatchString("down"):
		cam.Rotate(-turn, 0, 0)
	case ev.MatchString("left"):
		cam.Rotate(0, turn, 0)
	case ev.MatchString("right"):
		cam.Rotate(0, -turn, 0)
	case ev.MatchString("space"):
		v.paused = !v.paused
	case ev.MatchString("c"):
		v.opts.cull = !v.opts.cull
		return false, v.rebuild()
	case ev.MatchString("z"):
		v.opts.clampDepth = !v.opts.clampDepth
		return false, v.rebuild()
	}
	return false, nil
}

// rebuild recreates the builder after a policy toggle.
func (v *viewer) rebuild() error {
	b, err := v.opts.newBuilder()
	if err != nil {
		return err
	}
	v.builder = b
	return nil
}

func (v *viewer) frame() error {
	lights := v.animator.Lights()
	if !v.paused {
		lights = v.animator.Step()
	}
	cam, view := v.scene.Frame()
	if _, err := v.builder.Build(cam, view, lights); err != nil {
		return err
	}

	v.fb.Clear(render.ColorBlack)
	v.heatmap.Draw(v.fb, v.builder.Buffer().Counts())

	v.frames++
	if elapsed := time.Since(v.fpsTime); elapsed >= time.Second {
		v.fps = float64(v.frames) / elapsed.Seconds()
		v.frames = 0
		v.fpsTime = time.Now()
	}
	return nil
}

// status writes the one-line summary on the bottom terminal row.
func (v *viewer) status(scr uv.Screen) {
	st := v.builder.LastStats()
	cam := v.scene.Camera
	flags := ""
	if v.opts.cull {
		flags += " cull"
	}
	if v.opts.clampDepth {
		flags += " clamp"
	}
	if v.paused {
		flags += " paused"
	}
	line := fmt.Sprintf(" %.0f FPS  %s  lights %d  stored %d  dropped %d  cam (%.1f, %.1f, %.1f) yaw %.0f°%s",
		v.fps, v.builder.Grid(), st.Lights, st.Stored, st.Dropped,
		cam.Position.X, cam.Position.Y, cam.Position.Z, math3d.Degrees(cam.Yaw), flags)

	style := uv.Style{Fg: render.ColorWhite, Bg: render.ColorGrid}
	row := v.height - 1
	col := 0
	for _, r := range line {
		if col >= v.width {
			break
		}
		scr.SetCell(col, row, &uv.Cell{Content: string(r), Width: 1, Style: style})
		col++
	}
	for ; col < v.width; col++ {
		scr.SetCell(col, row, &uv.Cell{Content: " ", Width: 1, Style: style})
	}
}
