package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/cluster"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

// options holds the flags shared by every command.
type options struct {
	grid       string
	capacity   int
	clampDepth bool
	workers    int
	cull       bool

	lights    int
	seed      int64
	scenePath string

	fov, near, far float64

	verbose bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "lumen",
		Short: "Assign lights to a clustered view-frustum grid",
		Long: `lumen builds the per-frame light/cluster table of a clustered (forward+)
renderer on the CPU and lets you inspect it: statistics, the raw cluster
texture, and heatmaps of lights per cluster.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if o.verbose {
				level = slog.LevelDebug
			}
			cluster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&o.grid, "grid", "g", "16x9x24", "cluster grid as XxYxZ")
	f.IntVar(&o.capacity, "cap", cluster.MaxLightsPerCluster, "per-cluster capacity (at most cap-1 lights are stored)")
	f.BoolVar(&o.clampDepth, "clamp-depth", false, "clamp the depth interpolation factor to [0, 1]")
	f.IntVarP(&o.workers, "workers", "w", 1, "goroutines computing light bounds")
	f.BoolVar(&o.cull, "cull", true, "skip lights entirely outside the view frustum")
	f.IntVarP(&o.lights, "lights", "n", 256, "number of generated lights when no scene is given")
	f.Int64Var(&o.seed, "seed", 1, "seed for generated lights and animation")
	f.StringVarP(&o.scenePath, "scene", "s", "", "scene file (.gltf, .glb or .json)")
	f.Float64Var(&o.fov, "fov", 60, "vertical field of view in degrees")
	f.Float64Var(&o.near, "near", 0.1, "near clip plane")
	f.Float64Var(&o.far, "far", 100, "far clip plane")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newBuildCmd(o), newViewCmd(o))
	return root
}

// loadScene reads the scene file or generates lights, then applies any
// explicitly set lens flags to the camera.
func (o *options) loadScene(cmd *cobra.Command) (*scene.Scene, error) {
	var s *scene.Scene
	if o.scenePath != "" {
		var err error
		s, err = scene.Load(o.scenePath)
		if err != nil {
			return nil, err
		}
	} else {
		s = scene.Random(o.seed, o.lights)
	}

	// Generated scenes take the lens from the flags; scene files only where
	// a flag was given explicitly.
	flags := cmd.Flags()
	generated := o.scenePath == ""
	cam := s.Camera
	if generated || flags.Changed("fov") {
		cam.SetFOV(math3d.Radians(o.fov))
	}
	near, far := cam.Near, cam.Far
	if generated || flags.Changed("near") {
		near = o.near
	}
	if generated || flags.Changed("far") {
		far = o.far
	}
	cam.SetClipPlanes(near, far)
	if err := cluster.CameraFrom(cam).Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// newBuilder creates a cluster builder from the shared flags.
func (o *options) newBuilder(extra ...cluster.Option) (*cluster.Builder, error) {
	g, err := cluster.ParseGrid(o.grid)
	if err != nil {
		return nil, err
	}
	opts := []cluster.Option{
		cluster.WithCapacity(o.capacity),
		cluster.WithClampDepth(o.clampDepth),
		cluster.WithWorkers(o.workers),
	}
	if o.cull {
		opts = append(opts, cluster.WithPolicy(cluster.CullingPolicy{}))
	}
	b, err := cluster.NewBuilder(g, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("grid %s: %w", o.grid, err)
	}
	return b, nil
}
