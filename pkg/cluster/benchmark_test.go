package cluster

import (
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

func BenchmarkBuild(b *testing.B) {
	g := Grid{X: 16, Y: 9, Z: 24}
	cam := Camera{FOV: 60, Aspect: 16.0 / 9.0, Near: 0.1, Far: 100}
	rc := render.NewCamera()
	rc.SetPosition(math3d.V3(0, 2, 10))
	rc.LookAt(math3d.Zero3())
	view := rc.ViewMatrix()
	lights := randomLights(1, 1024)

	for _, bc := range []struct {
		name    string
		workers int
	}{
		{"sequential", 1},
		{"workers4", 4},
	} {
		b.Run(bc.name, func(b *testing.B) {
			builder := mustBuilder(b, g, WithWorkers(bc.workers))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := builder.Build(cam, view, lights); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBoxPolicy(b *testing.B) {
	f := NewFrame(Grid{X: 16, Y: 9, Z: 24}, testCamera, math3d.Identity(), false)
	l := pointLight(1, -2, -6, 1.5)
	for b.Loop() {
		_ = BoxPolicy{}.Bounds(f, l)
	}
}

func BenchmarkLookup(b *testing.B) {
	g := Grid{X: 16, Y: 9, Z: 24}
	builder := mustBuilder(b, g)
	frame, err := builder.Build(testCamera, math3d.Identity(), randomLights(2, 256))
	if err != nil {
		b.Fatal(err)
	}
	p := math3d.V3(0.5, 0.25, -5)
	for b.Loop() {
		_ = builder.Buffer().LightsAt(frame, p)
	}
}
