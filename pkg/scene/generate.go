package scene

import (
	"math/rand"

	"github.com/taigrr/lumen/pkg/cluster"
	"github.com/taigrr/lumen/pkg/math3d"
)

// Field describes a box of randomly placed lights centered on the origin.
type Field struct {
	Extent    float64 // half-size of the box on every axis
	MinRadius float64
	MaxRadius float64
}

// DefaultField matches the default camera: a 10-unit box in front of it.
var DefaultField = Field{Extent: 10, MinRadius: 0.5, MaxRadius: 3}

// Generate returns n lights. The same seed always yields the same lights.
func (f Field) Generate(seed int64, n int) []cluster.Light {
	rng := rand.New(rand.NewSource(seed))
	lights := make([]cluster.Light, n)
	for i := range lights {
		lights[i] = cluster.Light{
			Position: f.point(rng),
			Radius:   f.MinRadius + rng.Float64()*(f.MaxRadius-f.MinRadius),
			Color:    math3d.V3(0.3+0.7*rng.Float64(), 0.3+0.7*rng.Float64(), 0.3+0.7*rng.Float64()),
		}
	}
	return lights
}

func (f Field) point(rng *rand.Rand) math3d.Vec3 {
	return math3d.V3(
		(rng.Float64()*2-1)*f.Extent,
		(rng.Float64()*2-1)*f.Extent,
		(rng.Float64()*2-1)*f.Extent,
	)
}

// Random returns a scene of n generated lights seen from the default camera.
func Random(seed int64, n int) *Scene {
	return &Scene{
		Name:   "random",
		Camera: DefaultCamera(),
		Lights: DefaultField.Generate(seed, n),
	}
}
