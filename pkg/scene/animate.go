package scene

import (
	"math/rand"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/lumen/pkg/cluster"
	"github.com/taigrr/lumen/pkg/math3d"
)

// wanderAxis is one coordinate of a light chasing its target.
type wanderAxis struct {
	pos, vel float64
}

// Animator moves lights around a Field. Each light springs toward a random
// target and picks a new one once it gets close.
type Animator struct {
	field   Field
	spring  harmonica.Spring
	rng     *rand.Rand
	lights  []cluster.Light
	axes    [][3]wanderAxis
	targets []math3d.Vec3
}

// NewAnimator animates a copy of lights at fps frames per second. Frequency
// 1.5 with damping 0.6 gives a slow, slightly overshooting drift.
func NewAnimator(lights []cluster.Light, field Field, fps int, seed int64) *Animator {
	a := &Animator{
		field:   field,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 1.5, 0.6),
		rng:     rand.New(rand.NewSource(seed)),
		lights:  append([]cluster.Light(nil), lights...),
		axes:    make([][3]wanderAxis, len(lights)),
		targets: make([]math3d.Vec3, len(lights)),
	}
	for i, l := range a.lights {
		a.axes[i] = [3]wanderAxis{{pos: l.Position.X}, {pos: l.Position.Y}, {pos: l.Position.Z}}
		a.targets[i] = field.point(a.rng)
	}
	return a
}

// Lights returns the current light positions. The slice is reused by Step.
func (a *Animator) Lights() []cluster.Light {
	return a.lights
}

// Step advances every light by one frame and returns the updated lights.
func (a *Animator) Step() []cluster.Light {
	for i := range a.lights {
		t := a.targets[i]
		ax := &a.axes[i]
		ax[0].pos, ax[0].vel = a.spring.Update(ax[0].pos, ax[0].vel, t.X)
		ax[1].pos, ax[1].vel = a.spring.Update(ax[1].pos, ax[1].vel, t.Y)
		ax[2].pos, ax[2].vel = a.spring.Update(ax[2].pos, ax[2].vel, t.Z)

		p := math3d.V3(ax[0].pos, ax[1].pos, ax[2].pos)
		a.lights[i].Position = p
		if p.Distance(t) < 0.25*a.field.Extent {
			a.targets[i] = a.field.point(a.rng)
		}
	}
	return a.lights
}
