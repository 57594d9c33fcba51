package cluster

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Policy decides which clusters a light may affect. Implementations must
// return ranges inside the grid (or an empty range) and must not
// under-approximate the light's true influence.
type Policy interface {
	Bounds(f Frame, l Light) Bounds
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(f Frame, l Light) Bounds

// Bounds calls fn(f, l).
func (fn PolicyFunc) Bounds(f Frame, l Light) Bounds {
	return fn(f, l)
}

// BoxPolicy bounds the light sphere with an axis-aligned box in the sheared,
// depth-linearized grid space. The slice size used for x/y is the one at the
// light's center depth, so the box is an approximation of the sphere/cluster
// overlap rather than an exact test. Each coordinate is clamped to the grid
// independently; a light outside the grid laterally therefore lands in the
// boundary layer of clusters.
type BoxPolicy struct{}

// Bounds implements Policy.
func (BoxPolicy) Bounds(f Frame, l Light) Bounds {
	g := f.Grid
	v := f.ToView(l.Position)

	// View space looks down -Z; compare depth as a positive distance.
	depth := math.Abs(v.Z)
	r := l.Radius

	sliceWidth, sliceHeight := f.Slice(depth)
	if depth == 0 && !f.ClampDepth {
		// The unclamped cross-section through the eye is a point.
		sliceWidth, sliceHeight = 0, 0
	}
	bucketWidth := sliceWidth / float64(g.X)
	bucketHeight := sliceHeight / float64(g.Y)

	left := (v.X - r + 0.5*sliceWidth) / bucketWidth
	right := (v.X + r + 0.5*sliceWidth) / bucketWidth
	top := (v.Y + r + 0.5*sliceHeight) / bucketHeight
	bottom := (v.Y - r + 0.5*sliceHeight) / bucketHeight

	span := f.Camera.Far - f.Camera.Near
	near := ((depth - f.Camera.Near - r) / span) * float64(g.Z)
	far := ((depth - f.Camera.Near + r) / span) * float64(g.Z)

	// A zero-radius light at the eye divides 0 by 0; it reaches nothing.
	for _, c := range [...]float64{left, right, top, bottom, near, far} {
		if math.IsNaN(c) {
			return EmptyBounds()
		}
	}

	return Bounds{
		XMin: math3d.FloorClamp(left, 0, g.X-1),
		XMax: math3d.FloorClamp(right, 0, g.X-1),
		YMin: math3d.FloorClamp(bottom, 0, g.Y-1),
		YMax: math3d.FloorClamp(top, 0, g.Y-1),
		ZMin: math3d.FloorClamp(near, 0, g.Z-1),
		ZMax: math3d.FloorClamp(far, 0, g.Z-1),
	}
}

// CullingPolicy rejects lights whose sphere lies entirely outside the camera
// frustum and delegates the rest to Inner (BoxPolicy when nil). Rejected
// lights get an empty range instead of being clamped into boundary clusters.
type CullingPolicy struct {
	Inner Policy
}

// Bounds implements Policy.
func (p CullingPolicy) Bounds(f Frame, l Light) Bounds {
	if !f.Frustum().IntersectsSphere(l.Position, l.Radius) {
		return EmptyBounds()
	}
	if p.Inner == nil {
		return BoxPolicy{}.Bounds(f, l)
	}
	return p.Inner.Bounds(f, l)
}
