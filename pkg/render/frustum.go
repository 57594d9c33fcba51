// Package render holds the camera model, view-frustum planes and the
// terminal heatmap output used to inspect cluster assignments.
package render

import (
	"github.com/taigrr/lumen/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum represents the 6 planes of a view frustum.
// Planes are ordered: Left, Right, Bottom, Top, Near, Far.
// Each plane's normal points inward (toward the center of the frustum).
type Frustum struct {
	Planes [6]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a view-projection matrix
// with the Gribb/Hartmann method. Passing a projection matrix alone yields
// planes in view space; passing projection*view yields world-space planes.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	var f Frustum

	// For column-major m, row i element j is at m[i + j*4].
	row := func(i int) (float64, float64, float64, float64) {
		return m[i], m[i+4], m[i+8], m[i+12]
	}
	r0x, r0y, r0z, r0w := row(0)
	r1x, r1y, r1z, r1w := row(1)
	r2x, r2y, r2z, r2w := row(2)
	r3x, r3y, r3z, r3w := row(3)

	f.Planes[FrustumLeft] = Plane{Normal: math3d.V3(r3x+r0x, r3y+r0y, r3z+r0z), D: r3w + r0w}
	f.Planes[FrustumRight] = Plane{Normal: math3d.V3(r3x-r0x, r3y-r0y, r3z-r0z), D: r3w - r0w}
	f.Planes[FrustumBottom] = Plane{Normal: math3d.V3(r3x+r1x, r3y+r1y, r3z+r1z), D: r3w + r1w}
	f.Planes[FrustumTop] = Plane{Normal: math3d.V3(r3x-r1x, r3y-r1y, r3z-r1z), D: r3w - r1w}
	f.Planes[FrustumNear] = Plane{Normal: math3d.V3(r3x+r2x, r3y+r2y, r3z+r2z), D: r3w + r2w}
	f.Planes[FrustumFar] = Plane{Normal: math3d.V3(r3x-r2x, r3y-r2y, r3z-r2z), D: r3w - r2w}

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}

	return f
}

// IntersectsSphere tests if a sphere intersects the frustum.
// It is conservative near frustum corners: a sphere outside two planes at
// once but inside each individually still reports true.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// Frustum returns the current world-space view frustum of the camera.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}
