package cluster

import (
	"fmt"
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

// Camera holds the projection parameters the grid is built from.
type Camera struct {
	FOV    float64 // vertical field of view in degrees
	Aspect float64 // width / height
	Near   float64
	Far    float64
}

// CameraFrom reads the projection parameters of a render camera.
func CameraFrom(c *render.Camera) Camera {
	fov, aspect, near, far := c.Lens()
	return Camera{FOV: fov, Aspect: aspect, Near: near, Far: far}
}

// Validate reports whether the camera satisfies 0 < near < far,
// 0 < fov < 180 and aspect > 0.
func (c Camera) Validate() error {
	switch {
	case !(c.Near > 0 && c.Near < c.Far):
		return fmt.Errorf("%w: near=%v far=%v", ErrDegenerateCamera, c.Near, c.Far)
	case !(c.FOV > 0 && c.FOV < 180):
		return fmt.Errorf("%w: fov=%v", ErrDegenerateCamera, c.FOV)
	case !(c.Aspect > 0):
		return fmt.Errorf("%w: aspect=%v", ErrDegenerateCamera, c.Aspect)
	}
	return nil
}

// Projection returns the perspective projection matrix for the camera.
func (c Camera) Projection() math3d.Mat4 {
	return math3d.Perspective(math3d.Radians(c.FOV), c.Aspect, c.Near, c.Far)
}

// Extents are the frustum cross-section sizes at the near and far planes.
type Extents struct {
	NearWidth, NearHeight float64
	FarWidth, FarHeight   float64
}

// NewExtents computes the frustum cross-sections for a camera.
func NewExtents(c Camera) Extents {
	tanHalfFov := math.Tan(c.FOV * 0.5 * (math.Pi / 180.0))
	e := Extents{
		NearHeight: 2 * c.Near * tanHalfFov,
		FarHeight:  2 * c.Far * tanHalfFov,
	}
	e.NearWidth = e.NearHeight * c.Aspect
	e.FarWidth = e.FarHeight * c.Aspect
	return e
}

// Frame is the immutable per-frame state shared by the builder and the
// shading-stage lookup: grid, camera, extents and view transform.
type Frame struct {
	Grid    Grid
	Camera  Camera
	Extents Extents
	View    math3d.Mat4 // world -> view

	// ClampDepth clamps the near/far interpolation factor to [0, 1]. When
	// false, lights outside [near, far] extrapolate the slice size.
	ClampDepth bool

	frustum render.Frustum
}

// NewFrame derives the frame state for one build.
func NewFrame(g Grid, c Camera, view math3d.Mat4, clampDepth bool) Frame {
	return Frame{
		Grid:       g,
		Camera:     c,
		Extents:    NewExtents(c),
		View:       view,
		ClampDepth: clampDepth,
		frustum:    render.NewFrustumFromMatrix(c.Projection().Mul(view)),
	}
}

// Frustum returns the world-space view frustum of the frame.
func (f Frame) Frustum() render.Frustum {
	return f.frustum
}

// ToView transforms a world-space point into view space.
func (f Frame) ToView(p math3d.Vec3) math3d.Vec3 {
	return f.View.MulVec4(math3d.Point(p)).Vec3()
}

// DepthLerp returns (depth − near) / (far − near) for a positive view depth.
func (f Frame) DepthLerp(depth float64) float64 {
	t := (depth - f.Camera.Near) / (1.0*f.Camera.Far - f.Camera.Near)
	if f.ClampDepth {
		t = math3d.Clamp01(t)
	}
	return t
}

// Slice returns the width and height of the frustum cross-section at a
// positive view depth, linearly interpolated between the near and far
// extents.
func (f Frame) Slice(depth float64) (width, height float64) {
	t := f.DepthLerp(depth)
	e := f.Extents
	return math3d.Lerp(e.NearWidth, e.FarWidth, t), math3d.Lerp(e.NearHeight, e.FarHeight, t)
}
