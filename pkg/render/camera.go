package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Camera represents a 3D camera with position and orientation.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (Euler angles in radians)
	Pitch float64 // Rotation around X axis (look up/down)
	Yaw   float64 // Rotation around Y axis (look left/right)
	Roll  float64 // Rotation around Z axis (tilt)

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	viewProjDirty  bool
}

// NewCamera creates a new camera with default settings.
func NewCamera() *Camera {
	return &Camera{
		Position:      math3d.V3(0, 2, 10),
		FOV:           math.Pi / 3, // 60 degrees
		AspectRatio:   16.0 / 9.0,
		Near:          0.1,
		Far:           100,
		viewDirty:     true,
		projDirty:     true,
		viewProjDirty: true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.markView()
}

// SetRotation sets the camera rotation (pitch, yaw, roll in radians).
func (c *Camera) SetRotation(pitch, yaw, roll float64) {
	c.Pitch = pitch
	c.Yaw = yaw
	c.Roll = roll
	c.markView()
}

// SetFOV sets the vertical field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.markProj()
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.markProj()
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.markProj()
}

// Lens returns the projection parameters with the field of view in degrees,
// the unit the cluster grid math is specified in.
func (c *Camera) Lens() (fovDeg, aspect, near, far float64) {
	return math3d.Degrees(c.FOV), c.AspectRatio, c.Near, c.Far
}

func (c *Camera) markView() {
	c.viewDirty = true
	c.viewProjDirty = true
}

func (c *Camera) markProj() {
	c.projDirty = true
	c.viewProjDirty = true
}

// Forward returns the forward direction vector.
func (c *Camera) Forward() math3d.Vec3 {
	// Forward is -Z in camera space, rotated by yaw and pitch
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the right direction vector.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(
		math.Cos(c.Yaw),
		0,
		-math.Sin(c.Yaw),
	)
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.computeViewMatrix()
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewProjDirty {
		c.viewProjMatrix = c.ProjectionMatrix().Mul(c.ViewMatrix())
		c.viewProjDirty = false
	}
	return c.viewProjMatrix
}

func (c *Camera) computeViewMatrix() {
	// View = Rotation * Translation(-position)
	rot := math3d.RotateZ(-c.Roll).Mul(
		math3d.RotateX(-c.Pitch)).Mul(
		math3d.RotateY(-c.Yaw))

	trans := math3d.Translate(c.Position.Negate())

	c.viewMatrix = rot.Mul(trans)
}

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
	c.markView()
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
	c.markView()
}

// Rotate rotates the camera by the given angles (in radians).
func (c *Camera) Rotate(deltaPitch, deltaYaw, deltaRoll float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw
	c.Roll += deltaRoll

	// Clamp pitch to avoid gimbal lock issues
	const maxPitch = math.Pi/2 - 0.01
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch))

	c.markView()
}

// LookAt makes the camera look at a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()

	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
	c.Roll = 0

	c.markView()
}
