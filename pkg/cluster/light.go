package cluster

import "github.com/taigrr/lumen/pkg/math3d"

// Light is a point light as seen by the cluster builder. Color is carried
// for the shading stage and ignored during assignment.
type Light struct {
	Position math3d.Vec3 // world space
	Radius   float64     // influence radius
	Color    math3d.Vec3
}
