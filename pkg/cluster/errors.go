package cluster

import "errors"

var (
	// ErrInvalidGrid is returned when a grid has a non-positive slice count.
	ErrInvalidGrid = errors.New("invalid cluster grid")

	// ErrDegenerateCamera is returned when camera parameters break
	// 0 < near < far, 0 < fov < 180 or aspect > 0.
	ErrDegenerateCamera = errors.New("degenerate camera")

	// ErrInvalidCapacity is returned for a per-cluster capacity below 1.
	ErrInvalidCapacity = errors.New("invalid cluster capacity")

	// ErrBoundsOutsideGrid is returned when a policy yields a non-empty
	// range that reaches past the grid.
	ErrBoundsOutsideGrid = errors.New("policy bounds outside grid")
)
