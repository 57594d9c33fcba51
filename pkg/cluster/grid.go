// Package cluster assigns lights to a clustered (forward+) view-frustum grid.
//
// A Builder runs once per frame: it derives the frustum extents for the
// camera, computes for every light the inclusive range of clusters it may
// touch, and appends the light index to each of those clusters in a
// fixed-capacity Buffer whose layout matches what a shading stage unpacks
// from a 4-channel float texture.
package cluster

import "fmt"

// Grid holds the number of slices along each axis of the cluster grid.
type Grid struct {
	X, Y, Z int
}

// NewGrid returns a grid of x×y×z clusters.
func NewGrid(x, y, z int) (Grid, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return Grid{}, fmt.Errorf("%w: %dx%dx%d", ErrInvalidGrid, x, y, z)
	}
	return Grid{X: x, Y: y, Z: z}, nil
}

// Cells returns the total number of clusters.
func (g Grid) Cells() int {
	return g.X * g.Y * g.Z
}

// Index flattens cluster coordinates to x + y·X + z·X·Y.
func (g Grid) Index(x, y, z int) int {
	return x + y*g.X + z*g.X*g.Y
}

// Coords is the inverse of Index.
func (g Grid) Coords(i int) (x, y, z int) {
	plane := g.X * g.Y
	z = i / plane
	i -= z * plane
	y = i / g.X
	x = i - y*g.X
	return x, y, z
}

// String formats the grid as XxYxZ, the form the CLI accepts.
func (g Grid) String() string {
	return fmt.Sprintf("%dx%dx%d", g.X, g.Y, g.Z)
}

// ParseGrid parses "XxYxZ".
func ParseGrid(s string) (Grid, error) {
	var x, y, z int
	if _, err := fmt.Sscanf(s, "%dx%dx%d", &x, &y, &z); err != nil {
		return Grid{}, fmt.Errorf("%w: parse %q: %v", ErrInvalidGrid, s, err)
	}
	return NewGrid(x, y, z)
}
