package cluster

import "fmt"

// Bounds is an inclusive range of cluster coordinates. A range with any
// min greater than its max is empty.
type Bounds struct {
	XMin, XMax int
	YMin, YMax int
	ZMin, ZMax int
}

// EmptyBounds returns a range that covers no cluster.
func EmptyBounds() Bounds {
	return Bounds{XMin: 0, XMax: -1, YMin: 0, YMax: -1, ZMin: 0, ZMax: -1}
}

// Empty reports whether the range covers no cluster.
func (b Bounds) Empty() bool {
	return b.XMin > b.XMax || b.YMin > b.YMax || b.ZMin > b.ZMax
}

// Len returns the number of clusters in the range.
func (b Bounds) Len() int {
	if b.Empty() {
		return 0
	}
	return (b.XMax - b.XMin + 1) * (b.YMax - b.YMin + 1) * (b.ZMax - b.ZMin + 1)
}

// Contains reports whether cluster (x, y, z) lies in the range.
func (b Bounds) Contains(x, y, z int) bool {
	return x >= b.XMin && x <= b.XMax &&
		y >= b.YMin && y <= b.YMax &&
		z >= b.ZMin && z <= b.ZMax
}

// Within reports whether every cluster of a non-empty range exists in g.
func (b Bounds) Within(g Grid) bool {
	return b.XMin >= 0 && b.XMax < g.X &&
		b.YMin >= 0 && b.YMax < g.Y &&
		b.ZMin >= 0 && b.ZMax < g.Z
}

// checkBounds validates the range a policy returned for light id.
func checkBounds(g Grid, id int, b Bounds) error {
	if b.Empty() || b.Within(g) {
		return nil
	}
	return fmt.Errorf("light %d %s: %w", id, b, ErrBoundsOutsideGrid)
}

// Each calls fn with the flattened index of every cluster in the range,
// x outermost and z innermost.
func (b Bounds) Each(g Grid, fn func(cell int)) {
	for x := b.XMin; x <= b.XMax; x++ {
		for y := b.YMin; y <= b.YMax; y++ {
			for z := b.ZMin; z <= b.ZMax; z++ {
				fn(g.Index(x, y, z))
			}
		}
	}
}

func (b Bounds) String() string {
	return fmt.Sprintf("x[%d,%d] y[%d,%d] z[%d,%d]", b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax)
}
