package cluster

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// CellCoords recomputes the cluster that contains a view-space position the
// way the shading stage does: same slice interpolation as the builder,
// coordinates truncated toward zero. ok is false outside the grid.
func (f Frame) CellCoords(viewPos math3d.Vec3) (x, y, z int, ok bool) {
	g := f.Grid
	depth := math.Abs(viewPos.Z)
	sliceWidth, sliceHeight := f.Slice(depth)

	fx := (viewPos.X + 0.5*sliceWidth) / (sliceWidth / float64(g.X))
	fy := (viewPos.Y + 0.5*sliceHeight) / (sliceHeight / float64(g.Y))
	fz := (depth - f.Camera.Near) / ((f.Camera.Far - f.Camera.Near) / float64(g.Z))

	if !inRange(fx, g.X) || !inRange(fy, g.Y) || !inRange(fz, g.Z) {
		return 0, 0, 0, false
	}
	return int(fx), int(fy), int(fz), true
}

// Cell returns the flattened index of the cluster containing viewPos.
func (f Frame) Cell(viewPos math3d.Vec3) (int, bool) {
	x, y, z, ok := f.CellCoords(viewPos)
	if !ok {
		return 0, false
	}
	return f.Grid.Index(x, y, z), true
}

func inRange(v float64, n int) bool {
	return v >= 0 && v < float64(n)
}

// LoopCeiling is the exclusive upper bound on the slot index the shading
// stage reads, 4·Height − 1. It does not depend on the stored count and is
// at least CAP.
func (b *Buffer) LoopCeiling() int {
	return TexelChannels*b.height - 1
}

// Unpack reads a record the way the shading stage does: count from slot 0,
// then slots 1..count, stopping early at LoopCeiling.
func (b *Buffer) Unpack(cell int) []int {
	count := int(b.data[b.SlotOffset(cell, 0)])
	var ids []int
	for k := 1; k < b.LoopCeiling(); k++ {
		if k > count {
			break
		}
		ids = append(ids, int(b.data[b.SlotOffset(cell, k)]))
	}
	return ids
}

// LightsAt returns the lights the shading stage would evaluate for a
// fragment at viewPos, or nil outside the grid.
func (b *Buffer) LightsAt(f Frame, viewPos math3d.Vec3) []int {
	cell, ok := f.Cell(viewPos)
	if !ok {
		return nil
	}
	return b.Unpack(cell)
}
