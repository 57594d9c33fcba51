package render

import "image/color"

// Heatmap lays out every z slice of a cluster grid as a tile of
// X×Y squares colored by per-cluster light count. Slices are placed left to
// right, wrapping into rows, nearest slice first. Cluster y=0 is drawn at
// the bottom of its tile so the picture matches the camera's view.
type Heatmap struct {
	X, Y, Z  int // grid dimensions
	CellSize int // pixels per cluster edge
	Gap      int // pixels between slice tiles
	Columns  int // slice tiles per row
	Cap      int // count drawn with ColorFull; 0 uses the largest count seen
}

const maxCellSize = 64

// NewHeatmap picks the largest cell size that fits all z slices of an
// x×y×z grid into a width×height framebuffer. CellSize is at least 1 even
// when the grid does not fit.
func NewHeatmap(x, y, z, width, height int) Heatmap {
	h := Heatmap{X: x, Y: y, Z: z, Gap: 1, CellSize: 1, Columns: max(z, 1)}
	if x <= 0 || y <= 0 || z <= 0 {
		return h
	}
	for size := 1; size <= maxCellSize; size++ {
		cols, ok := fitColumns(x, y, z, size, h.Gap, width, height)
		if !ok {
			break
		}
		h.CellSize, h.Columns = size, cols
	}
	return h
}

// fitColumns returns the column count that fits z tiles of size×(x,y)
// pixels, or false if no arrangement fits.
func fitColumns(x, y, z, size, gap, width, height int) (int, bool) {
	tileW, tileH := x*size, y*size
	if tileW > width || tileH > height {
		return 0, false
	}
	cols := max((width+gap)/(tileW+gap), 1)
	rows := (z + cols - 1) / cols
	if rows*(tileH+gap)-gap > height {
		return 0, false
	}
	return min(cols, z), true
}

// Size returns the pixel dimensions of the full layout.
func (h Heatmap) Size() (width, height int) {
	cols := max(h.Columns, 1)
	rows := (h.Z + cols - 1) / cols
	width = cols*(h.X*h.CellSize+h.Gap) - h.Gap
	height = rows*(h.Y*h.CellSize+h.Gap) - h.Gap
	return width, height
}

// Draw paints counts, indexed x + y·X + z·X·Y, into fb.
func (h Heatmap) Draw(fb *Framebuffer, counts []int) {
	hot := h.Cap
	if hot <= 0 {
		for _, c := range counts {
			hot = max(hot, c)
		}
	}

	cols := max(h.Columns, 1)
	tileW, tileH := h.X*h.CellSize, h.Y*h.CellSize

	for z := range h.Z {
		ox := (z % cols) * (tileW + h.Gap)
		oy := (z / cols) * (tileH + h.Gap)
		for y := range h.Y {
			py := oy + (h.Y-1-y)*h.CellSize
			for x := range h.X {
				i := x + y*h.X + z*h.X*h.Y
				if i >= len(counts) {
					return
				}
				fb.DrawRect(ox+x*h.CellSize, py, h.CellSize, h.CellSize, HeatColor(counts[i], hot))
			}
		}
		if h.CellSize >= 3 {
			fb.DrawRectOutline(ox, oy, tileW, tileH, ColorGrid)
		}
	}
}

// HeatColor maps count in [0, hot] onto a dark-blue → yellow → red ramp.
// Zero always maps to ColorEmpty and counts at or above hot to ColorFull.
func HeatColor(count, hot int) color.RGBA {
	switch {
	case count <= 0 || hot <= 0:
		return ColorEmpty
	case count >= hot:
		return ColorFull
	}
	t := float64(count) / float64(hot)
	if t < 0.5 {
		u := t * 2
		return RGB(uint8(40+u*215), uint8(60+u*180), uint8(160-u*120))
	}
	u := (t - 0.5) * 2
	return RGB(255, uint8(240-u*176), uint8(40+u*24))
}
