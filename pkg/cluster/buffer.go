package cluster

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// MaxLightsPerCluster is the default per-cluster capacity (CAP). A record
// stores at most CAP−1 light indices: a light is admitted only while
// count+1 < CAP.
const MaxLightsPerCluster = 100

// TexelChannels is the number of float slots packed into one texel.
const TexelChannels = 4

// Uploader transports a finalized buffer to its consumer, typically a
// GPU texture of width×height RGBA32F texels.
type Uploader interface {
	Upload(width, height int, texels []float32) error
}

// UploaderFunc adapts a function to the Uploader interface.
type UploaderFunc func(width, height int, texels []float32) error

// Upload calls fn.
func (fn UploaderFunc) Upload(width, height int, texels []float32) error {
	return fn(width, height, texels)
}

// Buffer stores one record per cluster laid out as a Width×Height texture of
// 4-channel texels. Width is the cluster count and Height is the number of
// texel rows needed for CAP+1 slots. Record i occupies column i; slot 0 holds
// the light count and slot k ≥ 1 the light index of the k-th admitted
// append. Slot k lives in texel row k/4, channel k%4.
//
// Light indices are stored as float32 and are exact below 2^24.
type Buffer struct {
	cells    int
	capacity int
	width    int
	height   int
	data     []float32
	ready    bool
}

// RecordHeight returns the number of texel rows a record with the given
// capacity needs: ceil((capacity+1) / 4).
func RecordHeight(capacity int) int {
	return (capacity + 1 + TexelChannels - 1) / TexelChannels
}

// NewBuffer allocates a buffer for cells clusters with the given capacity.
func NewBuffer(cells, capacity int) (*Buffer, error) {
	if cells <= 0 {
		return nil, fmt.Errorf("%w: %d cells", ErrInvalidGrid, cells)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	height := RecordHeight(capacity)
	return &Buffer{
		cells:    cells,
		capacity: capacity,
		width:    cells,
		height:   height,
		data:     make([]float32, TexelChannels*cells*height),
	}, nil
}

// Cells returns the number of records.
func (b *Buffer) Cells() int { return b.cells }

// Capacity returns CAP.
func (b *Buffer) Capacity() int { return b.capacity }

// Width returns the texture width in texels.
func (b *Buffer) Width() int { return b.width }

// Height returns the texture height in texels.
func (b *Buffer) Height() int { return b.height }

// TexelOffset returns the index in Data of the first channel of texel
// (cell, row).
func (b *Buffer) TexelOffset(cell, row int) int {
	return TexelChannels*cell + TexelChannels*row*b.width
}

// SlotOffset returns the index in Data of logical slot k of a record.
func (b *Buffer) SlotOffset(cell, k int) int {
	return b.TexelOffset(cell, k/TexelChannels) + k%TexelChannels
}

// Reset sets every record's count to zero and clears the ready flag. Light
// slots keep their old values; they are unreachable past count.
func (b *Buffer) Reset() {
	for i := range b.cells {
		b.data[b.TexelOffset(i, 0)] = 0
	}
	b.ready = false
}

// Append adds lightID to a record. It reports false and leaves the record
// untouched when the record is full.
func (b *Buffer) Append(cell, lightID int) bool {
	countAt := b.TexelOffset(cell, 0)
	n := int(b.data[countAt]) + 1
	if n >= b.capacity {
		return false
	}
	b.data[countAt] = float32(n)
	b.data[b.SlotOffset(cell, n)] = float32(lightID)
	return true
}

// Count returns the number of lights stored for a cluster.
func (b *Buffer) Count(cell int) int {
	return int(b.data[b.TexelOffset(cell, 0)])
}

// Counts returns the light count of every cluster.
func (b *Buffer) Counts() []int {
	counts := make([]int, b.cells)
	for i := range counts {
		counts[i] = b.Count(i)
	}
	return counts
}

// Lights returns the light indices stored for a cluster in insertion order.
func (b *Buffer) Lights(cell int) []int {
	n := b.Count(cell)
	ids := make([]int, n)
	for k := 1; k <= n; k++ {
		ids[k-1] = int(b.data[b.SlotOffset(cell, k)])
	}
	return ids
}

// Texel returns the four channels of texel (cell, row).
func (b *Buffer) Texel(cell, row int) [4]float32 {
	o := b.TexelOffset(cell, row)
	return [4]float32{b.data[o], b.data[o+1], b.data[o+2], b.data[o+3]}
}

// Data returns the backing texel array. It is owned by the buffer and is
// rewritten by the next build.
func (b *Buffer) Data() []float32 {
	return b.data
}

// Bytes returns the texels as little-endian float32 values.
func (b *Buffer) Bytes() []byte {
	buf := make([]byte, 4*len(b.data))
	for i, v := range b.data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// WriteTo writes Bytes to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes())
	return int64(n), err
}

// Finalize marks the buffer ready for consumption.
func (b *Buffer) Finalize() {
	b.ready = true
}

// Ready reports whether the buffer has been finalized since the last Reset.
func (b *Buffer) Ready() bool {
	return b.ready
}

// Upload finalizes the buffer and hands it to u.
func (b *Buffer) Upload(u Uploader) error {
	b.Finalize()
	return u.Upload(b.width, b.height, b.data)
}
