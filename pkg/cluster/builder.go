package cluster

import (
	"fmt"
	"time"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Stats summarizes one build.
type Stats struct {
	Lights      int           // lights processed
	Culled      int           // lights whose range was empty
	Assignments int           // light/cluster pairs the policy produced
	Stored      int           // pairs admitted into the buffer
	Dropped     int           // pairs rejected because a cluster was full
	Saturated   int           // clusters holding CAP−1 lights
	Elapsed     time.Duration // wall time of the build
}

// Builder rebuilds a cluster Buffer once per frame.
type Builder struct {
	grid       Grid
	policy     Policy
	capacity   int
	clampDepth bool
	workers    int
	uploader   Uploader

	buffer *Buffer
	stats  Stats
}

// Option configures a Builder.
type Option func(*Builder)

// WithPolicy sets the light-to-cluster policy. Default BoxPolicy.
func WithPolicy(p Policy) Option {
	return func(b *Builder) { b.policy = p }
}

// WithCapacity sets CAP. Default MaxLightsPerCluster.
func WithCapacity(capacity int) Option {
	return func(b *Builder) { b.capacity = capacity }
}

// WithClampDepth clamps the depth interpolation factor to [0, 1].
func WithClampDepth(clamp bool) Option {
	return func(b *Builder) { b.clampDepth = clamp }
}

// WithWorkers spreads bounds computation over n goroutines. Values below 2
// keep the build sequential. The policy must be safe for concurrent use.
func WithWorkers(n int) Option {
	return func(b *Builder) { b.workers = n }
}

// WithUploader hands every finalized buffer to u.
func WithUploader(u Uploader) Option {
	return func(b *Builder) { b.uploader = u }
}

// NewBuilder creates a builder and its buffer for grid.
func NewBuilder(grid Grid, opts ...Option) (*Builder, error) {
	if _, err := NewGrid(grid.X, grid.Y, grid.Z); err != nil {
		return nil, err
	}
	b := &Builder{
		grid:     grid,
		policy:   BoxPolicy{},
		capacity: MaxLightsPerCluster,
		workers:  1,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.policy == nil {
		b.policy = BoxPolicy{}
	}

	buf, err := NewBuffer(grid.Cells(), b.capacity)
	if err != nil {
		return nil, fmt.Errorf("new cluster buffer: %w", err)
	}
	b.buffer = buf
	return b, nil
}

// Grid returns the cluster grid.
func (b *Builder) Grid() Grid { return b.grid }

// Buffer returns the cluster buffer the builder writes into.
func (b *Builder) Buffer() *Buffer { return b.buffer }

// LastStats returns the statistics of the most recent successful build.
func (b *Builder) LastStats() Stats { return b.stats }

// Build clears the buffer and assigns every light to the clusters its
// policy range covers. Light i is stored as index i. The returned Frame
// carries everything the shading stage needs to find a fragment's cluster.
//
// A policy range that reaches past the grid aborts the build with
// ErrBoundsOutsideGrid; the buffer must then be rebuilt before use.
//
// Build is not safe for concurrent use with itself or with readers of the
// buffer.
func (b *Builder) Build(cam Camera, view math3d.Mat4, lights []Light) (Frame, error) {
	if err := cam.Validate(); err != nil {
		Logger().Warn("cluster build rejected", "err", err)
		return Frame{}, fmt.Errorf("build clusters: %w", err)
	}

	start := time.Now()
	frame := NewFrame(b.grid, cam, view, b.clampDepth)

	b.buffer.Reset()

	var (
		st  Stats
		err error
	)
	if b.workers > 1 && len(lights) > 1 {
		st, err = b.assignParallel(frame, lights)
	} else {
		st, err = b.assign(frame, lights)
	}
	if err != nil {
		Logger().Warn("cluster build aborted", "err", err)
		return frame, fmt.Errorf("build clusters: %w", err)
	}
	st.Lights = len(lights)
	st.Dropped = st.Assignments - st.Stored
	for i := range b.buffer.Cells() {
		if b.buffer.Count(i) == b.capacity-1 {
			st.Saturated++
		}
	}

	b.buffer.Finalize()
	if b.uploader != nil {
		if err := b.buffer.Upload(b.uploader); err != nil {
			Logger().Warn("cluster upload failed", "err", err)
			return frame, fmt.Errorf("upload cluster buffer: %w", err)
		}
	}

	st.Elapsed = time.Since(start)
	b.stats = st

	log := Logger()
	log.Debug("clusters built",
		"grid", b.grid.String(),
		"lights", st.Lights,
		"culled", st.Culled,
		"stored", st.Stored,
		"elapsed", st.Elapsed)
	if st.Dropped > 0 {
		log.Debug("cluster capacity reached",
			"dropped", st.Dropped,
			"saturated", st.Saturated,
			"capacity", b.capacity)
	}
	return frame, nil
}

// assign is the sequential build: one light at a time, one cluster at a time.
func (b *Builder) assign(frame Frame, lights []Light) (Stats, error) {
	var st Stats
	for id, l := range lights {
		bounds := b.policy.Bounds(frame, l)
		if err := checkBounds(b.grid, id, bounds); err != nil {
			return st, err
		}
		if bounds.Empty() {
			st.Culled++
			continue
		}
		bounds.Each(b.grid, func(cell int) {
			st.Assignments++
			if b.buffer.Append(cell, id) {
				st.Stored++
			}
		})
	}
	return st, nil
}
