package cluster

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// partial is one worker's private view of the grid: per cluster, the light
// indices of its chunk in ascending order.
type partial struct {
	cells       [][]int32
	culled      int
	assignments int
}

// assignParallel computes light bounds on several goroutines. Lights are
// split into contiguous chunks; each worker appends only to its own partial
// lists, so no cluster record is shared while workers run. Partials are then
// merged into the buffer in chunk order on the calling goroutine, which
// keeps every record in ascending light order and makes the result identical
// to the sequential build. The first invalid policy range stops the other
// workers and leaves the buffer untouched.
func (b *Builder) assignParallel(frame Frame, lights []Light) (Stats, error) {
	workers := min(b.workers, len(lights))
	chunk := (len(lights) + workers - 1) / workers
	parts := make([]partial, workers)

	// A record never holds more than CAP−1 lights, and earlier chunks are
	// merged first, so a worker can stop collecting for a cluster there.
	limit := max(b.capacity-1, 0)

	g, ctx := errgroup.WithContext(context.Background())
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, len(lights))
		g.Go(func() error {
			p := &parts[w]
			p.cells = make([][]int32, b.grid.Cells())
			for id := lo; id < hi; id++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				bounds := b.policy.Bounds(frame, lights[id])
				if err := checkBounds(b.grid, id, bounds); err != nil {
					return err
				}
				if bounds.Empty() {
					p.culled++
					continue
				}
				bounds.Each(b.grid, func(cell int) {
					p.assignments++
					if len(p.cells[cell]) < limit {
						p.cells[cell] = append(p.cells[cell], int32(id))
					}
				})
			}
			return nil
		})
	}
	var st Stats
	if err := g.Wait(); err != nil {
		return st, err
	}

	for _, p := range parts {
		st.Culled += p.culled
		st.Assignments += p.assignments
		for cell, ids := range p.cells {
			for _, id := range ids {
				if b.buffer.Append(cell, int(id)) {
					st.Stored++
				}
			}
		}
	}
	return st, nil
}
