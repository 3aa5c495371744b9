package grid

import (
	"context"
	"image"

	mandel "github.com/marben/mandel_hues"
)

// ScalarBackend is the portable fallback: one goroutine, one orbit at a time.
// It checks the context between rows.
type ScalarBackend struct{}

var _ mandel.Backend = ScalarBackend{}

// ComputeGrid implements mandel.Backend.
func (ScalarBackend) ComputeGrid(ctx context.Context, view mandel.ViewDefinition) (*mandel.Grid, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}
	g := mandel.NewGrid(view)
	for y := range view.Height {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		computeRows(view, g, y, y+1)
	}
	return g, nil
}

// ParallelBackend splits the image into tiles and renders them on a persistent worker pool.
// Inside a tile several orbits advance together, as many as the detected level has lanes.
type ParallelBackend struct {
	lanes int
	pool  *pool
}

var _ mandel.Backend = (*ParallelBackend)(nil)

// NewParallelBackend starts workers goroutines (GOMAXPROCS when <= 0) sized for CurrentLevel.
func NewParallelBackend(workers int) *ParallelBackend {
	return &ParallelBackend{
		lanes: CurrentLevel().Lanes(),
		pool:  newPool(workers),
	}
}

// Lanes returns the number of orbits advanced together.
func (b *ParallelBackend) Lanes() int {
	return b.lanes
}

// Close stops the worker pool.
func (b *ParallelBackend) Close() {
	b.pool.close()
}

// ComputeGrid implements mandel.Backend.
func (b *ParallelBackend) ComputeGrid(ctx context.Context, view mandel.ViewDefinition) (*mandel.Grid, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}
	g := mandel.NewGrid(view)
	tiles := splitRectNoClip(image.Rect(0, 0, view.Width, view.Height), tileSize, tileSize)

	b.pool.forEach(len(tiles), func(i int) {
		if ctx.Err() != nil {
			return
		}
		tile := tiles[i]
		for y := tile.Min.Y; y < tile.Max.Y; y++ {
			computeSpanLanes(view, g, y, tile.Min.X, tile.Max.X, b.lanes)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return g, nil
}
