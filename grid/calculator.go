// Package grid turns view definitions into escape-time grids.
//
// A Calculator owns two backends: an accelerated one, used when available, and the portable
// ScalarBackend. Fast-mode views and accelerated failures go to the portable backend; a failure
// is logged and never reaches the caller.
package grid

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	mandel "github.com/marben/mandel_hues"
)

// Calculator computes escape-time grids.
type Calculator struct {
	accel    mandel.Backend
	accelSet bool
	fallback mandel.Backend
	// accelOff is set after the accelerated backend failed once.
	accelOff atomic.Bool
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithAccelerated replaces the accelerated backend. nil disables acceleration.
func WithAccelerated(b mandel.Backend) Option {
	return func(c *Calculator) {
		c.accel = b
		c.accelSet = true
	}
}

// WithFallback replaces the portable backend.
func WithFallback(b mandel.Backend) Option {
	return func(c *Calculator) {
		c.fallback = b
	}
}

// NewCalculator selects the backends once. Without options the accelerated backend is a
// ParallelBackend when Available reports true.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{fallback: ScalarBackend{}}
	for _, opt := range opts {
		opt(c)
	}
	if !c.accelSet && Available() {
		c.accel = NewParallelBackend(0)
	}
	if c.fallback == nil {
		c.fallback = ScalarBackend{}
	}

	if c.accel != nil {
		log.Printf("grid: accelerated backend %T (cpu level %s)", c.accel, CurrentLevel())
	} else {
		log.Printf("grid: portable backend only")
	}
	return c
}

// Accelerated reports whether the next non-fast compute will try the accelerated backend.
func (c *Calculator) Accelerated() bool {
	return c.accel != nil && !c.accelOff.Load()
}

// Compute returns the grid of view. It fails with mandel.ErrComputation for invalid views
// and with the context's error when ctx ends first.
func (c *Calculator) Compute(ctx context.Context, view mandel.ViewDefinition) (*mandel.Grid, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}

	if !view.FastCalc && c.Accelerated() {
		g, err := c.accel.ComputeGrid(ctx, view)
		if err == nil {
			err = checkDims(g, view)
		}
		if err == nil {
			return g, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.accelOff.Store(true)
		log.Printf("WARN: grid: accelerated backend %T failed, using portable backend: %v", c.accel, err)
	}

	g, err := c.fallback.ComputeGrid(ctx, view)
	if err != nil {
		return nil, err
	}
	if err := checkDims(g, view); err != nil {
		return nil, fmt.Errorf("%w: %w", mandel.ErrComputation, err)
	}
	return g, nil
}

func checkDims(g *mandel.Grid, view mandel.ViewDefinition) error {
	if err := g.Check(); err != nil {
		return err
	}
	if g.Width != view.Width || g.Height != view.Height {
		return fmt.Errorf("grid is %dx%d, view is %dx%d", g.Width, g.Height, view.Width, view.Height)
	}
	return nil
}

// Close releases the accelerated backend's workers, if it has any.
func (c *Calculator) Close() {
	if closer, ok := c.accel.(interface{ Close() }); ok {
		closer.Close()
	}
}

// IsCanceled reports whether err comes from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
