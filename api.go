package mandel

import (
	"context"
	"errors"
)

// Backend computes the escape-time grid of a view.
// Implementations must return a grid with the view's dimensions.
type Backend interface {
	ComputeGrid(ctx context.Context, view ViewDefinition) (*Grid, error)
}

// Surface is a display target for colored grids.
type Surface interface {
	// Resize makes the surface width x height pixels.
	Resize(width, height int) error
	// WritePixels writes the whole surface at once, row-major RGBA.
	WritePixels(pix []byte) error
}

var (
	// ErrComputation is returned for views that cannot be computed.
	ErrComputation = errors.New("computation error")
	// ErrInvalidInput is returned for empty or malformed grids, hue lists and color tables.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEncoding is returned when a raster cannot be encoded.
	ErrEncoding = errors.New("encoding error")
	// ErrRender is returned for colored grids that cannot be rendered.
	ErrRender = errors.New("render error")
	// ErrCatalogLoad is returned when a catalog listing is unreachable or malformed.
	ErrCatalogLoad = errors.New("catalog load error")
)
