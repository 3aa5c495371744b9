// Package pipeline ties the grid calculator, the hue list and the color processor into one
// view session that knows which cached stage a request invalidates.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	mandel "github.com/marben/mandel_hues"
	"github.com/marben/mandel_hues/colorize"
	"github.com/marben/mandel_hues/export"
	"github.com/marben/mandel_hues/palette"
	"github.com/marben/mandel_hues/render"
)

// ErrSuperseded is returned by a recompute whose result was overtaken by a newer recompute.
var ErrSuperseded = errors.New("recompute superseded by a newer request")

// Computer produces grids; *grid.Calculator implements it.
type Computer interface {
	Compute(ctx context.Context, view mandel.ViewDefinition) (*mandel.Grid, error)
}

// Request is a typed pipeline request: RecomputeRequest or RecolorRequest.
type Request interface {
	isRequest()
}

// RecomputeRequest asks for the grid of View. An unchanged view with a grid at hand
// is served as a recolor.
type RecomputeRequest struct {
	View mandel.ViewDefinition
}

// RecolorRequest remaps the latest grid. Spacing, when set, replaces the session's spacing.
// Hue edits go through Session.Hues before sending it.
type RecolorRequest struct {
	Spacing *mandel.SpacingParameters
}

func (RecomputeRequest) isRequest() {}
func (RecolorRequest) isRequest()   {}

// Session is the single owner of one view's state.
type Session struct {
	computer  Computer
	hues      *palette.HueList
	processor colorize.Processor

	m       sync.Mutex
	view    mandel.ViewDefinition
	grid    *mandel.Grid
	spacing mandel.SpacingParameters
	colored *mandel.ColoredGrid
	// gen counts recompute requests; only the newest may publish its grid.
	gen    uint64
	cancel context.CancelFunc
}

// NewSession starts a session without a grid.
func NewSession(computer Computer, hues *palette.HueList, spacing mandel.SpacingParameters) *Session {
	if hues == nil {
		hues = palette.NewHueList()
	}
	return &Session{computer: computer, hues: hues, spacing: spacing}
}

// Hues returns the session's hue list. Edit it, then send a RecolorRequest.
func (s *Session) Hues() *palette.HueList {
	return s.hues
}

// Handle runs a request and returns the colored grid it produced.
func (s *Session) Handle(ctx context.Context, req Request) (*mandel.ColoredGrid, error) {
	switch r := req.(type) {
	case RecomputeRequest:
		return s.Recompute(ctx, r.View)
	case RecolorRequest:
		return s.Recolor(r.Spacing)
	default:
		return nil, fmt.Errorf("%w: unknown request %T", mandel.ErrInvalidInput, req)
	}
}

// Recompute computes the grid of view and colors it. A newer Recompute cancels this one,
// even one for the view already on screen; if this one finishes anyway its grid is dropped
// and ErrSuperseded returned.
// On failure the previous view and grid stay in place.
func (s *Session) Recompute(ctx context.Context, view mandel.ViewDefinition) (*mandel.ColoredGrid, error) {
	s.m.Lock()
	if s.grid != nil && s.view == view {
		// back to the current view: whatever is still computing is stale now
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
			s.gen++
		}
		s.m.Unlock()
		return s.Recolor(nil)
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.m.Unlock()
	defer cancel()

	g, err := s.computer.Compute(ctx, view)

	s.m.Lock()
	if gen != s.gen {
		s.m.Unlock()
		return nil, ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		s.m.Unlock()
		return nil, err
	}
	s.view = view
	s.grid = g
	s.m.Unlock()

	return s.Recolor(nil)
}

// Recolor maps the latest completed grid through the current hue table.
// It fails with mandel.ErrInvalidInput when no grid was computed yet.
func (s *Session) Recolor(spacing *mandel.SpacingParameters) (*mandel.ColoredGrid, error) {
	s.m.Lock()
	defer s.m.Unlock()

	if spacing != nil {
		s.spacing = *spacing
	}
	if s.grid == nil {
		return nil, fmt.Errorf("%w: no grid computed yet", mandel.ErrInvalidInput)
	}
	cg, err := s.processor.Colorize(s.grid, s.hues.Table(), s.spacing)
	if err != nil {
		return nil, err
	}
	s.colored = cg
	return cg, nil
}

// View returns the view of the current grid.
func (s *Session) View() mandel.ViewDefinition {
	s.m.Lock()
	defer s.m.Unlock()
	return s.view
}

// Grid returns the latest completed grid, nil before the first recompute.
func (s *Session) Grid() *mandel.Grid {
	s.m.Lock()
	defer s.m.Unlock()
	return s.grid
}

// Spacing returns the current spacing parameters.
func (s *Session) Spacing() mandel.SpacingParameters {
	s.m.Lock()
	defer s.m.Unlock()
	return s.spacing
}

// Colored returns the latest colored grid, nil before the first recolor.
func (s *Session) Colored() *mandel.ColoredGrid {
	s.m.Lock()
	defer s.m.Unlock()
	return s.colored
}

// Render draws the latest colored grid on surface.
func (s *Session) Render(surface mandel.Surface) error {
	return render.Render(surface, s.Colored())
}

// WriteBMP exports the latest colored grid as a bitmap.
func (s *Session) WriteBMP(w io.Writer) error {
	return export.WriteBMP(w, s.Colored())
}

// WritePNG exports the latest colored grid as PNG.
func (s *Session) WritePNG(w io.Writer) error {
	return export.WritePNG(w, s.Colored())
}

// WriteText exports the escape-time values of the latest grid.
func (s *Session) WriteText(w io.Writer) error {
	return export.WriteText(w, s.Grid())
}
