// Package colorize maps escape-time grids through a color table.
package colorize

import (
	"fmt"
	"slices"
	"sync"

	mandel "github.com/marben/mandel_hues"
	"github.com/marben/mandel_hues/palette"
)

// Colorize returns the colored grid of g. Every cell gets
// table[IndexFor(value) mod len(table)], using the refined values when g has them.
// It fails with mandel.ErrInvalidInput when g or table is empty.
func Colorize(g *mandel.Grid, table palette.Table, spacing mandel.SpacingParameters) (*mandel.ColoredGrid, error) {
	if err := g.Check(); err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: empty color table", mandel.ErrInvalidInput)
	}

	n := len(table)
	spacing = spacing.Normalized()
	cg := &mandel.ColoredGrid{Width: g.Width, Height: g.Height, Pix: make([]mandel.RGB, len(g.Values))}

	for i, v := range g.Values {
		var idx int
		if g.Smooth != nil && v < g.MaxIteration {
			idx = palette.IndexForSmooth(g.Smooth[i], g.MaxIteration, n, spacing)
		} else {
			idx = palette.IndexFor(v, g.MaxIteration, n, spacing)
		}
		cg.Pix[i] = table[mod(idx, n)]
	}
	return cg, nil
}

func mod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Processor memoizes the last colorization. A call with the same grid (by identity), an equal
// table and equal spacing returns the previous ColoredGrid without recoloring.
type Processor struct {
	m       sync.Mutex
	grid    *mandel.Grid
	table   palette.Table
	spacing mandel.SpacingParameters
	result  *mandel.ColoredGrid

	hits, misses int
}

// Colorize is Colorize with memoization.
func (p *Processor) Colorize(g *mandel.Grid, table palette.Table, spacing mandel.SpacingParameters) (*mandel.ColoredGrid, error) {
	p.m.Lock()
	defer p.m.Unlock()

	if p.result != nil && p.grid == g && p.spacing == spacing && slices.Equal(p.table, table) {
		p.hits++
		return p.result, nil
	}

	cg, err := Colorize(g, table, spacing)
	if err != nil {
		return nil, err
	}
	p.misses++
	p.grid = g
	p.table = slices.Clone(table)
	p.spacing = spacing
	p.result = cg
	return cg, nil
}

// Stats returns how many calls were served from the memo and how many recolored.
func (p *Processor) Stats() (hits, misses int) {
	p.m.Lock()
	defer p.m.Unlock()
	return p.hits, p.misses
}

// Reset drops the memo, releasing the grid it references.
func (p *Processor) Reset() {
	p.m.Lock()
	defer p.m.Unlock()
	p.grid, p.table, p.result = nil, nil, nil
}
