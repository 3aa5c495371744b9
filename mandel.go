package mandel

import (
	"fmt"
	"math"
)

// ViewDefinition describes which part of the complex plane is computed and at what resolution.
// Pixel (Width/2, Height/2) maps to the center, neighbouring pixels are 1/Scale apart.
type ViewDefinition struct {
	CenterRe     float64 `json:"x"`
	CenterIm     float64 `json:"y"`
	Scale        float64 `json:"scale"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	MaxIteration int     `json:"max_iteration"`
	FastCalc     bool    `json:"fast_calc"`
}

// Size limits of a single view. A grid at the limit takes 3 GiB on the wire.
const (
	MaxSide       = 1 << 16
	MaxViewPixels = 1 << 28
)

// Validate reports ErrComputation for views that cannot be computed.
func (v ViewDefinition) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrComputation, v.Width, v.Height)
	}
	if !FitsLimits(v.Width, v.Height) {
		return fmt.Errorf("%w: image size %dx%d exceeds %d pixels or %d per side", ErrComputation, v.Width, v.Height, MaxViewPixels, MaxSide)
	}
	if v.MaxIteration <= 0 {
		return fmt.Errorf("%w: max iteration %d", ErrComputation, v.MaxIteration)
	}
	if !(v.Scale > 0) || math.IsInf(v.Scale, 0) {
		return fmt.Errorf("%w: scale %v", ErrComputation, v.Scale)
	}
	if math.IsNaN(v.CenterRe) || math.IsNaN(v.CenterIm) {
		return fmt.Errorf("%w: center is not a number", ErrComputation)
	}
	return nil
}

// FitsLimits reports whether a width x height grid stays within MaxSide and MaxViewPixels.
// Both sides must be positive.
func FitsLimits(width, height int) bool {
	return width <= MaxSide && height <= MaxSide && width <= MaxViewPixels/height
}

// Point returns the complex coordinate of pixel (x, y).
// Rows grow downward, so the imaginary part decreases with y.
func (v ViewDefinition) Point(x, y int) (re, im float64) {
	re = v.CenterRe + float64(x-v.Width/2)/v.Scale
	im = v.CenterIm - float64(y-v.Height/2)/v.Scale
	return re, im
}

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// View centers a width x height view on the region, its horizontal extent filling the width.
func (r Region) View(width, height, maxIteration int) ViewDefinition {
	return ViewDefinition{
		CenterRe:     (r.Xmin + r.Xmax) / 2,
		CenterIm:     (r.Ymin + r.Ymax) / 2,
		Scale:        float64(width) / (r.Xmax - r.Xmin),
		Width:        width,
		Height:       height,
		MaxIteration: maxIteration,
	}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Full set, the default starting view
	FullSet = Region{
		Xmin: -2.5,
		Xmax: 1.0,
		Ymin: -1.25,
		Ymax: 1.25,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

// Regions maps preset names to regions, used by the command line tools.
var Regions = map[string]Region{
	"full":       FullSet,
	"seahorse":   SeahorseValley,
	"elephant":   ElephantValley,
	"spiral":     SpiralMinibrot,
	"triple":     TripleSpiral,
	"dragon":     ValleyOfTheDragon,
	"minispiral": MinibrotInMiniSpiral,
}

// RGB is a single 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Black is used wherever a color cannot be resolved.
var Black = RGB{}

// Hue is one user defined color entry. Num is its 1-based position in the hue list.
// Color is authoritative once set; Hex is only consulted when Color is nil.
type Hue struct {
	Num   int
	Color *RGB
	Hex   string
}

// SpacingParameters control how escape-time values are spread over the color table.
// They never affect the grid, only the mapping.
type SpacingParameters struct {
	BlockCount  int     `json:"n_blocks"`
	SpacingFar  float64 `json:"spacing_color_far"`
	SpacingNear float64 `json:"spacing_color_near"`
	YInput      float64 `json:"y_y_input"`
}

// DefaultSpacing is a single linear cycle over the whole iteration range.
var DefaultSpacing = SpacingParameters{BlockCount: 1, YInput: 0.5}

// Normalized clamps parameters into their usable range.
func (p SpacingParameters) Normalized() SpacingParameters {
	if p.BlockCount < 1 {
		p.BlockCount = 1
	}
	if !(p.SpacingFar > 0) {
		p.SpacingFar = 0
	}
	if !(p.SpacingNear > 0) {
		p.SpacingNear = 0
	}
	switch {
	case math.IsNaN(p.YInput):
		p.YInput = 0.5
	case p.YInput < 0:
		p.YInput = 0
	case p.YInput > 1:
		p.YInput = 1
	}
	return p
}

// Grid holds one escape-time value per pixel, row-major.
// Non-escaping points hold MaxIteration. Smooth carries the refined escape value of
// every pixel and is nil when the grid was computed in fast mode.
type Grid struct {
	Width, Height int
	MaxIteration  int
	Values        []int
	Smooth        []float64
}

// NewGrid allocates a grid sized for the view.
func NewGrid(v ViewDefinition) *Grid {
	g := &Grid{
		Width:        v.Width,
		Height:       v.Height,
		MaxIteration: v.MaxIteration,
		Values:       make([]int, v.Width*v.Height),
	}
	if !v.FastCalc {
		g.Smooth = make([]float64, v.Width*v.Height)
	}
	return g
}

// GridFromRows builds a fast-mode grid from nested rows, mostly useful for imports and tests.
func GridFromRows(rows [][]int, maxIteration int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidInput)
	}
	w := len(rows[0])
	g := &Grid{Width: w, Height: len(rows), MaxIteration: maxIteration, Values: make([]int, 0, w*len(rows))}
	for i, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidInput, i, len(row), w)
		}
		g.Values = append(g.Values, row...)
	}
	return g, nil
}

// At returns the escape-time value of pixel (x, y).
func (g *Grid) At(x, y int) int {
	return g.Values[y*g.Width+x]
}

// Check reports ErrInvalidInput for nil, empty or inconsistent grids.
func (g *Grid) Check() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidInput)
	}
	if g.Width <= 0 || g.Height <= 0 || len(g.Values) != g.Width*g.Height {
		return fmt.Errorf("%w: grid %dx%d with %d values", ErrInvalidInput, g.Width, g.Height, len(g.Values))
	}
	if g.Smooth != nil && len(g.Smooth) != len(g.Values) {
		return fmt.Errorf("%w: %d smooth values for %d cells", ErrInvalidInput, len(g.Smooth), len(g.Values))
	}
	return nil
}

// ColoredGrid is a grid of colors with the same dimensions as the Grid it was derived from.
type ColoredGrid struct {
	Width, Height int
	Pix           []RGB
}

// At returns the color of pixel (x, y).
func (cg *ColoredGrid) At(x, y int) RGB {
	return cg.Pix[y*cg.Width+x]
}
