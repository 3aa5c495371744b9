package colorize

import (
	"context"
	"errors"
	"testing"

	mandel "github.com/marben/mandel_hues"
	"github.com/marben/mandel_hues/grid"
	"github.com/marben/mandel_hues/palette"
)

var threeColors = palette.Table{{R: 255}, {G: 255}, {B: 255}}

func uniformGrid(w, h, v, max int) *mandel.Grid {
	g := &mandel.Grid{Width: w, Height: h, MaxIteration: max, Values: make([]int, w*h)}
	for i := range g.Values {
		g.Values[i] = v
	}
	return g
}

func TestColorizeUniform(t *testing.T) {
	for _, v := range []int{0, 7, 99, 100} {
		cg, err := Colorize(uniformGrid(6, 4, v, 100), threeColors, mandel.SpacingParameters{BlockCount: 3, SpacingFar: 1, YInput: 0.4})
		if err != nil {
			t.Fatal(err)
		}
		if cg.Width != 6 || cg.Height != 4 || len(cg.Pix) != 24 {
			t.Fatalf("colored grid %dx%d with %d pixels", cg.Width, cg.Height, len(cg.Pix))
		}
		for i, c := range cg.Pix {
			if c != cg.Pix[0] {
				t.Fatalf("value %d: pixel %d = %v, want %v", v, i, c, cg.Pix[0])
			}
		}
	}
}

func TestColorizeUsesTableOrder(t *testing.T) {
	g, err := mandel.GridFromRows([][]int{{0, 34}, {67, 100}}, 100)
	if err != nil {
		t.Fatal(err)
	}
	cg, err := Colorize(g, threeColors, mandel.SpacingParameters{BlockCount: 1, YInput: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	want := []mandel.RGB{{R: 255}, {G: 255}, {B: 255}, {R: 255}}
	for i, c := range want {
		if cg.Pix[i] != c {
			t.Errorf("pixel %d = %v, want %v", i, cg.Pix[i], c)
		}
	}
}

func TestColorizeComputedGrid(t *testing.T) {
	c := grid.NewCalculator(grid.WithAccelerated(nil))
	defer c.Close()
	g, err := c.Compute(context.Background(), mandel.SeahorseValley.View(40, 30, 250))
	if err != nil {
		t.Fatal(err)
	}
	table := palette.Build([]mandel.Hue{{Hex: "#000000"}, {Hex: "#ff8800"}, {Hex: "#ffffff"}, {Hex: "#0044aa"}})
	cg, err := Colorize(g, table, mandel.SpacingParameters{BlockCount: 5, SpacingNear: 2, YInput: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if cg.Width != g.Width || cg.Height != g.Height {
		t.Fatalf("colored %dx%d, grid %dx%d", cg.Width, cg.Height, g.Width, g.Height)
	}
	for i, p := range cg.Pix {
		found := false
		for _, c := range table {
			found = found || c == p
		}
		if !found {
			t.Fatalf("pixel %d = %v is not a table color", i, p)
		}
	}
}

func TestColorizeInvalidInput(t *testing.T) {
	if _, err := Colorize(nil, threeColors, mandel.DefaultSpacing); !errors.Is(err, mandel.ErrInvalidInput) {
		t.Errorf("nil grid: err = %v", err)
	}
	if _, err := Colorize(&mandel.Grid{}, threeColors, mandel.DefaultSpacing); !errors.Is(err, mandel.ErrInvalidInput) {
		t.Errorf("empty grid: err = %v", err)
	}
	if _, err := Colorize(uniformGrid(2, 2, 1, 10), nil, mandel.DefaultSpacing); !errors.Is(err, mandel.ErrInvalidInput) {
		t.Errorf("empty table: err = %v", err)
	}
}

func TestColorizeOutOfRangeValues(t *testing.T) {
	g := &mandel.Grid{Width: 3, Height: 1, MaxIteration: 10, Values: []int{-5, 10, 1 << 30}}
	if _, err := Colorize(g, threeColors, mandel.DefaultSpacing); err != nil {
		t.Errorf("out of range values: %v", err)
	}
}

func TestProcessorMemoizes(t *testing.T) {
	var p Processor
	g := uniformGrid(3, 3, 5, 10)
	spacing := mandel.DefaultSpacing

	first, err := p.Colorize(g, threeColors, spacing)
	if err != nil {
		t.Fatal(err)
	}
	table := append(palette.Table(nil), threeColors...)
	second, err := p.Colorize(g, table, spacing)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("equal inputs recolored")
	}

	spacing.BlockCount = 2
	third, _ := p.Colorize(g, table, spacing)
	if third == second {
		t.Error("changed spacing served from memo")
	}

	table[0] = mandel.RGB{R: 1}
	fourth, _ := p.Colorize(g, table, spacing)
	if fourth == third {
		t.Error("changed table served from memo")
	}

	other := uniformGrid(3, 3, 5, 10)
	if fifth, _ := p.Colorize(other, table, spacing); fifth == fourth {
		t.Error("different grid served from memo")
	}

	if hits, misses := p.Stats(); hits != 1 || misses != 4 {
		t.Errorf("Stats() = %d/%d, want 1/4", hits, misses)
	}

	p.Reset()
	if again, _ := p.Colorize(other, table, spacing); again == nil {
		t.Error("nil result after Reset")
	}
}
