package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	mandel "github.com/marben/mandel_hues"
)

func coloredGrid(w, h int) *mandel.ColoredGrid {
	cg := &mandel.ColoredGrid{Width: w, Height: h, Pix: make([]mandel.RGB, w*h)}
	for i := range cg.Pix {
		cg.Pix[i] = mandel.RGB{R: uint8(i), G: uint8(2 * i), B: 200}
	}
	return cg
}

// recordingSurface counts calls so tests can check the single bulk write.
type recordingSurface struct {
	resizes, writes int
	w, h            int
	pix             []byte
}

func (s *recordingSurface) Resize(w, h int) error {
	s.resizes++
	s.w, s.h = w, h
	return nil
}

func (s *recordingSurface) WritePixels(pix []byte) error {
	s.writes++
	s.pix = pix
	return nil
}

func TestRenderBulkWrite(t *testing.T) {
	s := &recordingSurface{}
	if err := Render(s, coloredGrid(3, 2)); err != nil {
		t.Fatal(err)
	}
	if s.resizes != 1 || s.writes != 1 {
		t.Errorf("resizes=%d writes=%d, want 1/1", s.resizes, s.writes)
	}
	if s.w != 3 || s.h != 2 || len(s.pix) != 24 {
		t.Fatalf("surface %dx%d with %d bytes", s.w, s.h, len(s.pix))
	}
	// pixel 4 is (1, 1)
	if got := s.pix[16:20]; got[0] != 4 || got[1] != 8 || got[2] != 200 || got[3] != 255 {
		t.Errorf("pixel (1,1) = %v, want [4 8 200 255]", got)
	}
}

func TestRenderRejectsEmpty(t *testing.T) {
	tests := map[string]*mandel.ColoredGrid{
		"nil":        nil,
		"no rows":    {Width: 3},
		"empty rows": {Height: 2},
		"short pix":  {Width: 2, Height: 2, Pix: make([]mandel.RGB, 3)},
	}
	for name, cg := range tests {
		s := &recordingSurface{}
		if err := Render(s, cg); !errors.Is(err, mandel.ErrRender) {
			t.Errorf("%s: err = %v, want ErrRender", name, err)
		}
		if s.resizes != 0 || s.writes != 0 {
			t.Errorf("%s: surface touched (%d resizes, %d writes)", name, s.resizes, s.writes)
		}
	}
}

func TestImageSurfaceResizesToGrid(t *testing.T) {
	s := &ImageSurface{}
	if err := Render(s, coloredGrid(4, 3)); err != nil {
		t.Fatal(err)
	}
	if b := s.Img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("bounds = %v, want 4x3", b)
	}
	if got, want := s.Img.RGBAAt(2, 1), (color.RGBA{R: 6, G: 12, B: 200, A: 255}); got != want {
		t.Errorf("pixel (2,1) = %v, want %v", got, want)
	}

	prev := s.Img
	if err := Render(s, coloredGrid(4, 3)); err != nil {
		t.Fatal(err)
	}
	if s.Img != prev {
		t.Error("same size render reallocated the image")
	}
	if err := Render(s, coloredGrid(2, 5)); err != nil {
		t.Fatal(err)
	}
	if b := s.Img.Bounds(); b.Dx() != 2 || b.Dy() != 5 {
		t.Errorf("bounds = %v, want 2x5", b)
	}
}

func TestImage(t *testing.T) {
	img, err := Image(coloredGrid(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{R: 3, G: 6, B: 200, A: 255}) {
		t.Errorf("pixel (1,1) = %v", got)
	}
	if _, err := Image(nil); !errors.Is(err, mandel.ErrRender) {
		t.Errorf("Image(nil) = %v, want ErrRender", err)
	}
}

func TestTerminalSurface(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(10, 4)

	s := NewTerminalSurface(screen)
	if w, h := s.PixelSize(); w != 10 || h != 8 {
		t.Errorf("PixelSize() = %dx%d, want 10x8", w, h)
	}

	// 12x5 pixels: wider than the screen, odd height
	if err := Render(s, coloredGrid(12, 5)); err != nil {
		t.Fatal(err)
	}
	for row := range 3 {
		for x := range 10 {
			if r, _, _, _ := screen.GetContent(x, row); r != upperHalf {
				t.Fatalf("cell (%d,%d) = %q, want %q", x, row, r, upperHalf)
			}
		}
	}
	if r, _, _, _ := screen.GetContent(0, 3); r == upperHalf {
		t.Error("row below the image was drawn")
	}
}

func TestTerminalSurfaceSizeMismatch(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()

	s := NewTerminalSurface(screen)
	if err := s.Resize(2, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.WritePixels(make([]byte, 4)); err == nil {
		t.Error("short buffer accepted")
	}
	if err := s.Resize(0, 2); err == nil {
		t.Error("zero width accepted")
	}
}
