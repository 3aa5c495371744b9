package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	mandel "github.com/marben/mandel_hues"
)

// upperHalf shows the upper pixel as foreground and the lower one as background.
const upperHalf = '▀'

// TerminalSurface draws pixels on a tcell screen, two vertically stacked pixels per cell.
// Pixels outside the screen are cropped.
type TerminalSurface struct {
	Screen        tcell.Screen
	width, height int
}

var _ mandel.Surface = (*TerminalSurface)(nil)

// NewTerminalSurface draws on screen, which must be initialized.
func NewTerminalSurface(screen tcell.Screen) *TerminalSurface {
	return &TerminalSurface{Screen: screen}
}

// PixelSize returns the pixel dimensions that fill the screen.
func (s *TerminalSurface) PixelSize() (width, height int) {
	cols, rows := s.Screen.Size()
	return cols, rows * 2
}

// Resize sets the size of the pixel buffer the next WritePixels call carries.
func (s *TerminalSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	s.width, s.height = width, height
	return nil
}

// WritePixels draws the buffer and shows the screen.
func (s *TerminalSurface) WritePixels(pix []byte) error {
	if len(pix) != s.width*s.height*4 {
		return fmt.Errorf("%d bytes for a %dx%d surface", len(pix), s.width, s.height)
	}
	cols, rows := s.Screen.Size()
	cols = min(cols, s.width)
	rows = min(rows, (s.height+1)/2)

	at := func(x, y int) tcell.Color {
		i := (y*s.width + x) * 4
		return tcell.NewRGBColor(int32(pix[i]), int32(pix[i+1]), int32(pix[i+2]))
	}
	for row := range rows {
		for x := range cols {
			style := tcell.StyleDefault.Foreground(at(x, row*2))
			if row*2+1 < s.height {
				style = style.Background(at(x, row*2+1))
			} else {
				style = style.Background(tcell.ColorBlack)
			}
			s.Screen.SetContent(x, row, upperHalf, nil, style)
		}
	}
	s.Screen.Show()
	return nil
}
