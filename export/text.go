package export

import (
	"image/png"
	"io"
	"strconv"

	mandel "github.com/marben/mandel_hues"
	"github.com/marben/mandel_hues/render"
)

// WriteText writes one line per grid row with comma separated values.
// There is no header and no trailing delimiter or newline.
func WriteText(w io.Writer, g *mandel.Grid) error {
	if err := g.Check(); err != nil {
		return err
	}
	buf := make([]byte, 0, len(g.Values)*4)
	for y := range g.Height {
		if y > 0 {
			buf = append(buf, '\n')
		}
		for x := range g.Width {
			if x > 0 {
				buf = append(buf, ',')
			}
			buf = strconv.AppendInt(buf, int64(g.At(x, y)), 10)
		}
	}
	_, err := w.Write(buf)
	return err
}

// WritePNG hands cg to the standard PNG encoder.
func WritePNG(w io.Writer, cg *mandel.ColoredGrid) error {
	img, err := render.Image(cg)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
