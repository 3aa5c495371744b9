// Package render puts colored grids on display surfaces.
package render

import (
	"fmt"
	"image"

	mandel "github.com/marben/mandel_hues"
)

// Render resizes s to the grid's dimensions and writes every pixel, fully opaque, in one call.
// Nothing is written when cg is unusable.
func Render(s mandel.Surface, cg *mandel.ColoredGrid) error {
	if err := check(cg); err != nil {
		return err
	}
	if err := s.Resize(cg.Width, cg.Height); err != nil {
		return fmt.Errorf("%w: resize surface: %w", mandel.ErrRender, err)
	}
	if err := s.WritePixels(RGBA(cg)); err != nil {
		return fmt.Errorf("%w: write pixels: %w", mandel.ErrRender, err)
	}
	return nil
}

func check(cg *mandel.ColoredGrid) error {
	switch {
	case cg == nil:
		return fmt.Errorf("%w: nil colored grid", mandel.ErrRender)
	case cg.Height <= 0:
		return fmt.Errorf("%w: colored grid has no rows", mandel.ErrRender)
	case cg.Width <= 0:
		return fmt.Errorf("%w: colored grid rows are empty", mandel.ErrRender)
	case len(cg.Pix) != cg.Width*cg.Height:
		return fmt.Errorf("%w: %d pixels for %dx%d", mandel.ErrRender, len(cg.Pix), cg.Width, cg.Height)
	}
	return nil
}

// RGBA returns the row-major RGBA bytes of cg with alpha 255.
func RGBA(cg *mandel.ColoredGrid) []byte {
	pix := make([]byte, len(cg.Pix)*4)
	for i, c := range cg.Pix {
		pix[i*4+0] = c.R
		pix[i*4+1] = c.G
		pix[i*4+2] = c.B
		pix[i*4+3] = 0xff
	}
	return pix
}

// Image returns cg as an *image.RGBA.
func Image(cg *mandel.ColoredGrid) (*image.RGBA, error) {
	if err := check(cg); err != nil {
		return nil, err
	}
	return &image.RGBA{
		Pix:    RGBA(cg),
		Stride: cg.Width * 4,
		Rect:   image.Rect(0, 0, cg.Width, cg.Height),
	}, nil
}

// ImageSurface is a surface backed by an *image.RGBA, used for PNG export and canvas blits.
type ImageSurface struct {
	Img *image.RGBA
}

var _ mandel.Surface = (*ImageSurface)(nil)

// Resize reallocates the image unless it already has the requested size.
func (s *ImageSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if s.Img != nil && s.Img.Rect.Dx() == width && s.Img.Rect.Dy() == height {
		return nil
	}
	s.Img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// WritePixels copies pix into the image.
func (s *ImageSurface) WritePixels(pix []byte) error {
	if s.Img == nil {
		return fmt.Errorf("surface not sized")
	}
	w, h := s.Img.Rect.Dx(), s.Img.Rect.Dy()
	if len(pix) != w*h*4 {
		return fmt.Errorf("%d bytes for a %dx%d surface", len(pix), w, h)
	}
	for y := range h {
		copy(s.Img.Pix[y*s.Img.Stride:y*s.Img.Stride+w*4], pix[y*w*4:(y+1)*w*4])
	}
	return nil
}
