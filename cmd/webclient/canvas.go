//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	mandel "github.com/marben/mandel_hues"
)

// CanvasSurface draws pixels on an html canvas element.
type CanvasSurface struct {
	canvas        js.Value
	ctx           js.Value
	width, height int
}

var _ mandel.Surface = (*CanvasSurface)(nil)

// NewCanvasSurface draws on the canvas element with the given id.
func NewCanvasSurface(id string) *CanvasSurface {
	return newCanvasSurface(js.Global().Get("document").Call("getElementById", id))
}

func newCanvasSurface(canvas js.Value) *CanvasSurface {
	return &CanvasSurface{canvas: canvas, ctx: canvas.Call("getContext", "2d")}
}

// Resize sets the canvas size, which clears it.
func (s *CanvasSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	if width != s.width || height != s.height {
		s.canvas.Set("width", width)
		s.canvas.Set("height", height)
		s.width, s.height = width, height
	}
	return nil
}

// WritePixels puts row-major RGBA bytes on the canvas in one putImageData call.
func (s *CanvasSurface) WritePixels(pix []byte) error {
	if len(pix) != s.width*s.height*4 {
		return fmt.Errorf("%d bytes for a %dx%d canvas", len(pix), s.width, s.height)
	}
	// ImageData wants a Uint8ClampedArray holding width * height * 4 bytes
	jsData := js.Global().Get("Uint8ClampedArray").New(len(pix))
	js.CopyBytesToJS(jsData, pix)

	imageData := js.Global().Get("ImageData").New(jsData, s.width, s.height)
	s.ctx.Call("putImageData", imageData, 0, 0)
	return nil
}

// fill paints the whole canvas in one css color while the first grid is computed.
func (s *CanvasSurface) fill(width, height int, color string) error {
	if err := s.Resize(width, height); err != nil {
		return err
	}
	s.ctx.Set("fillStyle", color)
	s.ctx.Call("fillRect", 0, 0, width, height)
	return nil
}
