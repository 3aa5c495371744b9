// Package export writes colored grids and escape-time grids to files.
package export

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"

	mandel "github.com/marben/mandel_hues"
)

const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
	bmpPixelOffset    = bmpFileHeaderSize + bmpInfoHeaderSize
)

// BMPRowSize is the padded byte length of one 24-bit row.
func BMPRowSize(width int) int {
	return (width*3 + 3) &^ 3
}

// BMPSize is the total file size of a width x height 24-bit bitmap.
func BMPSize(width, height int) int {
	return bmpPixelOffset + BMPRowSize(width)*height
}

// WriteBMP writes cg as an uncompressed 24-bit top-down bitmap.
func WriteBMP(w io.Writer, cg *mandel.ColoredGrid) error {
	if cg == nil {
		return fmt.Errorf("%w: nil colored grid", mandel.ErrEncoding)
	}
	if len(cg.Pix) != cg.Width*cg.Height {
		return fmt.Errorf("%w: %d pixels for %dx%d", mandel.ErrEncoding, len(cg.Pix), cg.Width, cg.Height)
	}
	return writeBMP(w, cg.Width, cg.Height, func(x, y int) (r, g, b uint8) {
		c := cg.Pix[y*cg.Width+x]
		return c.R, c.G, c.B
	})
}

// WriteBMPImage writes a canvas buffer as an uncompressed 24-bit top-down bitmap.
// Alpha is dropped.
func WriteBMPImage(w io.Writer, img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", mandel.ErrEncoding)
	}
	b := img.Bounds()
	return writeBMP(w, b.Dx(), b.Dy(), func(x, y int) (r, g, bl uint8) {
		i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
		return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
	})
}

func writeBMP(w io.Writer, width, height int, at func(x, y int) (r, g, b uint8)) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: bitmap size %dx%d", mandel.ErrEncoding, width, height)
	}
	rowSize := BMPRowSize(width)
	imageSize := rowSize * height
	buf := make([]byte, bmpPixelOffset+imageSize)

	le := binary.LittleEndian
	// file header
	buf[0], buf[1] = 'B', 'M'
	le.PutUint32(buf[2:], uint32(len(buf)))
	le.PutUint16(buf[6:], 0)
	le.PutUint16(buf[8:], 0)
	le.PutUint32(buf[10:], bmpPixelOffset)

	// info header, negative height means rows are stored top first
	info := buf[bmpFileHeaderSize:]
	le.PutUint32(info[0:], bmpInfoHeaderSize)
	le.PutUint32(info[4:], uint32(int32(width)))
	le.PutUint32(info[8:], uint32(-int32(height)))
	le.PutUint16(info[12:], 1)
	le.PutUint16(info[14:], 24)
	le.PutUint32(info[16:], 0)
	le.PutUint32(info[20:], uint32(imageSize))
	// resolution and palette fields stay zero

	for y := range height {
		row := buf[bmpPixelOffset+y*rowSize:]
		for x := range width {
			r, g, b := at(x, y)
			row[x*3+0] = b
			row[x*3+1] = g
			row[x*3+2] = r
		}
	}

	_, err := w.Write(buf)
	return err
}
