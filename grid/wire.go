package grid

import (
	"encoding/binary"
	"fmt"
	"math"

	mandel "github.com/marben/mandel_hues"
)

// Raw iteration buffer layout, all little-endian:
//
//	"MGRD" | width u32 | height u32 | maxIteration u32 | flags u8 |
//	width*height u32 values | width*height float64 smooth values (flags&flagSmooth)
var wireMagic = [4]byte{'M', 'G', 'R', 'D'}

const (
	wireHeaderSize = 4 + 4 + 4 + 4 + 1
	flagSmooth     = 1 << 0
)

// wireSize is the encoded size of a grid with the given cell count.
func wireSize(cells int, smooth bool) int {
	n := wireHeaderSize + cells*4
	if smooth {
		n += cells * 8
	}
	return n
}

// EncodeGrid serializes g into the raw iteration buffer format.
func EncodeGrid(g *mandel.Grid) ([]byte, error) {
	if err := g.Check(); err != nil {
		return nil, err
	}
	cells := len(g.Values)
	buf := make([]byte, 0, wireSize(cells, g.Smooth != nil))

	buf = append(buf, wireMagic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(g.Width))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(g.Height))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(g.MaxIteration))
	var flags byte
	if g.Smooth != nil {
		flags |= flagSmooth
	}
	buf = append(buf, flags)

	for _, v := range g.Values {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	for _, mu := range g.Smooth {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(mu))
	}
	return buf, nil
}

// DecodeGrid parses a raw iteration buffer.
func DecodeGrid(data []byte) (*mandel.Grid, error) {
	if len(data) < wireHeaderSize {
		return nil, fmt.Errorf("%w: short grid buffer (%d bytes)", mandel.ErrInvalidInput, len(data))
	}
	if [4]byte(data[:4]) != wireMagic {
		return nil, fmt.Errorf("%w: bad grid buffer signature %q", mandel.ErrInvalidInput, data[:4])
	}
	w := int(binary.LittleEndian.Uint32(data[4:]))
	h := int(binary.LittleEndian.Uint32(data[8:]))
	maxIter := int(binary.LittleEndian.Uint32(data[12:]))
	smooth := data[16]&flagSmooth != 0

	if w <= 0 || h <= 0 || !mandel.FitsLimits(w, h) {
		return nil, fmt.Errorf("%w: grid buffer claims %dx%d", mandel.ErrInvalidInput, w, h)
	}
	cells := w * h
	if len(data) != wireSize(cells, smooth) {
		return nil, fmt.Errorf("%w: grid buffer of %d bytes for %dx%d", mandel.ErrInvalidInput, len(data), w, h)
	}

	g := &mandel.Grid{Width: w, Height: h, MaxIteration: maxIter, Values: make([]int, cells)}
	p := data[wireHeaderSize:]
	for i := range g.Values {
		g.Values[i] = int(binary.LittleEndian.Uint32(p[i*4:]))
	}
	if smooth {
		p = p[cells*4:]
		g.Smooth = make([]float64, cells)
		for i := range g.Smooth {
			g.Smooth[i] = math.Float64frombits(binary.LittleEndian.Uint64(p[i*8:]))
		}
	}
	return g, nil
}
