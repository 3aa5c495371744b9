package export

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	mandel "github.com/marben/mandel_hues"
)

func TestBMPRowSize(t *testing.T) {
	for width, want := range map[int]int{1: 4, 2: 8, 3: 12, 4: 12, 5: 16} {
		if got := BMPRowSize(width); got != want {
			t.Errorf("BMPRowSize(%d) = %d, want %d", width, got, want)
		}
	}
}

func TestWriteBMPImageWhite2x2(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}

	var buf bytes.Buffer
	if err := WriteBMPImage(&buf, img); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	le := binary.LittleEndian

	if want := 54 + 8*2; len(data) != want {
		t.Fatalf("len = %d, want %d", len(data), want)
	}
	if data[0] != 0x42 || data[1] != 0x4D {
		t.Errorf("signature = % x, want 42 4d", data[:2])
	}
	if got := le.Uint32(data[2:]); got != 70 {
		t.Errorf("file size field = %d, want 70", got)
	}
	if le.Uint16(data[6:]) != 0 || le.Uint16(data[8:]) != 0 {
		t.Error("reserved fields not zero")
	}
	if got := le.Uint32(data[10:]); got != 54 {
		t.Errorf("pixel offset = %d, want 54", got)
	}
	if got := le.Uint32(data[14:]); got != 40 {
		t.Errorf("info header size = %d, want 40", got)
	}
	if got := int32(le.Uint32(data[18:])); got != 2 {
		t.Errorf("width = %d, want 2", got)
	}
	if got := int32(le.Uint32(data[22:])); got != -2 {
		t.Errorf("height = %d, want -2", got)
	}
	if le.Uint16(data[26:]) != 1 || le.Uint16(data[28:]) != 24 {
		t.Errorf("planes/bpp = %d/%d, want 1/24", le.Uint16(data[26:]), le.Uint16(data[28:]))
	}
	if got := le.Uint32(data[30:]); got != 0 {
		t.Errorf("compression = %d, want 0", got)
	}
	if got := le.Uint32(data[34:]); got != 16 {
		t.Errorf("image size = %d, want 16", got)
	}
	for i := 38; i < 54; i++ {
		if data[i] != 0 {
			t.Fatalf("info header byte %d = %d, want 0", i, data[i])
		}
	}

	wantRow := []byte{255, 255, 255, 255, 255, 255, 0, 0}
	for r := range 2 {
		row := data[54+r*8 : 54+(r+1)*8]
		if !bytes.Equal(row, wantRow) {
			t.Errorf("row %d = % x, want % x", r, row, wantRow)
		}
	}
}

func TestWriteBMPOrderAndPadding(t *testing.T) {
	// top row red, bottom row blue, width 1 pads each row to 4 bytes
	cg := &mandel.ColoredGrid{Width: 1, Height: 2, Pix: []mandel.RGB{{R: 0xff}, {B: 0xff, G: 0x10}}}

	var buf bytes.Buffer
	if err := WriteBMP(&buf, cg); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if len(data) != BMPSize(1, 2) || len(data) != 62 {
		t.Fatalf("len = %d, want 62", len(data))
	}
	want := []byte{
		0x00, 0x00, 0xff, 0x00, // red as BGR + pad
		0xff, 0x10, 0x00, 0x00, // blue/green as BGR + pad
	}
	if got := data[54:]; !bytes.Equal(got, want) {
		t.Errorf("pixel data = % x, want % x", got, want)
	}
}

func TestWriteBMPMatchesImage(t *testing.T) {
	cg := &mandel.ColoredGrid{Width: 3, Height: 2, Pix: make([]mandel.RGB, 6)}
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range cg.Pix {
		c := mandel.RGB{R: uint8(i * 10), G: uint8(i * 20), B: uint8(i * 30)}
		cg.Pix[i] = c
		img.SetRGBA(i%3, i/3, color.RGBA{c.R, c.G, c.B, 255})
	}

	var a, b bytes.Buffer
	if err := WriteBMP(&a, cg); err != nil {
		t.Fatal(err)
	}
	if err := WriteBMPImage(&b, img); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("colored grid and canvas encodings differ")
	}
}

func TestWriteBMPInvalidSize(t *testing.T) {
	var buf bytes.Buffer
	tests := map[string]error{
		"empty grid":  WriteBMP(&buf, &mandel.ColoredGrid{}),
		"nil grid":    WriteBMP(&buf, nil),
		"empty image": WriteBMPImage(&buf, image.NewRGBA(image.Rect(0, 0, 0, 3))),
		"nil image":   WriteBMPImage(&buf, nil),
	}
	for name, err := range tests {
		if !errors.Is(err, mandel.ErrEncoding) {
			t.Errorf("%s: err = %v, want ErrEncoding", name, err)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes written for invalid input", buf.Len())
	}
}

func TestWriteText(t *testing.T) {
	g, err := mandel.GridFromRows([][]int{{1, 2}, {3, 4}}, 10)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, g); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "1,2\n3,4" {
		t.Errorf("WriteText() = %q, want %q", got, "1,2\n3,4")
	}
}

func TestWriteTextSingleCell(t *testing.T) {
	g, _ := mandel.GridFromRows([][]int{{1000}}, 1000)
	var buf bytes.Buffer
	if err := WriteText(&buf, g); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "1000" {
		t.Errorf("WriteText() = %q, want %q", got, "1000")
	}
}

func TestWriteTextInvalid(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, nil); !errors.Is(err, mandel.ErrInvalidInput) {
		t.Errorf("nil grid: err = %v", err)
	}
	if err := WriteText(&buf, &mandel.Grid{}); !errors.Is(err, mandel.ErrInvalidInput) {
		t.Errorf("empty grid: err = %v", err)
	}
}

func TestWritePNG(t *testing.T) {
	cg := &mandel.ColoredGrid{Width: 2, Height: 1, Pix: []mandel.RGB{{R: 10, G: 20, B: 30}, {R: 40}}}
	var buf bytes.Buffer
	if err := WritePNG(&buf, cg); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("pixel (0,0) = %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}
