package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	mandel "github.com/marben/mandel_hues"
	"github.com/marben/mandel_hues/grid"
	"github.com/marben/mandel_hues/palette"
	"github.com/marben/mandel_hues/pipeline"
)

func TestParseFlagsFormat(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, "bmp"},
		{[]string{"-o", "x.png"}, "png"},
		{[]string{"-o", "x.out", "-format", "txt"}, "txt"},
	}
	for _, tt := range tests {
		o, err := parseFlags(tt.args)
		if err != nil {
			t.Fatalf("parseFlags(%v): %v", tt.args, err)
		}
		if o.format != tt.want {
			t.Errorf("parseFlags(%v).format = %q, want %q", tt.args, o.format, tt.want)
		}
	}
	if _, err := parseFlags([]string{"-o", "x.gif"}); err == nil {
		t.Error("gif accepted")
	}
}

func TestLoadProjectRegion(t *testing.T) {
	o, _ := parseFlags([]string{"-region", "dragon", "-width", "40", "-height", "30", "-iter", "77", "-fast"})
	p, err := loadProject(o)
	if err != nil {
		t.Fatal(err)
	}
	want := mandel.ValleyOfTheDragon.View(40, 30, 77)
	want.FastCalc = true
	if p.View != want {
		t.Errorf("View = %+v, want %+v", p.View, want)
	}
	if len(p.Hues) != 12 {
		t.Errorf("%d hues, want 12", len(p.Hues))
	}

	o.region = "nowhere"
	if _, err := loadProject(o); err == nil {
		t.Error("unknown region accepted")
	}
}

func TestWriteFormats(t *testing.T) {
	s := pipeline.NewSession(grid.NewCalculator(grid.WithAccelerated(nil)), palette.NewHueList(palette.Rainbow(4)...), mandel.DefaultSpacing)
	if _, err := s.Handle(context.Background(), pipeline.RecomputeRequest{View: mandel.FullSet.View(8, 6, 30)}); err != nil {
		t.Fatal(err)
	}

	var bmp, png, txt bytes.Buffer
	for format, buf := range map[string]*bytes.Buffer{"bmp": &bmp, "png": &png, "txt": &txt} {
		if err := write(buf, s, format); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
	}
	if !bytes.HasPrefix(bmp.Bytes(), []byte("BM")) {
		t.Error("bmp output lacks signature")
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Error("png output lacks signature")
	}
	if n := strings.Count(txt.String(), "\n"); n != 5 {
		t.Errorf("text output has %d line breaks, want 5", n)
	}
}
