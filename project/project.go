// Package project reads and writes view/project files and catalog listings.
//
// A project file is JSON:
//
//	{
//	  "view":    {"x": -0.75, "y": 0.1, "scale": 12000, "width": 800, "height": 600, "max_iteration": 1000},
//	  "spacing": {"n_blocks": 3, "spacing_color_far": 0.5, "spacing_color_near": 1, "y_y_input": 0.4},
//	  "hues":    [{"num": 1, "r": 0, "g": 0, "b": 0}, {"num": 2, "hex": "#ff8800"}]
//	}
package project

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	mandel "github.com/marben/mandel_hues"
	"github.com/marben/mandel_hues/palette"
)

// Project is the interchange unit: a view, its spacing and the ordered hue list.
type Project struct {
	View    mandel.ViewDefinition
	Spacing mandel.SpacingParameters
	Hues    []mandel.Hue
}

type fileHue struct {
	Num int    `json:"num"`
	R   *int   `json:"r,omitempty"`
	G   *int   `json:"g,omitempty"`
	B   *int   `json:"b,omitempty"`
	Hex string `json:"hex,omitempty"`
}

type file struct {
	View    mandel.ViewDefinition     `json:"view"`
	Spacing *mandel.SpacingParameters `json:"spacing,omitempty"`
	Hues    []fileHue                 `json:"hues"`
}

// toHue keeps the RGB triple only when all three channels are present and in range.
func (h fileHue) toHue() mandel.Hue {
	hue := mandel.Hue{Num: h.Num, Hex: h.Hex}
	if channel(h.R) && channel(h.G) && channel(h.B) {
		hue.Color = &mandel.RGB{R: uint8(*h.R), G: uint8(*h.G), B: uint8(*h.B)}
	}
	return hue
}

func channel(v *int) bool {
	return v != nil && *v >= 0 && *v <= 255
}

// Load decodes a project. A missing spacing section means mandel.DefaultSpacing.
// Hue numbers in the file are ignored in favor of list order.
func Load(r io.Reader) (*Project, error) {
	var f file
	dec := json.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: project: %w", mandel.ErrInvalidInput, err)
	}

	p := &Project{View: f.View, Spacing: mandel.DefaultSpacing}
	if f.Spacing != nil {
		p.Spacing = *f.Spacing
	}
	for i, h := range f.Hues {
		hue := h.toHue()
		hue.Num = i + 1
		p.Hues = append(p.Hues, hue)
	}
	return p, nil
}

// LoadFile reads the project at path.
func LoadFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Save writes p with every hue as a normalized r, g, b triple numbered by position.
func Save(w io.Writer, p *Project) error {
	f := file{View: p.View, Spacing: &p.Spacing, Hues: make([]fileHue, 0, len(p.Hues))}
	for i, h := range p.Hues {
		c := palette.Resolve(h)
		r, g, b := int(c.R), int(c.G), int(c.B)
		f.Hues = append(f.Hues, fileHue{Num: i + 1, R: &r, G: &g, B: &b})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// SaveFile writes p to path, replacing any existing file.
func SaveFile(path string, p *Project) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
