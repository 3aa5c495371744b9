package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	mandel "github.com/marben/mandel_hues"
)

// Rainbow returns n fully saturated hues evenly spaced around the color wheel, starting at red.
func Rainbow(n int) []mandel.Hue {
	hues := make([]mandel.Hue, n)
	for i := range n {
		c := fromColorful(colorful.Hsv(float64(i)*360/float64(n), 1, 1))
		hues[i] = mandel.Hue{Num: i + 1, Color: &c}
	}
	return hues
}

// RotateHue turns c around the color wheel by deg degrees, keeping saturation and value.
func RotateHue(c mandel.RGB, deg float64) mandel.RGB {
	h, s, v := toColorful(c).Hsv()
	h = math.Mod(h+deg, 360)
	if h < 0 {
		h += 360
	}
	return fromColorful(colorful.Hsv(h, s, v))
}

func toColorful(c mandel.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) mandel.RGB {
	r, g, b := c.Clamped().RGB255()
	return mandel.RGB{R: r, G: g, B: b}
}
