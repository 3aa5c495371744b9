package grid

import (
	"math"

	mandel "github.com/marben/mandel_hues"
)

// step advances z by one iteration of z*z + c and returns |z|^2.
// The explicit conversions keep the compiler from fusing multiply-adds, so every
// backend rounds exactly the same way.
func step(zr, zi, cr, ci float64) (nzr, nzi, mag2 float64) {
	zr2 := float64(zr * zr)
	zi2 := float64(zi * zi)
	nzi = float64(2*zr*zi) + ci
	nzr = float64(zr2-zi2) + cr
	mag2 = float64(nzr*nzr) + float64(nzi*nzi)
	return nzr, nzi, mag2
}

// smoothValue refines an escape after n iterations with |z|^2 = mag2.
func smoothValue(n int, mag2 float64) float64 {
	// ln|z| = ln(|z|^2)/2
	return float64(n) - math.Log2(math.Log(mag2)/2)
}

// escape runs the orbit of c and returns the escape iteration and its refined value.
// Points that never leave the radius 2 disk return maxIter for both.
func escape(cr, ci float64, maxIter int) (n int, mu float64) {
	var zr, zi, mag2 float64
	for n = 1; n <= maxIter; n++ {
		zr, zi, mag2 = step(zr, zi, cr, ci)
		if mag2 > 4 {
			return n, smoothValue(n, mag2)
		}
	}
	return maxIter, float64(maxIter)
}

// computeRows fills rows [y0, y1) of g one point at a time.
func computeRows(view mandel.ViewDefinition, g *mandel.Grid, y0, y1 int) {
	for y := y0; y < y1; y++ {
		computeSpan(view, g, y, 0, view.Width)
	}
}

// computeSpan fills pixels [x0, x1) of row y.
func computeSpan(view mandel.ViewDefinition, g *mandel.Grid, y, x0, x1 int) {
	row := y * view.Width
	for x := x0; x < x1; x++ {
		cr, ci := view.Point(x, y)
		n, mu := escape(cr, ci, view.MaxIteration)
		g.Values[row+x] = n
		if g.Smooth != nil {
			g.Smooth[row+x] = mu
		}
	}
}

const maxLanes = 8

// computeSpanLanes fills pixels [x0, x1) of row y, advancing up to lanes orbits together.
// Each lane follows the same arithmetic as escape.
func computeSpanLanes(view mandel.ViewDefinition, g *mandel.Grid, y, x0, x1, lanes int) {
	if lanes <= 1 {
		computeSpan(view, g, y, x0, x1)
		return
	}
	lanes = min(lanes, maxLanes)
	row := y * view.Width

	var zr, zi, cr, ci, mag2 [maxLanes]float64
	var done [maxLanes]bool

	for x := x0; x < x1; x += lanes {
		width := min(lanes, x1-x)
		for l := range width {
			cr[l], ci[l] = view.Point(x+l, y)
			zr[l], zi[l] = 0, 0
			done[l] = false
		}

		active := width
		for n := 1; n <= view.MaxIteration && active > 0; n++ {
			for l := range width {
				if done[l] {
					continue
				}
				zr[l], zi[l], mag2[l] = step(zr[l], zi[l], cr[l], ci[l])
				if mag2[l] > 4 {
					done[l] = true
					active--
					g.Values[row+x+l] = n
					if g.Smooth != nil {
						g.Smooth[row+x+l] = smoothValue(n, mag2[l])
					}
				}
			}
		}

		for l := range width {
			if !done[l] {
				g.Values[row+x+l] = view.MaxIteration
				if g.Smooth != nil {
					g.Smooth[row+x+l] = float64(view.MaxIteration)
				}
			}
		}
	}
}
