//go:build js && wasm

// webclient.go is a WASM web client for the Mandelbrot grid server.
// Grids are computed on the server, colored in the browser and drawn on a canvas.
// Clicking zooms in on the clicked point, shift-click zooms out.

package main

import (
	"context"
	"fmt"
	"log"
	"syscall/js"
	"time"

	mandel "github.com/marben/mandel_hues"
	"github.com/marben/mandel_hues/grid"
	"github.com/marben/mandel_hues/palette"
	"github.com/marben/mandel_hues/pipeline"
)

const (
	canvasID = "myCanvas"
	zoom     = 2.0
)

// main is the entry point for the WASM web client.
func main() {
	logScreenf("Starting WASM web client...")

	// Determine server address for WebSocket connection
	loc := js.Global().Get("window").Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketUrl := proto + "://" + host + "/ws"
	logScreenf("Computing grids on %s", websocketUrl)

	calc := grid.NewCalculator(grid.WithAccelerated(&grid.RemoteBackend{URL: websocketUrl, DialTimeout: 10 * time.Second}))
	hues := palette.NewHueList(palette.Rainbow(16)...)
	c := &client{
		session: pipeline.NewSession(calc, hues, mandel.SpacingParameters{BlockCount: 4, YInput: 0.5}),
		surface: NewCanvasSurface(canvasID),
		view:    mandel.SeahorseValley.View(960, 540, 1000),
		updates: make(chan mandel.ViewDefinition, 1),
	}
	if err := c.surface.fill(c.view.Width, c.view.Height, "#3a3a6e"); err != nil {
		logFatalf("init canvas: %v", err)
	}

	c.surface.canvas.Set("onclick", js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		c.zoomAt(ev.Get("offsetX").Int(), ev.Get("offsetY").Int(), ev.Get("shiftKey").Bool())
		return nil
	}))

	c.updates <- c.view
	c.renderLoop()
}

type client struct {
	session *pipeline.Session
	surface *CanvasSurface
	view    mandel.ViewDefinition
	// updates holds the newest view to render; older pending views are replaced.
	updates chan mandel.ViewDefinition
}

// zoomAt recenters the view on pixel x, y and zooms in, or out when out is set.
func (c *client) zoomAt(x, y int, out bool) {
	re, im := c.view.Point(x, y)
	c.view.CenterRe, c.view.CenterIm = re, im
	if out {
		c.view.Scale /= zoom
	} else {
		c.view.Scale *= zoom
	}
	select {
	case <-c.updates:
	default:
	}
	c.updates <- c.view
}

func (c *client) renderLoop() {
	for view := range c.updates {
		logScreenf("Computing %dx%d at %g%+gi, scale %g...", view.Width, view.Height, view.CenterRe, view.CenterIm, view.Scale)
		start := time.Now()
		if _, err := c.session.Handle(context.Background(), pipeline.RecomputeRequest{View: view}); err != nil {
			logScreenf("compute: %v", err)
			continue
		}
		hudSetElapsed(time.Since(start))
		if err := c.session.Render(c.surface); err != nil {
			logFatalf("render: %v", err)
		}
	}
}

// logScreenf appends a formatted message to the log element in the DOM,
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}

// hudSetElapsed shows how long the last grid took.
func hudSetElapsed(d time.Duration) {
	js.Global().Get("document").Call("getElementById", "elapsed").Set("textContent", d.Round(time.Millisecond).String())
}
