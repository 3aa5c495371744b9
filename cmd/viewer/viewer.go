// viewer explores the set in the terminal.
//
// Arrows pan, + and - zoom, i/I change the iteration limit, f toggles fast mode.
// b/B, n/N, m/M and y/Y tune the color spacing, h rotates the hues, s saves the view
// as a bitmap and its project file, q quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	mandel "github.com/marben/mandel_hues"
	"github.com/marben/mandel_hues/grid"
	"github.com/marben/mandel_hues/palette"
	"github.com/marben/mandel_hues/pipeline"
	"github.com/marben/mandel_hues/project"
	"github.com/marben/mandel_hues/render"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

// computed is posted back to the event loop when a recompute ends.
type computed struct {
	view    mandel.ViewDefinition
	err     error
	elapsed time.Duration
}

type viewer struct {
	screen  tcell.Screen
	surface *render.TerminalSurface
	session *pipeline.Session
	st      state
	status  string
	saveAs  string
}

func run() error {
	projectFile := flag.String("project", "", "project file to start from")
	region := flag.String("region", "full", "preset region when no project is given")
	iter := flag.Int("iter", 500, "initial iteration limit")
	remote := flag.String("remote", "", "grid server websocket url")
	logFile := flag.String("log", "", "log file, the terminal is taken by the viewer")
	saveAs := flag.String("save", "view", "base name for saved bitmaps and projects")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	p, err := startProject(*projectFile, *region, *iter)
	if err != nil {
		return err
	}

	var opts []grid.Option
	if *remote != "" {
		opts = append(opts, grid.WithAccelerated(&grid.RemoteBackend{URL: *remote}))
	}
	calc := grid.NewCalculator(opts...)
	defer calc.Close()

	v := &viewer{
		screen:  screen,
		surface: render.NewTerminalSurface(screen),
		session: pipeline.NewSession(calc, palette.NewHueList(p.Hues...), p.Spacing),
		st:      state{view: p.View, spacing: p.Spacing},
		saveAs:  *saveAs,
	}
	v.fit()
	v.recompute()
	v.loop()
	return nil
}

func startProject(path, region string, iter int) (*project.Project, error) {
	if path != "" {
		return project.LoadFile(path)
	}
	r, ok := mandel.Regions[region]
	if !ok {
		return nil, fmt.Errorf("unknown region %q", region)
	}
	return &project.Project{View: r.View(80, 48, iter), Spacing: mandel.DefaultSpacing, Hues: palette.Rainbow(12)}, nil
}

// fit sizes the view to the screen minus the status line, keeping the horizontal extent.
func (v *viewer) fit() {
	w, h := v.surface.PixelSize()
	h -= 2
	if w <= 0 || h <= 0 {
		return
	}
	view := &v.st.view
	if view.Width > 0 {
		view.Scale *= float64(w) / float64(view.Width)
	}
	view.Width, view.Height = w, h
}

func (v *viewer) recompute() {
	view := v.st.view
	v.setStatus("computing %dx%d, %d iterations...", view.Width, view.Height, view.MaxIteration)
	go func() {
		start := time.Now()
		_, err := v.session.Handle(context.Background(), pipeline.RecomputeRequest{View: view})
		v.screen.PostEvent(tcell.NewEventInterrupt(computed{view: view, err: err, elapsed: time.Since(start)}))
	}()
}

func (v *viewer) recolor() {
	spacing := v.st.spacing
	if _, err := v.session.Handle(context.Background(), pipeline.RecolorRequest{Spacing: &spacing}); err != nil {
		v.setStatus("recolor: %v", err)
		return
	}
	v.draw()
}

func (v *viewer) rotateHues() {
	hues := v.session.Hues().Hues()
	for i, h := range hues {
		c := palette.RotateHue(palette.Resolve(h), 30)
		hues[i] = mandel.Hue{Color: &c}
	}
	v.session.Hues().Replace(hues)
	v.recolor()
}

func (v *viewer) save() {
	name := v.saveAs + ".bmp"
	f, err := os.Create(name)
	if err != nil {
		v.setStatus("save: %v", err)
		return
	}
	err = v.session.WriteBMP(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		v.setStatus("save: %v", err)
		return
	}

	p := &project.Project{View: v.session.View(), Spacing: v.session.Spacing(), Hues: v.session.Hues().Hues()}
	if err := project.SaveFile(v.saveAs+".json", p); err != nil {
		v.setStatus("save: %v", err)
		return
	}
	v.setStatus("saved %s and %s.json", name, v.saveAs)
}

func (v *viewer) draw() {
	if err := v.session.Render(v.surface); err != nil {
		v.setStatus("render: %v", err)
		return
	}
	v.drawStatus()
}

func (v *viewer) setStatus(format string, a ...any) {
	v.status = fmt.Sprintf(format, a...)
	log.Print(v.status)
	v.drawStatus()
}

func (v *viewer) drawStatus() {
	cols, rows := v.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	line := []rune(v.status)
	for x := range cols {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		v.screen.SetContent(x, rows-1, r, nil, style)
	}
	v.screen.Show()
}

func (v *viewer) loop() {
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.screen.Sync()
			v.fit()
			v.recompute()
		case *tcell.EventInterrupt:
			c, ok := ev.Data().(computed)
			if !ok {
				continue
			}
			switch {
			case c.err == nil:
				v.draw()
				v.setStatus("x=%g y=%g scale=%g iter=%d blocks=%d near=%.2f far=%.2f y_in=%.2f (%s)",
					c.view.CenterRe, c.view.CenterIm, c.view.Scale, c.view.MaxIteration,
					v.st.spacing.BlockCount, v.st.spacing.SpacingNear, v.st.spacing.SpacingFar, v.st.spacing.YInput,
					c.elapsed.Round(time.Millisecond))
			case grid.IsCanceled(c.err), errors.Is(c.err, pipeline.ErrSuperseded):
			default:
				v.setStatus("compute: %v", c.err)
			}
		case *tcell.EventKey:
			var act action
			v.st, act = applyKey(v.st, ev)
			switch act {
			case actQuit:
				return
			case actRecompute:
				v.recompute()
			case actRecolor:
				v.recolor()
			case actRotateHues:
				v.rotateHues()
			case actSave:
				v.save()
			}
		}
	}
}
