// cliclient renders one view to a file.
// The view comes from a project file or a named preset region; the grid is computed locally
// or, with -remote, on a grid server.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	mandel "github.com/marben/mandel_hues"
	"github.com/marben/mandel_hues/grid"
	"github.com/marben/mandel_hues/palette"
	"github.com/marben/mandel_hues/pipeline"
	"github.com/marben/mandel_hues/project"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

type options struct {
	project string
	region  string
	width   int
	height  int
	iter    int
	fast    bool
	remote  string
	out     string
	format  string
	hues    int
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("cliclient", flag.ContinueOnError)
	fs.StringVar(&o.project, "project", "", "project file to render")
	fs.StringVar(&o.region, "region", "seahorse", "preset region when no project is given: "+strings.Join(regionNames(), ", "))
	fs.IntVar(&o.width, "width", 1920, "image width for preset regions")
	fs.IntVar(&o.height, "height", 1080, "image height for preset regions")
	fs.IntVar(&o.iter, "iter", 1000, "maximum iterations for preset regions")
	fs.BoolVar(&o.fast, "fast", false, "integer escape counts only")
	fs.StringVar(&o.remote, "remote", "", "grid server websocket url, e.g. ws://localhost:8080/ws")
	fs.StringVar(&o.out, "o", "mandel.bmp", "output file")
	fs.StringVar(&o.format, "format", "", "bmp, png or txt; taken from the output extension when empty")
	fs.IntVar(&o.hues, "hues", 12, "rainbow hues for preset regions")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.format == "" {
		o.format = strings.TrimPrefix(filepath.Ext(o.out), ".")
	}
	if !slices.Contains([]string{"bmp", "png", "txt"}, o.format) {
		return o, fmt.Errorf("unknown output format %q", o.format)
	}
	return o, nil
}

func regionNames() []string {
	names := make([]string, 0, len(mandel.Regions))
	for name := range mandel.Regions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// loadProject returns the project file, or a preset region with rainbow hues.
func loadProject(o options) (*project.Project, error) {
	if o.project != "" {
		p, err := project.LoadFile(o.project)
		if err != nil {
			return nil, err
		}
		if o.fast {
			p.View.FastCalc = true
		}
		return p, nil
	}
	region, ok := mandel.Regions[o.region]
	if !ok {
		return nil, fmt.Errorf("unknown region %q", o.region)
	}
	view := region.View(o.width, o.height, o.iter)
	view.FastCalc = o.fast
	return &project.Project{View: view, Spacing: mandel.DefaultSpacing, Hues: palette.Rainbow(o.hues)}, nil
}

// run renders the selected view and saves it in the requested format.
// Returns an error if any step fails.
func run() error {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}
	p, err := loadProject(o)
	if err != nil {
		return err
	}

	var opts []grid.Option
	if o.remote != "" {
		log.Printf("Computing on %s...", o.remote)
		opts = append(opts, grid.WithAccelerated(&grid.RemoteBackend{URL: o.remote}))
	}
	calc := grid.NewCalculator(opts...)
	defer calc.Close()

	session := pipeline.NewSession(calc, palette.NewHueList(p.Hues...), p.Spacing)

	start := time.Now()
	cg, err := session.Handle(context.Background(), pipeline.RecomputeRequest{View: p.View})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("Rendered %dx%d in %s", cg.Width, cg.Height, time.Since(start))

	log.Printf("Saving rendered image to %q...", o.out)
	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f, session, o.format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Printf("Fully rendered image saved to %q", o.out)
	return nil
}

func write(w io.Writer, s *pipeline.Session, format string) error {
	switch format {
	case "png":
		return s.WritePNG(w)
	case "txt":
		return s.WriteText(w)
	default:
		return s.WriteBMP(w)
	}
}
