package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/marben/mandel_hues/grid"
)

// main is the entry point for the grid server.
// The server computes escape-time grids for its clients; coloring stays on the client side.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	port := flag.Int("port", 8080, "http port")
	static := flag.String("static", "./static", "directory served at /")
	workers := flag.Int("workers", 0, "compute workers, 0 means one per cpu")
	maxPixels := flag.Int("max-pixels", 4096*4096, "largest view accepted, 0 means unlimited")
	flag.Parse()

	// every connection shares one pool
	backend := grid.NewParallelBackend(*workers)
	defer backend.Close()
	log.Printf("cpu level %s, %d lanes", grid.CurrentLevel(), backend.Lanes())

	handler := grid.NewHandler(backend)
	handler.MaxPixels = *maxPixels

	httpServer := webServer(*port, *static, handler)
	log.Printf("mb server waiting for websocket connections")
	if err := httpServer.ListenAndServe(); err != nil {
		return fmt.Errorf("httpServer: %w", err)
	}
	return nil
}
