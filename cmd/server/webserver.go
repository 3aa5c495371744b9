package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/marben/mandel_hues/grid"
)

// webServer creates server serving files in the static folder,
// the grid websocket endpoint at /ws and the preset list at /regions
func webServer(port int, static string, grids *grid.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", grids)
	mux.HandleFunc("/regions", regionsHandler)
	mux.HandleFunc("/workers", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%d\n", grids.Workers())
	})
	mux.Handle("/", http.FileServer(http.Dir(static)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost:%d", port)
	return srv
}
