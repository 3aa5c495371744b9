package main

import (
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"strconv"

	mandel "github.com/marben/mandel_hues"
)

type preset struct {
	Name string                `json:"name"`
	View mandel.ViewDefinition `json:"view"`
}

// presets sizes every named region to a width x height view, sorted by name
func presets(width, height, maxIteration int) []preset {
	names := make([]string, 0, len(mandel.Regions))
	for name := range mandel.Regions {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]preset, 0, len(names))
	for _, name := range names {
		out = append(out, preset{Name: name, View: mandel.Regions[name].View(width, height, maxIteration)})
	}
	return out
}

// regionsHandler lists the preset views, sized by the w, h and iter query parameters
func regionsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width := queryInt(q.Get("w"), 800)
	height := queryInt(q.Get("h"), 600)
	iter := queryInt(q.Get("iter"), 1000)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(presets(width, height, iter)); err != nil {
		log.Printf("write regions: %v", err)
	}
}

func queryInt(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
