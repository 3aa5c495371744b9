package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	mandel "github.com/marben/mandel_hues"
	"github.com/marben/mandel_hues/grid"
)

func TestRegionsHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	regionsHandler(rec, httptest.NewRequest(http.MethodGet, "/regions?w=320&h=200&iter=50", nil))

	var got []preset
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(mandel.Regions) {
		t.Fatalf("got %d presets, want %d", len(got), len(mandel.Regions))
	}
	for i, p := range got {
		if i > 0 && got[i-1].Name >= p.Name {
			t.Errorf("presets not sorted: %q before %q", got[i-1].Name, p.Name)
		}
		if want := mandel.Regions[p.Name].View(320, 200, 50); p.View != want {
			t.Errorf("%s: view = %+v, want %+v", p.Name, p.View, want)
		}
	}
}

func TestQueryIntDefaults(t *testing.T) {
	for in, want := range map[string]int{"": 7, "x": 7, "-3": 7, "0": 7, "12": 12} {
		if got := queryInt(in, 7); got != want {
			t.Errorf("queryInt(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestWebServerRoutes(t *testing.T) {
	srv := webServer(0, t.TempDir(), grid.NewHandler(grid.ScalarBackend{}))

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/workers", nil))
	if rec.Body.String() != "0\n" {
		t.Errorf("/workers = %q, want %q", rec.Body.String(), "0\n")
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/regions", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/regions status = %d", rec.Code)
	}
}
