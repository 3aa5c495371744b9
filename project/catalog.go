package project

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	mandel "github.com/marben/mandel_hues"
)

// Entry is one resolved catalog item.
type Entry struct {
	Name string
	// ProjectPath is where the entry's project file lives.
	ProjectPath string
	// PreviewPath is the preview image, empty when there is none.
	PreviewPath string
}

// LoadCatalog reads a JSON array of {"name": ...} objects and resolves every name against dir:
// the project is dir/<name>.json, the preview dir/<name>.png when that file exists.
func LoadCatalog(r io.Reader, dir string) ([]Entry, error) {
	var items []struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %w", mandel.ErrCatalogLoad, err)
	}

	entries := make([]Entry, 0, len(items))
	for i, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
			return nil, fmt.Errorf("%w: entry %d has invalid name %q", mandel.ErrCatalogLoad, i, it.Name)
		}
		e := Entry{
			Name:        name,
			ProjectPath: filepath.Join(dir, name+".json"),
		}
		preview := filepath.Join(dir, name+".png")
		if _, err := os.Stat(preview); err == nil {
			e.PreviewPath = preview
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadCatalogFile reads the catalog at path, resolving entries next to it.
func LoadCatalogFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mandel.ErrCatalogLoad, err)
	}
	defer f.Close()
	return LoadCatalog(f, filepath.Dir(path))
}
