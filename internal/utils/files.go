package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// WriteFiles writes name -> content pairs into dir, creating dir if needed.
// It returns the written paths in name order.
func WriteFiles(dir string, files map[string]string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		if name != filepath.Base(name) {
			return paths, fmt.Errorf("write %q: name must not contain a directory", name)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(files[name]), 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
