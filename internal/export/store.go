// Package export writes rendered views to disk as standalone SVG files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dtmas/internal/scene"
	"dtmas/internal/view"
)

const (
	// DirEnv is the env var override for the export directory.
	DirEnv = "DTMAS_EXPORT_DIR"
	// DefaultBase is the export directory relative to the user's home.
	DefaultBase = ".dtmas/exports"
)

// Store writes view SVGs into a single directory.
// Layout: <dir>/<view-id>.svg
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at dir. An empty dir falls back to
// DTMAS_EXPORT_DIR, then to the user's home + DefaultBase.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = os.Getenv(DirEnv)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, DefaultBase)
	}
	return &Store{baseDir: dir}, nil
}

// BaseDir returns the directory files are written to.
func (s *Store) BaseDir() string { return s.baseDir }

// Path returns where the view with the given id is written.
func (s *Store) Path(id view.ID) string {
	// Keep ids usable as file names.
	name := strings.ReplaceAll(string(id), string(filepath.Separator), "-")
	return filepath.Join(s.baseDir, name+".svg")
}

// Save writes svg for id, creating the directory as needed.
func (s *Store) Save(id view.ID, svg []byte) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := s.Path(id)
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ExportView renders the registered view id and saves it.
func (s *Store) ExportView(reg *view.Registry, id view.ID) (string, error) {
	e, err := reg.Lookup(id)
	if err != nil {
		return "", err
	}
	b, err := scene.SVG(e.Render())
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", id, err)
	}
	return s.Save(id, b)
}

// ExportAll saves every view in display order and returns the written paths.
// It stops at the first failure.
func (s *Store) ExportAll(reg *view.Registry) ([]string, error) {
	paths := make([]string, 0, reg.Len())
	for _, id := range reg.IDs() {
		p, err := s.ExportView(reg, id)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
