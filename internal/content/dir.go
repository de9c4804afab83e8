package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DirSource loads collections from a content directory. Each collection is
// one file named after it, either JSON or YAML: services.json,
// blog_posts.yaml, and so on. JSON wins if both spellings exist.
type DirSource struct {
	dir string
}

// NewDirSource returns a Source reading from dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Dir returns the content directory being read.
func (s *DirSource) Dir() string {
	return s.dir
}

// Load reads every collection file and validates the resulting store.
// A missing or malformed collection file is fatal; the site cannot start
// with a partial content set.
func (s *DirSource) Load() (*Store, error) {
	if err := validateContentDir(s.dir); err != nil {
		return nil, err
	}
	store := &Store{}
	for _, name := range append(append([]string{}, Collections...), CollectionCompany) {
		data, unmarshal, err := s.readCollection(name)
		if err != nil {
			return nil, err
		}
		if err := decodeCollection(store, name, data, unmarshal); err != nil {
			return nil, err
		}
	}
	if err := store.Validate(); err != nil {
		return nil, fmt.Errorf("validating content in %s: %w", s.dir, err)
	}
	return store, nil
}

func (s *DirSource) readCollection(name string) ([]byte, func([]byte, interface{}) error, error) {
	candidates := []struct {
		ext       string
		unmarshal func([]byte, interface{}) error
	}{
		{".json", json.Unmarshal},
		{".yaml", yaml.Unmarshal},
		{".yml", yaml.Unmarshal},
	}
	for _, c := range candidates {
		path := filepath.Join(s.dir, name+c.ext)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, c.unmarshal, nil
		}
		if !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("reading collection %s: %w", name, err)
		}
	}
	return nil, nil, fmt.Errorf("collection %s not found in %s (expected %s.json or %s.yaml)", name, s.dir, name, name)
}

// validateContentDir rejects traversal and unusable paths before any file
// is read.
func validateContentDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("content directory not set")
	}
	clean := filepath.Clean(dir)
	if strings.Contains(clean, "..") {
		return fmt.Errorf("content directory contains path traversal: %s", dir)
	}
	info, err := os.Stat(clean)
	if err != nil {
		return fmt.Errorf("content directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("content path %s is not a directory", dir)
	}
	return nil
}
