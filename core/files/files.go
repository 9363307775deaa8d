package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"blendshape-presets/core/reconcile"

	"github.com/spf13/afero"
)

// Suffix is appended to the root object name to build the default file name.
const Suffix = "_blendshapes.json"

var (
	// ErrDirectoryNotFound is returned when the target directory of a write does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrPermission is returned when the file system denies access.
	ErrPermission = errors.New("permission denied")
	// ErrNotFound is returned when the file to read does not exist.
	ErrNotFound = errors.New("file not found")
)

// Store reads and writes bundle files on an afero file system.
type Store struct {
	fs afero.Fs
}

// NewStore creates a store over fs. A nil fs means the OS file system.
func NewStore(fs afero.Fs) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs}
}

// DefaultFileName returns "<root>_blendshapes.json" with path separators removed from root.
func DefaultFileName(rootName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(rootName))
	if name == "" {
		name = "scene"
	}
	return name + Suffix
}

// ResolvePath returns path, or path joined with the default file name when
// path is an existing directory.
func (s *Store) ResolvePath(path, rootName string) string {
	if ok, _ := afero.IsDir(s.fs, path); ok {
		return filepath.Join(path, DefaultFileName(rootName))
	}
	return path
}

// Write encodes bundle and writes it to path. The parent directory must exist.
// It returns the number of bytes written.
func (s *Store) Write(path string, bundle *reconcile.Bundle) (int, error) {
	data, err := reconcile.Encode(bundle)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	ok, err := afero.DirExists(s.fs, dir)
	if err != nil {
		return 0, classify(err, dir)
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return 0, classify(err, path)
	}
	return len(data), nil
}

// Read loads and decodes the bundle stored at path.
func (s *Store) Read(path string) (*reconcile.Bundle, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, classify(err, path)
	}
	bundle, err := reconcile.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return bundle, nil
}

func classify(err error, path string) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermission, path)
	default:
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
}
