// Package storage abstracts the document store the engine writes its
// projections to. Paths use forward slashes relative to a root
// directory, mirroring how the documents are addressed inside the
// budget folder.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

//go:generate mockgen -source=storage.go -destination=storage_mock.go -package=storage

// Store is the collaborator surface the engine depends on. Write is
// create-or-overwrite; List returns every file under a prefix.
type Store interface {
	Exists(path string) (bool, error)
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
	List(prefix string) ([]string, error)
	EnsureDir(path string) error
}

// FileStore is an afero-backed Store rooted at a directory. Backed by
// the OS filesystem in the commands and a memory filesystem in tests.
type FileStore struct {
	fs   afero.Fs
	root string
}

func NewFileStore(fs afero.Fs, root string) *FileStore {
	return &FileStore{fs: fs, root: root}
}

func (s *FileStore) abs(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(path))
}

func (s *FileStore) Exists(path string) (bool, error) {
	ok, err := afero.Exists(s.fs, s.abs(path))
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	return ok, nil
}

func (s *FileStore) Read(path string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.abs(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil
}

func (s *FileStore) Write(path string, data []byte) error {
	if err := afero.WriteFile(s.fs, s.abs(path), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// List walks prefix recursively and returns the relative paths of all
// regular files, sorted for deterministic processing order.
func (s *FileStore) List(prefix string) ([]string, error) {
	root := s.abs(prefix)

	var paths []string

	err := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.abs(""), path)
		if err != nil {
			return err
		}

		paths = append(paths, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	sort.Strings(paths)

	return paths, nil
}

func (s *FileStore) EnsureDir(path string) error {
	if err := s.fs.MkdirAll(s.abs(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}

	return nil
}

var _ Store = (*FileStore)(nil)

// Dir returns the directory part of a slash-separated document path.
func Dir(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}

	return ""
}
