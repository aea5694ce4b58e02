package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File stores each key as its own 0600 file inside a directory.
type File struct {
	dir string
}

// NewFile returns a File store rooted at dir. The directory is created on
// the first write.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Dir returns the directory the store writes to.
func (f *File) Dir() string {
	return f.dir
}

// path maps a key such as "@GoBarber:token" to "<dir>/gobarber.token".
func (f *File) path(key string) string {
	name := strings.ToLower(strings.TrimPrefix(key, "@"))
	name = strings.NewReplacer(":", ".", "/", "_", string(filepath.Separator), "_").Replace(name)
	return filepath.Join(f.dir, name)
}

func (f *File) Get(key string) (string, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("storage.File.Get %s: %w", key, err)
	}
	return string(data), nil
}

// Set writes to a temp file and renames it over the target so a crash never
// leaves a half-written value.
func (f *File) Set(key, value string) error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("storage.File.Set: create %s: %w", f.dir, err)
	}
	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0600); err != nil {
		return fmt.Errorf("storage.File.Set %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("storage.File.Set %s: %w", key, err)
	}
	return nil
}

func (f *File) Remove(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage.File.Remove %s: %w", key, err)
	}
	return nil
}
