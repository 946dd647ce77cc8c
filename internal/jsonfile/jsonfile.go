// Package jsonfile stores JSON documents on disk. Every path has one lock per
// process, so read-modify-write cycles from concurrent requests do not clobber
// each other, and writes go through a temp file and rename.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrBadKey is returned for directory keys that would escape the directory.
var ErrBadKey = errors.New("jsonfile: invalid key")

var locks sync.Map // absolute path -> *sync.Mutex

func lockFor(path string) *sync.Mutex {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	mu, _ := locks.LoadOrStore(abs, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// File is a single JSON document.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string {
	return f.path
}

// Read decodes the document into v. A missing file returns an error matching
// os.ErrNotExist.
func (f *File) Read(v any) error {
	mu := lockFor(f.path)
	mu.Lock()
	defer mu.Unlock()
	return readJSON(f.path, v)
}

// Write replaces the document with v.
func (f *File) Write(v any) error {
	mu := lockFor(f.path)
	mu.Lock()
	defer mu.Unlock()
	return writeJSON(f.path, v)
}

// Update reads the document into v (leaving v untouched when the file does not
// exist yet), calls mutate and writes v back. Nothing is written when mutate
// fails.
func (f *File) Update(v any, mutate func() error) error {
	mu := lockFor(f.path)
	mu.Lock()
	defer mu.Unlock()
	if err := readJSON(f.path, v); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := mutate(); err != nil {
		return err
	}
	return writeJSON(f.path, v)
}

// Dir stores one document per key as <dir>/<key>.json.
type Dir struct {
	dir string
}

func NewDir(dir string) *Dir {
	return &Dir{dir: dir}
}

func (d *Dir) Path() string {
	return d.dir
}

func (d *Dir) file(key string) (string, error) {
	if key == "" || key == "." || key == ".." || filepath.Base(key) != key {
		return "", fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	return filepath.Join(d.dir, key+".json"), nil
}

// Keys lists the stored keys in lexical order. A missing directory has no keys.
func (d *Dir) Keys() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(d.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		name := filepath.Base(m)
		keys = append(keys, name[:len(name)-len(".json")])
	}
	return keys, nil
}

func (d *Dir) Exists(key string) (bool, error) {
	path, err := d.file(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (d *Dir) Read(key string, v any) error {
	path, err := d.file(key)
	if err != nil {
		return err
	}
	return NewFile(path).Read(v)
}

func (d *Dir) Write(key string, v any) error {
	path, err := d.file(key)
	if err != nil {
		return err
	}
	return NewFile(path).Write(v)
}

// Create writes v only if key does not exist yet; otherwise it returns an
// error matching os.ErrExist.
func (d *Dir) Create(key string, v any) error {
	path, err := d.file(key)
	if err != nil {
		return err
	}
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}
	return writeJSON(path, v)
}

// Replace overwrites an existing key; a missing key returns an error matching
// os.ErrNotExist.
func (d *Dir) Replace(key string, v any) error {
	path, err := d.file(key)
	if err != nil {
		return err
	}
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return writeJSON(path, v)
}

// Remove deletes key; a missing key returns an error matching os.ErrNotExist.
func (d *Dir) Remove(key string) error {
	path, err := d.file(key)
	if err != nil {
		return err
	}
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()
	return os.Remove(path)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
