package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileState keeps one <key>.json file per key under Dir. Writers of the same
// key are serialised.
type FileState struct {
	Dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileState(dir string) *FileState {
	return &FileState{Dir: dir}
}

// path maps a key to a file under Dir. Nested keys ("session/cart") become subdirectories;
// ".." segments are dropped so a key can never leave Dir.
func (f *FileState) path(key string) (string, error) {
	var parts []string
	for _, p := range strings.Split(key, "/") {
		if p == "" || p == "." || p == ".." {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.Dir, filepath.Join(parts...)+".json"), nil
}

func (f *FileState) lock(p string) func() {
	f.mu.Lock()
	if f.locks == nil {
		f.locks = map[string]*sync.Mutex{}
	}
	l, ok := f.locks[p]
	if !ok {
		l = &sync.Mutex{}
		f.locks[p] = l
	}
	f.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (f *FileState) Load(ctx context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

func (f *FileState) Save(ctx context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	defer f.lock(p)()

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	// write-then-rename so readers never see a half written document
	tmp, err := os.CreateTemp(dir, filepath.Base(p)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (f *FileState) Delete(ctx context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	defer f.lock(p)()

	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
