package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by a single JSON file. Every mutation rewrites the
// whole file through a temp-file rename, so a crash mid-write leaves the
// previous snapshot intact (at most the last mutation is lost).
type File struct {
	path string

	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// NewFile opens (or creates) a file-backed store at path. A missing file
// yields an empty store; an unreadable or corrupt file is treated the same
// way, since discarding unparseable local state is routine for this client.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("store: empty file path")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create dir %s: %w", dir, err)
		}
	}

	f := &File{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return f, nil
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		// Fail open to empty state on corrupt contents.
		f.data = make(map[string]json.RawMessage)
	}

	return f, nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores value under key and synchronously rewrites the backing file.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	v := make(json.RawMessage, len(value))
	copy(v, value)
	f.data[key] = v

	return f.flushLocked()
}

// Delete removes key and synchronously rewrites the backing file.
// Deleting an absent key is a no-op.
func (f *File) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)

	return f.flushLocked()
}

// flushLocked writes the full snapshot via temp file + rename.
// Callers must hold the write lock.
func (f *File) flushLocked() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return errors.Join(ErrPersistFailed, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".store-*")
	if err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Join(ErrPersistFailed, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Join(ErrPersistFailed, err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Join(ErrPersistFailed, err)
	}

	return nil
}
