// Package jsonstore persists a single Go value as a pretty-printed JSON
// document on disk. Each Collection owns one file and serializes access to it
// within the process; concurrent writers from other processes still race
// (last write wins), which is acceptable for a single-process deployment.
package jsonstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

func Open[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// Load returns the stored value. A missing, empty, or unparseable file loads
// as the zero value of T rather than an error.
func (c *Collection[T]) Load() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.load()
}

// Save overwrites the stored value. The document is written to a temporary
// file in the same directory and renamed into place, so readers never observe
// a partial write.
func (c *Collection[T]) Save(value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.save(value)
}

// View runs fn against the stored value under the collection lock.
func (c *Collection[T]) View(fn func(value T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, err := c.load()
	if err != nil {
		return err
	}

	return fn(value)
}

// Update runs a read-modify-write cycle under the collection lock. The value
// returned by fn replaces the stored document; if fn returns an error nothing
// is written.
func (c *Collection[T]) Update(fn func(value T) (T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, err := c.load()
	if err != nil {
		return err
	}

	value, err = fn(value)
	if err != nil {
		return err
	}

	return c.save(value)
}

func (c *Collection[T]) load() (T, error) {
	var value T

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return value, nil
		}
		return value, err
	}

	if err := json.Unmarshal(data, &value); err != nil {
		var zero T
		return zero, nil
	}

	return value, nil
}

func (c *Collection[T]) save(value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}
