// Package cache implements the local single-slot scene mirror.
//
// The slot holds the most recent captured scene under one fixed name. It
// is a write-through mirror updated on every autosave tick and read back
// exactly once, at engine start, when no document identifier is present.
// It is not a synchronization mechanism: once a record is bound, the
// remote store is the sole source of truth.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/easelhq/easel/internal/apperr"
	"github.com/easelhq/easel/internal/models"
)

const slotFile = "scene.json"

// Slot is a single overwritable cache entry backed by one file.
type Slot struct {
	dir string
}

// NewSlot creates a slot rooted at dir, creating the directory if needed.
func NewSlot(dir string) (*Slot, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cache: resolve dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("cache: mkdir: %w", err)
	}
	return &Slot{dir: abs}, nil
}

// Put overwrites the slot with the given scene. The write is atomic:
// tmp file → fsync → rename, so a crash never leaves a torn payload.
func (s *Slot) Put(sc models.Scene) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("cache: marshal scene: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".easel-tmp-*")
	if err != nil {
		return fmt.Errorf("cache: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("cache: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("cache: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache: close temp: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, slotFile)); err != nil {
		return fmt.Errorf("cache: rename: %w", err)
	}
	success = true
	return nil
}

// Get reads the slot back. Returns apperr.ErrNotFound when the slot has
// never been written and wraps apperr.ErrBadCachePayload when the file
// exists but does not decode.
func (s *Slot) Get() (models.Scene, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, slotFile))
	if errors.Is(err, os.ErrNotExist) {
		return models.Scene{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Scene{}, fmt.Errorf("cache: read slot: %w", err)
	}
	var sc models.Scene
	if err := json.Unmarshal(data, &sc); err != nil {
		return models.Scene{}, fmt.Errorf("cache: %w: %v", apperr.ErrBadCachePayload, err)
	}
	return sc, nil
}
