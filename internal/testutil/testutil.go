// Package testutil provides shared test helpers for setting up stores,
// surfaces, and engines.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/easelhq/easel/internal/cache"
	"github.com/easelhq/easel/internal/engine"
	"github.com/easelhq/easel/internal/models"
	"github.com/easelhq/easel/internal/nav"
	"github.com/easelhq/easel/internal/store"
	"github.com/easelhq/easel/internal/surface"
)

// TestStore creates a temporary SQLite store that is automatically cleaned up.
func TestStore(t *testing.T) *store.SQLite {
	t.Helper()
	dbFile, err := os.CreateTemp("", "easel-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	st, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestSlot creates a cache slot in a temporary directory.
func TestSlot(t *testing.T) *cache.Slot {
	t.Helper()
	slot, err := cache.NewSlot(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return slot
}

// TestBinding creates a navigation binding over a throwaway base URL.
func TestBinding(t *testing.T) *nav.QueryBinding {
	t.Helper()
	b, err := nav.NewQueryBinding("http://localhost:8080/")
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// TestEngine wires a memory surface, SQLite store, cache slot, and
// navigation binding into an engine with a silenced logger.
func TestEngine(t *testing.T) (*engine.Engine, *surface.Memory, *store.SQLite, *nav.QueryBinding) {
	t.Helper()
	st := TestStore(t)
	surf := surface.NewMemory()
	bind := TestBinding(t)
	eng := engine.New(surf, st, TestSlot(t), bind, SilentLogger())
	return eng, surf, st, bind
}

// SilentLogger returns a logger that discards everything.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SampleElement returns a minimal valid element for tests.
func SampleElement(id string) models.Element {
	return models.Element{
		ID:          id,
		Type:        models.TypeRectangle,
		X:           10,
		Y:           20,
		Width:       100,
		Height:      50,
		StrokeColor: "#1e1e1e",
		StrokeWidth: 2,
	}
}

// SampleScene returns a scene containing the given element ids.
func SampleScene(ids ...string) models.Scene {
	sc := models.Scene{AppState: surface.DefaultAppState().Restrict()}
	for _, id := range ids {
		sc.Elements = append(sc.Elements, SampleElement(id))
	}
	return sc
}
