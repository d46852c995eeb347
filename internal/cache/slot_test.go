package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/easelhq/easel/internal/apperr"
	"github.com/easelhq/easel/internal/models"
)

func TestPutGetRoundTrip(t *testing.T) {
	slot, err := NewSlot(t.TempDir())
	if err != nil {
		t.Fatalf("NewSlot: %v", err)
	}

	sc := models.Scene{
		Elements: []models.Element{{ID: "a", Type: models.TypeEllipse, Width: 10, Height: 20}},
		AppState: models.AppState{ViewBackgroundColor: "#fafafa"},
	}
	if err := slot.Put(sc); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := slot.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Elements) != 1 || got.Elements[0].ID != "a" {
		t.Errorf("elements = %+v", got.Elements)
	}
	if got.AppState.ViewBackgroundColor != "#fafafa" {
		t.Errorf("appState = %+v", got.AppState)
	}
}

func TestPutOverwrites(t *testing.T) {
	slot, _ := NewSlot(t.TempDir())

	if err := slot.Put(models.Scene{Elements: []models.Element{{ID: "first"}}}); err != nil {
		t.Fatal(err)
	}
	if err := slot.Put(models.Scene{Elements: []models.Element{{ID: "second"}}}); err != nil {
		t.Fatal(err)
	}

	got, err := slot.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Elements) != 1 || got.Elements[0].ID != "second" {
		t.Errorf("slot did not overwrite: %+v", got.Elements)
	}
}

func TestGetEmptySlot(t *testing.T) {
	slot, _ := NewSlot(t.TempDir())
	if _, err := slot.Get(); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetMalformedPayload(t *testing.T) {
	dir := t.TempDir()
	slot, _ := NewSlot(dir)

	if err := os.WriteFile(filepath.Join(dir, "scene.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := slot.Get(); !errors.Is(err, apperr.ErrBadCachePayload) {
		t.Errorf("err = %v, want ErrBadCachePayload", err)
	}
}

func TestPutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	slot, _ := NewSlot(dir)

	if err := slot.Put(models.Scene{}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "scene.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir contents = %v, want only scene.json", names)
	}
}
