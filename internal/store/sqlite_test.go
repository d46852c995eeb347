package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/easelhq/easel/internal/apperr"
	"github.com/easelhq/easel/internal/models"
)

func tempStore(t *testing.T) *SQLite {
	t.Helper()
	dbFile, err := os.CreateTemp("", "easel-store-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	st, err := Open(dbFile.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testScene(ids ...string) models.Scene {
	sc := models.Scene{AppState: models.AppState{ViewBackgroundColor: "#ffffff"}}
	for _, id := range ids {
		sc.Elements = append(sc.Elements, models.Element{ID: id, Type: models.TypeRectangle, Width: 5, Height: 5})
	}
	return sc
}

func TestInsertAndGet(t *testing.T) {
	st := tempStore(t)
	ctx := context.Background()

	d, err := st.Insert(ctx, "sketch", testScene("a", "b"))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if d.ID == "" {
		t.Fatal("insert did not assign an id")
	}
	if !d.CreatedAt.Equal(d.UpdatedAt) {
		t.Error("fresh record should have equal timestamps")
	}

	got, err := st.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "sketch" {
		t.Errorf("name = %q", got.Name)
	}
	if len(got.Scene.Elements) != 2 || got.Scene.Elements[0].ID != "a" {
		t.Errorf("scene round trip lost elements: %+v", got.Scene.Elements)
	}
}

func TestGetMissing(t *testing.T) {
	st := tempStore(t)
	_, err := st.Get(context.Background(), "nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateBumpsTimestamp(t *testing.T) {
	st := tempStore(t)
	ctx := context.Background()

	d, err := st.Insert(ctx, "", testScene("a"))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if err := st.Update(ctx, d.ID, testScene("a", "b")); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := st.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("update did not bump updated_at")
	}
	if len(got.Scene.Elements) != 2 {
		t.Errorf("scene not replaced, have %d elements", len(got.Scene.Elements))
	}
}

func TestUpdateMissing(t *testing.T) {
	st := tempStore(t)
	if err := st.Update(context.Background(), "nope", testScene()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListOrderedByUpdatedAtDesc(t *testing.T) {
	st := tempStore(t)
	ctx := context.Background()

	first, _ := st.Insert(ctx, "first", testScene("a"))
	time.Sleep(5 * time.Millisecond)
	second, _ := st.Insert(ctx, "second", testScene("b"))
	time.Sleep(5 * time.Millisecond)
	third, _ := st.Insert(ctx, "third", testScene("c"))

	// Touch the oldest so it becomes the most recent.
	time.Sleep(5 * time.Millisecond)
	if err := st.Update(ctx, first.ID, testScene("a", "x")); err != nil {
		t.Fatalf("Update: %v", err)
	}

	items, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	want := []string{first.ID, third.ID, second.ID}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %s, want %s", i, items[i].ID, id)
		}
	}
}

func TestRename(t *testing.T) {
	st := tempStore(t)
	ctx := context.Background()

	d, _ := st.Insert(ctx, "old", testScene("a"))
	if err := st.Rename(ctx, d.ID, "new"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	got, _ := st.Get(ctx, d.ID)
	if got.Name != "new" {
		t.Errorf("name = %q, want new", got.Name)
	}
	if !got.UpdatedAt.Equal(d.UpdatedAt) {
		t.Error("rename should not bump updated_at")
	}

	if err := st.Rename(ctx, "nope", "x"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("rename missing: err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	st := tempStore(t)
	ctx := context.Background()

	d, _ := st.Insert(ctx, "", testScene("a"))
	if err := st.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, d.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
	if err := st.Delete(ctx, d.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}
