// Package catalog implements the user-facing drawing actions: list,
// open, rename, delete, start new.
package catalog

import (
	"context"

	"github.com/easelhq/easel/internal/engine"
	"github.com/easelhq/easel/internal/models"
	"github.com/easelhq/easel/internal/store"
)

// Service coordinates the record store and the engine's session identity
// for explicit user actions. Autosave never goes through here; that is
// the engine's tick path.
type Service struct {
	store  store.Store
	engine *engine.Engine

	// OnDrawing, if set, is called after catalog mutations with kind
	// "deleted" or "renamed".
	OnDrawing func(kind, id string)
}

// NewService creates a catalog service.
func NewService(st store.Store, eng *engine.Engine) *Service {
	return &Service{store: st, engine: eng}
}

// List returns all drawings, most recently updated first.
func (s *Service) List(ctx context.Context) ([]models.DrawingSummary, error) {
	return s.store.List(ctx)
}

// Load opens a drawing: the full record is fetched, then BindLoaded
// restores the surface and rebases the session in one step so the next
// tick is a no-op. On apperr.ErrNotFound the session is left completely
// untouched.
func (s *Service) Load(ctx context.Context, id string) (models.Drawing, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Drawing{}, err
	}
	s.engine.BindLoaded(d.ID, d.Scene)
	return d, nil
}

// Rename changes a drawing's display name.
func (s *Service) Rename(ctx context.Context, id, name string) error {
	if err := s.store.Rename(ctx, id, name); err != nil {
		return err
	}
	s.notify("renamed", id)
	return nil
}

// Delete removes a drawing. Deleting the currently open drawing also
// runs the start-new transition, so the session is never left pointing
// at a deleted record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if s.engine.Snapshot().CurrentID == id {
		s.engine.StartNew()
	}
	s.notify("deleted", id)
	return nil
}

// StartNew abandons the current binding and presents a blank canvas.
func (s *Service) StartNew() {
	s.engine.StartNew()
}

func (s *Service) notify(kind, id string) {
	if s.OnDrawing != nil {
		s.OnDrawing(kind, id)
	}
}
