package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/easelhq/easel/internal/apperr"
	"github.com/easelhq/easel/internal/models"
)

// Bootstrap restores the surface at engine start. The fallback order is
// fixed: a document identifier carried by the navigable location wins;
// absent that, the local cache slot may hold an unsaved draft; failing
// both, the canvas starts blank. Bootstrap runs before the scheduler is
// armed, so no tick races it.
func (e *Engine) Bootstrap(ctx context.Context) {
	if e.restoreFromLocation(ctx) {
		return
	}
	if sc, ok := e.sceneFromCache(); ok {
		e.surf.Restore(sc)
		return
	}
	e.surf.Restore(models.Scene{})
}

// restoreFromLocation loads the record named by the location's identifier
// and binds the session to it. A stale or unloadable id falls through to
// the next source; boot must always yield a usable canvas, and a fresh
// start beats a hard failure on a dead deep link.
func (e *Engine) restoreFromLocation(ctx context.Context) bool {
	id, ok := e.bind.Current()
	if !ok {
		return false
	}
	d, err := e.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			e.logger.Warn("location references missing drawing", slog.String("id", id))
		} else {
			e.logger.Warn("load by location failed", slog.String("id", id), slog.String("error", err.Error()))
		}
		// Drop the dead identifier so the first create can bind cleanly.
		e.bind.Clear()
		return false
	}
	e.BindLoaded(d.ID, d.Scene)
	e.logger.Info("restored drawing from location", slog.String("id", d.ID))
	return true
}

// sceneFromCache restores an unsaved draft from the single-slot mirror.
// A malformed payload is swallowed: the engine simply proceeds blank.
func (e *Engine) sceneFromCache() (models.Scene, bool) {
	if e.slot == nil {
		return models.Scene{}, false
	}
	sc, err := e.slot.Get()
	if err != nil {
		if errors.Is(err, apperr.ErrBadCachePayload) {
			e.logger.Warn("ignoring malformed cache slot", slog.String("error", err.Error()))
		} else if !errors.Is(err, apperr.ErrNotFound) {
			e.logger.Warn("cache read failed", slog.String("error", err.Error()))
		}
		return models.Scene{}, false
	}
	e.logger.Info("restored unsaved draft from cache slot")
	return sc, true
}
