// Package engine implements the autosave & persistence reconciliation
// core: the periodic capture → fingerprint → reconcile loop, the session
// identity it maintains, and the bootstrap fallback chain.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/easelhq/easel/internal/cache"
	"github.com/easelhq/easel/internal/models"
	"github.com/easelhq/easel/internal/nav"
	"github.com/easelhq/easel/internal/scene"
	"github.com/easelhq/easel/internal/store"
	"github.com/easelhq/easel/internal/surface"
)

// Engine owns the live session and drives reconciliation ticks.
//
// All session mutation is serialized behind mu. The store round trip
// itself runs outside the lock with inFlight set: a tick that finds a
// save outstanding skips (it does not queue and does not cancel), so two
// competing creates can never produce two records for one drawing.
type Engine struct {
	surf   surface.Surface
	store  store.Store
	rec    *Reconciler
	slot   *cache.Slot
	bind   nav.Binding
	logger *slog.Logger

	// OnStatus, if set, is called after every tick and transition with
	// the current save status. OnDrawing is called after a successful
	// create or update with kind "created" or "updated".
	OnStatus  func(SaveStatus)
	OnDrawing func(kind, id string)

	mu       sync.Mutex
	sess     Session
	inFlight bool
	// gen invalidates a tick's result when the session identity changed
	// underneath it (load, new, delete-of-active) while its store call
	// was outstanding.
	gen int
}

// New creates an engine. slot may be nil to disable the cache mirror.
func New(surf surface.Surface, st store.Store, slot *cache.Slot, bind nav.Binding, logger *slog.Logger) *Engine {
	return &Engine{
		surf:   surf,
		store:  st,
		rec:    NewReconciler(st),
		slot:   slot,
		bind:   bind,
		logger: logger,
		sess:   NewSession(),
	}
}

// Snapshot returns a copy of the current session.
func (e *Engine) Snapshot() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess
}

// Capture pulls the persisted subset of the surface's state.
func (e *Engine) Capture() models.Scene {
	return models.Scene{
		Elements: e.surf.Elements(),
		AppState: e.surf.AppState().Restrict(),
	}
}

// Tick runs one autosave pass: capture, mirror to the local cache slot,
// then reconcile against the store. It is the scheduler's callback but is
// equally callable directly (tests, flush-on-demand).
func (e *Engine) Tick(ctx context.Context) Result {
	e.mu.Lock()
	if e.inFlight {
		e.mu.Unlock()
		return Result{Outcome: OutcomeSkipped}
	}
	gen := e.gen
	sess := e.sess
	e.inFlight = true
	e.sess.Status = StatusSaving
	// The capture happens under the same lock as the session snapshot:
	// session id and canvas content are one atomic observation. A user
	// action that changes both (StartNew, load) also runs under mu, so a
	// tick can never pair one action's id with another's canvas.
	sc := e.Capture()
	e.mu.Unlock()

	// The mirror is written on every tick regardless of the fingerprint
	// state. It is fire-and-forget: a failed local write never blocks or
	// fails a save.
	if e.slot != nil {
		if err := e.slot.Put(sc); err != nil {
			e.logger.Warn("cache mirror write failed", slog.String("error", err.Error()))
		}
	}

	next, res := e.rec.Reconcile(ctx, sess, sc)

	e.mu.Lock()
	e.inFlight = false
	if e.gen != gen {
		// Session identity changed while this save was in flight; its
		// result is stale and must not clobber the new identity.
		e.mu.Unlock()
		return Result{Outcome: OutcomeSkipped}
	}
	e.sess = next
	e.mu.Unlock()

	switch res.Outcome {
	case OutcomeCreated:
		e.bind.Bind(res.DrawingID)
		e.logger.Info("drawing created", slog.String("id", res.DrawingID))
		e.notifyDrawing("created", res.DrawingID)
	case OutcomeUpdated:
		e.logger.Debug("drawing updated", slog.String("id", res.DrawingID))
		e.notifyDrawing("updated", res.DrawingID)
	case OutcomeFailed:
		e.logger.Warn("save failed, will retry next tick", slog.String("error", res.Err.Error()))
	}
	e.notifyStatus(next.Status)
	return res
}

// BindLoaded switches the canvas and session to a freshly loaded record:
// the surface is restored and the baseline rebased in one step under the
// session lock, so the very next tick sees "unchanged" rather than
// false-triggering a write, and no tick can pair the previous id with
// the loaded content. The navigable location is rewritten to carry the id.
func (e *Engine) BindLoaded(id string, sc models.Scene) {
	e.mu.Lock()
	e.gen++
	e.surf.Restore(sc)
	e.sess = Session{
		CurrentID:            id,
		LastSavedFingerprint: scene.Fingerprint(sc),
		Status:               StatusSaved,
	}
	e.mu.Unlock()
	e.bind.Bind(id)
	e.notifyStatus(StatusSaved)
}

// StartNew transitions to an unsaved new drawing: session cleared, canvas
// reset, location stripped of its identifier. The surface reset happens
// under the session lock so no tick can pair a cleared id with the old
// canvas content.
func (e *Engine) StartNew() {
	e.mu.Lock()
	e.gen++
	e.sess = NewSession()
	e.surf.ResetScene()
	e.mu.Unlock()
	e.bind.Clear()
	e.notifyStatus(StatusSaved)
}

func (e *Engine) notifyStatus(s SaveStatus) {
	if e.OnStatus != nil {
		e.OnStatus(s)
	}
}

func (e *Engine) notifyDrawing(kind, id string) {
	if e.OnDrawing != nil {
		e.OnDrawing(kind, id)
	}
}
