package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/easelhq/easel/internal/models"
	"github.com/easelhq/easel/internal/scene"
	"github.com/easelhq/easel/internal/store"
)

// Outcome classifies what a reconciliation did.
type Outcome string

const (
	// OutcomeSkipped: nothing to persist (unchanged scene, empty unsaved
	// canvas, or a save already in flight). No store call was made.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeCreated: a new record was created and bound.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated: the bound record's scene was replaced.
	OutcomeUpdated Outcome = "updated"
	// OutcomeFailed: the store call failed; the fingerprint baseline is
	// unchanged so the next tick retries.
	OutcomeFailed Outcome = "failed"
)

// Result carries the outcome of one reconciliation.
type Result struct {
	Outcome   Outcome
	DrawingID string
	Err       error
}

// Reconciler decides, for one captured scene, whether to do nothing,
// create a record, or update the bound one. It holds no mutable state of
// its own; the session travels through Reconcile explicitly.
type Reconciler struct {
	store store.Store
}

// NewReconciler creates a reconciler over the given record store.
func NewReconciler(st store.Store) *Reconciler {
	return &Reconciler{store: st}
}

// Reconcile runs the save decision for a captured scene against the given
// session and returns the resulting session.
//
// Fingerprint gating is the primary cost-avoidance mechanism: an
// unchanged scene returns OutcomeSkipped without any store call. A create
// only happens for a non-empty scene, so a blank canvas never pollutes
// the catalog, no matter how many ticks elapse.
func (r *Reconciler) Reconcile(ctx context.Context, sess Session, sc models.Scene) (Session, Result) {
	sess.Status = StatusSaving

	fp := scene.Fingerprint(sc)
	if fp == sess.LastSavedFingerprint {
		sess.Status = StatusSaved
		return sess, Result{Outcome: OutcomeSkipped}
	}

	if sess.CurrentID != "" {
		if err := r.store.Update(ctx, sess.CurrentID, sc); err != nil {
			sess.Status = StatusError
			return sess, Result{Outcome: OutcomeFailed, DrawingID: sess.CurrentID, Err: fmt.Errorf("update drawing: %w", err)}
		}
		sess.LastSavedFingerprint = fp
		sess.Status = StatusSaved
		return sess, Result{Outcome: OutcomeUpdated, DrawingID: sess.CurrentID}
	}

	if sc.Empty() {
		sess.Status = StatusSaved
		return sess, Result{Outcome: OutcomeSkipped}
	}

	d, err := r.store.Insert(ctx, defaultName(time.Now()), sc)
	if err != nil {
		sess.Status = StatusError
		return sess, Result{Outcome: OutcomeFailed, Err: fmt.Errorf("create drawing: %w", err)}
	}
	sess.CurrentID = d.ID
	sess.LastSavedFingerprint = fp
	sess.Status = StatusSaved
	return sess, Result{Outcome: OutcomeCreated, DrawingID: d.ID}
}

// defaultName labels a drawing created implicitly by autosave.
func defaultName(t time.Time) string {
	return "Untitled " + t.Format("2006-01-02 15:04")
}
