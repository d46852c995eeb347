package engine

// SaveStatus is the purely observational save indicator.
type SaveStatus string

const (
	StatusSaved  SaveStatus = "saved"
	StatusSaving SaveStatus = "saving"
	StatusError  SaveStatus = "error"
)

// Session is the process-local save state tying the displayed canvas to a
// persisted record. It is a plain value: the reconciler takes a session in
// and hands a session back, so the decision logic stays unit-testable
// against a mocked store.
type Session struct {
	// CurrentID references the bound drawing record. Empty means
	// "unsaved new drawing".
	CurrentID string
	// LastSavedFingerprint is the fingerprint of the last successfully
	// committed scene; it suppresses redundant writes.
	LastSavedFingerprint string
	Status               SaveStatus
}

// NewSession returns the session of a fresh, unsaved drawing.
func NewSession() Session {
	return Session{Status: StatusSaved}
}
