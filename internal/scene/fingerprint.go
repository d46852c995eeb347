// Package scene canonicalizes captured canvas state for change detection.
package scene

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/easelhq/easel/internal/models"
)

// Fingerprint returns the hex-encoded SHA-256 digest of the canonical
// serialization of a scene. The serialization covers exactly the persisted
// subset (elements in order + restricted app state), so transient canvas
// state can never produce a differing fingerprint. Element order is part
// of the identity: stacking order matters.
func Fingerprint(s models.Scene) string {
	// encoding/json emits struct fields in declaration order, which makes
	// the serialization canonical for our fixed types.
	data, _ := json.Marshal(s)
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
