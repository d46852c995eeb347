package api

import (
	"github.com/easelhq/easel/internal/models"
	"github.com/easelhq/easel/internal/surface"
)

// SceneRequest is the body of PUT /scene: the client pushes the full
// canvas state; the engine persists only the restricted subset.
type SceneRequest struct {
	Elements []models.Element `json:"elements"`
	AppState surface.AppState `json:"appState"`
}

// SceneResponse is the body of GET /scene.
type SceneResponse struct {
	Elements []models.Element `json:"elements"`
	AppState surface.AppState `json:"appState"`
}

// FileRequest registers embedded binary data for image elements.
type FileRequest struct {
	ID       string `json:"id"`
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// RenameRequest is the body of PUT /drawings/{id}/name.
type RenameRequest struct {
	Name string `json:"name"`
}

// SessionResponse mirrors the engine session plus the canonical deep link.
type SessionResponse struct {
	DrawingID string `json:"drawing_id,omitempty"`
	Status    string `json:"status"`
	Location  string `json:"location"`
}

// DrawingListResponse wraps the catalog listing.
type DrawingListResponse struct {
	Drawings []models.DrawingSummary `json:"drawings"`
}
