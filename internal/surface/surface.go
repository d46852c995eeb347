// Package surface defines the drawing-surface boundary the engine draws
// its captures from.
package surface

import "github.com/easelhq/easel/internal/models"

// AppState is the canvas's full application state. Only the restricted
// subset returned by Restrict is ever persisted; the rest is transient
// UI state that must never influence a save decision.
type AppState struct {
	ViewBackgroundColor    string   `json:"viewBackgroundColor"`
	CurrentStrokeColor     string   `json:"currentItemStrokeColor"`
	CurrentBackgroundColor string   `json:"currentItemBackgroundColor"`
	FillStyle              string   `json:"currentItemFillStyle"`
	StrokeWidth            float64  `json:"currentItemStrokeWidth"`
	Roughness              int      `json:"currentItemRoughness"`
	ScrollX                float64  `json:"scrollX,omitempty"`
	ScrollY                float64  `json:"scrollY,omitempty"`
	Zoom                   float64  `json:"zoom,omitempty"`
	ActiveTool             string   `json:"activeTool,omitempty"`
	SelectedElementIDs     []string `json:"selectedElementIds,omitempty"`
}

// Restrict projects the persisted subset out of the full state.
func (a AppState) Restrict() models.AppState {
	return models.AppState{
		ViewBackgroundColor:    a.ViewBackgroundColor,
		CurrentStrokeColor:     a.CurrentStrokeColor,
		CurrentBackgroundColor: a.CurrentBackgroundColor,
		FillStyle:              a.FillStyle,
		StrokeWidth:            a.StrokeWidth,
		Roughness:              a.Roughness,
	}
}

// Surface is the interface the engine consumes. Implementations must
// return stable copies: a captured slice never mutates under a caller.
type Surface interface {
	// Elements returns the current element list in stacking order.
	Elements() []models.Element
	// AppState returns the full application state.
	AppState() AppState
	// Files returns embedded binary files keyed by file id.
	Files() map[string]models.BinaryFile
	// ResetScene clears the canvas to an empty scene with default state.
	ResetScene()
	// Restore replaces the canvas content with a previously persisted
	// scene. This is the initialization hook used at load and bootstrap.
	Restore(sc models.Scene)
}
