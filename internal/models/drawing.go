// Package models defines the domain types for Easel.
package models

import "time"

// Element types understood by the canvas and the exporter.
const (
	TypeRectangle = "rectangle"
	TypeEllipse   = "ellipse"
	TypeDiamond   = "diamond"
	TypeLine      = "line"
	TypeArrow     = "arrow"
	TypeFreedraw  = "freedraw"
	TypeText      = "text"
	TypeImage     = "image"
)

// Point is a single coordinate pair in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is one drawable item on the canvas. The position of an element
// within a Scene's Elements slice is its stacking order, bottom first.
type Element struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Angle           float64 `json:"angle,omitempty"`
	StrokeColor     string  `json:"strokeColor"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	FillStyle       string  `json:"fillStyle,omitempty"`
	StrokeWidth     float64 `json:"strokeWidth"`
	Roughness       int     `json:"roughness,omitempty"`
	Opacity         float64 `json:"opacity,omitempty"`
	// Points holds the vertex list for line, arrow and freedraw elements,
	// relative to (X, Y).
	Points []Point `json:"points,omitempty"`
	// Text and FontSize apply to text elements only.
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	// FileID references an entry in the surface's binary files for image
	// elements. Binary data itself is never part of the persisted scene.
	FileID string `json:"fileId,omitempty"`
}

// AppState is the restricted subset of canvas state that is persisted with
// a drawing. Transient state (selection, scroll, active tool) is excluded;
// see surface.AppState for the full set.
type AppState struct {
	ViewBackgroundColor    string  `json:"viewBackgroundColor"`
	CurrentStrokeColor     string  `json:"currentItemStrokeColor"`
	CurrentBackgroundColor string  `json:"currentItemBackgroundColor"`
	FillStyle              string  `json:"currentItemFillStyle"`
	StrokeWidth            float64 `json:"currentItemStrokeWidth"`
	Roughness              int     `json:"currentItemRoughness"`
}

// Scene is the persisted payload of a drawing: the ordered element list
// plus the restricted app state.
type Scene struct {
	Elements []Element `json:"elements"`
	AppState AppState  `json:"appState"`
}

// Empty reports whether the scene has no elements. An empty scene never
// triggers record creation.
func (s Scene) Empty() bool {
	return len(s.Elements) == 0
}

// BinaryFile is embedded image data referenced by image elements. Files
// are held by the surface and consumed by export; they are not persisted.
type BinaryFile struct {
	ID       string `json:"id"`
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// Drawing is a persisted record in the catalog.
type Drawing struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Scene     Scene     `json:"scene"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DrawingSummary is a lightweight representation returned by list operations.
type DrawingSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}
