package surface

import (
	"sync"

	"github.com/easelhq/easel/internal/models"
)

// DefaultAppState is the canvas state of a fresh, empty drawing.
func DefaultAppState() AppState {
	return AppState{
		ViewBackgroundColor:    "#ffffff",
		CurrentStrokeColor:     "#1e1e1e",
		CurrentBackgroundColor: "transparent",
		FillStyle:              "solid",
		StrokeWidth:            2,
		Roughness:              1,
		Zoom:                   1,
		ActiveTool:             "selection",
	}
}

// Memory is the in-process canvas: it holds the authoritative current
// scene, mutated by client pushes and by catalog load/new transitions.
type Memory struct {
	mu       sync.RWMutex
	elements []models.Element
	state    AppState
	files    map[string]models.BinaryFile
}

// NewMemory creates an empty in-memory surface.
func NewMemory() *Memory {
	return &Memory{
		state: DefaultAppState(),
		files: make(map[string]models.BinaryFile),
	}
}

// Elements returns a copy of the current element list.
func (m *Memory) Elements() []models.Element {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Element, len(m.elements))
	copy(out, m.elements)
	return out
}

// AppState returns the full canvas state.
func (m *Memory) AppState() AppState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Files returns a copy of the binary file map.
func (m *Memory) Files() map[string]models.BinaryFile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]models.BinaryFile, len(m.files))
	for k, v := range m.files {
		out[k] = v
	}
	return out
}

// ResetScene clears the canvas back to the empty default.
func (m *Memory) ResetScene() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elements = nil
	m.state = DefaultAppState()
	m.files = make(map[string]models.BinaryFile)
}

// Restore replaces canvas content with a persisted scene. Transient state
// keeps its defaults; only the restricted fields come from the record.
func (m *Memory) Restore(sc models.Scene) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elements = make([]models.Element, len(sc.Elements))
	copy(m.elements, sc.Elements)
	st := DefaultAppState()
	st.ViewBackgroundColor = sc.AppState.ViewBackgroundColor
	st.CurrentStrokeColor = sc.AppState.CurrentStrokeColor
	st.CurrentBackgroundColor = sc.AppState.CurrentBackgroundColor
	st.FillStyle = sc.AppState.FillStyle
	st.StrokeWidth = sc.AppState.StrokeWidth
	st.Roughness = sc.AppState.Roughness
	m.state = st
}

// Apply replaces the element list and full app state in one step. This is
// the entry point for client pushes (PUT /scene).
func (m *Memory) Apply(elements []models.Element, state AppState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elements = make([]models.Element, len(elements))
	copy(m.elements, elements)
	m.state = state
}

// PutFile registers embedded binary data for image elements.
func (m *Memory) PutFile(f models.BinaryFile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[f.ID] = f
}
