package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easelhq/easel/internal/apperr"
	"github.com/easelhq/easel/internal/catalog"
	"github.com/easelhq/easel/internal/engine"
	"github.com/easelhq/easel/internal/export"
	"github.com/easelhq/easel/internal/models"
	"github.com/easelhq/easel/internal/nav"
	"github.com/easelhq/easel/internal/surface"
)

// Handler holds API route handlers.
type Handler struct {
	svc  *catalog.Service
	surf *surface.Memory
	eng  *engine.Engine
	bind nav.Binding
}

// NewHandler creates a new Handler.
func NewHandler(svc *catalog.Service, surf *surface.Memory, eng *engine.Engine, bind nav.Binding) *Handler {
	return &Handler{svc: svc, surf: surf, eng: eng, bind: bind}
}

// ListDrawings handles GET /drawings: summaries ordered by updated_at
// descending.
func (h *Handler) ListDrawings(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("list drawings failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, DrawingListResponse{Drawings: items})
}

// OpenDrawing handles POST /drawings/{id}/open: loads the record, binds
// the session, and rewrites the deep link.
func (h *Handler) OpenDrawing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := h.svc.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("open drawing failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// RenameDrawing handles PUT /drawings/{id}/name.
func (h *Handler) RenameDrawing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	if err := h.svc.Rename(r.Context(), id, req.Name); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("rename drawing failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDrawing handles DELETE /drawings/{id}. Deleting the currently
// open drawing resets the session to a blank unsaved one.
func (h *Handler) DeleteDrawing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("delete drawing failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NewDrawing handles POST /drawings/new: the start-new transition.
func (h *Handler) NewDrawing(w http.ResponseWriter, r *http.Request) {
	h.svc.StartNew()
	writeJSON(w, http.StatusOK, h.sessionResponse())
}

// GetScene handles GET /scene.
func (h *Handler) GetScene(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SceneResponse{
		Elements: h.surf.Elements(),
		AppState: h.surf.AppState(),
	})
}

// PutScene handles PUT /scene: the client pushes the full canvas state.
func (h *Handler) PutScene(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req SceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.surf.Apply(req.Elements, req.AppState)
	w.WriteHeader(http.StatusNoContent)
}

// PutFile handles POST /files: registers binary data for image elements.
func (h *Handler) PutFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req FileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.ID == "" || len(req.Data) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("id and data are required"))
		return
	}
	h.surf.PutFile(models.BinaryFile{ID: req.ID, MimeType: req.MimeType, Data: req.Data})
	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /session: current binding, save status, and the
// canonical deep link for the address bar.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sessionResponse())
}

func (h *Handler) sessionResponse() SessionResponse {
	sess := h.eng.Snapshot()
	return SessionResponse{
		DrawingID: sess.CurrentID,
		Status:    string(sess.Status),
		Location:  h.bind.Location(),
	}
}

// ExportPNG handles POST /export/png.
func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	sc := h.eng.Capture()
	data, err := export.Raster(sc.Elements, sc.AppState, h.surf.Files())
	if err != nil {
		slog.Error("png export failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("export failed"))
		return
	}
	serveDownload(w, data, "image/png", export.Filename("png"))
}

// ExportSVG handles POST /export/svg.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	sc := h.eng.Capture()
	data, err := export.Vector(sc.Elements, sc.AppState, h.surf.Files())
	if err != nil {
		slog.Error("svg export failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("export failed"))
		return
	}
	serveDownload(w, data, "image/svg+xml", export.Filename("svg"))
}

func serveDownload(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
