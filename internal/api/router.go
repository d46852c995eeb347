package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easelhq/easel/internal/catalog"
	"github.com/easelhq/easel/internal/engine"
	"github.com/easelhq/easel/internal/nav"
	"github.com/easelhq/easel/internal/surface"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *catalog.Service, surf *surface.Memory, eng *engine.Engine, bind nav.Binding, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, surf, eng, bind)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Catalog actions.
	r.Get("/drawings", h.ListDrawings)
	r.Post("/drawings/new", h.NewDrawing)
	r.Post("/drawings/{id}/open", h.OpenDrawing)
	r.Put("/drawings/{id}/name", h.RenameDrawing)
	r.Delete("/drawings/{id}", h.DeleteDrawing)

	// Canvas state.
	r.Get("/scene", h.GetScene)
	r.Put("/scene", h.PutScene)
	r.Post("/files", h.PutFile)

	// Session & deep link.
	r.Get("/session", h.GetSession)

	// Export.
	r.Post("/export/png", h.ExportPNG)
	r.Post("/export/svg", h.ExportSVG)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
