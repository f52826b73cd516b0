package rest

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/hollis-labs/encore/backend/internal/core/ports"
	"github.com/hollis-labs/encore/backend/internal/core/services"
)

// Handler manages the HTTP interface for the application.
type Handler struct {
	syncer    *services.Syncer
	generator *services.Generator
	catalog   ports.CatalogProvider
	repo      ports.ArtistRepository
	logger    *log.Logger
	router    *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(syncer *services.Syncer, generator *services.Generator, catalog ports.CatalogProvider, repo ports.ArtistRepository, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	h := &Handler{
		syncer:    syncer,
		generator: generator,
		catalog:   catalog,
		repo:      repo,
		logger:    logger.With("adapter", "rest"),
		router:    http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	// Spotify authorization and sync
	h.router.HandleFunc("GET /api/spotify/auth-url", h.AuthURL)
	h.router.HandleFunc("GET /api/spotify/callback", h.Callback)
	h.router.HandleFunc("POST /api/spotify/sync", h.Sync)
	// Artist catalog
	h.router.HandleFunc("GET /api/artists", h.ListArtists)
	h.router.HandleFunc("PUT /api/artists/{id}/status", h.UpdateStatus)
	h.router.HandleFunc("DELETE /api/artists", h.ClearArtists)
	// Playlist generation
	h.router.HandleFunc("POST /api/playlist/generate", h.GeneratePlaylist)
	h.router.HandleFunc("POST /api/playlist/upload", h.UploadPlaylist)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
