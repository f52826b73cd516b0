package rest

import (
	"encoding/json"
	"net/http"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
)

type generateRequest struct {
	Request    string `json:"request"`
	TrackCount int    `json:"track_count"`
}

// GeneratePlaylist handles POST /api/playlist/generate
func (h *Handler) GeneratePlaylist(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Request == "" {
		writeError(w, http.StatusBadRequest, "request is required")
		return
	}

	result, err := h.generator.Generate(r.Context(), req.Request, req.TrackCount)
	if err != nil {
		h.logger.Error("playlist generation failed", "err", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type uploadRequest struct {
	Name   string         `json:"name"`
	Tracks []domain.Track `json:"tracks"`
}

type uploadResponse struct {
	PlaylistURL string `json:"playlist_url"`
}

// UploadPlaylist handles POST /api/playlist/upload
func (h *Handler) UploadPlaylist(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Tracks) == 0 {
		writeError(w, http.StatusBadRequest, "tracks are required")
		return
	}

	url, err := h.generator.Upload(r.Context(), req.Name, req.Tracks)
	if err != nil {
		h.logger.Error("playlist upload failed", "err", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{PlaylistURL: url})
}
