package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
)

type listArtistsResponse struct {
	Artists  []domain.Artist `json:"artists"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	HasMore  bool            `json:"has_more"`
}

// ListArtists handles GET /api/artists?status=&page=&page_size=
func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var status *domain.Status
	if raw := query.Get("status"); raw != "" {
		parsed, err := domain.ParseStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = &parsed
	}

	page := queryInt(query.Get("page"), 1)
	pageSize := queryInt(query.Get("page_size"), 20)

	artists, total, hasMore, err := h.repo.List(r.Context(), status, page, pageSize)
	if err != nil {
		h.logger.Error("list artists failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, listArtistsResponse{
		Artists:  artists,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  hasMore,
	})
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/artists/{id}/status
// A missing artist ID silently affects zero rows, matching the store.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "artist id is required")
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.SetStatus(r.Context(), id, status); err != nil {
		h.logger.Error("status update failed", "id", id, "err", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}

// ClearArtists handles DELETE /api/artists
func (h *Handler) ClearArtists(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Clear(r.Context()); err != nil {
		h.logger.Error("clear artists failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "All artists cleared"})
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
