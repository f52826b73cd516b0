package rest

import (
	"encoding/json"
	"net/http"
)

type syncRequest struct {
	Code string `json:"code"`
}

// Sync handles POST /api/spotify/sync
// The code is optional when a valid credential is already stored.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req syncRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	result, err := h.syncer.Sync(r.Context(), req.Code)
	if err != nil {
		h.logger.Error("sync failed", "err", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": result.Message()})
}
