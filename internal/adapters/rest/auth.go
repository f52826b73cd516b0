package rest

import "net/http"

type authURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// AuthURL handles GET /api/spotify/auth-url
func (h *Handler) AuthURL(w http.ResponseWriter, r *http.Request) {
	authURL, _ := h.catalog.AuthorizationURL()
	writeJSON(w, http.StatusOK, authURLResponse{AuthURL: authURL})
}

// Callback handles GET /api/spotify/callback?code=
// It exchanges the authorization code and persists the credential; the
// response is an acknowledgement only.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "code query parameter is required")
		return
	}

	if err := h.catalog.ExchangeCode(r.Context(), code); err != nil {
		h.logger.Error("code exchange failed", "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Spotify authorization complete"})
}
