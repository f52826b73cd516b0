package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
	"github.com/hollis-labs/encore/backend/internal/core/ports"
)

// fakeTokens is an in-memory token store for adapter tests.
type fakeTokens struct {
	cred    domain.Credential
	ok      bool
	saved   *domain.Credential
	cleared bool
}

func (f *fakeTokens) Save(cred domain.Credential) error {
	f.saved = &cred
	f.cred = cred
	f.ok = true
	return nil
}

func (f *fakeTokens) Get() (domain.Credential, bool, error) {
	if !f.ok {
		return domain.Credential{}, false, nil
	}
	return f.cred, true, nil
}

func (f *fakeTokens) Clear() error {
	f.cleared = true
	f.ok = false
	return nil
}

func newTestClient(baseURL string, tokens ports.TokenStore) *Client {
	return NewClient(nil, tokens, nil, Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080/api/spotify/callback",
		BaseURL:      baseURL,
	})
}

func authedTokens() *fakeTokens {
	return &fakeTokens{cred: domain.Credential{AccessToken: "tok-1"}, ok: true}
}

func TestClient_NotAuthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request should reach the API without a credential")
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &fakeTokens{})

	_, err := c.TopArtists(context.Background(), 50)
	if !errors.Is(err, ports.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestClient_UnauthorizedClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"status":401,"message":"The access token expired"}}`))
	}))
	defer srv.Close()

	tokens := authedTokens()
	c := newTestClient(srv.URL, tokens)

	_, err := c.TopArtists(context.Background(), 50)
	if !errors.Is(err, ports.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if !tokens.cleared {
		t.Fatalf("expected 401 to clear the stored credential")
	}
}

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, authedTokens())

	if _, err := c.TopArtists(context.Background(), 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}
