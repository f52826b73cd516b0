// Package spotify is the HTTP adapter for the Spotify Web API. Every call
// re-checks the token store before use (refresh-on-demand, not on a timer)
// and failures are surfaced as-is; nothing here retries.
package spotify

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/hollis-labs/encore/backend/internal/core/ports"
)

const (
	defaultBaseURL  = "https://api.spotify.com/v1"
	defaultAuthURL  = "https://accounts.spotify.com/authorize"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
)

var scopes = []string{
	"user-top-read",
	"playlist-modify-public",
	"playlist-modify-private",
}

// Config carries the credentials and endpoint overrides for the client.
// Empty URLs fall back to the real Spotify endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	BaseURL      string
	AuthURL      string
	TokenURL     string
}

// Client is the HTTP client for the Spotify adapter.
type Client struct {
	httpClient *http.Client
	tokens     ports.TokenStore
	oauth      *oauth2.Config
	baseURL    string
	logger     *log.Logger
}

// compile-time interface assertion
var _ ports.CatalogProvider = (*Client)(nil)

// NewClient constructs a new Spotify client.
func NewClient(httpClient *http.Client, tokens ports.TokenStore, logger *log.Logger, cfg Config) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	return &Client{
		httpClient: httpClient,
		tokens:     tokens,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With("adapter", "spotify"),
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
	}
}

// do executes an authenticated request. A 401 invalidates the stored
// credential before the error is returned.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	cred, ok, err := c.tokens.Get()
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("spotify adapter: %w", ports.ErrNotAuthenticated)
	}

	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		body := readBodyForError(resp)
		_ = resp.Body.Close()
		if err := c.tokens.Clear(); err != nil {
			c.logger.Warn("failed to clear invalidated credential", "err", err)
		}
		return nil, fmt.Errorf("spotify adapter: status 401 (%s): %w", body, ports.ErrNotAuthenticated)
	}

	return resp, nil
}

// readBodyForError drains a short prefix of the response body so error
// messages carry what the service actually said.
func readBodyForError(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
