package spotify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
)

// AuthorizationURL builds the OAuth redirect URL with a fresh state value.
func (c *Client) AuthorizationURL() (string, string) {
	state := uuid.NewString()
	return c.oauth.AuthCodeURL(state), state
}

// ExchangeCode trades an authorization code for a token and persists it.
// The oauth2 error for a rejected code carries the token endpoint's
// response body, which is surfaced verbatim.
func (c *Client) ExchangeCode(ctx context.Context, code string) error {
	// Route the exchange through our http client so tests can intercept it.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("spotify adapter: code exchange: %w", err)
	}

	cred := domain.Credential{AccessToken: tok.AccessToken, AcquiredAt: time.Now()}
	if err := c.tokens.Save(cred); err != nil {
		return fmt.Errorf("spotify adapter: save credential: %w", err)
	}

	c.logger.Debug("exchanged authorization code for credential")
	return nil
}
