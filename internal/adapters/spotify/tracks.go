package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
	"github.com/hollis-labs/encore/backend/internal/core/ports"
)

// SearchTrack runs a single query-string search and returns the first
// match. No results is a TrackNotFoundError, not a transport failure.
func (c *Client) SearchTrack(ctx context.Context, name, artist string) (domain.Track, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return domain.Track{}, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}

	query := u.Query()
	query.Set("q", fmt.Sprintf("track:%s artist:%s", name, artist))
	query.Set("type", "track")
	query.Set("limit", "1")
	u.RawQuery = query.Encode()

	c.logger.Debug("searching track", "name", name, "artist", artist)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Track{}, fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return domain.Track{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Track{}, fmt.Errorf("spotify adapter: search status %d (%s)", resp.StatusCode, readBodyForError(resp))
	}

	var body struct {
		Tracks struct {
			Items []spotifyTrack `json:"items"`
		} `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Track{}, fmt.Errorf("spotify adapter: search decode error: %w", err)
	}

	if len(body.Tracks.Items) == 0 {
		return domain.Track{}, fmt.Errorf("spotify adapter: %w", &ports.TrackNotFoundError{Name: name, Artist: artist})
	}

	match := body.Tracks.Items[0]
	return domain.Track{
		Name:       name,
		Artist:     artist,
		URI:        match.URI,
		PreviewURL: match.PreviewURL,
	}, nil
}
