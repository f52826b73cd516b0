package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
)

// pageSize is Spotify's maximum page size for the top-artists endpoint.
const pageSize = 50

// TopArtists fetches up to limit of the user's top artists over the
// long-term window, advancing an offset page by page. The loop stops when
// the limit is reached, a page comes back short (end of data), or a fixed
// page cap is hit. A short final page is not an error.
func (c *Client) TopArtists(ctx context.Context, limit int) ([]domain.Artist, error) {
	if limit <= 0 {
		limit = pageSize
	}

	maxPages := limit/pageSize + 1
	artists := make([]domain.Artist, 0, limit)

	for page := 0; page < maxPages && len(artists) < limit; page++ {
		offset := page * pageSize
		items, err := c.topArtistsPage(ctx, offset)
		if err != nil {
			return nil, err
		}

		for _, it := range items {
			artists = append(artists, it.toDomain())
		}

		if len(items) < pageSize {
			break
		}
	}

	if len(artists) > limit {
		artists = artists[:limit]
	}

	return artists, nil
}

func (c *Client) topArtistsPage(ctx context.Context, offset int) ([]spotifyArtist, error) {
	u, err := url.Parse(c.baseURL + "/me/top/artists")
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid top artists url: %w", err)
	}

	query := u.Query()
	query.Set("time_range", "long_term")
	query.Set("limit", strconv.Itoa(pageSize))
	query.Set("offset", strconv.Itoa(offset))
	u.RawQuery = query.Encode()

	c.logger.Debug("fetching top artists page", "offset", offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify adapter: top artists status %d (%s)", resp.StatusCode, readBodyForError(resp))
	}

	var body struct {
		Items []spotifyArtist `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify adapter: top artists decode error: %w", err)
	}

	return body.Items, nil
}
