package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type createPlaylistBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

type addTracksBody struct {
	URIs []string `json:"uris"`
}

// CreatePlaylist creates a public playlist for the current user and returns
// its id and public URL.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string) (string, string, error) {
	userID, err := c.currentUserID(ctx)
	if err != nil {
		return "", "", err
	}

	payload, err := json.Marshal(createPlaylistBody{Name: name, Description: description, Public: true})
	if err != nil {
		return "", "", fmt.Errorf("spotify adapter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users/%s/playlists", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("spotify adapter: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", "", fmt.Errorf("spotify adapter: create playlist status %d (%s)", resp.StatusCode, readBodyForError(resp))
	}

	var pl spotifyPlaylist
	if err := json.NewDecoder(resp.Body).Decode(&pl); err != nil {
		return "", "", fmt.Errorf("spotify adapter: create playlist decode error: %w", err)
	}

	c.logger.Debug("created playlist", "id", pl.ID, "name", name)
	return pl.ID, pl.ExternalURLs.Spotify, nil
}

// AddTracks appends tracks to an existing playlist.
func (c *Client) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	payload, err := json.Marshal(addTracksBody{URIs: uris})
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, url.PathEscape(playlistID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("spotify adapter: add tracks status %d (%s)", resp.StatusCode, readBodyForError(resp))
	}

	return nil
}

// currentUserID resolves the id of the user the credential belongs to.
func (c *Client) currentUserID(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me", nil)
	if err != nil {
		return "", fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify adapter: current user status %d (%s)", resp.StatusCode, readBodyForError(resp))
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("spotify adapter: current user decode error: %w", err)
	}

	return body.ID, nil
}
