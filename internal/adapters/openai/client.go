// Package openai provides an adapter for the OpenAI chat-completions API.
// It asks for a structured playlist (name plus an exact number of tracks)
// and validates the shape of the reply before handing it to the core.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
	"github.com/hollis-labs/encore/backend/internal/core/ports"
)

const defaultBaseURL = "https://api.openai.com"

const (
	model       = "gpt-3.5-turbo"
	temperature = 0.7
	maxTokens   = 500
)

const (
	defaultTrackCount = 10
	maxTrackCount     = 50
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// compile-time interface assertion
var _ ports.PlaylistRecommender = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// playlistReply is the JSON shape we demand from the model.
type playlistReply struct {
	Name   string `json:"name"`
	Tracks []struct {
		Name   string `json:"name"`
		Artist string `json:"artist"`
	} `json:"tracks"`
}

func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GeneratePlaylist issues one chat-completion call and validates the reply.
// A reply with more tracks than requested is truncated; fewer is rejected.
// Validation failures are not retried here.
func (c *Client) GeneratePlaylist(ctx context.Context, request string, trackCount int, likedArtists []string) (domain.Playlist, error) {
	if trackCount <= 0 {
		trackCount = defaultTrackCount
	}
	if trackCount > maxTrackCount {
		trackCount = maxTrackCount
	}

	payload := chatRequest{
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(trackCount, likedArtists)},
			{Role: "user", Content: fmt.Sprintf("Generate a playlist of exactly %d tracks based on this request: %s", trackCount, request)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Playlist{}, fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.Playlist{}, fmt.Errorf("openai: decode response: %w", err)
	}
	if parsed.Error != nil {
		return domain.Playlist{}, fmt.Errorf("openai: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return domain.Playlist{}, fmt.Errorf("openai: empty response")
	}

	return parsePlaylist(parsed.Choices[0].Message.Content, trackCount)
}

// parsePlaylist enforces the reply contract from §4.3: well-formed JSON
// object, a tracks array with both string fields on every element, and an
// exact track count (truncating only when the model over-delivers).
func parsePlaylist(content string, trackCount int) (domain.Playlist, error) {
	var reply playlistReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return domain.Playlist{}, fmt.Errorf("openai: %w", &ports.InvalidPlaylistError{Reason: "reply is not a valid JSON object"})
	}

	if reply.Tracks == nil {
		return domain.Playlist{}, fmt.Errorf("openai: %w", &ports.InvalidPlaylistError{Reason: "missing tracks array"})
	}
	if len(reply.Tracks) < trackCount {
		return domain.Playlist{}, fmt.Errorf("openai: %w", &ports.InvalidPlaylistError{
			Reason: fmt.Sprintf("got %d tracks, expected %d", len(reply.Tracks), trackCount),
		})
	}
	if len(reply.Tracks) > trackCount {
		reply.Tracks = reply.Tracks[:trackCount]
	}

	pl := domain.Playlist{Name: reply.Name, Tracks: make([]domain.Track, len(reply.Tracks))}
	for i, t := range reply.Tracks {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.Artist) == "" {
			return domain.Playlist{}, fmt.Errorf("openai: %w", &ports.InvalidPlaylistError{
				Reason: fmt.Sprintf("track %d is missing name or artist", i),
			})
		}
		pl.Tracks[i] = domain.Track{Name: t.Name, Artist: t.Artist}
	}

	pl.ClampName()
	return pl, nil
}

func systemPrompt(trackCount int, likedArtists []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a music expert that generates playlists based on user requests. "+
		"Return only a JSON object with a 'name' field (a short playlist name, at most 50 characters) "+
		"and a 'tracks' array of exactly %d objects with 'name' and 'artist' fields. No conversational text.", trackCount)
	if len(likedArtists) > 0 {
		fmt.Fprintf(&b, " The listener particularly enjoys these artists, lean toward their style when it fits the request: %s.",
			strings.Join(likedArtists, ", "))
	}
	return b.String()
}
