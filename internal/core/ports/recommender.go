package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
)

// ErrInvalidPlaylist indicates the recommendation backend returned a reply
// that does not match the requested playlist shape.
var ErrInvalidPlaylist = errors.New("invalid playlist response")

// InvalidPlaylistError carries the reason a generated playlist was rejected.
type InvalidPlaylistError struct {
	Reason string
}

func (e InvalidPlaylistError) Error() string {
	if e.Reason == "" {
		return ErrInvalidPlaylist.Error()
	}
	return fmt.Sprintf("invalid playlist response: %s", e.Reason)
}

func (e InvalidPlaylistError) Is(target error) bool {
	return target == ErrInvalidPlaylist
}

// PlaylistRecommender wraps a single call to a generative text backend.
// Validation failures are not retried; the caller decides what to do.
type PlaylistRecommender interface {
	// GeneratePlaylist asks for exactly trackCount tracks matching the
	// free-text request. likedArtists are soft preference hints folded
	// into the prompt only when non-empty.
	GeneratePlaylist(ctx context.Context, request string, trackCount int, likedArtists []string) (domain.Playlist, error)
}
