package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
)

// ErrNotAuthenticated indicates no usable credential is stored; the caller
// must send the user through the authorization flow again.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrTrackNotFound indicates a catalog search returned no results. It is a
// normal outcome, not a transport failure.
var ErrTrackNotFound = errors.New("track not found")

// TrackNotFoundError provides context for a failed track search.
type TrackNotFoundError struct {
	Name   string
	Artist string
}

func (e TrackNotFoundError) Error() string {
	if e.Name == "" && e.Artist == "" {
		return ErrTrackNotFound.Error()
	}
	return fmt.Sprintf("no track found for name %q artist %q", e.Name, e.Artist)
}

func (e TrackNotFoundError) Is(target error) bool {
	return target == ErrTrackNotFound
}

// CatalogProvider wraps outbound calls to the streaming service.
// Failures are surfaced as-is; nothing here retries.
type CatalogProvider interface {
	// AuthorizationURL builds the OAuth redirect URL and the state
	// parameter embedded in it. Pure URL construction, no I/O.
	AuthorizationURL() (authURL string, state string)

	// ExchangeCode trades an authorization code for a credential and
	// persists it to the token store.
	ExchangeCode(ctx context.Context, code string) error

	// TopArtists fetches up to limit of the user's top artists,
	// paginating as needed.
	TopArtists(ctx context.Context, limit int) ([]domain.Artist, error)

	// SearchTrack looks up a single track by name and artist. A miss is
	// reported as a TrackNotFoundError, never as a transport failure.
	SearchTrack(ctx context.Context, name, artist string) (domain.Track, error)

	// CreatePlaylist creates an empty playlist for the current user and
	// returns its catalog id and public URL.
	CreatePlaylist(ctx context.Context, name, description string) (id string, url string, err error)

	// AddTracks appends tracks (by URI) to an existing playlist.
	AddTracks(ctx context.Context, playlistID string, uris []string) error
}
