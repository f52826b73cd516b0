package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
	"github.com/hollis-labs/encore/backend/internal/core/ports"
)

// likedHintLimit caps how many liked-artist names are folded into the
// recommendation prompt.
const likedHintLimit = 15

// Generator turns a free-text request into tracks verified to exist on the
// streaming service.
type Generator struct {
	recommender ports.PlaylistRecommender
	catalog     ports.CatalogProvider
	repo        ports.ArtistRepository
	logger      *log.Logger
}

// NewGenerator constructs a Generator.
func NewGenerator(recommender ports.PlaylistRecommender, catalog ports.CatalogProvider, repo ports.ArtistRepository, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{
		recommender: recommender,
		catalog:     catalog,
		repo:        repo,
		logger:      logger.With("service", "generate"),
	}
}

// GenerateResult is a generated playlist after catalog verification.
// Dropped counts tracks the model suggested that the catalog could not
// find, so callers see why the list may be shorter than requested.
type GenerateResult struct {
	Name    string         `json:"name"`
	Tracks  []domain.Track `json:"tracks"`
	Dropped int            `json:"dropped"`
}

// Generate asks the recommender for a playlist and verifies every track by
// catalog search. A search miss drops the track; any other failure aborts.
// The result may therefore hold fewer tracks than requested.
func (g *Generator) Generate(ctx context.Context, request string, trackCount int) (GenerateResult, error) {
	liked, err := g.repo.LikedNames(ctx, likedHintLimit)
	if err != nil {
		// Hints are best-effort; generation proceeds without them.
		g.logger.Warn("failed to load liked artists for prompt hints", "err", err)
		liked = nil
	}

	playlist, err := g.recommender.GeneratePlaylist(ctx, request, trackCount, liked)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("service: failed to generate playlist: %w", err)
	}

	result := GenerateResult{Name: playlist.Name, Tracks: []domain.Track{}}
	for _, track := range playlist.Tracks {
		found, err := g.catalog.SearchTrack(ctx, track.Name, track.Artist)
		if err != nil {
			if errors.Is(err, ports.ErrTrackNotFound) {
				g.logger.Debug("dropping unmatched track", "name", track.Name, "artist", track.Artist)
				result.Dropped++
				continue
			}
			return GenerateResult{}, fmt.Errorf("service: failed to search track: %w", err)
		}
		result.Tracks = append(result.Tracks, found)
	}

	g.logger.Info("playlist generated", "name", result.Name, "matched", len(result.Tracks), "dropped", result.Dropped)
	return result, nil
}

// Upload creates a playlist on the streaming service from previously
// generated tracks and returns its public URL. Tracks that lost their URI
// (e.g. a client resubmitting name/artist pairs) are re-searched; ones the
// catalog cannot find are skipped.
func (g *Generator) Upload(ctx context.Context, name string, tracks []domain.Track) (string, error) {
	uris := make([]string, 0, len(tracks))
	for _, track := range tracks {
		if track.URI == "" {
			found, err := g.catalog.SearchTrack(ctx, track.Name, track.Artist)
			if err != nil {
				if errors.Is(err, ports.ErrTrackNotFound) {
					continue
				}
				return "", fmt.Errorf("service: failed to search track: %w", err)
			}
			track = found
		}
		uris = append(uris, track.URI)
	}

	if len(uris) == 0 {
		return "", fmt.Errorf("service: no uploadable tracks resolved")
	}

	id, url, err := g.catalog.CreatePlaylist(ctx, name, "Generated by Encore")
	if err != nil {
		return "", fmt.Errorf("service: failed to create playlist: %w", err)
	}

	if err := g.catalog.AddTracks(ctx, id, uris); err != nil {
		return "", fmt.Errorf("service: failed to add tracks: %w", err)
	}

	g.logger.Info("playlist uploaded", "id", id, "tracks", len(uris))
	return url, nil
}
