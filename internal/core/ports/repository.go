package ports

import (
	"context"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
)

// ArtistRepository is the durable store of known artists.
type ArtistRepository interface {
	// Upsert inserts a new row or refreshes name/popularity/images for an
	// existing ID. A user-assigned status is never overwritten.
	Upsert(ctx context.Context, artist domain.Artist) error

	// GetByID returns a single artist or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (domain.Artist, error)

	// List returns a page of artists ordered by popularity descending,
	// optionally filtered by status, plus the total matching count and a
	// has-more flag.
	List(ctx context.Context, status *domain.Status, page, pageSize int) (artists []domain.Artist, total int, hasMore bool, err error)

	// SetStatus updates an artist's status and refreshes its timestamp.
	// A missing ID silently affects zero rows.
	SetStatus(ctx context.Context, id string, status domain.Status) error

	// ExistingIDs returns the set of all stored artist IDs.
	ExistingIDs(ctx context.Context) (map[string]struct{}, error)

	// LikedNames returns up to limit artist names with status "like",
	// most popular first.
	LikedNames(ctx context.Context, limit int) ([]string, error)

	// Clear deletes every row. Irreversible.
	Clear(ctx context.Context) error
}
