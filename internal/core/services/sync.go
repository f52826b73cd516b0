package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/hollis-labs/encore/backend/internal/core/ports"
)

// topArtistsTarget is how many top artists a sync asks the catalog for.
const topArtistsTarget = 200

// Syncer merges freshly fetched top artists into the local store without
// clobbering user-assigned statuses and without duplicating existing rows.
type Syncer struct {
	catalog ports.CatalogProvider
	tokens  ports.TokenStore
	repo    ports.ArtistRepository
	logger  *log.Logger
}

// NewSyncer constructs a Syncer.
func NewSyncer(catalog ports.CatalogProvider, tokens ports.TokenStore, repo ports.ArtistRepository, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = log.Default()
	}
	return &Syncer{
		catalog: catalog,
		tokens:  tokens,
		repo:    repo,
		logger:  logger.With("service", "sync"),
	}
}

// SyncResult summarizes what a sync did.
type SyncResult struct {
	Added     int `json:"added"`
	Preserved int `json:"preserved"`
}

// Message renders the human-readable summary returned to the caller.
func (r SyncResult) Message() string {
	return fmt.Sprintf("Sync completed: %d new artists added, %d existing preserved", r.Added, r.Preserved)
}

// Sync fetches the user's top artists and inserts only the unseen ones.
// Artists already present are left completely untouched. If no valid
// credential is stored, the provided authorization code is exchanged first;
// with neither, the sync fails with ErrNotAuthenticated. All reads happen
// before the first write, so an auth or fetch failure leaves the store
// unchanged.
func (s *Syncer) Sync(ctx context.Context, code string) (SyncResult, error) {
	existing, err := s.repo.ExistingIDs(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("service: failed to load existing artists: %w", err)
	}

	_, ok, err := s.tokens.Get()
	if err != nil {
		return SyncResult{}, fmt.Errorf("service: failed to read credential: %w", err)
	}
	if !ok {
		if code == "" {
			return SyncResult{}, fmt.Errorf("service: %w", ports.ErrNotAuthenticated)
		}
		if err := s.catalog.ExchangeCode(ctx, code); err != nil {
			return SyncResult{}, fmt.Errorf("service: failed to exchange code: %w", err)
		}
	}

	fetched, err := s.catalog.TopArtists(ctx, topArtistsTarget)
	if err != nil {
		return SyncResult{}, fmt.Errorf("service: failed to fetch top artists: %w", err)
	}

	var result SyncResult
	for _, artist := range fetched {
		if _, seen := existing[artist.ID]; seen {
			result.Preserved++
			continue
		}
		if err := s.repo.Upsert(ctx, artist); err != nil {
			return SyncResult{}, fmt.Errorf("service: failed to save artist %s: %w", artist.ID, err)
		}
		result.Added++
	}

	s.logger.Info("sync completed", "fetched", len(fetched), "added", result.Added, "preserved", result.Preserved)
	return result, nil
}
