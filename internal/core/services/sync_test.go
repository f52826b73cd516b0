package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
	"github.com/hollis-labs/encore/backend/internal/core/ports"
)

// --- Mocks ---

type mockCatalog struct {
	artists     []domain.Artist
	fetchErr    error
	exchangeErr error

	exchangedCode string
	searchByKey   map[string]domain.Track
	searchErr     error
	createdName   string
	createdDesc   string
	createErr     error
	addedURIs     []string
	addErr        error
}

func (m *mockCatalog) AuthorizationURL() (string, string) {
	return "https://accounts.spotify.test/authorize?state=s", "s"
}

func (m *mockCatalog) ExchangeCode(ctx context.Context, code string) error {
	m.exchangedCode = code
	return m.exchangeErr
}

func (m *mockCatalog) TopArtists(ctx context.Context, limit int) ([]domain.Artist, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.artists, nil
}

func (m *mockCatalog) SearchTrack(ctx context.Context, name, artist string) (domain.Track, error) {
	if m.searchErr != nil {
		return domain.Track{}, m.searchErr
	}
	track, ok := m.searchByKey[name+"|"+artist]
	if !ok {
		return domain.Track{}, fmt.Errorf("spotify adapter: %w", &ports.TrackNotFoundError{Name: name, Artist: artist})
	}
	return track, nil
}

func (m *mockCatalog) CreatePlaylist(ctx context.Context, name, description string) (string, string, error) {
	if m.createErr != nil {
		return "", "", m.createErr
	}
	m.createdName = name
	m.createdDesc = description
	return "pl-1", "https://open.spotify.test/playlist/pl-1", nil
}

func (m *mockCatalog) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.addedURIs = append(m.addedURIs, uris...)
	return nil
}

type mockTokens struct {
	ok  bool
	err error
}

func (m *mockTokens) Save(domain.Credential) error { return nil }
func (m *mockTokens) Get() (domain.Credential, bool, error) {
	if m.err != nil {
		return domain.Credential{}, false, m.err
	}
	if !m.ok {
		return domain.Credential{}, false, nil
	}
	return domain.Credential{AccessToken: "tok"}, true, nil
}
func (m *mockTokens) Clear() error { return nil }

type mockRepo struct {
	existing   map[string]struct{}
	upserted   []domain.Artist
	upsertErr  error
	likedNames []string
	likedErr   error
}

func (m *mockRepo) Upsert(ctx context.Context, artist domain.Artist) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, artist)
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (domain.Artist, error) {
	return domain.Artist{}, domain.ErrNotFound
}

func (m *mockRepo) List(ctx context.Context, status *domain.Status, page, pageSize int) ([]domain.Artist, int, bool, error) {
	return nil, 0, false, nil
}

func (m *mockRepo) SetStatus(ctx context.Context, id string, status domain.Status) error {
	return nil
}

func (m *mockRepo) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	if m.existing == nil {
		return map[string]struct{}{}, nil
	}
	return m.existing, nil
}

func (m *mockRepo) LikedNames(ctx context.Context, limit int) ([]string, error) {
	if m.likedErr != nil {
		return nil, m.likedErr
	}
	return m.likedNames, nil
}

func (m *mockRepo) Clear(ctx context.Context) error { return nil }

func fetchedArtists(ids ...string) []domain.Artist {
	artists := make([]domain.Artist, len(ids))
	for i, id := range ids {
		artists[i] = domain.Artist{ID: id, Name: "Artist " + id, Popularity: 50}
	}
	return artists
}

// --- Tests ---

func TestSyncer_Sync(t *testing.T) {
	tests := []struct {
		name          string
		existing      map[string]struct{}
		fetched       []domain.Artist
		tokenOK       bool
		code          string
		wantErr       error
		wantAdded     int
		wantPreserved int
		wantExchanged string
	}{
		{
			name:          "empty store adds everything",
			fetched:       fetchedArtists("a1", "a2", "a3"),
			tokenOK:       true,
			wantAdded:     3,
			wantPreserved: 0,
		},
		{
			name:          "existing rows untouched",
			existing:      map[string]struct{}{"a1": {}, "a3": {}},
			fetched:       fetchedArtists("a1", "a2", "a3", "a4"),
			tokenOK:       true,
			wantAdded:     2,
			wantPreserved: 2,
		},
		{
			name:    "no credential and no code",
			fetched: fetchedArtists("a1"),
			tokenOK: false,
			wantErr: ports.ErrNotAuthenticated,
		},
		{
			name:          "no credential falls back to code exchange",
			fetched:       fetchedArtists("a1"),
			tokenOK:       false,
			code:          "auth-code",
			wantAdded:     1,
			wantExchanged: "auth-code",
		},
		{
			name:          "valid credential skips exchange",
			fetched:       fetchedArtists("a1"),
			tokenOK:       true,
			code:          "stale-code",
			wantAdded:     1,
			wantExchanged: "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			catalog := &mockCatalog{artists: tc.fetched}
			repo := &mockRepo{existing: tc.existing}
			s := NewSyncer(catalog, &mockTokens{ok: tc.tokenOK}, repo, nil)

			result, err := s.Sync(context.Background(), tc.code)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if len(repo.upserted) != 0 {
					t.Fatalf("no writes may happen on a failed sync")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Added != tc.wantAdded {
				t.Fatalf("expected %d added, got %d", tc.wantAdded, result.Added)
			}
			if result.Preserved != tc.wantPreserved {
				t.Fatalf("expected %d preserved, got %d", tc.wantPreserved, result.Preserved)
			}
			if len(repo.upserted) != tc.wantAdded {
				t.Fatalf("expected %d upserts, got %d", tc.wantAdded, len(repo.upserted))
			}
			if catalog.exchangedCode != tc.wantExchanged {
				t.Fatalf("expected exchanged code %q, got %q", tc.wantExchanged, catalog.exchangedCode)
			}
			for _, artist := range repo.upserted {
				if _, seen := tc.existing[artist.ID]; seen {
					t.Fatalf("existing artist %s must never be written by sync", artist.ID)
				}
			}
		})
	}
}

func TestSyncer_SyncFetchFailure(t *testing.T) {
	catalog := &mockCatalog{fetchErr: errors.New("spotify down")}
	repo := &mockRepo{}
	s := NewSyncer(catalog, &mockTokens{ok: true}, repo, nil)

	if _, err := s.Sync(context.Background(), ""); err == nil {
		t.Fatalf("expected fetch failure to surface")
	}
	if len(repo.upserted) != 0 {
		t.Fatalf("fetch failure must abort before any writes")
	}
}

func TestSyncResult_Message(t *testing.T) {
	r := SyncResult{Added: 12, Preserved: 3}
	want := "Sync completed: 12 new artists added, 3 existing preserved"
	if got := r.Message(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
