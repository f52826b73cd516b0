// Package sqlite provides a SQLite-backed implementation of the artist
// repository port.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/hollis-labs/encore/backend/internal/core/domain"
	"github.com/hollis-labs/encore/backend/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// Adapter implements the artist repository port for SQLite.
type Adapter struct {
	db  *sql.DB
	now func() time.Time
}

var _ ports.ArtistRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db, now: time.Now}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Upsert inserts a new row with status not_ranked, or refreshes
// name/popularity/images for an existing ID. The stored status is never
// touched on conflict, which is what keeps sync from clobbering user tags.
func (a *Adapter) Upsert(ctx context.Context, artist domain.Artist) error {
	images, err := json.Marshal(artist.Images)
	if err != nil {
		return fmt.Errorf("sqlite: marshal images: %w", err)
	}

	status := artist.Status
	if status == "" {
		status = domain.StatusNotRanked
	}
	if !status.Valid() {
		return fmt.Errorf("sqlite: %w: %q", domain.ErrInvalidStatus, status)
	}

	query := `
		INSERT INTO artists (id, name, popularity, status, images, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			popularity=excluded.popularity,
			images=excluded.images,
			last_updated=excluded.last_updated;
	`
	if _, err := a.db.ExecContext(ctx, query,
		artist.ID, artist.Name, artist.Popularity, string(status), string(images), a.now().UTC(),
	); err != nil {
		return fmt.Errorf("sqlite: upsert artist %s: %w", artist.ID, err)
	}

	return nil
}

// GetByID returns a single artist or domain.ErrNotFound.
func (a *Adapter) GetByID(ctx context.Context, id string) (domain.Artist, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT id, name, popularity, status, images, last_updated FROM artists WHERE id = ?", id)

	artist, err := scanArtist(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Artist{}, domain.ErrNotFound
		}
		return domain.Artist{}, fmt.Errorf("sqlite: load artist: %w", err)
	}

	return artist, nil
}

// List returns a page of artists ordered by popularity descending (id as a
// stable tiebreak), plus the total matching count and a has-more flag.
func (a *Adapter) List(ctx context.Context, status *domain.Status, page, pageSize int) ([]domain.Artist, int, bool, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := (page - 1) * pageSize

	countQuery := "SELECT COUNT(*) FROM artists"
	listQuery := "SELECT id, name, popularity, status, images, last_updated FROM artists"
	args := []any{}
	if status != nil {
		countQuery += " WHERE status = ?"
		listQuery += " WHERE status = ?"
		args = append(args, string(*status))
	}
	listQuery += " ORDER BY popularity DESC, id ASC LIMIT ? OFFSET ?"

	var total int
	if err := a.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, false, fmt.Errorf("sqlite: count artists: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, listQuery, append(args, pageSize, offset)...)
	if err != nil {
		return nil, 0, false, fmt.Errorf("sqlite: list artists: %w", err)
	}
	defer rows.Close()

	artists := []domain.Artist{}
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, 0, false, fmt.Errorf("sqlite: scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, false, fmt.Errorf("sqlite: iterate artists: %w", err)
	}

	hasMore := offset+len(artists) < total
	return artists, total, hasMore, nil
}

// SetStatus updates status and refreshes the timestamp. A missing ID
// affects zero rows and is not an error.
func (a *Adapter) SetStatus(ctx context.Context, id string, status domain.Status) error {
	if !status.Valid() {
		return fmt.Errorf("sqlite: %w: %q", domain.ErrInvalidStatus, status)
	}

	if _, err := a.db.ExecContext(ctx,
		"UPDATE artists SET status = ?, last_updated = ? WHERE id = ?",
		string(status), a.now().UTC(), id,
	); err != nil {
		return fmt.Errorf("sqlite: update status for %s: %w", id, err)
	}

	return nil
}

// ExistingIDs returns the set of all stored artist IDs.
func (a *Adapter) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := a.db.QueryContext(ctx, "SELECT id FROM artists")
	if err != nil {
		return nil, fmt.Errorf("sqlite: load artist ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scan artist id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate artist ids: %w", err)
	}

	return ids, nil
}

// LikedNames returns up to limit names tagged "like", most popular first.
func (a *Adapter) LikedNames(ctx context.Context, limit int) ([]string, error) {
	if limit < 1 {
		limit = defaultPageSize
	}

	rows, err := a.db.QueryContext(ctx,
		"SELECT name FROM artists WHERE status = ? ORDER BY popularity DESC, id ASC LIMIT ?",
		string(domain.StatusLike), limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load liked names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: scan liked name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate liked names: %w", err)
	}

	return names, nil
}

// Clear deletes every row.
func (a *Adapter) Clear(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, "DELETE FROM artists"); err != nil {
		return fmt.Errorf("sqlite: clear artists: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtist(row rowScanner) (domain.Artist, error) {
	var artist domain.Artist
	var status string
	var images sql.NullString
	var updated time.Time

	if err := row.Scan(&artist.ID, &artist.Name, &artist.Popularity, &status, &images, &updated); err != nil {
		return domain.Artist{}, err
	}

	artist.Status = domain.Status(status)
	artist.LastUpdated = updated
	artist.Images = []domain.Image{}
	if images.Valid && images.String != "" {
		if err := json.Unmarshal([]byte(images.String), &artist.Images); err != nil {
			return domain.Artist{}, fmt.Errorf("decode images: %w", err)
		}
	}

	return artist, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS artists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		popularity INTEGER,
		status TEXT DEFAULT 'not_ranked',
		images TEXT,
		last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	return nil
}
