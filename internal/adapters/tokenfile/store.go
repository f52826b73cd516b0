// Package tokenfile persists the single live Spotify credential as a JSON
// file at a well-known path, so it survives process restarts.
package tokenfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hollis-labs/encore/backend/internal/core/domain"
	"github.com/hollis-labs/encore/backend/internal/core/ports"
)

// validityWindow is how long a credential is assumed usable after
// acquisition. Spotify tokens last an hour; 55 minutes leaves headroom.
const validityWindow = 55 * time.Minute

// Store implements ports.TokenStore on top of a single file.
// No locking: last writer wins, single-process assumption.
type Store struct {
	path string
	now  func() time.Time
}

var _ ports.TokenStore = (*Store)(nil)

// NewStore creates the parent directory if needed.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("tokenfile: create dir: %w", err)
	}
	return &Store{path: path, now: time.Now}, nil
}

func (s *Store) Save(cred domain.Credential) error {
	if cred.AcquiredAt.IsZero() {
		cred.AcquiredAt = s.now()
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("tokenfile: marshal credential: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("tokenfile: write credential: %w", err)
	}
	return nil
}

func (s *Store) Get() (domain.Credential, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Credential{}, false, nil
		}
		return domain.Credential{}, false, fmt.Errorf("tokenfile: read credential: %w", err)
	}

	var cred domain.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return domain.Credential{}, false, fmt.Errorf("tokenfile: decode credential: %w", err)
	}

	if cred.AccessToken == "" || cred.Expired(s.now(), validityWindow) {
		return domain.Credential{}, false, nil
	}

	return cred, true, nil
}

func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("tokenfile: clear credential: %w", err)
	}
	return nil
}
