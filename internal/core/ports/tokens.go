package ports

import "github.com/hollis-labs/encore/backend/internal/core/domain"

// TokenStore persists the single live credential.
type TokenStore interface {
	// Save overwrites any prior credential.
	Save(cred domain.Credential) error

	// Get returns the current credential only while it is inside the
	// validity window; an expired or missing credential is ok=false with
	// no error.
	Get() (cred domain.Credential, ok bool, err error)

	// Clear removes the stored credential. Idempotent.
	Clear() error
}
