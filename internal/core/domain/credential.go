package domain

import "time"

// Credential is a bearer token together with the instant it was obtained.
// Exactly one credential is live at a time (single-user assumption).
type Credential struct {
	AccessToken string    `json:"access_token"`
	AcquiredAt  time.Time `json:"acquired_at"`
}

// Expired reports whether the credential has aged past the validity window.
func (c Credential) Expired(now time.Time, window time.Duration) bool {
	return now.Sub(c.AcquiredAt) > window
}
