package domain

import (
	"fmt"
	"time"
)

// Status is a user-assigned preference tag on a cached artist.
// It is independent of any catalog metadata and is never changed by a sync.
type Status string

const (
	StatusNotRanked Status = "not_ranked"
	StatusLike      Status = "like"
	StatusDislike   Status = "dislike"
	StatusNeutral   Status = "neutral"
)

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusNotRanked, StatusLike, StatusDislike, StatusNeutral:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a Status, rejecting unknown values.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Image is an artist image descriptor. Width and height are optional;
// zero means the catalog did not report a dimension.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Artist is a catalog artist cached locally. The ID is the catalog's opaque
// identifier and is immutable.
type Artist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Popularity  int       `json:"popularity"`
	Status      Status    `json:"status"`
	Images      []Image   `json:"images"`
	LastUpdated time.Time `json:"last_updated"`
}
