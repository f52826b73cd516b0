package domain

import "unicode/utf8"

// maxPlaylistNameLen is the longest playlist name we accept from the
// recommendation backend; anything longer is truncated, not rejected.
const maxPlaylistNameLen = 50

// Track is a transient generated track. URI and PreviewURL are filled in
// once the track has been matched against the catalog; both may stay empty.
type Track struct {
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	URI        string `json:"uri,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// Playlist is a transient generated playlist. It is never persisted; the
// caller either discards it or uploads it to the catalog service.
type Playlist struct {
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}

// ClampName truncates the playlist name to the accepted maximum.
func (p *Playlist) ClampName() {
	if utf8.RuneCountInString(p.Name) <= maxPlaylistNameLen {
		return
	}
	p.Name = string([]rune(p.Name)[:maxPlaylistNameLen])
}
