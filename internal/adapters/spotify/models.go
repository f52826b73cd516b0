package spotify

import "github.com/hollis-labs/encore/backend/internal/core/domain"

// spotifyImage represents an image resource from the Spotify API.
type spotifyImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// spotifyArtist represents an artist from the Spotify API.
type spotifyArtist struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Popularity int            `json:"popularity"`
	Images     []spotifyImage `json:"images"`
}

// toDomain converts a spotifyArtist to a domain.Artist. Status and
// timestamp are left for the repository to assign.
func (sa spotifyArtist) toDomain() domain.Artist {
	images := make([]domain.Image, len(sa.Images))
	for i, img := range sa.Images {
		images[i] = domain.Image{URL: img.URL, Width: img.Width, Height: img.Height}
	}
	return domain.Artist{
		ID:         sa.ID,
		Name:       sa.Name,
		Popularity: sa.Popularity,
		Images:     images,
	}
}

// spotifyTrack represents a track from the Spotify API search response.
type spotifyTrack struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URI        string `json:"uri"`
	PreviewURL string `json:"preview_url"`
	Artists    []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

// spotifyPlaylist represents the playlist-create response.
type spotifyPlaylist struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}
