package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

// topArtistsServer serves /me/top/artists pages out of a fixed pool of
// pool artists, honoring limit/offset, and records the offsets requested.
func topArtistsServer(t *testing.T, pool int, offsets *[]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me/top/artists" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if tr := r.URL.Query().Get("time_range"); tr != "long_term" {
			t.Errorf("expected time_range long_term, got %q", tr)
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		*offsets = append(*offsets, offset)

		items := []spotifyArtist{}
		for i := offset; i < offset+limit && i < pool; i++ {
			items = append(items, spotifyArtist{
				ID:         fmt.Sprintf("artist-%03d", i),
				Name:       fmt.Sprintf("Artist %d", i),
				Popularity: 100 - i%100,
				Images:     []spotifyImage{{URL: "https://img.test/a.jpg", Width: 300, Height: 300}},
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	}))
}

func TestClient_TopArtists(t *testing.T) {
	tests := []struct {
		name        string
		pool        int
		limit       int
		wantCount   int
		wantOffsets []int
	}{
		{
			name:        "reaches the target across pages",
			pool:        500,
			limit:       200,
			wantCount:   200,
			wantOffsets: []int{0, 50, 100, 150},
		},
		{
			name:        "short page stops pagination early",
			pool:        80,
			limit:       200,
			wantCount:   80,
			wantOffsets: []int{0, 50},
		},
		{
			name:        "empty first page",
			pool:        0,
			limit:       200,
			wantCount:   0,
			wantOffsets: []int{0},
		},
		{
			name:        "single short page below one batch",
			pool:        7,
			limit:       200,
			wantCount:   7,
			wantOffsets: []int{0},
		},
		{
			name:        "limit smaller than one page",
			pool:        500,
			limit:       30,
			wantCount:   30,
			wantOffsets: []int{0},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var offsets []int
			srv := topArtistsServer(t, tc.pool, &offsets)
			defer srv.Close()

			c := newTestClient(srv.URL, authedTokens())

			artists, err := c.TopArtists(context.Background(), tc.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(artists) != tc.wantCount {
				t.Fatalf("expected %d artists, got %d", tc.wantCount, len(artists))
			}
			if len(offsets) != len(tc.wantOffsets) {
				t.Fatalf("expected offsets %v, got %v", tc.wantOffsets, offsets)
			}
			for i, want := range tc.wantOffsets {
				if offsets[i] != want {
					t.Fatalf("expected offsets %v, got %v", tc.wantOffsets, offsets)
				}
			}
		})
	}
}

func TestClient_TopArtistsMapping(t *testing.T) {
	var offsets []int
	srv := topArtistsServer(t, 1, &offsets)
	defer srv.Close()

	c := newTestClient(srv.URL, authedTokens())

	artists, err := c.TopArtists(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(artists) != 1 {
		t.Fatalf("expected 1 artist, got %d", len(artists))
	}

	a := artists[0]
	if a.ID != "artist-000" || a.Name != "Artist 0" {
		t.Fatalf("unexpected mapping: %+v", a)
	}
	if a.Popularity != 100 {
		t.Fatalf("expected popularity 100, got %d", a.Popularity)
	}
	if len(a.Images) != 1 || a.Images[0].Width != 300 {
		t.Fatalf("unexpected images: %+v", a.Images)
	}
	// Status and timestamp belong to the repository, not the catalog.
	if a.Status != "" {
		t.Fatalf("expected empty status from the catalog, got %q", a.Status)
	}
}

func TestClient_TopArtistsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, authedTokens())

	if _, err := c.TopArtists(context.Background(), 50); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}
