// Package config loads configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs at startup.
type Config struct {
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURI  string
	OpenAIAPIKey        string
	DatabasePath        string
	TokenPath           string
	ListenAddr          string
}

// Load reads the environment after best-effort loading a .env file.
// Missing required variables are an error; main treats that as fatal.
func Load() (Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyRedirectURI:  getenv("SPOTIFY_REDIRECT_URI", "http://localhost:8080/api/spotify/callback"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		DatabasePath:        getenv("DATABASE_PATH", "data/artists.db"),
		TokenPath:           getenv("TOKEN_PATH", "data/spotify_token.json"),
		ListenAddr:          getenv("LISTEN_ADDR", ":8080"),
	}

	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		return Config{}, fmt.Errorf("config: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are required")
	}
	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("config: OPENAI_API_KEY is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
