package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hollis-labs/encore/backend/internal/adapters/openai"
	"github.com/hollis-labs/encore/backend/internal/adapters/rest"
	"github.com/hollis-labs/encore/backend/internal/adapters/spotify"
	"github.com/hollis-labs/encore/backend/internal/adapters/sqlite"
	"github.com/hollis-labs/encore/backend/internal/adapters/tokenfile"
	"github.com/hollis-labs/encore/backend/internal/config"
	"github.com/hollis-labs/encore/backend/internal/core/services"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", "err", err)
	}

	// Driven adapters: storage first, then the outbound clients.
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		logger.Fatal("failed to create data directory", "err", err)
	}

	repo, err := sqlite.NewAdapter(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("failed to initialize database", "err", err)
	}
	defer repo.Close()

	tokens, err := tokenfile.NewStore(cfg.TokenPath)
	if err != nil {
		logger.Fatal("failed to initialize token store", "err", err)
	}

	catalog := spotify.NewClient(nil, tokens, logger, spotify.Config{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		RedirectURI:  cfg.SpotifyRedirectURI,
	})
	recommender := openai.NewClient("", cfg.OpenAIAPIKey)

	// Core services get the adapters injected through the ports.
	syncer := services.NewSyncer(catalog, tokens, repo, logger)
	generator := services.NewGenerator(recommender, catalog, repo, logger)

	handler := rest.NewHandler(syncer, generator, catalog, repo, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	logger.Info("encore API is running", "addr", cfg.ListenAddr)

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("server error", "err", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "err", err)
		}
	}
}
