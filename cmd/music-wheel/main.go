// Command music-wheel runs the Music Wheel album backend.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/musicwheel/music-wheel/internal/album"
	"github.com/musicwheel/music-wheel/internal/config"
	"github.com/musicwheel/music-wheel/internal/logger"
	"github.com/musicwheel/music-wheel/internal/social"
	"github.com/musicwheel/music-wheel/internal/storage"
	"github.com/musicwheel/music-wheel/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New()
	defer log.Sync()

	// An unreachable store is a startup error, not a nil client to
	// trip over on the first request.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancel()

	store, err := storage.NewR2Store(ctx, storage.R2Config{
		AccountID: cfg.AccountID,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
	})
	if err != nil {
		return fmt.Errorf("connecting to object store: %w", err)
	}
	log.Info("object store connected", zap.String("bucket", cfg.Bucket))

	docs := storage.NewDocumentStore(store)

	server := web.NewServer(web.ServerConfig{
		Addr:         cfg.Addr,
		Albums:       album.NewService(docs, cfg.PublicBaseURL, log),
		Social:       social.NewService(docs, log),
		TempDir:      cfg.TempDir,
		StoreTimeout: cfg.StoreTimeout,
		Logger:       log,
	})

	return server.Run()
}
