package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alnvdl/wcf-truco/auth"
	"github.com/alnvdl/wcf-truco/cliparse"
	"github.com/alnvdl/wcf-truco/console"
	"github.com/alnvdl/wcf-truco/db"
	"github.com/alnvdl/wcf-truco/handlers"
	"github.com/alnvdl/wcf-truco/logging"
	"github.com/alnvdl/wcf-truco/router"
	"github.com/alnvdl/wcf-truco/store"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logCloser := logging.Setup(cfg)
	defer logCloser.Close()

	// Stop on Ctrl-C or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("store setup failed", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	slog.Info("Store ready", "store", cfg.StoreType)

	dir := auth.NewDirectory(cfg.Users)
	h := handlers.NewSessionHandler(store.NewRegistryRepository(backend), dir, cfg, nil)
	r := router.NewRouter(h)

	err = console.New(r, dir, os.Stdin, os.Stdout).Run(ctx)
	if err != nil && err != context.Canceled {
		slog.Error("Console closed", "error", err)
	} else {
		slog.Info("Console closed")
	}
}

func openStore(ctx context.Context, cfg cliparse.Config) (store.Store, error) {
	switch cfg.StoreType {
	case "memory":
		return store.NewMemory(), nil
	case "sqlite", "postgres":
		conn, err := db.Open(cfg.StoreType, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("schema creation failed: %w", err)
		}
		return db.NewKV(conn, cfg.MaxRetries), nil
	case "redis":
		return store.NewRedis(ctx, cfg.RedisURL, store.DefaultRedisPrefix, cfg.MaxRetries)
	default:
		return nil, fmt.Errorf("unsupported store type %q", cfg.StoreType)
	}
}
