// Package app wires configuration into the running services shared by the
// API server and the terminal client.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/collecta/internal/config"
	"github.com/MrJamesThe3rd/collecta/internal/database"
	"github.com/MrJamesThe3rd/collecta/internal/docstore"
	"github.com/MrJamesThe3rd/collecta/internal/export"
	"github.com/MrJamesThe3rd/collecta/internal/importer"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
	"github.com/MrJamesThe3rd/collecta/internal/tracker/store"
)

type App struct {
	Tracker *tracker.Service
	Export  *export.Service

	closers []io.Closer
}

// New opens the configured document store, loads the tracker state from it
// and prepares the export service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	backend, err := a.openBackend(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Tracker = tracker.NewService(store.New(backend), importer.NewService(nil))

	if err := a.Tracker.Load(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("load tracker state: %w", err)
	}

	var objects export.ObjectStore

	if cfg.StorageEnabled() {
		s3, err := export.NewS3Store(export.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKey,
			SecretAccessKey: cfg.S3.SecretKey,
			Bucket:          cfg.S3.Bucket,
			UseSSL:          cfg.S3.UseSSL,
			Region:          cfg.S3.Region,
			Prefix:          cfg.S3.Prefix,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create object store: %w", err)
		}

		objects = s3
	}

	a.Export = export.NewService(objects, cfg.S3.LinkTTL)

	return a, nil
}

func (a *App) openBackend(ctx context.Context, cfg *config.Config) (docstore.Backend, error) {
	var (
		backend docstore.Backend
		err     error
	)

	switch cfg.Store.Driver {
	case config.StoreMemory:
		backend = docstore.NewMemory()
	case config.StoreFile:
		backend, err = docstore.NewFile(cfg.Store.Dir)
	case config.StoreRedis:
		backend, err = docstore.NewRedis(docstore.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
			Timeout:  cfg.Redis.Timeout,
		})
	case config.StorePostgres:
		backend, err = a.openSQL(ctx, database.DriverPostgres, cfg.ConnectionString())
	case config.StoreSQLite:
		if err = os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0o755); err == nil {
			backend, err = a.openSQL(ctx, database.DriverSQLite, cfg.SQLite.Path)
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	a.closers = append(a.closers, backend)

	slog.Info("document store ready", "driver", cfg.Store.Driver)

	return backend, nil
}

func (a *App) openSQL(ctx context.Context, driver, dsn string) (docstore.Backend, error) {
	db, err := database.New(driver, dsn)
	if err != nil {
		return nil, err
	}

	backend, err := docstore.NewSQL(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return backend, nil
}

// Close releases the store connection.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			slog.Error("failed to close resource", "error", err)
		}
	}

	a.closers = nil
}
