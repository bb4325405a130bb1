package main

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/angelmondragon/shopnex/pkg/config"
	"github.com/angelmondragon/shopnex/pkg/db"
	"github.com/angelmondragon/shopnex/pkg/logger"
	"github.com/angelmondragon/shopnex/pkg/migrate"
	"github.com/angelmondragon/shopnex/pkg/redis"
	"github.com/angelmondragon/shopnex/pkg/storage"
	"github.com/angelmondragon/shopnex/pkg/storage/sqlslot"
)

// slotBackend is the storage the cart persists into plus whatever must be
// closed at shutdown.
type slotBackend struct {
	storage storage.Storage
	pinger  storage.Pinger
	closers []func() error
}

func (b *slotBackend) Close() error {
	var err error
	for i := len(b.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, b.closers[i]())
	}
	return err
}

func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*slotBackend, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendSQLite, config.StorageBackendPostgres:
		dbClient, err := db.New(ctx, cfg.Storage, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
			return nil, multierr.Append(fmt.Errorf("run migrations: %w", err), dbClient.Close())
		}
		slots, err := sqlslot.New(dbClient.DB())
		if err != nil {
			return nil, multierr.Append(err, dbClient.Close())
		}
		return &slotBackend{storage: slots, pinger: slots, closers: []func() error{dbClient.Close}}, nil

	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		return &slotBackend{storage: client, pinger: client, closers: []func() error{client.Close}}, nil

	case config.StorageBackendMemory:
		mem := storage.NewMemory(cfg.Storage.MemoryQuota)
		logg.Warn(logg.WithSlot(ctx, cfg.Storage.SlotName), "memory storage selected; the cart will not survive a restart")
		return &slotBackend{storage: mem, pinger: mem}, nil
	}
	return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}
