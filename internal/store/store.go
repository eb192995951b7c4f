// Package store selects the persistence collaborator named by configuration.
package store

import (
	"context"

	"bar-inventory/internal/config"
	"bar-inventory/internal/core"
	"bar-inventory/internal/db"
	"bar-inventory/internal/store/memory"
	"bar-inventory/internal/store/postgres"

	"github.com/sirupsen/logrus"
)

// Open returns the configured repository and a function releasing its resources.
// The postgres backend is migrated before it is returned.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (core.Repository, func(), error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using in-memory store: data is lost on exit")
		return memory.New(), func() {}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(ctx, pool, log); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return postgres.New(pool), pool.Close, nil
}
