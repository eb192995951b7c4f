// restore-seed is a one-shot tool to restore the bar's standard catalog.
// Run it on a fresh database or when items have been accidentally deleted.
// Existing items keep their stock; names, categories and prices are reset.
//
// Usage: go run ./cmd/restore-seed
package main

import (
	"context"
	"os"

	"bar-inventory/internal/app"
	"bar-inventory/internal/config"
	"bar-inventory/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger("info", "text").Fatalf("config: %v", err)
	}
	log := config.NewLogger(cfg.LogLevel, "text")

	ctx := context.Background()
	repo, closeRepo, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeRepo()

	res, err := app.New(repo, nil, log).RestoreSeed(ctx)
	if err != nil {
		config.LogError(log, "restore-seed", "main", "restore catalog", nil, err)
		closeRepo()
		os.Exit(1)
	}
	for _, f := range res.Failures {
		log.WithField("item", f.Key).Warn(f.Reason)
	}
	log.Infof("seed restored: %s", res.Summary())
	if !res.OK() {
		closeRepo()
		os.Exit(1)
	}
}
