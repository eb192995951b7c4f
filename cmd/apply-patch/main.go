// apply-patch runs one ad hoc SQL file in a transaction, outside the versioned
// migrations. Use it for data fixes such as bulk price corrections.
//
// Usage: go run ./cmd/apply-patch fixes/2025-03-prices.sql
package main

import (
	"context"
	"os"

	"bar-inventory/internal/config"
	"bar-inventory/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger("info", "text").Fatalf("config: %v", err)
	}
	log := config.NewLogger(cfg.LogLevel, "text")
	if len(os.Args) < 2 {
		log.Fatal("Usage: apply-patch <file.sql>")
	}

	sqlFile, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read sql file: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, string(sqlFile))
	if err != nil {
		config.LogError(log, "apply-patch", "main", os.Args[1], nil, err)
		tx.Rollback(ctx)
		pool.Close()
		os.Exit(1)
	}
	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}
	log.WithField("file", os.Args[1]).WithField("rows", tag.RowsAffected()).Info("patch applied")
}
