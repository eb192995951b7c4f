// verify-db applies pending migrations and checks that every inventory table is
// reachable, printing row counts.
//
// Usage: go run ./cmd/verify-db
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bar-inventory/internal/config"
	"bar-inventory/internal/db"
	"bar-inventory/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

var tables = []string{
	"inventory_items",
	"purchase_orders",
	"purchase_order_lines",
	"inventory_records",
	"schema_migrations",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger("info", "text").Fatalf("config: %v", err)
	}
	log := config.NewLogger(cfg.LogLevel, "text")
	if cfg.Store != config.StorePostgres {
		log.Fatalf("verify-db needs STORE=%s, got %s", config.StorePostgres, cfg.Store)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[CONNECT] %v", err)
	}
	defer pool.Close()
	log.Info("[CONNECT] success")

	applied, err := migrations.Apply(ctx, pool, log)
	if err != nil {
		config.LogError(log, "verify-db", "main", "apply migrations", nil, err)
		os.Exit(1)
	}
	log.WithField("applied", applied).Info("[MIGRATE] done")

	if err := report(ctx, pool, log); err != nil {
		config.LogError(log, "verify-db", "report", "count rows", nil, err)
		os.Exit(1)
	}
	log.Info("[DONE] database verified")
}

func report(ctx context.Context, pool *pgxpool.Pool, log logrus.FieldLogger) error {
	for _, table := range tables {
		var n int64
		if err := pool.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", table)).Scan(&n); err != nil {
			return fmt.Errorf("table %s: %w", table, err)
		}
		fmt.Printf("  %-22s %8d rows\n", table, n)
	}

	rows, err := pool.Query(ctx, "SELECT status, count(*) FROM purchase_orders GROUP BY status ORDER BY status")
	if err != nil {
		return fmt.Errorf("order status counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return fmt.Errorf("scan order status: %w", err)
		}
		fmt.Printf("  orders %-15s %8d\n", status, n)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var latest *time.Time
	if err := pool.QueryRow(ctx, "SELECT max(recorded_at) FROM inventory_records").Scan(&latest); err != nil {
		return fmt.Errorf("latest record: %w", err)
	}
	if latest == nil {
		log.Warn("no period records yet")
	} else {
		fmt.Printf("  latest record          %s\n", latest.Format(time.RFC3339))
	}
	return nil
}
