package postgres_test

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"bar-inventory/internal/core"
	"bar-inventory/internal/db"
	"bar-inventory/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func setupTestDB(t *testing.T) (*pgxpool.Pool, *postgres.Store) {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("Unable to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	if err := postgres.Migrate(ctx, pool, log); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE inventory_items, purchase_orders, purchase_order_lines, inventory_records CASCADE`); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
	return pool, postgres.New(pool)
}

func TestPostgres_Items(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	stock := core.EmptyStock()
	stock[core.LocationNevera] = decimal.RequireFromString("2.5")
	saved, err := s.UpsertItem(ctx, core.InventoryItem{
		ID: "a1", Name: "Absolut", Category: "🧊 Vodka", Barcode: "841", UnitPrice: decimal.RequireFromString("11.45"), StockByLocation: stock,
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !saved.LocationStock(core.LocationNevera).Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("Expected 2.5 at Nevera, got %s", saved.LocationStock(core.LocationNevera))
	}

	if err := s.SetItemLocation(ctx, "a1", core.LocationAlmacen, decimal.NewFromInt(4)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	next, err := s.AdjustItemLocation(ctx, "a1", core.LocationAlmacen, decimal.RequireFromString("1.25"))
	if err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if !next.Equal(decimal.RequireFromString("5.25")) {
		t.Errorf("Expected 5.25, got %s", next)
	}

	got, err := s.GetItem(ctx, "a1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.TotalStock().Equal(decimal.RequireFromString("7.75")) {
		t.Errorf("Expected total 7.75, got %s", got.TotalStock())
	}
	if !got.UnitPrice.Equal(decimal.RequireFromString("11.45")) || got.Barcode != "841" {
		t.Errorf("Expected price and barcode to round trip, got %s %q", got.UnitPrice, got.Barcode)
	}

	if err := s.DeleteItem(ctx, "a1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.GetItem(ctx, "a1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
	if err := s.SetItemLocation(ctx, "a1", core.LocationRest, decimal.Zero); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestPostgres_Orders(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	order := core.PurchaseOrder{
		ID:           "o1",
		OrderDate:    "2026-03-01",
		SupplierName: "Makro",
		Status:       core.OrderPending,
		TotalAmount:  decimal.RequireFromString("13.2"),
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
		Lines: []core.OrderLine{
			{InventoryItemID: "a1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("1.1")},
			{InventoryItemID: "b1", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("3.6666")},
		},
	}
	if _, err := s.UpsertOrder(ctx, order); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	delivered := "2026-03-02"
	order.Status = core.OrderCompleted
	order.DeliveryDate = &delivered
	order.Lines = order.Lines[:1]
	got, err := s.UpsertOrder(ctx, order)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Status != core.OrderCompleted || got.DeliveryDate == nil || *got.DeliveryDate != delivered {
		t.Errorf("Expected Completed on %s, got %s %v", delivered, got.Status, got.DeliveryDate)
	}
	if len(got.Lines) != 1 || got.Lines[0].InventoryItemID != "a1" {
		t.Errorf("Expected lines to be replaced, got %+v", got.Lines)
	}

	all, err := s.ListOrders(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("Expected one order, got %d, %v", len(all), err)
	}

	if err := s.DeleteOrder(ctx, "o1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.DeleteOrder(ctx, "o1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestPostgres_Records(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	rec := core.PeriodRecord{
		ID:    "r1",
		Date:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Label: "Análisis (01/03/2026)",
		Type:  core.RecordAnalysis,
		Items: []core.RecordItem{{
			ItemID:      "a1",
			Name:        "Absolut",
			Category:    "🧊 Vodka",
			EndStock:    decimal.NewNullDecimal(decimal.NewFromInt(8)),
			Consumption: decimal.NewNullDecimal(decimal.NewFromInt(7)),
		}},
	}
	if _, err := s.UpsertRecord(ctx, rec); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := s.GetRecord(ctx, "r1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Type != core.RecordAnalysis || len(got.Items) != 1 {
		t.Fatalf("Expected the analysis to round trip, got %+v", got)
	}
	if got.Items[0].InitialStock.Valid {
		t.Error("Expected a missing initial stock to stay null")
	}
	if !got.Items[0].Consumption.Decimal.Equal(decimal.NewFromInt(7)) {
		t.Errorf("Expected consumption 7, got %s", got.Items[0].Consumption.Decimal)
	}

	n, err := s.DeleteAllRecords(ctx)
	if err != nil || n != 1 {
		t.Errorf("Expected 1 deleted, got %d, %v", n, err)
	}
	if _, err := s.GetRecord(ctx, "r1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
}
