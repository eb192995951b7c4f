package core_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bar-inventory/internal/core"
	"bar-inventory/internal/store/memory"

	"github.com/shopspring/decimal"
)

func TestSaveItem_FillsEveryLocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.ledger.SaveItem(ctx, core.InventoryItem{Name: "  Absolut ", Category: "🧊 Vodka", UnitPrice: dec("11.45")})
	if err != nil {
		t.Fatalf("Failed to save item: %v", err)
	}
	if item.ID == "" {
		t.Fatal("Expected a generated id")
	}
	if item.Name != "Absolut" {
		t.Errorf("Expected trimmed name, got %q", item.Name)
	}
	if len(item.StockByLocation) != len(core.Locations) {
		t.Errorf("Expected %d locations, got %d", len(core.Locations), len(item.StockByLocation))
	}

	// A nil map on update keeps the stored quantities.
	f.addItem(t, "x1", "Beluga", "🧊 Vodka", "28.85", "4")
	updated, err := f.ledger.SaveItem(ctx, core.InventoryItem{ID: "x1", Name: "Beluga", UnitPrice: dec("30")})
	if err != nil {
		t.Fatalf("Failed to update item: %v", err)
	}
	if !updated.TotalStock().Equal(dec("4")) {
		t.Errorf("Expected stock 4 to survive update, got %s", updated.TotalStock())
	}
}

func TestSaveItem_LookupFailureKeepsStock(t *testing.T) {
	ctx := context.Background()
	repo := &flakyItems{Store: memory.New()}
	ledger := core.NewStockLedger(repo, quietLogger())

	if _, err := ledger.SaveItem(ctx, core.InventoryItem{
		ID:              "a",
		Name:            "Absolut",
		UnitPrice:       dec("11.45"),
		StockByLocation: map[string]decimal.Decimal{core.LocationNevera: dec("7")},
	}); err != nil {
		t.Fatalf("Failed to save item: %v", err)
	}

	repo.err = errors.New("connection reset")
	if _, err := ledger.SaveItem(ctx, core.InventoryItem{ID: "a", Name: "Absolut", UnitPrice: dec("12")}); err == nil {
		t.Fatal("Expected the lookup error to be returned")
	}

	repo.err = nil
	stored, err := ledger.GetItem(ctx, "a")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if !stored.TotalStock().Equal(dec("7")) {
		t.Errorf("Expected stock 7 to be untouched, got %s", stored.TotalStock())
	}
	if !stored.UnitPrice.Equal(dec("11.45")) {
		t.Errorf("Expected price 11.45 to be untouched, got %s", stored.UnitPrice)
	}
}

func TestSaveItem_Validation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		item core.InventoryItem
	}{
		{"empty name", core.InventoryItem{Name: "  "}},
		{"negative price", core.InventoryItem{Name: "A", UnitPrice: dec("-1")}},
		{"unknown location", core.InventoryItem{Name: "A", StockByLocation: map[string]decimal.Decimal{"Garaje": dec("1")}}},
		{"negative stock", core.InventoryItem{Name: "A", StockByLocation: map[string]decimal.Decimal{core.LocationRest: dec("-2")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.ledger.SaveItem(context.Background(), tt.item); !errors.Is(err, core.ErrValidation) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}

func TestSetLocationStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addItem(t, "i1", "Havana Club", "🥥 Ron", "19.22", "0")

	changed, err := f.ledger.SetLocationStock(ctx, "i1", core.LocationNevera, "2,5")
	if err != nil {
		t.Fatalf("Failed to set stock: %v", err)
	}
	if !changed {
		t.Error("Expected first write to change the ledger")
	}

	changed, err = f.ledger.SetLocationStock(ctx, "i1", core.LocationNevera, "2.50")
	if err != nil {
		t.Fatalf("Failed to set stock: %v", err)
	}
	if changed {
		t.Error("Expected an equal value to be a no-op")
	}

	if _, err := f.ledger.SetLocationStock(ctx, "i1", core.LocationNevera, "2,555"); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected validation error for three decimals, got %v", err)
	}
	if _, err := f.ledger.SetLocationStock(ctx, "i1", "Terraza", "1"); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected validation error for unknown location, got %v", err)
	}
	if _, err := f.ledger.SetLocationStock(ctx, "missing", core.LocationRest, "1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}

	item, _ := f.ledger.GetItem(ctx, "i1")
	if got := item.LocationStock(core.LocationNevera); !got.Equal(dec("2.5")) {
		t.Errorf("Expected 2.5 at Nevera, got %s", got)
	}
}

func TestBulkApply(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		mode       core.BulkMode
		qty        string
		wantNevera string
		wantTotal  string
	}{
		{"set zero resets every location", core.BulkSet, "0", "0", "0"},
		{"set overwrites only the default location", core.BulkSet, "6", "3", "9"},
		{"add increments the default location", core.BulkAdd, "6", "3", "14"},
		{"reset ignores the quantity", core.BulkReset, "6", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addItem(t, "m1", "Moritz", "🍻 Cerveza", "0.6", "5")
			if _, err := f.ledger.SetLocationStock(ctx, "m1", core.LocationNevera, "3"); err != nil {
				t.Fatalf("Failed to set stock: %v", err)
			}

			res, err := f.ledger.BulkApply(ctx, []core.BulkUpdate{{Name: " moritz ", Quantity: dec(tt.qty)}}, tt.mode)
			if err != nil {
				t.Fatalf("Bulk apply failed: %v", err)
			}
			if !res.OK() || res.Applied != 1 {
				t.Fatalf("Expected one applied entry, got %s", res.Summary())
			}
			item, _ := f.ledger.GetItem(ctx, "m1")
			if got := item.LocationStock(core.LocationNevera); !got.Equal(dec(tt.wantNevera)) {
				t.Errorf("Expected Nevera %s, got %s", tt.wantNevera, got)
			}
			if got := item.TotalStock(); !got.Equal(dec(tt.wantTotal)) {
				t.Errorf("Expected total %s, got %s", tt.wantTotal, got)
			}
		})
	}
}

func TestBulkApply_UnknownNameIsSkipped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addItem(t, "m1", "Moritz", "🍻 Cerveza", "0.6", "1")

	res, err := f.ledger.BulkApply(ctx, []core.BulkUpdate{
		{Name: "Moritz", Quantity: dec("2")},
		{Name: "Estrella", Quantity: dec("4")},
	}, core.BulkAdd)
	if err != nil {
		t.Fatalf("Bulk apply failed: %v", err)
	}
	if res.Applied != 1 || len(res.Failures) != 1 || res.Failures[0].Key != "Estrella" {
		t.Fatalf("Expected Estrella to fail alone, got %+v", res)
	}
	if got := f.total(t, "m1"); !got.Equal(dec("3")) {
		t.Errorf("Expected 3, got %s", got)
	}

	if _, err := f.ledger.BulkApply(ctx, nil, core.BulkMode("multiply")); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected validation error for unknown mode, got %v", err)
	}
}

func TestBulkApply_CountsEveryEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var updates []core.BulkUpdate
	for i := 0; i < 30; i++ {
		name := fmt.Sprintf("Item %02d", i)
		f.addItem(t, fmt.Sprintf("i%02d", i), name, "🍻 Cerveza", "1", "0")
		updates = append(updates, core.BulkUpdate{Name: name, Quantity: dec("2")})
	}
	for i := 0; i < 10; i++ {
		updates = append(updates, core.BulkUpdate{Name: fmt.Sprintf("Missing %02d", i), Quantity: dec("1")})
	}

	res, err := f.ledger.BulkApply(ctx, updates, core.BulkAdd)
	if err != nil {
		t.Fatalf("Bulk apply failed: %v", err)
	}
	if res.Attempted != 40 || res.Applied != 30 || len(res.Failures) != 10 {
		t.Fatalf("Expected 30 of 40 applied with 10 failures, got %s", res.Summary())
	}
	for i, fl := range res.Failures {
		if want := fmt.Sprintf("Missing %02d", i); fl.Key != want {
			t.Errorf("Expected failure %d to be %q, got %q", i, want, fl.Key)
		}
	}

	// BatchResult is a plain value.
	copied := *res
	if copied.OK() || copied.Summary() != res.Summary() {
		t.Errorf("Expected a copy to report the same outcome, got %s", copied.Summary())
	}
}

func TestResetAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addItem(t, "a", "Absolut", "🧊 Vodka", "1", "3")
	f.addItem(t, "b", "Beluga", "🧊 Vodka", "1", "7")

	res, err := f.ledger.ResetAll(ctx)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if res.Applied != 2 {
		t.Errorf("Expected 2 applied, got %d", res.Applied)
	}
	for _, id := range []string{"a", "b"} {
		if got := f.total(t, id); !got.IsZero() {
			t.Errorf("Expected %s to be zero, got %s", id, got)
		}
	}
}

func TestSyncPriceFromOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addItem(t, "a", "Absolut", "🧊 Vodka", "11.45", "0")

	changed, err := f.ledger.SyncPriceFromOrder(ctx, "a", dec("11.4505"))
	if err != nil || changed {
		t.Errorf("Expected no change within tolerance, got %v, %v", changed, err)
	}
	changed, err = f.ledger.SyncPriceFromOrder(ctx, "a", dec("12"))
	if err != nil || !changed {
		t.Fatalf("Expected price change, got %v, %v", changed, err)
	}
	item, _ := f.ledger.GetItem(ctx, "a")
	if !item.UnitPrice.Equal(dec("12")) {
		t.Errorf("Expected price 12, got %s", item.UnitPrice)
	}
}

func TestReceiveScan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.addItem(t, "", "Coca Cola", "🥤Refrescos y agua", "0.5", "10")
	item.Barcode = "8410000000001"
	if _, err := f.ledger.SaveItem(ctx, item); err != nil {
		t.Fatalf("Failed to set barcode: %v", err)
	}

	got, err := f.ledger.ReceiveScan(ctx, " 8410000000001 ", "24")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !got.LocationStock(core.DefaultLocation).Equal(dec("34")) {
		t.Errorf("Expected 34 at %s, got %s", core.DefaultLocation, got.LocationStock(core.DefaultLocation))
	}

	if _, err := f.ledger.ReceiveScan(ctx, "000", "1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Expected not found for unknown barcode, got %v", err)
	}
	if _, err := f.ledger.ReceiveScan(ctx, "8410000000001", "0"); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected validation error for zero quantity, got %v", err)
	}
}

func TestResolveByName(t *testing.T) {
	items := []core.InventoryItem{{ID: "1", Name: "Gin Mare"}, {ID: "2", Name: "gin mare"}}
	if it, ok := core.ResolveByName(items, " GIN MARE "); !ok || it.ID != "1" {
		t.Errorf("Expected first match, got %+v %v", it, ok)
	}
	if _, ok := core.ResolveByName(items, ""); ok {
		t.Error("Expected blank name not to resolve")
	}
}
