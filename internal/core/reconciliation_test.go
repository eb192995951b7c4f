package core_test

import (
	"context"
	"errors"
	"testing"

	"bar-inventory/internal/core"

	"github.com/shopspring/decimal"
)

func findLine(t *testing.T, items []core.RecordItem, id string) core.RecordItem {
	t.Helper()
	for _, it := range items {
		if it.ItemID == id {
			return it
		}
	}
	t.Fatalf("No record line for %s", id)
	return core.RecordItem{}
}

// receivedOrder saves and receives an order of qty units of item.
func (f *fixture) receivedOrder(t *testing.T, itemID, qty string) core.PurchaseOrder {
	t.Helper()
	ctx := context.Background()
	o, err := f.orders.SaveOrder(ctx, core.PurchaseOrder{
		SupplierName: "Makro",
		Lines:        []core.OrderLine{{InventoryItemID: itemID, Quantity: dec(qty)}},
	})
	if err != nil {
		t.Fatalf("Failed to save order: %v", err)
	}
	o, err = f.orders.ReceiveOrder(ctx, o.ID)
	if err != nil {
		t.Fatalf("Failed to receive order: %v", err)
	}
	return *o
}

func TestCloseAnalysis_Consumption(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addItem(t, "a", "Absolut", "🧊 Vodka", "11.45", "10")

	if _, err := f.reconciler.CloseSnapshot(ctx, nil); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	order := f.receivedOrder(t, "a", "5")
	if _, err := f.ledger.SetLocationStock(ctx, "a", core.DefaultLocation, "8"); err != nil {
		t.Fatalf("Failed to count stock: %v", err)
	}

	preview, err := f.reconciler.Preview(ctx)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.Baseline == nil || preview.Baseline.Type != core.RecordSnapshot {
		t.Fatalf("Expected the snapshot as baseline, got %+v", preview.Baseline)
	}
	if got := findLine(t, preview.Items, "a").ConsumptionOrZero(); !got.Equal(dec("7")) {
		t.Errorf("Expected preview consumption 7, got %s", got)
	}

	res, err := f.reconciler.CloseAnalysis(ctx, core.AnalysisOptions{})
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	line := findLine(t, res.Record.Items, "a")
	checks := []struct {
		name string
		got  decimal.NullDecimal
		want string
	}{
		{"initial", line.InitialStock, "15"},
		{"pending", line.PendingStock, "5"},
		{"end", line.EndStock, "8"},
		{"consumption", line.Consumption, "7"},
	}
	for _, c := range checks {
		if !c.got.Valid || !c.got.Decimal.Equal(dec(c.want)) {
			t.Errorf("Expected %s %s, got %v", c.name, c.want, c.got)
		}
	}
	if len(res.Relevant) != 1 {
		t.Errorf("Expected 1 relevant line, got %d", len(res.Relevant))
	}
	if res.Archived.Applied != 1 {
		t.Errorf("Expected 1 archived order, got %d", res.Archived.Applied)
	}
	stored, _ := f.orders.GetOrder(ctx, order.ID)
	if stored.Status != core.OrderArchived {
		t.Errorf("Expected counted order to be archived, got %s", stored.Status)
	}
	if got := f.total(t, "a"); !got.Equal(dec("8")) {
		t.Errorf("Expected ledger untouched without reset, got %s", got)
	}

	// The analysis becomes the next baseline and the archived order no longer counts.
	preview, _ = f.reconciler.Preview(ctx)
	if got := findLine(t, preview.Items, "a").InitialStock.Decimal; !got.Equal(dec("8")) {
		t.Errorf("Expected next initial stock 8, got %s", got)
	}
}

func TestCloseAnalysis_LeavesPendingOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addItem(t, "a", "Absolut", "🧊 Vodka", "11.45", "2")
	pending, err := f.orders.SaveOrder(ctx, core.PurchaseOrder{
		SupplierName: "Makro",
		Lines:        []core.OrderLine{{InventoryItemID: "a", Quantity: dec("4")}},
	})
	if err != nil {
		t.Fatalf("Failed to save order: %v", err)
	}

	res, err := f.reconciler.CloseAnalysis(ctx, core.AnalysisOptions{})
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if res.Archived.Attempted != 0 {
		t.Errorf("Expected no order to be archived, got %d", res.Archived.Attempted)
	}
	stored, _ := f.orders.GetOrder(ctx, pending.ID)
	if stored.Status != core.OrderPending {
		t.Errorf("Expected order to stay Pending, got %s", stored.Status)
	}
	line := findLine(t, res.Record.Items, "a")
	if !line.PendingStock.Decimal.IsZero() {
		t.Errorf("Expected Pending orders not to count, got %s", line.PendingStock.Decimal)
	}
}

func TestCloseAnalysis_MissingBaselineAndSurplus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addItem(t, "a", "Absolut", "🧊 Vodka", "11.45", "2")
	if _, err := f.reconciler.CloseSnapshot(ctx, nil); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	// Added after the snapshot: no baseline line.
	f.addItem(t, "b", "Beluga", "🧊 Vodka", "28.85", "3")
	f.receivedOrder(t, "b", "4")
	if _, err := f.ledger.SetLocationStock(ctx, "a", core.DefaultLocation, "5"); err != nil {
		t.Fatalf("Failed to count stock: %v", err)
	}

	res, err := f.reconciler.CloseAnalysis(ctx, core.AnalysisOptions{})
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	b := findLine(t, res.Record.Items, "b")
	if !b.InitialStock.Decimal.Equal(dec("4")) || !b.Consumption.Decimal.Equal(dec("1")) {
		t.Errorf("Expected initial 4 and consumption 1 for b, got %s and %s", b.InitialStock.Decimal, b.Consumption.Decimal)
	}
	a := findLine(t, res.Record.Items, "a")
	if !a.Consumption.Decimal.Equal(dec("-3")) {
		t.Errorf("Expected surplus of 3 for a, got %s", a.Consumption.Decimal)
	}
	if len(res.Surplus) != 1 || res.Surplus[0].ItemID != "a" {
		t.Errorf("Expected a as the only surplus line, got %+v", res.Surplus)
	}
	if len(res.Relevant) != 1 || res.Relevant[0].ItemID != "b" {
		t.Errorf("Expected b as the only relevant line, got %+v", res.Relevant)
	}
}

func TestCloseAnalysis_ResetLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addItem(t, "a", "Absolut", "🧊 Vodka", "11.45", "6")
	f.addItem(t, "b", "Beluga", "🧊 Vodka", "28.85", "1")

	res, err := f.reconciler.CloseAnalysis(ctx, core.AnalysisOptions{ResetLedger: true})
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if res.Reset == nil || res.Reset.Applied != 2 {
		t.Fatalf("Expected both items reset, got %+v", res.Reset)
	}
	for _, id := range []string{"a", "b"} {
		if got := f.total(t, id); !got.IsZero() {
			t.Errorf("Expected %s reset to zero, got %s", id, got)
		}
	}
	// The record keeps what was counted before the reset.
	if got := findLine(t, res.Record.Items, "a").EndStock.Decimal; !got.Equal(dec("6")) {
		t.Errorf("Expected recorded end stock 6, got %s", got)
	}
}

func TestCloseAnalysis_NoItems(t *testing.T) {
	f := newFixture(t)
	if _, err := f.reconciler.CloseAnalysis(context.Background(), core.AnalysisOptions{}); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestCloseSnapshot_Containers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addItem(t, "a", "Absolut", "🧊 Vodka", "11.45", "3")
	f.addItem(t, "c", "Cajas Vacias", "📦 Material", "0", "9")

	rec, err := f.reconciler.CloseSnapshot(ctx, []core.ContainerCount{
		{Brand: "Moritz", Count: dec("2")},
		{Brand: " Schweppes ", Count: dec("1")},
		{Brand: "Pepsi", Count: dec("0")},
	})
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if rec.Type != core.RecordSnapshot {
		t.Errorf("Expected snapshot, got %s", rec.Type)
	}
	for _, it := range rec.Items {
		if it.ItemID == "c" {
			t.Error("Expected the crate tally item to be replaced by container lines")
		}
		if !it.Consumption.Decimal.IsZero() {
			t.Errorf("Expected zero consumption in a snapshot, got %s for %s", it.Consumption.Decimal, it.Name)
		}
	}
	moritz := findLine(t, rec.Items, "box-Moritz")
	if !moritz.EndStock.Decimal.Equal(dec("48")) || moritz.Category != core.AuxiliaryCategory {
		t.Errorf("Expected 48 Moritz units in %s, got %s in %s", core.AuxiliaryCategory, moritz.EndStock.Decimal, moritz.Category)
	}
	if got := findLine(t, rec.Items, "box-Schweppes").EndStock.Decimal; !got.Equal(dec("28")) {
		t.Errorf("Expected 28 Schweppes units, got %s", got)
	}
	if len(rec.Items) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(rec.Items))
	}
}

func TestSmartReorder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.reconciler.SmartReorder(ctx); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("Expected insufficient data without an analysis, got %v", err)
	}

	f.addItem(t, "a", "Absolut", "🧊 Vodka", "11.45", "0")
	f.addItem(t, "b", "Beluga", "🧊 Vodka", "20", "0")
	f.receivedOrder(t, "a", "10")
	f.receivedOrder(t, "b", "2")
	if _, err := f.ledger.SetLocationStock(ctx, "a", core.DefaultLocation, "3"); err != nil {
		t.Fatalf("Failed to count stock: %v", err)
	}
	if _, err := f.reconciler.CloseAnalysis(ctx, core.AnalysisOptions{}); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// a consumed 7, b consumed 2. Restock b fully and a partially.
	if _, err := f.ledger.SetLocationStock(ctx, "a", core.DefaultLocation, "3,5"); err != nil {
		t.Fatalf("Failed to count stock: %v", err)
	}
	if _, err := f.ledger.SetLocationStock(ctx, "b", core.DefaultLocation, "2"); err != nil {
		t.Fatalf("Failed to count stock: %v", err)
	}

	plan, err := f.reconciler.SmartReorder(ctx)
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	if len(plan.Lines) != 1 || plan.Lines[0].ItemID != "a" {
		t.Fatalf("Expected a single line for a, got %+v", plan.Lines)
	}
	if !plan.Lines[0].Quantity.Equal(dec("4")) {
		t.Errorf("Expected ceil(3.5) = 4, got %s", plan.Lines[0].Quantity)
	}
	if !plan.Total.Equal(dec("45.8")) {
		t.Errorf("Expected total 45.80, got %s", plan.Total)
	}

	draft, err := f.reconciler.DraftReorder(ctx, "makro")
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}
	if draft.Status != core.OrderPending || len(draft.Lines) != 1 || !draft.TotalAmount.Equal(dec("45.8")) {
		t.Errorf("Expected a Pending draft of 45.80, got %+v", draft)
	}
}

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		consumption string
		want        bool
	}{
		{"0.0005", false},
		{"0.002", true},
		{"-4", false},
		{"1", true},
	}
	for _, tt := range tests {
		ri := core.RecordItem{Consumption: decimal.NewNullDecimal(dec(tt.consumption))}
		if got := core.IsRelevant(ri); got != tt.want {
			t.Errorf("IsRelevant(%s): expected %v, got %v", tt.consumption, tt.want, got)
		}
	}
	if core.IsRelevant(core.RecordItem{}) {
		t.Error("Expected a line without consumption not to be relevant")
	}
}

func TestRecordItemBaseline(t *testing.T) {
	tests := []struct {
		name string
		item core.RecordItem
		want string
	}{
		{"end stock wins", core.RecordItem{EndStock: decimal.NewNullDecimal(dec("4")), InitialStock: decimal.NewNullDecimal(dec("9"))}, "4"},
		{"falls back to initial", core.RecordItem{InitialStock: decimal.NewNullDecimal(dec("9"))}, "9"},
		{"defaults to zero", core.RecordItem{}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Baseline(); !got.Equal(dec(tt.want)) {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestUnitsPerContainer(t *testing.T) {
	if got := core.UnitsPerContainer("Coca Cola"); got != 24 {
		t.Errorf("Expected 24, got %d", got)
	}
	if got := core.UnitsPerContainer("SCHWEPPES"); got != 28 {
		t.Errorf("Expected 28, got %d", got)
	}
	if got := core.UnitsPerContainer("Unknown"); got != 24 {
		t.Errorf("Expected default 24, got %d", got)
	}
}
