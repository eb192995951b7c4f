package core_test

import (
	"context"
	"io"
	"testing"
	"time"

	"bar-inventory/internal/core"
	"bar-inventory/internal/store/memory"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fixture wires every service over one memory store.
type fixture struct {
	store      *memory.Store
	ledger     core.StockLedger
	orders     core.PurchaseOrderService
	history    core.HistoryService
	reconciler core.Reconciler
	clock      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := quietLogger()
	f := &fixture{store: memory.New(), clock: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	f.ledger = core.NewStockLedger(f.store, log)
	f.orders = core.NewPurchaseOrderService(f.store, f.ledger, log)
	f.history = core.NewHistoryService(f.store, log)
	f.reconciler = core.NewReconciler(f.ledger, f.orders, f.history, log, core.WithClock(func() time.Time {
		f.clock = f.clock.Add(time.Hour)
		return f.clock
	}))
	return f
}

// addItem stores an item with qty at the default location.
func (f *fixture) addItem(t *testing.T, id, name, category, price, qty string) core.InventoryItem {
	t.Helper()
	item, err := f.ledger.SaveItem(context.Background(), core.InventoryItem{
		ID:              id,
		Name:            name,
		Category:        category,
		UnitPrice:       dec(price),
		StockByLocation: map[string]decimal.Decimal{core.DefaultLocation: dec(qty)},
	})
	if err != nil {
		t.Fatalf("Failed to save item %s: %v", name, err)
	}
	return *item
}

func (f *fixture) total(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	item, err := f.ledger.GetItem(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to get item %s: %v", id, err)
	}
	return item.TotalStock()
}

// flakyItems wraps a memory store so that GetItem fails with err once armed.
type flakyItems struct {
	*memory.Store
	err error
}

func (f *flakyItems) GetItem(ctx context.Context, id string) (*core.InventoryItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.Store.GetItem(ctx, id)
}
