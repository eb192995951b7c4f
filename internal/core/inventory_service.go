package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type stockLedger struct {
	repo ItemRepository
	log  logrus.FieldLogger
}

// NewStockLedger constructs a StockLedger over repo.
func NewStockLedger(repo ItemRepository, log logrus.FieldLogger) StockLedger {
	return &stockLedger{repo: repo, log: log.WithField("module", "stock_ledger")}
}

// ── Items ─────────────────────────────────────────────────────────────────────

func (s *stockLedger) ListItems(ctx context.Context) ([]InventoryItem, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *stockLedger) GetItem(ctx context.Context, id string) (*InventoryItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	return item, nil
}

func (s *stockLedger) SaveItem(ctx context.Context, item InventoryItem) (*InventoryItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	item.Barcode = strings.TrimSpace(item.Barcode)
	if item.Name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrValidation)
	}
	if item.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price cannot be negative", ErrValidation)
	}
	for loc, qty := range item.StockByLocation {
		if !IsKnownLocation(loc) {
			return nil, fmt.Errorf("%w: unknown location %q", ErrValidation, loc)
		}
		if qty.IsNegative() {
			return nil, fmt.Errorf("%w: quantity at %s cannot be negative", ErrValidation, loc)
		}
	}

	stock := EmptyStock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	} else if item.StockByLocation == nil {
		existing, err := s.repo.GetItem(ctx, item.ID)
		switch {
		case err == nil:
			stock = existing.Clone().StockByLocation
		case !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("load item %s: %w", item.ID, err)
		}
	}
	for loc, qty := range item.StockByLocation {
		stock[loc] = qty
	}
	item.StockByLocation = stock
	item.UpdatedAt = time.Now().UTC()

	saved, err := s.repo.UpsertItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("save item %q: %w", item.Name, err)
	}
	return saved, nil
}

func (s *stockLedger) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// ── Single-item stock edits ───────────────────────────────────────────────────

func (s *stockLedger) SetLocationStock(ctx context.Context, id, location, raw string) (bool, error) {
	if !IsKnownLocation(location) {
		return false, fmt.Errorf("%w: unknown location %q", ErrValidation, location)
	}
	qty, err := ParseQuantity(raw)
	if err != nil {
		return false, err
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return false, err
	}
	if !Differs(qty, item.LocationStock(location)) {
		return false, nil
	}
	if err := s.repo.SetItemLocation(ctx, id, location, qty); err != nil {
		return false, fmt.Errorf("set %s stock for item %s: %w", location, id, err)
	}
	return true, nil
}

func (s *stockLedger) ResetLocations(ctx context.Context, id string) error {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}
	reset := item.Clone()
	for loc := range reset.StockByLocation {
		reset.StockByLocation[loc] = decimal.Zero
	}
	for _, loc := range Locations {
		reset.StockByLocation[loc] = decimal.Zero
	}
	reset.UpdatedAt = time.Now().UTC()
	if _, err := s.repo.UpsertItem(ctx, reset); err != nil {
		return fmt.Errorf("reset item %s: %w", id, err)
	}
	return nil
}

func (s *stockLedger) SetDefaultLocation(ctx context.Context, id string, qty decimal.Decimal) error {
	if qty.IsNegative() {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if err := s.repo.SetItemLocation(ctx, id, DefaultLocation, qty); err != nil {
		return fmt.Errorf("set %s stock for item %s: %w", DefaultLocation, id, err)
	}
	return nil
}

func (s *stockLedger) AddToDefaultLocation(ctx context.Context, id string, qty decimal.Decimal) error {
	if qty.IsNegative() {
		return fmt.Errorf("%w: quantity to add cannot be negative", ErrValidation)
	}
	if _, err := s.repo.AdjustItemLocation(ctx, id, DefaultLocation, qty); err != nil {
		return fmt.Errorf("add to %s stock for item %s: %w", DefaultLocation, id, err)
	}
	return nil
}

// ── Bulk operations ───────────────────────────────────────────────────────────

func (s *stockLedger) BulkApply(ctx context.Context, updates []BulkUpdate, mode BulkMode) (*BatchResult, error) {
	if _, err := ParseBulkMode(string(mode)); err != nil {
		return nil, err
	}
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(updates))
	for i, u := range updates {
		keys[i] = u.Name
	}

	res := runBatch(ctx, keys, func(ctx context.Context, i int) error {
		u := updates[i]
		item, ok := ResolveByName(items, u.Name)
		if !ok {
			s.log.WithField("item", u.Name).Warn("bulk update skipped: no item with that name")
			return fmt.Errorf("%w: no item named %q", ErrNotFound, u.Name)
		}
		switch op := ResolveBulkOp(mode, u.Quantity); op {
		case BulkReset:
			if mode == BulkSet {
				s.log.WithField("item", item.Name).Debug("set to zero resolved as full reset")
			}
			return s.ResetLocations(ctx, item.ID)
		case BulkSet:
			return s.SetDefaultLocation(ctx, item.ID, u.Quantity)
		default:
			return s.AddToDefaultLocation(ctx, item.ID, u.Quantity)
		}
	})

	s.log.WithFields(logrus.Fields{"mode": mode, "applied": res.Applied, "failed": len(res.Failures)}).
		Info("bulk stock update")
	return res, nil
}

func (s *stockLedger) ResetAll(ctx context.Context) (*BatchResult, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Name
	}
	res := runBatch(ctx, keys, func(ctx context.Context, i int) error {
		return s.ResetLocations(ctx, items[i].ID)
	})
	s.log.WithFields(logrus.Fields{"applied": res.Applied, "failed": len(res.Failures)}).Info("stock ledger reset")
	return res, nil
}

// ── Price propagation ─────────────────────────────────────────────────────────

func (s *stockLedger) SyncPriceFromOrder(ctx context.Context, id string, price decimal.Decimal) (bool, error) {
	if price.IsNegative() {
		return false, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return false, err
	}
	if !Differs(price, item.UnitPrice) {
		return false, nil
	}
	old := item.UnitPrice
	item.UnitPrice = price
	item.UpdatedAt = time.Now().UTC()
	if _, err := s.repo.UpsertItem(ctx, *item); err != nil {
		return false, fmt.Errorf("update price for item %s: %w", id, err)
	}
	s.log.WithFields(logrus.Fields{"item": item.Name, "old": old.String(), "new": price.String()}).
		Info("price updated from purchase order")
	return true, nil
}

// ── Barcode ───────────────────────────────────────────────────────────────────

func (s *stockLedger) FindByBarcode(ctx context.Context, code string) (*InventoryItem, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: barcode is required", ErrValidation)
	}
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Barcode == code {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("barcode %s: %w", code, ErrNotFound)
}

func (s *stockLedger) ReceiveScan(ctx context.Context, code, rawQty string) (*InventoryItem, error) {
	item, err := s.FindByBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	qty, err := ParseQuantity(rawQty)
	if err != nil {
		return nil, err
	}
	if !Significant(qty) {
		return nil, fmt.Errorf("%w: scanned quantity must be greater than 0", ErrValidation)
	}
	if err := s.AddToDefaultLocation(ctx, item.ID, qty); err != nil {
		return nil, err
	}
	return s.GetItem(ctx, item.ID)
}
