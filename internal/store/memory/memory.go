// Package memory is an in-process persistence collaborator used by tests and by
// STORE=memory deployments.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bar-inventory/internal/core"

	"github.com/shopspring/decimal"
)

// Store keeps items, orders and records in maps guarded by one RWMutex. Values are
// copied on the way in and out so callers never share state with the store.
type Store struct {
	mu      sync.RWMutex
	items   map[string]core.InventoryItem
	orders  map[string]core.PurchaseOrder
	records map[string]core.PeriodRecord
}

var _ core.Repository = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{
		items:   map[string]core.InventoryItem{},
		orders:  map[string]core.PurchaseOrder{},
		records: map[string]core.PeriodRecord{},
	}
}

// ── Items ─────────────────────────────────────────────────────────────────────

func (s *Store) ListItems(_ context.Context) ([]core.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.InventoryItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it.Clone())
	}
	core.SortInventoryItems(out)
	return out, nil
}

func (s *Store) GetItem(_ context.Context, id string) (*core.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("inventory item %s: %w", id, core.ErrNotFound)
	}
	c := it.Clone()
	return &c, nil
}

func (s *Store) UpsertItem(_ context.Context, item core.InventoryItem) (*core.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item.Clone()
	c := item.Clone()
	return &c, nil
}

func (s *Store) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("inventory item %s: %w", id, core.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}

func (s *Store) SetItemLocation(_ context.Context, id, location string, qty decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return fmt.Errorf("inventory item %s: %w", id, core.ErrNotFound)
	}
	it = it.Clone()
	it.StockByLocation[location] = qty
	s.items[id] = it
	return nil
}

func (s *Store) AdjustItemLocation(_ context.Context, id, location string, delta decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("inventory item %s: %w", id, core.ErrNotFound)
	}
	it = it.Clone()
	next := it.StockByLocation[location].Add(delta)
	it.StockByLocation[location] = next
	s.items[id] = it
	return next, nil
}

// ── Orders ────────────────────────────────────────────────────────────────────

func cloneOrder(o core.PurchaseOrder) core.PurchaseOrder {
	o.Lines = append([]core.OrderLine(nil), o.Lines...)
	if o.DeliveryDate != nil {
		d := *o.DeliveryDate
		o.DeliveryDate = &d
	}
	return o
}

func (s *Store) ListOrders(_ context.Context) ([]core.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.PurchaseOrder, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetOrder(_ context.Context, id string) (*core.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("purchase order %s: %w", id, core.ErrNotFound)
	}
	c := cloneOrder(o)
	return &c, nil
}

func (s *Store) UpsertOrder(_ context.Context, order core.PurchaseOrder) (*core.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = cloneOrder(order)
	c := cloneOrder(order)
	return &c, nil
}

func (s *Store) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return fmt.Errorf("purchase order %s: %w", id, core.ErrNotFound)
	}
	delete(s.orders, id)
	return nil
}

// ── Records ───────────────────────────────────────────────────────────────────

func cloneRecord(r core.PeriodRecord) core.PeriodRecord {
	items := make([]core.RecordItem, len(r.Items))
	for i, it := range r.Items {
		if it.StockByLocationSnapshot != nil {
			m := make(map[string]decimal.Decimal, len(it.StockByLocationSnapshot))
			for k, v := range it.StockByLocationSnapshot {
				m[k] = v
			}
			it.StockByLocationSnapshot = m
		}
		items[i] = it
	}
	r.Items = items
	return r
}

func (s *Store) ListRecords(_ context.Context) ([]core.PeriodRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.PeriodRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, cloneRecord(r))
	}
	core.SortRecords(out)
	return out, nil
}

func (s *Store) GetRecord(_ context.Context, id string) (*core.PeriodRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id, core.ErrNotFound)
	}
	c := cloneRecord(r)
	return &c, nil
}

func (s *Store) UpsertRecord(_ context.Context, rec core.PeriodRecord) (*core.PeriodRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = cloneRecord(rec)
	c := cloneRecord(rec)
	return &c, nil
}

func (s *Store) DeleteRecord(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("record %s: %w", id, core.ErrNotFound)
	}
	delete(s.records, id)
	return nil
}

func (s *Store) DeleteAllRecords(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.records)
	s.records = map[string]core.PeriodRecord{}
	return n, nil
}
