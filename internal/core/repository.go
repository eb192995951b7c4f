package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// ItemRepository persists inventory items. Upserts are idempotent and replace the stored
// item with the same id. Missing ids are reported as ErrNotFound.
type ItemRepository interface {
	ListItems(ctx context.Context) ([]InventoryItem, error)
	GetItem(ctx context.Context, id string) (*InventoryItem, error)
	UpsertItem(ctx context.Context, item InventoryItem) (*InventoryItem, error)
	DeleteItem(ctx context.Context, id string) error

	// SetItemLocation replaces a single location's quantity, leaving the others untouched.
	SetItemLocation(ctx context.Context, id, location string, qty decimal.Decimal) error
	// AdjustItemLocation adds delta to a single location and returns the new quantity.
	AdjustItemLocation(ctx context.Context, id, location string, delta decimal.Decimal) (decimal.Decimal, error)
}

// OrderRepository persists purchase orders together with their lines.
type OrderRepository interface {
	ListOrders(ctx context.Context) ([]PurchaseOrder, error)
	GetOrder(ctx context.Context, id string) (*PurchaseOrder, error)
	UpsertOrder(ctx context.Context, order PurchaseOrder) (*PurchaseOrder, error)
	DeleteOrder(ctx context.Context, id string) error
}

// RecordRepository persists period records. ListRecords returns newest first.
type RecordRepository interface {
	ListRecords(ctx context.Context) ([]PeriodRecord, error)
	GetRecord(ctx context.Context, id string) (*PeriodRecord, error)
	UpsertRecord(ctx context.Context, rec PeriodRecord) (*PeriodRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	DeleteAllRecords(ctx context.Context) (int, error)
}

// Repository bundles the three collections.
type Repository interface {
	ItemRepository
	OrderRepository
	RecordRepository
}
