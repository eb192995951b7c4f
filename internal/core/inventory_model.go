package core

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// BulkMode selects what a bulk stock update does to each named item.
type BulkMode string

const (
	// BulkReset zeroes every location of the item.
	BulkReset BulkMode = "reset"
	// BulkSet overwrites the default location only.
	BulkSet BulkMode = "set"
	// BulkAdd adds to the default location only.
	BulkAdd BulkMode = "add"
)

// ParseBulkMode validates a mode received from an operator tool.
func ParseBulkMode(s string) (BulkMode, error) {
	switch m := BulkMode(s); m {
	case BulkReset, BulkSet, BulkAdd:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown bulk mode %q (use reset, set or add)", ErrValidation, s)
}

// ResolveBulkOp returns the operation a bulk entry performs. Scale and terminal tools
// send ("set", 0) to mean a full reset of the item, so that pair resolves to BulkReset.
// Every other combination is taken literally.
func ResolveBulkOp(mode BulkMode, qty decimal.Decimal) BulkMode {
	if mode == BulkSet && qty.IsZero() {
		return BulkReset
	}
	return mode
}

// BulkUpdate addresses an item by display name, as external tools do not know ids.
type BulkUpdate struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ResolveByName finds the item whose name equals name ignoring case and surrounding
// whitespace. When several items share a name the first in list order wins.
func ResolveByName(items []InventoryItem, name string) (*InventoryItem, bool) {
	key := normalizeName(name)
	if key == "" {
		return nil, false
	}
	for i := range items {
		if normalizeName(items[i].Name) == key {
			return &items[i], true
		}
	}
	return nil, false
}

// StockLedger is the single mutable source of truth for current quantities.
type StockLedger interface {
	ListItems(ctx context.Context) ([]InventoryItem, error)
	GetItem(ctx context.Context, id string) (*InventoryItem, error)

	// SaveItem creates an item (generating an id when empty) or replaces an existing one.
	// A nil stock map on update keeps the stored quantities.
	SaveItem(ctx context.Context, item InventoryItem) (*InventoryItem, error)

	// DeleteItem removes an item. Orders and records that reference it are not checked.
	DeleteItem(ctx context.Context, id string) error

	// SetLocationStock parses raw and writes it to one location. It returns false without
	// writing when the new value is within Epsilon of the stored one.
	SetLocationStock(ctx context.Context, id, location, raw string) (bool, error)

	// ResetLocations zeroes every location of one item.
	ResetLocations(ctx context.Context, id string) error

	// SetDefaultLocation overwrites the default location, preserving the others.
	SetDefaultLocation(ctx context.Context, id string, qty decimal.Decimal) error

	// AddToDefaultLocation adds qty to the default location.
	AddToDefaultLocation(ctx context.Context, id string, qty decimal.Decimal) error

	// BulkApply resolves each update by name and applies mode to it. Unknown names and
	// failing entries are reported in the result and skipped.
	BulkApply(ctx context.Context, updates []BulkUpdate, mode BulkMode) (*BatchResult, error)

	// ResetAll zeroes every location of every item.
	ResetAll(ctx context.Context) (*BatchResult, error)

	// SyncPriceFromOrder pushes a purchase price into the item. It reports whether the
	// stored price changed.
	SyncPriceFromOrder(ctx context.Context, id string, price decimal.Decimal) (bool, error)

	// FindByBarcode returns the item whose barcode equals code.
	FindByBarcode(ctx context.Context, code string) (*InventoryItem, error)

	// ReceiveScan adds a scanned quantity to the default location of the item with code.
	ReceiveScan(ctx context.Context, code, rawQty string) (*InventoryItem, error)
}
