package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Physical storage points, in export order.
const (
	LocationRest    = "Rest"
	LocationNevera  = "Nevera"
	LocationB1      = "B1"
	LocationOficeB1 = "Ofice B1"
	LocationB2      = "B2"
	LocationOficeB2 = "Ofice B2"
	LocationB3      = "B3"
	LocationOficeB3 = "Ofice B3"
	LocationB4      = "B4"
	LocationOficeB4 = "Ofice B4"
	LocationAlmacen = "Almacén"
)

// DefaultLocation is the staging location that receives deliveries, scans and bulk counts.
const DefaultLocation = LocationAlmacen

// Locations lists every known location in the fixed order used by exports.
var Locations = []string{
	LocationRest,
	LocationNevera,
	LocationB1,
	LocationOficeB1,
	LocationB2,
	LocationOficeB2,
	LocationB3,
	LocationOficeB3,
	LocationB4,
	LocationOficeB4,
	LocationAlmacen,
}

// IsKnownLocation reports whether name is one of Locations.
func IsKnownLocation(name string) bool {
	for _, l := range Locations {
		if l == name {
			return true
		}
	}
	return false
}

// InventoryItem is one stocked product with a quantity per location.
type InventoryItem struct {
	ID              string                     `json:"id"`
	Name            string                     `json:"name"`
	Category        string                     `json:"category"`
	Barcode         string                     `json:"barcode,omitempty"`
	UnitPrice       decimal.Decimal            `json:"unit_price"` // excluding tax
	StockByLocation map[string]decimal.Decimal `json:"stock_by_location"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// TotalStock is the sum of all location quantities.
func (i InventoryItem) TotalStock() decimal.Decimal {
	total := decimal.Zero
	for _, q := range i.StockByLocation {
		total = total.Add(q)
	}
	return total
}

// TotalValue is TotalStock times the unit price.
func (i InventoryItem) TotalValue() decimal.Decimal {
	return i.TotalStock().Mul(i.UnitPrice)
}

// LocationStock returns the quantity held at location, 0 when absent.
func (i InventoryItem) LocationStock(location string) decimal.Decimal {
	return i.StockByLocation[location]
}

// Clone returns a copy whose location map can be mutated independently.
func (i InventoryItem) Clone() InventoryItem {
	out := i
	out.StockByLocation = make(map[string]decimal.Decimal, len(i.StockByLocation))
	for k, v := range i.StockByLocation {
		out.StockByLocation[k] = v
	}
	return out
}

// EmptyStock returns a location map with every known location set to zero.
func EmptyStock() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(Locations))
	for _, l := range Locations {
		m[l] = decimal.Zero
	}
	return m
}

// RecordType distinguishes the two kinds of period close.
type RecordType string

const (
	RecordSnapshot RecordType = "snapshot"
	RecordAnalysis RecordType = "analysis"
)

// PeriodRecord is an immutable capture of the ledger at a period close.
type PeriodRecord struct {
	ID    string       `json:"id"`
	Date  time.Time    `json:"date"`
	Label string       `json:"label"`
	Type  RecordType   `json:"type"`
	Items []RecordItem `json:"items"`
}

// Find returns the record line for itemID.
func (r PeriodRecord) Find(itemID string) (RecordItem, bool) {
	for _, it := range r.Items {
		if it.ItemID == itemID {
			return it, true
		}
	}
	return RecordItem{}, false
}

// RecordItem is one item line of a PeriodRecord. Numeric fields are nullable because
// records written by older clients may omit them.
type RecordItem struct {
	ItemID                  string                     `json:"item_id"`
	Name                    string                     `json:"name"`
	Category                string                     `json:"category"`
	CurrentStock            decimal.NullDecimal        `json:"current_stock"`
	PendingStock            decimal.NullDecimal        `json:"pending_stock"`
	InitialStock            decimal.NullDecimal        `json:"initial_stock"`
	EndStock                decimal.NullDecimal        `json:"end_stock"`
	Consumption             decimal.NullDecimal        `json:"consumption"`
	StockByLocationSnapshot map[string]decimal.Decimal `json:"stock_by_location_snapshot,omitempty"`
	UnitPrice               decimal.Decimal            `json:"unit_price"`
}

// Baseline is the quantity the next period starts from: end stock, else initial stock, else 0.
func (ri RecordItem) Baseline() decimal.Decimal {
	if ri.EndStock.Valid {
		return ri.EndStock.Decimal
	}
	if ri.InitialStock.Valid {
		return ri.InitialStock.Decimal
	}
	return decimal.Zero
}

// ConsumptionOrZero returns the recorded consumption, 0 when absent.
func (ri RecordItem) ConsumptionOrZero() decimal.Decimal {
	if ri.Consumption.Valid {
		return ri.Consumption.Decimal
	}
	return decimal.Zero
}

// IsAuxiliary reports whether the line is a side-channel tally rather than a stocked item.
func (ri RecordItem) IsAuxiliary() bool {
	return ri.Category == AuxiliaryCategory
}

func known(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}

// normalizeName is the comparison key for name lookups.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
