package core

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CapturedOrder is a candidate order read from a delivery note photo. Numbers are kept
// as printed and cleaned with CleanNumber.
type CapturedOrder struct {
	OrderDate    string         `json:"orderDate" jsonschema_description:"Issue date of the delivery note as YYYY-MM-DD, empty if unreadable"`
	SupplierName string         `json:"supplierName" jsonschema_description:"Name of the issuing company"`
	TotalAmount  string         `json:"totalAmount" jsonschema_description:"Net total before tax exactly as printed"`
	Items        []CapturedLine `json:"items"`
}

// CapturedLine is one row of a captured delivery note.
type CapturedLine struct {
	Name      string `json:"name" jsonschema_description:"Product name, using the exact name from the known product list when one matches"`
	Quantity  string `json:"quantity" jsonschema_description:"Units delivered; crates multiplied by units per crate"`
	UnitPrice string `json:"unitPrice" jsonschema_description:"Unit price before tax with up to 4 decimals, empty if not printed"`
	LinePrice string `json:"linePrice" jsonschema_description:"Line total before tax"`
}

// OrderCapturer reads a delivery note image into a candidate order. knownNames helps the
// reader reuse catalog names.
type OrderCapturer interface {
	CaptureOrder(ctx context.Context, image []byte, mimeType string, knownNames []string) (*CapturedOrder, error)
}

// CaptureMatch is the outcome of matching a captured order against the catalog.
type CaptureMatch struct {
	Order        PurchaseOrder   `json:"order"`
	PrintedTotal decimal.Decimal `json:"printed_total"`
	Unmatched    []string        `json:"unmatched,omitempty"`
}

// MatchCapturedItem returns the first item whose name contains the captured name,
// ignoring case.
func MatchCapturedItem(items []InventoryItem, name string) (*InventoryItem, bool) {
	key := normalizeName(name)
	if key == "" {
		return nil, false
	}
	for i := range items {
		if strings.Contains(normalizeName(items[i].Name), key) {
			return &items[i], true
		}
	}
	return nil, false
}

// CapturedUnitPrice prefers the printed unit price and otherwise derives it from the
// line total, keeping four decimals. A zero quantity yields 0.
func CapturedUnitPrice(line CapturedLine, qty decimal.Decimal) decimal.Decimal {
	if unit := CleanNumber(line.UnitPrice); unit.IsPositive() {
		return RoundUnitPrice(unit)
	}
	if qty.IsZero() {
		return decimal.Zero
	}
	return RoundUnitPrice(CleanNumber(line.LinePrice).Div(qty))
}

// MatchCapturedOrder maps a captured order onto catalog items. Lines whose name matches
// no item are dropped and listed in Unmatched. The result is a Pending candidate that
// has not been saved.
func MatchCapturedOrder(captured CapturedOrder, items []InventoryItem, today time.Time) CaptureMatch {
	m := CaptureMatch{
		Order: PurchaseOrder{
			OrderDate:    strings.TrimSpace(captured.OrderDate),
			SupplierName: NormalizeSupplierName(captured.SupplierName),
			Status:       OrderPending,
		},
		PrintedTotal: CleanNumber(captured.TotalAmount),
	}
	if _, err := time.Parse("2006-01-02", m.Order.OrderDate); err != nil {
		m.Order.OrderDate = today.Format("2006-01-02")
	}

	for _, line := range captured.Items {
		item, ok := MatchCapturedItem(items, line.Name)
		if !ok {
			m.Unmatched = append(m.Unmatched, line.Name)
			continue
		}
		qty := CleanNumber(line.Quantity)
		m.Order.Lines = append(m.Order.Lines, OrderLine{
			InventoryItemID: item.ID,
			Quantity:        RoundQuantity(qty),
			UnitPrice:       CapturedUnitPrice(line, qty),
		})
	}
	m.Order.TotalAmount = ComputeTotal(m.Order.Lines)
	return m
}
