package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the purchase order lifecycle state.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCompleted OrderStatus = "Completed"
	OrderArchived  OrderStatus = "Archived"
)

// orderTransitions lists the single forward step allowed from each state.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderPending:   OrderCompleted,
	OrderCompleted: OrderArchived,
}

// CanTransitionTo reports whether next directly follows s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return orderTransitions[s] == next
}

// PurchaseOrder represents a supplier order header with its lines.
type PurchaseOrder struct {
	ID           string          `json:"id"`
	OrderDate    string          `json:"order_date"` // YYYY-MM-DD
	DeliveryDate *string         `json:"delivery_date,omitempty"`
	SupplierName string          `json:"supplier_name"`
	Status       OrderStatus     `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	Lines        []OrderLine     `json:"lines"`
}

// OrderLine is one item on a purchase order. UnitPrice excludes tax.
type OrderLine struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// Valid reports whether the line counts toward totals and reconciliation.
func (l OrderLine) Valid() bool {
	return l.InventoryItemID != "" && l.Quantity.GreaterThan(Epsilon)
}

// ComputeTotal returns round2(Σ quantity × unit price) over valid lines.
func ComputeTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Valid() {
			total = total.Add(l.Quantity.Mul(l.UnitPrice))
		}
	}
	return RoundCurrency(total)
}

// PendingByItem sums quantities of Completed orders per item id. Pending and Archived
// orders are not incoming stock.
func PendingByItem(orders []PurchaseOrder) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, o := range orders {
		if o.Status != OrderCompleted {
			continue
		}
		for _, l := range o.Lines {
			if !l.Valid() {
				continue
			}
			out[l.InventoryItemID] = out[l.InventoryItemID].Add(l.Quantity)
		}
	}
	return out
}

// PurchaseOrderService tracks supplier orders through Pending → Completed → Archived.
type PurchaseOrderService interface {
	// SaveOrder validates and stores a Pending order, syncing line prices into the ledger.
	// Completed and Archived orders cannot be re-saved.
	SaveOrder(ctx context.Context, order PurchaseOrder) (*PurchaseOrder, error)

	// ReceiveOrder marks a Pending order Completed and stamps the delivery date.
	ReceiveOrder(ctx context.Context, id string) (*PurchaseOrder, error)

	// ArchiveOrder moves a Completed order to Archived.
	ArchiveOrder(ctx context.Context, id string) (*PurchaseOrder, error)

	// ArchiveCompleted archives every Completed order, attempting each independently.
	ArchiveCompleted(ctx context.Context) (*BatchResult, error)

	// PendingByItem returns incoming quantities from Completed orders keyed by item id.
	PendingByItem(ctx context.Context) (map[string]decimal.Decimal, error)

	GetOrder(ctx context.Context, id string) (*PurchaseOrder, error)

	// ListOrders returns orders newest first. An empty status returns all orders.
	ListOrders(ctx context.Context, status OrderStatus) ([]PurchaseOrder, error)

	DeleteOrder(ctx context.Context, id string) error
}
