package app

import (
	"bar-inventory/internal/core"

	"github.com/shopspring/decimal"
)

// ItemResult is returned by single-item operations.
type ItemResult struct {
	Item       *core.InventoryItem `json:"item"`
	TotalStock decimal.Decimal     `json:"total_stock"`
	TotalValue decimal.Decimal     `json:"total_value"`
}

// ItemListResult is returned by ListItems. Items are in category order.
type ItemListResult struct {
	Items      []core.InventoryItem `json:"items"`
	TotalValue decimal.Decimal      `json:"total_value"`
}

// StockChangeResult reports a single location edit. Changed is false when the new
// value matched the stored one and nothing was written.
type StockChangeResult struct {
	Changed bool                `json:"changed"`
	Item    *core.InventoryItem `json:"item"`
}

// OrderResult is returned by order lifecycle operations.
type OrderResult struct {
	Order *core.PurchaseOrder `json:"order"`
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Orders []core.PurchaseOrder `json:"orders"`
}

// CaptureResult is an unsaved order read from a photo. Mismatch is set when the
// computed total differs from the printed one.
type CaptureResult struct {
	core.CaptureMatch
	Mismatch bool `json:"mismatch"`
}

// RecordResult is returned by single-record operations.
type RecordResult struct {
	Record   *core.PeriodRecord `json:"record"`
	Relevant []core.RecordItem  `json:"relevant"`
}

// RecordListResult is returned by ListRecords, newest first.
type RecordListResult struct {
	Records []core.PeriodRecord `json:"records"`
}

// StatsResult is the valued consumption of the selected analysis records.
type StatsResult struct {
	Records int `json:"records"`
	core.ConsumptionStats
}

// ExportResult is a rendered download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}
