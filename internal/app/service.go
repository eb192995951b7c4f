package app

import (
	"context"

	"bar-inventory/internal/core"
)

// Attachment is an uploaded delivery note photo.
type Attachment struct {
	MimeType string // "image/jpeg", "image/png", "image/webp"
	Data     []byte
}

// ApplicationService is the single interface all adapters (CLI, Web) call.
// Implementations contain no display logic of any kind.
type ApplicationService interface {
	// ── Stock ledger ──

	ListItems(ctx context.Context) (*ItemListResult, error)
	GetItem(ctx context.Context, id string) (*ItemResult, error)

	// SaveItem creates or replaces a catalog item.
	SaveItem(ctx context.Context, req SaveItemRequest) (*ItemResult, error)
	DeleteItem(ctx context.Context, id string) error

	// SetStock writes a typed quantity to one location of one item.
	SetStock(ctx context.Context, req SetStockRequest) (*StockChangeResult, error)

	// ResetItem zeroes every location of one item.
	ResetItem(ctx context.Context, id string) (*ItemResult, error)

	// BulkUpdate applies name-addressed counts from scales and terminals.
	BulkUpdate(ctx context.Context, req BulkUpdateRequest) (*core.BatchResult, error)

	// ResetAll zeroes the whole ledger.
	ResetAll(ctx context.Context) (*core.BatchResult, error)

	LookupBarcode(ctx context.Context, code string) (*ItemResult, error)

	// ScanReceive adds a scanned quantity to the default location.
	ScanReceive(ctx context.Context, req ScanRequest) (*ItemResult, error)

	// RestoreSeed upserts the built-in catalog. Existing items keep their stock.
	RestoreSeed(ctx context.Context) (*core.BatchResult, error)

	// ── Purchase orders ──

	// ListOrders returns orders newest first, optionally filtered by status.
	ListOrders(ctx context.Context, status string) (*OrderListResult, error)
	GetOrder(ctx context.Context, id string) (*OrderResult, error)

	// SaveOrder creates or edits a Pending order.
	SaveOrder(ctx context.Context, req SaveOrderRequest) (*OrderResult, error)

	// ReceiveOrder marks a Pending order Completed.
	ReceiveOrder(ctx context.Context, id string) (*OrderResult, error)

	// ArchiveOrder moves a Completed order to Archived.
	ArchiveOrder(ctx context.Context, id string) (*OrderResult, error)
	ArchiveCompleted(ctx context.Context) (*core.BatchResult, error)
	DeleteOrder(ctx context.Context, id string) error

	// CaptureOrder reads a delivery note photo into an unsaved Pending order.
	CaptureOrder(ctx context.Context, att Attachment) (*CaptureResult, error)

	// ── Reconciliation ──

	// PreviewAnalysis shows what an analysis close would record now.
	PreviewAnalysis(ctx context.Context) (*core.Preview, error)
	CloseSnapshot(ctx context.Context, req SnapshotRequest) (*RecordResult, error)
	CloseAnalysis(ctx context.Context, req AnalysisRequest) (*core.CloseResult, error)
	SmartReorder(ctx context.Context) (*core.ReorderPlan, error)
	DraftReorder(ctx context.Context, req DraftReorderRequest) (*OrderResult, error)

	// Stats values consumption of one analysis record, or of every analysis when
	// recordID is empty.
	Stats(ctx context.Context, recordID, category string) (*StatsResult, error)

	// ── History ──

	ListRecords(ctx context.Context, recordType string) (*RecordListResult, error)
	GetRecord(ctx context.Context, id string) (*RecordResult, error)
	DeleteRecord(ctx context.Context, id string) error
	DeleteAllRecords(ctx context.Context) (int, error)

	// ExportRecord renders a record as "csv" or "xlsx".
	ExportRecord(ctx context.Context, id, format string) (*ExportResult, error)
}
