package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bar-inventory/internal/core"
	"bar-inventory/internal/export"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrCaptureDisabled is returned by CaptureOrder when no capturer is configured.
var ErrCaptureDisabled = errors.New("order capture is not configured")

// captureTolerance is how far a computed order total may drift from the printed one.
var captureTolerance = decimal.New(5, -2)

type appService struct {
	ledger     core.StockLedger
	orders     core.PurchaseOrderService
	history    core.HistoryService
	reconciler core.Reconciler
	capturer   core.OrderCapturer
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewAppService constructs an appService that satisfies ApplicationService.
// capturer may be nil, in which case CaptureOrder returns ErrCaptureDisabled.
func NewAppService(
	ledger core.StockLedger,
	orders core.PurchaseOrderService,
	history core.HistoryService,
	reconciler core.Reconciler,
	capturer core.OrderCapturer,
	log logrus.FieldLogger,
) ApplicationService {
	return &appService{
		ledger:     ledger,
		orders:     orders,
		history:    history,
		reconciler: reconciler,
		capturer:   capturer,
		log:        log.WithField("module", "app"),
		now:        time.Now,
	}
}

// New wires the four components over one repository.
func New(repo core.Repository, capturer core.OrderCapturer, log logrus.FieldLogger) ApplicationService {
	ledger := core.NewStockLedger(repo, log)
	orders := core.NewPurchaseOrderService(repo, ledger, log)
	history := core.NewHistoryService(repo, log)
	reconciler := core.NewReconciler(ledger, orders, history, log)
	return NewAppService(ledger, orders, history, reconciler, capturer, log)
}

func itemResult(item *core.InventoryItem) *ItemResult {
	return &ItemResult{Item: item, TotalStock: item.TotalStock(), TotalValue: item.TotalValue()}
}

// ── Stock ledger ──────────────────────────────────────────────────────────────

func (s *appService) ListItems(ctx context.Context) (*ItemListResult, error) {
	items, err := s.ledger.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	core.SortInventoryItems(items)
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalValue())
	}
	return &ItemListResult{Items: items, TotalValue: core.RoundCurrency(total)}, nil
}

func (s *appService) GetItem(ctx context.Context, id string) (*ItemResult, error) {
	item, err := s.ledger.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return itemResult(item), nil
}

func (s *appService) SaveItem(ctx context.Context, req SaveItemRequest) (*ItemResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	item, err := s.ledger.SaveItem(ctx, core.InventoryItem{
		ID:              req.ID,
		Name:            req.Name,
		Category:        req.Category,
		Barcode:         req.Barcode,
		UnitPrice:       req.UnitPrice,
		StockByLocation: req.Stock,
	})
	if err != nil {
		return nil, err
	}
	return itemResult(item), nil
}

func (s *appService) DeleteItem(ctx context.Context, id string) error {
	return s.ledger.DeleteItem(ctx, id)
}

func (s *appService) SetStock(ctx context.Context, req SetStockRequest) (*StockChangeResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	changed, err := s.ledger.SetLocationStock(ctx, req.ItemID, req.Location, req.Quantity)
	if err != nil {
		return nil, err
	}
	item, err := s.ledger.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	return &StockChangeResult{Changed: changed, Item: item}, nil
}

func (s *appService) ResetItem(ctx context.Context, id string) (*ItemResult, error) {
	if err := s.ledger.ResetLocations(ctx, id); err != nil {
		return nil, err
	}
	return s.GetItem(ctx, id)
}

func (s *appService) BulkUpdate(ctx context.Context, req BulkUpdateRequest) (*core.BatchResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	mode, err := core.ParseBulkMode(req.Mode)
	if err != nil {
		return nil, err
	}
	return s.ledger.BulkApply(ctx, req.Updates, mode)
}

func (s *appService) ResetAll(ctx context.Context) (*core.BatchResult, error) {
	return s.ledger.ResetAll(ctx)
}

func (s *appService) LookupBarcode(ctx context.Context, code string) (*ItemResult, error) {
	item, err := s.ledger.FindByBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	return itemResult(item), nil
}

func (s *appService) ScanReceive(ctx context.Context, req ScanRequest) (*ItemResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	item, err := s.ledger.ReceiveScan(ctx, req.Barcode, req.Quantity)
	if err != nil {
		return nil, err
	}
	return itemResult(item), nil
}

func (s *appService) RestoreSeed(ctx context.Context) (*core.BatchResult, error) {
	seed := core.SeedCatalog()
	res := &core.BatchResult{Attempted: len(seed)}
	for _, item := range seed {
		item.StockByLocation = nil
		if _, err := s.ledger.SaveItem(ctx, item); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Failures = append(res.Failures, core.BatchFailure{Key: item.Name, Reason: err.Error()})
			continue
		}
		res.Applied++
	}
	s.log.WithFields(logrus.Fields{"applied": res.Applied, "failed": len(res.Failures)}).Info("seed catalog restored")
	return res, nil
}

// ── Purchase orders ───────────────────────────────────────────────────────────

func (s *appService) ListOrders(ctx context.Context, status string) (*OrderListResult, error) {
	st, err := parseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListOrders(ctx, st)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Orders: orders}, nil
}

func parseOrderStatus(raw string) (core.OrderStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	for _, st := range []core.OrderStatus{core.OrderPending, core.OrderCompleted, core.OrderArchived} {
		if strings.EqualFold(raw, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown order status %q", core.ErrValidation, raw)
}

func (s *appService) GetOrder(ctx context.Context, id string) (*OrderResult, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) SaveOrder(ctx context.Context, req SaveOrderRequest) (*OrderResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	order := core.PurchaseOrder{
		ID:           req.ID,
		OrderDate:    req.OrderDate,
		SupplierName: req.SupplierName,
	}
	for _, l := range req.Lines {
		order.Lines = append(order.Lines, core.OrderLine{
			InventoryItemID: l.InventoryItemID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
		})
	}
	saved, err := s.orders.SaveOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: saved}, nil
}

func (s *appService) ReceiveOrder(ctx context.Context, id string) (*OrderResult, error) {
	order, err := s.orders.ReceiveOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) ArchiveOrder(ctx context.Context, id string) (*OrderResult, error) {
	order, err := s.orders.ArchiveOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) ArchiveCompleted(ctx context.Context) (*core.BatchResult, error) {
	return s.orders.ArchiveCompleted(ctx)
}

func (s *appService) DeleteOrder(ctx context.Context, id string) error {
	return s.orders.DeleteOrder(ctx, id)
}

func (s *appService) CaptureOrder(ctx context.Context, att Attachment) (*CaptureResult, error) {
	if s.capturer == nil {
		return nil, ErrCaptureDisabled
	}
	if len(att.Data) == 0 {
		return nil, fmt.Errorf("%w: image is empty", core.ErrValidation)
	}
	items, err := s.ledger.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}

	captured, err := s.capturer.CaptureOrder(ctx, att.Data, att.MimeType, names)
	if err != nil {
		return nil, fmt.Errorf("capture order: %w", err)
	}
	match := core.MatchCapturedOrder(*captured, items, s.now())
	for _, name := range match.Unmatched {
		s.log.WithField("item", name).Warn("captured line matches no catalog item")
	}

	res := &CaptureResult{CaptureMatch: match}
	if match.PrintedTotal.IsPositive() {
		res.Mismatch = match.Order.TotalAmount.Sub(match.PrintedTotal).Abs().GreaterThan(captureTolerance)
	}
	return res, nil
}

// ── Reconciliation ────────────────────────────────────────────────────────────

func (s *appService) PreviewAnalysis(ctx context.Context) (*core.Preview, error) {
	return s.reconciler.Preview(ctx)
}

func (s *appService) CloseSnapshot(ctx context.Context, req SnapshotRequest) (*RecordResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	for _, c := range req.Containers {
		if strings.TrimSpace(c.Brand) == "" || c.Count.IsNegative() {
			return nil, fmt.Errorf("%w: container tallies need a brand and a count of at least 0", core.ErrValidation)
		}
	}
	rec, err := s.reconciler.CloseSnapshot(ctx, req.Containers)
	if err != nil {
		return nil, err
	}
	return &RecordResult{Record: rec, Relevant: core.RelevantItems(*rec)}, nil
}

func (s *appService) CloseAnalysis(ctx context.Context, req AnalysisRequest) (*core.CloseResult, error) {
	return s.reconciler.CloseAnalysis(ctx, core.AnalysisOptions{ResetLedger: req.ResetLedger})
}

func (s *appService) SmartReorder(ctx context.Context) (*core.ReorderPlan, error) {
	return s.reconciler.SmartReorder(ctx)
}

func (s *appService) DraftReorder(ctx context.Context, req DraftReorderRequest) (*OrderResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	order, err := s.reconciler.DraftReorder(ctx, req.SupplierName)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) Stats(ctx context.Context, recordID, category string) (*StatsResult, error) {
	var records []core.PeriodRecord
	if recordID != "" {
		rec, err := s.history.Get(ctx, recordID)
		if err != nil {
			return nil, err
		}
		if rec.Type != core.RecordAnalysis {
			return nil, fmt.Errorf("%w: record %s is not an analysis", core.ErrValidation, recordID)
		}
		records = []core.PeriodRecord{*rec}
	} else {
		all, err := s.history.List(ctx, core.RecordAnalysis)
		if err != nil {
			return nil, err
		}
		records = all
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no analysis records yet", core.ErrInsufficientData)
	}
	return &StatsResult{Records: len(records), ConsumptionStats: core.ComputeStats(records, category)}, nil
}

// ── History ───────────────────────────────────────────────────────────────────

func (s *appService) ListRecords(ctx context.Context, recordType string) (*RecordListResult, error) {
	typ := core.RecordType(strings.ToLower(strings.TrimSpace(recordType)))
	switch typ {
	case "", core.RecordAnalysis, core.RecordSnapshot:
	default:
		return nil, fmt.Errorf("%w: unknown record type %q", core.ErrValidation, recordType)
	}
	records, err := s.history.List(ctx, typ)
	if err != nil {
		return nil, err
	}
	return &RecordListResult{Records: records}, nil
}

func (s *appService) GetRecord(ctx context.Context, id string) (*RecordResult, error) {
	rec, err := s.history.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RecordResult{Record: rec, Relevant: core.RelevantItems(*rec)}, nil
}

func (s *appService) DeleteRecord(ctx context.Context, id string) error {
	return s.history.DeleteOne(ctx, id)
}

func (s *appService) DeleteAllRecords(ctx context.Context) (int, error) {
	return s.history.DeleteAll(ctx)
}

func (s *appService) ExportRecord(ctx context.Context, id, format string) (*ExportResult, error) {
	rec, err := s.history.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	res := &ExportResult{}
	switch strings.ToLower(format) {
	case "", "csv":
		err = export.WriteCSV(&buf, *rec)
		res.Filename = export.Filename(*rec, "csv")
		res.ContentType = "text/csv; charset=utf-8"
	case "xlsx":
		err = export.WriteXLSX(&buf, *rec)
		res.Filename = export.Filename(*rec, "xlsx")
		res.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, fmt.Errorf("%w: unknown export format %q (use csv or xlsx)", core.ErrValidation, format)
	}
	if err != nil {
		return nil, fmt.Errorf("export record %s: %w", id, err)
	}
	res.Data = buf.Bytes()
	return res, nil
}
