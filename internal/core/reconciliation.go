package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ── Pure computations ─────────────────────────────────────────────────────────

// ComputeConsumption builds one analysis line per item:
//
//	initial     = previous baseline + pending
//	end         = live total stock
//	consumption = initial - end
//
// A nil previous record means every baseline is 0. Negative consumption is kept.
func ComputeConsumption(items []InventoryItem, previous *PeriodRecord, pending map[string]decimal.Decimal) []RecordItem {
	out := make([]RecordItem, 0, len(items))
	for _, item := range items {
		prevEnd := decimal.Zero
		if previous != nil {
			if ri, ok := previous.Find(item.ID); ok {
				prevEnd = ri.Baseline()
			}
		}
		pend := pending[item.ID]
		initial := prevEnd.Add(pend)
		end := item.TotalStock()

		out = append(out, RecordItem{
			ItemID:                  item.ID,
			Name:                    item.Name,
			Category:                item.Category,
			CurrentStock:            known(end),
			PendingStock:            known(pend),
			InitialStock:            known(initial),
			EndStock:                known(end),
			Consumption:             known(initial.Sub(end)),
			StockByLocationSnapshot: item.Clone().StockByLocation,
			UnitPrice:               item.UnitPrice,
		})
	}
	return out
}

// isContainerTallyItem matches the live item operators use to note empty crates. Its
// content is replaced by per-brand tallies in snapshots.
func isContainerTallyItem(name string) bool {
	return strings.Contains(normalizeName(name), "cajas vacias")
}

// SnapshotItems captures every item as both initial and end stock with no consumption.
func SnapshotItems(items []InventoryItem, pending map[string]decimal.Decimal) []RecordItem {
	out := make([]RecordItem, 0, len(items))
	for _, item := range items {
		if isContainerTallyItem(item.Name) {
			continue
		}
		total := item.TotalStock()
		out = append(out, RecordItem{
			ItemID:                  item.ID,
			Name:                    item.Name,
			Category:                item.Category,
			CurrentStock:            known(total),
			PendingStock:            known(pending[item.ID]),
			InitialStock:            known(total),
			EndStock:                known(total),
			Consumption:             known(decimal.Zero),
			StockByLocationSnapshot: item.Clone().StockByLocation,
			UnitPrice:               item.UnitPrice,
		})
	}
	return out
}

// ContainerCount is an operator count of empty returnable crates for one brand.
type ContainerCount struct {
	Brand string          `json:"brand"`
	Count decimal.Decimal `json:"count"`
}

var unitsPerContainer = map[string]int64{
	"schweppes":    28,
	"cocacola":     24,
	"cocacolazero": 24,
	"pepsi":        24,
	"ambar":        24,
	"moritz":       24,
}

const defaultUnitsPerContainer = 24

func brandKey(brand string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(brand)))
}

// UnitsPerContainer returns how many bottles one crate of brand holds.
func UnitsPerContainer(brand string) int64 {
	if n, ok := unitsPerContainer[brandKey(brand)]; ok {
		return n
	}
	return defaultUnitsPerContainer
}

// ContainerItems turns crate counts into auxiliary record lines. Zero counts are skipped.
func ContainerItems(counts []ContainerCount) []RecordItem {
	var out []RecordItem
	for _, c := range counts {
		if !c.Count.IsPositive() || strings.TrimSpace(c.Brand) == "" {
			continue
		}
		brand := strings.TrimSpace(c.Brand)
		units := c.Count.Mul(decimal.NewFromInt(UnitsPerContainer(brand)))
		out = append(out, RecordItem{
			ItemID:                  "box-" + brand,
			Name:                    "CAJAS " + strings.ToUpper(brand),
			Category:                AuxiliaryCategory,
			CurrentStock:            known(units),
			PendingStock:            known(decimal.Zero),
			InitialStock:            known(units),
			EndStock:                known(units),
			Consumption:             known(decimal.Zero),
			StockByLocationSnapshot: map[string]decimal.Decimal{DefaultLocation: units},
			UnitPrice:               decimal.Zero,
		})
	}
	return out
}

// IsRelevant reports whether an analysis line consumed more than Epsilon.
func IsRelevant(ri RecordItem) bool {
	return ri.ConsumptionOrZero().GreaterThan(Epsilon)
}

// IsSurplus reports whether stock grew beyond what was received.
func IsSurplus(ri RecordItem) bool {
	return ri.ConsumptionOrZero().LessThan(Epsilon.Neg())
}

// RelevantItems returns the lines shown and exported for rec. Snapshots show everything.
func RelevantItems(rec PeriodRecord) []RecordItem {
	if rec.Type != RecordAnalysis {
		return append([]RecordItem(nil), rec.Items...)
	}
	var out []RecordItem
	for _, it := range rec.Items {
		if IsRelevant(it) {
			out = append(out, it)
		}
	}
	return out
}

// SurplusItems returns the lines with negative consumption.
func SurplusItems(items []RecordItem) []RecordItem {
	var out []RecordItem
	for _, it := range items {
		if IsSurplus(it) {
			out = append(out, it)
		}
	}
	return out
}

// RecordLabel is the display label of a record closed at t.
func RecordLabel(typ RecordType, t time.Time) string {
	if typ == RecordAnalysis {
		return fmt.Sprintf("Análisis (%s)", t.Format("02/01/2006"))
	}
	return fmt.Sprintf("Inventario (%s)", t.Format("02/01/2006"))
}

// ── Reorder ───────────────────────────────────────────────────────────────────

// ReorderLine is one suggested purchase.
type ReorderLine struct {
	ItemID          string          `json:"item_id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	LastConsumption decimal.Decimal `json:"last_consumption"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// ReorderPlan is the reorder suggestion derived from one analysis record.
type ReorderPlan struct {
	BasedOnID    string          `json:"based_on_id"`
	BasedOnLabel string          `json:"based_on_label"`
	Lines        []ReorderLine   `json:"lines"`
	Total        decimal.Decimal `json:"total"`
}

// SuggestReorder orders ceil(lastConsumption - currentStock) of every item whose stock
// does not cover what was consumed in the analysed period.
func SuggestReorder(items []InventoryItem, analysis PeriodRecord) ReorderPlan {
	plan := ReorderPlan{BasedOnID: analysis.ID, BasedOnLabel: analysis.Label, Total: decimal.Zero}
	sorted := append([]InventoryItem(nil), items...)
	SortInventoryItems(sorted)
	for _, item := range sorted {
		last := decimal.Zero
		if ri, ok := analysis.Find(item.ID); ok {
			last = ri.ConsumptionOrZero()
		}
		current := item.TotalStock()
		shortfall := last.Sub(current)
		if !shortfall.GreaterThan(Epsilon) {
			continue
		}
		qty := shortfall.Ceil()
		line := ReorderLine{
			ItemID:          item.ID,
			Name:            item.Name,
			Category:        item.Category,
			LastConsumption: last,
			CurrentStock:    current,
			Quantity:        qty,
			UnitPrice:       item.UnitPrice,
			LineTotal:       RoundCurrency(qty.Mul(item.UnitPrice)),
		}
		plan.Lines = append(plan.Lines, line)
		plan.Total = plan.Total.Add(line.LineTotal)
	}
	return plan
}

// ── Engine ────────────────────────────────────────────────────────────────────

// AnalysisOptions controls the side effects of an analysis close.
type AnalysisOptions struct {
	// ResetLedger zeroes every item after the record is written and orders are archived.
	ResetLedger bool
}

// CloseResult reports an analysis close.
type CloseResult struct {
	Record   *PeriodRecord `json:"record"`
	Relevant []RecordItem  `json:"relevant"`
	Surplus  []RecordItem  `json:"surplus"`
	Archived *BatchResult  `json:"archived"`
	Reset    *BatchResult  `json:"reset,omitempty"`

	// Warning describes a step that failed after the record was written.
	Warning string `json:"warning,omitempty"`
}

// Preview is what an analysis close would record now.
type Preview struct {
	Baseline *PeriodRecord `json:"baseline,omitempty"`
	Items    []RecordItem  `json:"items"`
}

// Reconciler turns ledger counts and received orders into period records.
type Reconciler interface {
	// Preview computes analysis lines without writing anything.
	Preview(ctx context.Context) (*Preview, error)

	// CloseSnapshot writes a point-in-time record, with crate tallies appended.
	CloseSnapshot(ctx context.Context, containers []ContainerCount) (*PeriodRecord, error)

	// CloseAnalysis writes an analysis record, then archives the Completed orders it
	// counted, then optionally resets the ledger.
	CloseAnalysis(ctx context.Context, opts AnalysisOptions) (*CloseResult, error)

	// SmartReorder suggests purchases from the latest analysis. It fails with
	// ErrInsufficientData when no analysis exists.
	SmartReorder(ctx context.Context) (*ReorderPlan, error)

	// DraftReorder saves the current suggestion as a Pending order for supplier.
	DraftReorder(ctx context.Context, supplier string) (*PurchaseOrder, error)
}

type reconciler struct {
	ledger  StockLedger
	orders  PurchaseOrderService
	history HistoryService
	log     logrus.FieldLogger
	now     func() time.Time
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*reconciler)

// WithClock overrides the time source used for record dates and labels.
func WithClock(now func() time.Time) ReconcilerOption {
	return func(r *reconciler) { r.now = now }
}

// NewReconciler constructs the engine over the three components.
func NewReconciler(ledger StockLedger, orders PurchaseOrderService, history HistoryService, log logrus.FieldLogger, opts ...ReconcilerOption) Reconciler {
	r := &reconciler{
		ledger:  ledger,
		orders:  orders,
		history: history,
		log:     log.WithField("module", "reconciler"),
		now:     time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// inputs loads everything a close reads: live items, the baseline and the counted orders.
func (r *reconciler) inputs(ctx context.Context) ([]InventoryItem, *PeriodRecord, []PurchaseOrder, error) {
	items, err := r.ledger.ListItems(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	baseline, err := r.history.Latest(ctx, AnyBaseline)
	if err != nil {
		return nil, nil, nil, err
	}
	completed, err := r.orders.ListOrders(ctx, OrderCompleted)
	if err != nil {
		return nil, nil, nil, err
	}
	return items, baseline, completed, nil
}

func (r *reconciler) newRecord(typ RecordType, items []RecordItem) PeriodRecord {
	now := r.now()
	SortRecordItems(items)
	return PeriodRecord{
		ID:    uuid.NewString(),
		Date:  now.UTC(),
		Label: RecordLabel(typ, now),
		Type:  typ,
		Items: items,
	}
}

func (r *reconciler) Preview(ctx context.Context) (*Preview, error) {
	items, baseline, completed, err := r.inputs(ctx)
	if err != nil {
		return nil, err
	}
	lines := ComputeConsumption(items, baseline, PendingByItem(completed))
	SortRecordItems(lines)
	return &Preview{Baseline: baseline, Items: lines}, nil
}

func (r *reconciler) CloseSnapshot(ctx context.Context, containers []ContainerCount) (*PeriodRecord, error) {
	items, err := r.ledger.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := r.orders.PendingByItem(ctx)
	if err != nil {
		return nil, err
	}
	lines := append(SnapshotItems(items, pending), ContainerItems(containers)...)
	rec, err := r.history.Append(ctx, r.newRecord(RecordSnapshot, lines))
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *reconciler) CloseAnalysis(ctx context.Context, opts AnalysisOptions) (*CloseResult, error) {
	items, baseline, completed, err := r.inputs(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no inventory items to analyse", ErrValidation)
	}

	rec, err := r.history.Append(ctx, r.newRecord(RecordAnalysis, ComputeConsumption(items, baseline, PendingByItem(completed))))
	if err != nil {
		return nil, err
	}
	res := &CloseResult{
		Record:   rec,
		Relevant: RelevantItems(*rec),
		Surplus:  SurplusItems(rec.Items),
	}
	for _, s := range res.Surplus {
		r.log.WithFields(logrus.Fields{"item": s.Name, "consumption": s.ConsumptionOrZero().String()}).
			Warn("surplus: stock grew beyond received orders")
	}

	// Only the orders counted as pending above are archived; anything received since
	// stays Completed for the next period.
	keys := make([]string, len(completed))
	for i, o := range completed {
		keys[i] = o.ID
	}
	res.Archived = runBatch(ctx, keys, func(ctx context.Context, i int) error {
		_, err := r.orders.ArchiveOrder(ctx, completed[i].ID)
		return err
	})

	if opts.ResetLedger {
		reset, err := r.ledger.ResetAll(ctx)
		if err != nil {
			err = fmt.Errorf("record %s written, ledger reset failed: %w", rec.ID, err)
			res.Warning = err.Error()
			return res, err
		}
		res.Reset = reset
	}

	r.log.WithFields(logrus.Fields{
		"record":   rec.ID,
		"relevant": len(res.Relevant),
		"surplus":  len(res.Surplus),
		"archived": res.Archived.Applied,
		"reset":    opts.ResetLedger,
	}).Info("analysis period closed")
	return res, nil
}

func (r *reconciler) SmartReorder(ctx context.Context) (*ReorderPlan, error) {
	analysis, err := r.history.Latest(ctx, OnlyAnalysis)
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, fmt.Errorf("%w: no analysis record to base a reorder on", ErrInsufficientData)
	}
	items, err := r.ledger.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	plan := SuggestReorder(items, *analysis)
	return &plan, nil
}

func (r *reconciler) DraftReorder(ctx context.Context, supplier string) (*PurchaseOrder, error) {
	plan, err := r.SmartReorder(ctx)
	if err != nil {
		return nil, err
	}
	if len(plan.Lines) == 0 {
		return nil, fmt.Errorf("%w: current stock covers the last analysed consumption", ErrValidation)
	}
	order := PurchaseOrder{SupplierName: supplier}
	for _, l := range plan.Lines {
		order.Lines = append(order.Lines, OrderLine{
			InventoryItemID: l.ItemID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
		})
	}
	return r.orders.SaveOrder(ctx, order)
}
