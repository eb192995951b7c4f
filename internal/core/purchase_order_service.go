package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type purchaseOrderService struct {
	repo   OrderRepository
	ledger StockLedger
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewPurchaseOrderService constructs a PurchaseOrderService. The ledger receives price
// updates from saved orders.
func NewPurchaseOrderService(repo OrderRepository, ledger StockLedger, log logrus.FieldLogger) PurchaseOrderService {
	return &purchaseOrderService{
		repo:   repo,
		ledger: ledger,
		log:    log.WithField("module", "purchase_orders"),
		now:    time.Now,
	}
}

var supplierCaser = cases.Title(language.Spanish)

// NormalizeSupplierName title-cases a supplier name and keeps company suffixes
// such as SL and SA in capitals.
func NormalizeSupplierName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		switch strings.Trim(w, ".,") {
		case "sl", "sa", "s.l", "s.a", "slu", "sau":
			words[i] = strings.ToUpper(w)
		default:
			words[i] = supplierCaser.String(w)
		}
	}
	return strings.Join(words, " ")
}

func (s *purchaseOrderService) SaveOrder(ctx context.Context, order PurchaseOrder) (*PurchaseOrder, error) {
	order.SupplierName = NormalizeSupplierName(order.SupplierName)
	if order.SupplierName == "" {
		return nil, fmt.Errorf("%w: supplier name is required", ErrValidation)
	}
	if order.OrderDate == "" {
		order.OrderDate = s.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", order.OrderDate); err != nil {
		return nil, fmt.Errorf("%w: order date %q must be YYYY-MM-DD", ErrValidation, order.OrderDate)
	}
	if len(order.Lines) == 0 {
		return nil, fmt.Errorf("%w: purchase order must have at least one line", ErrValidation)
	}
	lines := make([]OrderLine, len(order.Lines))
	for i, l := range order.Lines {
		l.Quantity = RoundQuantity(l.Quantity)
		lines[i] = l
	}
	order.Lines = lines
	for i, l := range order.Lines {
		if l.InventoryItemID == "" {
			return nil, fmt.Errorf("%w: line %d: inventory item is required", ErrValidation, i+1)
		}
		if !l.Quantity.GreaterThan(Epsilon) {
			return nil, fmt.Errorf("%w: line %d: quantity must be greater than 0", ErrValidation, i+1)
		}
		if l.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d: unit price cannot be negative", ErrValidation, i+1)
		}
	}

	// Resolve line items before touching anything.
	items := make(map[string]*InventoryItem, len(order.Lines))
	for i, l := range order.Lines {
		if _, ok := items[l.InventoryItemID]; ok {
			continue
		}
		item, err := s.ledger.GetItem(ctx, l.InventoryItemID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: line %d: inventory item %s not found", ErrValidation, i+1, l.InventoryItemID)
			}
			return nil, err
		}
		items[l.InventoryItemID] = item
	}

	if order.ID == "" {
		order.ID = uuid.NewString()
		order.CreatedAt = s.now().UTC()
	} else {
		existing, err := s.repo.GetOrder(ctx, order.ID)
		switch {
		case err == nil:
			if existing.Status != OrderPending {
				return nil, fmt.Errorf("%w: purchase order %s cannot be edited: status is %s (must be %s)",
					ErrInvalidTransition, order.ID, existing.Status, OrderPending)
			}
			order.CreatedAt = existing.CreatedAt
		case errors.Is(err, ErrNotFound):
			order.CreatedAt = s.now().UTC()
		default:
			return nil, fmt.Errorf("load purchase order %s: %w", order.ID, err)
		}
	}
	order.Status = OrderPending
	order.DeliveryDate = nil
	order.TotalAmount = ComputeTotal(order.Lines)

	saved, err := s.repo.UpsertOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("save purchase order: %w", err)
	}

	for _, l := range order.Lines {
		if !l.UnitPrice.IsPositive() || !Differs(l.UnitPrice, items[l.InventoryItemID].UnitPrice) {
			continue
		}
		if _, err := s.ledger.SyncPriceFromOrder(ctx, l.InventoryItemID, l.UnitPrice); err != nil {
			return saved, fmt.Errorf("purchase order %s saved, price sync failed: %w", saved.ID, err)
		}
		items[l.InventoryItemID].UnitPrice = l.UnitPrice
	}

	s.log.WithFields(logrus.Fields{"order": saved.ID, "supplier": saved.SupplierName, "total": saved.TotalAmount.StringFixed(2)}).
		Info("purchase order saved")
	return saved, nil
}

func (s *purchaseOrderService) ReceiveOrder(ctx context.Context, id string) (*PurchaseOrder, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == OrderCompleted || order.Status == OrderArchived {
		return nil, fmt.Errorf("%w: purchase order %s already received: status is %s",
			ErrInvalidTransition, id, order.Status)
	}
	if !order.Status.CanTransitionTo(OrderCompleted) {
		return nil, fmt.Errorf("%w: purchase order %s cannot be received: status is %s (must be %s)",
			ErrInvalidTransition, id, order.Status, OrderPending)
	}

	delivered := s.now().Format("2006-01-02")
	order.Status = OrderCompleted
	order.DeliveryDate = &delivered
	saved, err := s.repo.UpsertOrder(ctx, *order)
	if err != nil {
		return nil, fmt.Errorf("receive purchase order %s: %w", id, err)
	}
	s.log.WithField("order", id).Info("purchase order received")
	return saved, nil
}

func (s *purchaseOrderService) ArchiveOrder(ctx context.Context, id string) (*PurchaseOrder, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(OrderArchived) {
		return nil, fmt.Errorf("%w: purchase order %s cannot be archived: status is %s (must be %s)",
			ErrInvalidTransition, id, order.Status, OrderCompleted)
	}
	order.Status = OrderArchived
	saved, err := s.repo.UpsertOrder(ctx, *order)
	if err != nil {
		return nil, fmt.Errorf("archive purchase order %s: %w", id, err)
	}
	return saved, nil
}

func (s *purchaseOrderService) ArchiveCompleted(ctx context.Context) (*BatchResult, error) {
	completed, err := s.ListOrders(ctx, OrderCompleted)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(completed))
	for i, o := range completed {
		keys[i] = o.ID
	}
	res := runBatch(ctx, keys, func(ctx context.Context, i int) error {
		_, err := s.ArchiveOrder(ctx, completed[i].ID)
		return err
	})
	s.log.WithFields(logrus.Fields{"archived": res.Applied, "failed": len(res.Failures)}).Info("completed orders archived")
	return res, nil
}

func (s *purchaseOrderService) PendingByItem(ctx context.Context) (map[string]decimal.Decimal, error) {
	orders, err := s.ListOrders(ctx, OrderCompleted)
	if err != nil {
		return nil, err
	}
	return PendingByItem(orders), nil
}

func (s *purchaseOrderService) GetOrder(ctx context.Context, id string) (*PurchaseOrder, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("purchase order %s: %w", id, err)
	}
	return order, nil
}

func (s *purchaseOrderService) ListOrders(ctx context.Context, status OrderStatus) ([]PurchaseOrder, error) {
	all, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	out := all[:0:0]
	for _, o := range all {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrderDate != out[j].OrderDate {
			return out[i].OrderDate > out[j].OrderDate
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *purchaseOrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("delete purchase order %s: %w", id, err)
	}
	return nil
}
