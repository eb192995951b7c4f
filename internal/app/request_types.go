package app

import (
	"errors"
	"fmt"
	"strings"

	"bar-inventory/internal/core"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// SaveItemRequest is the input for creating or replacing an item.
// An empty ID creates a new item. A nil Stock keeps stored quantities.
type SaveItemRequest struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name" validate:"required,max=120"`
	Category  string                     `json:"category" validate:"max=80"`
	Barcode   string                     `json:"barcode" validate:"omitempty,max=64"`
	UnitPrice decimal.Decimal            `json:"unit_price"`
	Stock     map[string]decimal.Decimal `json:"stock_by_location"`
}

// SetStockRequest writes one typed quantity. Quantity is the raw operator input.
type SetStockRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Location string `json:"location" validate:"required"`
	Quantity string `json:"quantity"`
}

// BulkUpdateRequest carries name-addressed counts.
type BulkUpdateRequest struct {
	Mode    string            `json:"mode" validate:"required,oneof=reset set add"`
	Updates []core.BulkUpdate `json:"updates" validate:"required,min=1,dive"`
}

// ScanRequest is a barcode read with the counted quantity.
type ScanRequest struct {
	Barcode  string `json:"barcode" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
}

// SaveOrderRequest is the input for creating or editing a Pending order.
type SaveOrderRequest struct {
	ID           string           `json:"id"`
	OrderDate    string           `json:"order_date" validate:"omitempty,datetime=2006-01-02"`
	SupplierName string           `json:"supplier_name" validate:"required"`
	Lines        []OrderLineInput `json:"lines" validate:"required,min=1,dive"`
}

// OrderLineInput is a single line within a SaveOrderRequest.
type OrderLineInput struct {
	InventoryItemID string          `json:"inventory_item_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// SnapshotRequest carries the empty-crate tallies counted at close.
type SnapshotRequest struct {
	Containers []core.ContainerCount `json:"containers" validate:"dive"`
}

// AnalysisRequest controls the side effects of an analysis close.
type AnalysisRequest struct {
	ResetLedger bool `json:"reset_ledger"`
}

// DraftReorderRequest names the supplier of a drafted reorder.
type DraftReorderRequest struct {
	SupplierName string `json:"supplier_name" validate:"required"`
}

var validate = validator.New()

// validateRequest runs struct tag validation and reports failures as core.ErrValidation.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("%w: %v", core.ErrValidation, err)
	}
	msgs := make([]string, 0, len(ves))
	for _, ve := range ves {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", ve.Namespace(), ve.Tag()))
	}
	return fmt.Errorf("%w: %s", core.ErrValidation, strings.Join(msgs, "; "))
}
