package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"bar-inventory/internal/app"
	"bar-inventory/internal/core"
	"bar-inventory/internal/export"
	"bar-inventory/internal/store/memory"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type stubCapturer struct {
	order *core.CapturedOrder
	names []string
}

func (s *stubCapturer) CaptureOrder(_ context.Context, _ []byte, _ string, knownNames []string) (*core.CapturedOrder, error) {
	s.names = knownNames
	return s.order, nil
}

func newService(t *testing.T, capturer core.OrderCapturer) app.ApplicationService {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return app.New(memory.New(), capturer, log)
}

func TestCaptureOrder_Mismatch(t *testing.T) {
	tests := []struct {
		name     string
		printed  string
		mismatch bool
	}{
		{"matches printed total", "14,40", false},
		{"within tolerance", "14,44", false},
		{"beyond tolerance", "15,00", true},
		{"no printed total", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCapturer{order: &core.CapturedOrder{
				SupplierName: "damm",
				TotalAmount:  tt.printed,
				Items:        []core.CapturedLine{{Name: "moritz", Quantity: "24", UnitPrice: "0,60"}},
			}}
			svc := newService(t, stub)
			ctx := context.Background()
			if _, err := svc.SaveItem(ctx, app.SaveItemRequest{ID: "m", Name: "Moritz"}); err != nil {
				t.Fatalf("Failed to save item: %v", err)
			}

			res, err := svc.CaptureOrder(ctx, app.Attachment{MimeType: "image/jpeg", Data: []byte{0xff}})
			if err != nil {
				t.Fatalf("Capture failed: %v", err)
			}
			if res.Mismatch != tt.mismatch {
				t.Errorf("Expected mismatch %v, got %v", tt.mismatch, res.Mismatch)
			}
			if !res.Order.TotalAmount.Equal(decimal.RequireFromString("14.4")) {
				t.Errorf("Expected computed total 14.40, got %s", res.Order.TotalAmount)
			}
			if len(stub.names) != 1 || stub.names[0] != "Moritz" {
				t.Errorf("Expected catalog names to reach the capturer, got %v", stub.names)
			}
		})
	}
}

func TestCaptureOrder_Disabled(t *testing.T) {
	svc := newService(t, nil)
	_, err := svc.CaptureOrder(context.Background(), app.Attachment{Data: []byte{1}})
	if !errors.Is(err, app.ErrCaptureDisabled) {
		t.Errorf("Expected ErrCaptureDisabled, got %v", err)
	}
}

func TestStats(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	if _, err := svc.Stats(ctx, "", ""); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("Expected insufficient data without analyses, got %v", err)
	}

	if _, err := svc.SaveItem(ctx, app.SaveItemRequest{
		ID: "a", Name: "Absolut", Category: "🧊 Vodka", UnitPrice: decimal.RequireFromString("10"),
	}); err != nil {
		t.Fatalf("Failed to save item: %v", err)
	}
	order, err := svc.SaveOrder(ctx, app.SaveOrderRequest{
		SupplierName: "Makro",
		Lines:        []app.OrderLineInput{{InventoryItemID: "a", Quantity: decimal.NewFromInt(3)}},
	})
	if err != nil {
		t.Fatalf("Failed to save order: %v", err)
	}
	if _, err := svc.ReceiveOrder(ctx, order.Order.ID); err != nil {
		t.Fatalf("Failed to receive order: %v", err)
	}
	closed, err := svc.CloseAnalysis(ctx, app.AnalysisRequest{})
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	snap, err := svc.CloseSnapshot(ctx, app.SnapshotRequest{})
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	stats, err := svc.Stats(ctx, "", "")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Records != 1 || !stats.Total.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Expected one record worth 30, got %d and %s", stats.Records, stats.Total)
	}

	one, err := svc.Stats(ctx, closed.Record.ID, "")
	if err != nil || one.Records != 1 {
		t.Errorf("Expected stats of a single record, got %+v, %v", one, err)
	}
	if _, err := svc.Stats(ctx, snap.Record.ID, ""); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected snapshot stats to be refused, got %v", err)
	}
}

func TestExportRecord(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	if _, err := svc.SaveItem(ctx, app.SaveItemRequest{Name: "Absolut"}); err != nil {
		t.Fatalf("Failed to save item: %v", err)
	}
	snap, err := svc.CloseSnapshot(ctx, app.SnapshotRequest{})
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	csv, err := svc.ExportRecord(ctx, snap.Record.ID, "CSV")
	if err != nil {
		t.Fatalf("CSV export failed: %v", err)
	}
	if !strings.HasSuffix(csv.Filename, "_Inventario.csv") || !strings.HasPrefix(csv.ContentType, "text/csv") {
		t.Errorf("Unexpected CSV download %q %q", csv.Filename, csv.ContentType)
	}
	xlsx, err := svc.ExportRecord(ctx, snap.Record.ID, "xlsx")
	if err != nil {
		t.Fatalf("XLSX export failed: %v", err)
	}
	if len(xlsx.Data) == 0 || !strings.HasSuffix(xlsx.Filename, ".xlsx") {
		t.Errorf("Unexpected XLSX download %q with %d bytes", xlsx.Filename, len(xlsx.Data))
	}
	if _, err := svc.ExportRecord(ctx, snap.Record.ID, "pdf"); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected validation error for pdf, got %v", err)
	}
}

func TestExportRecord_AcceptedQuantitiesRoundTrip(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	if _, err := svc.SaveItem(ctx, app.SaveItemRequest{ID: "a", Name: "Absolut", UnitPrice: decimal.RequireFromString("3")}); err != nil {
		t.Fatalf("Failed to save item: %v", err)
	}
	order, err := svc.SaveOrder(ctx, app.SaveOrderRequest{
		SupplierName: "Makro",
		Lines:        []app.OrderLineInput{{InventoryItemID: "a", Quantity: decimal.RequireFromString("1.333")}},
	})
	if err != nil {
		t.Fatalf("Failed to save order: %v", err)
	}
	if _, err := svc.ReceiveOrder(ctx, order.Order.ID); err != nil {
		t.Fatalf("Failed to receive order: %v", err)
	}
	closed, err := svc.CloseAnalysis(ctx, app.AnalysisRequest{})
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	file, err := svc.ExportRecord(ctx, closed.Record.ID, "csv")
	if err != nil {
		t.Fatalf("CSV export failed: %v", err)
	}
	table, err := export.ParseCSV(bytes.NewReader(file.Data))
	if err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}
	if len(table.Groups) != 1 || len(table.Groups[0].Rows) != 1 {
		t.Fatalf("Expected one exported row, got %+v", table.Groups)
	}
	row := table.Groups[0].Rows[0]
	line := closed.Record.Items[0]
	if core.Differs(row.Values[1], line.PendingStock.Decimal) {
		t.Errorf("Expected exported pending %s, got %s", line.PendingStock.Decimal, row.Values[1])
	}
	if core.Differs(row.Values[3], line.Consumption.Decimal) {
		t.Errorf("Expected exported consumption %s, got %s", line.Consumption.Decimal, row.Values[3])
	}
}

func TestRestoreSeed_KeepsStock(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	first := core.SeedCatalog()[0]
	res, err := svc.RestoreSeed(ctx)
	if err != nil || !res.OK() {
		t.Fatalf("Seed failed: %v %+v", err, res)
	}
	if _, err := svc.SetStock(ctx, app.SetStockRequest{ItemID: first.ID, Location: core.LocationRest, Quantity: "3"}); err != nil {
		t.Fatalf("Failed to set stock: %v", err)
	}
	if _, err := svc.RestoreSeed(ctx); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}
	item, err := svc.GetItem(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !item.TotalStock.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Expected stock 3 to survive a reseed, got %s", item.TotalStock)
	}
}

func TestSaveOrder_RequestValidation(t *testing.T) {
	svc := newService(t, nil)
	_, err := svc.SaveOrder(context.Background(), app.SaveOrderRequest{SupplierName: "Makro", OrderDate: "2026/01/01",
		Lines: []app.OrderLineInput{{InventoryItemID: "a", Quantity: decimal.NewFromInt(1)}}})
	if !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected validation error for a malformed date, got %v", err)
	}
	if _, err := svc.ListOrders(context.Background(), "shipped"); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected validation error for an unknown status, got %v", err)
	}
}
