package cli_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"bar-inventory/internal/adapters/cli"
	"bar-inventory/internal/app"
	"bar-inventory/internal/store/memory"

	"github.com/sirupsen/logrus"
)

func newRunner(t *testing.T, stdin string) (*cli.Runner, *bytes.Buffer, app.ApplicationService) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := app.New(memory.New(), nil, log)
	var out bytes.Buffer
	return cli.NewRunner(svc, strings.NewReader(stdin), &out), &out, svc
}

func TestRun_BulkThenItems(t *testing.T) {
	ctx := context.Background()
	r, out, svc := newRunner(t, `[{"name":"absolut","quantity":"6"}]`)
	if _, err := svc.SaveItem(ctx, app.SaveItemRequest{Name: "Absolut", Category: "🧊 Vodka"}); err != nil {
		t.Fatalf("seed item: %v", err)
	}

	if err := r.Run(ctx, []string{"bulk", "add"}); err != nil {
		t.Fatalf("bulk: %v", err)
	}
	if !strings.Contains(out.String(), "1 of 1 applied") {
		t.Errorf("Expected batch summary, got %q", out.String())
	}

	out.Reset()
	if err := r.Run(ctx, []string{"items"}); err != nil {
		t.Fatalf("items: %v", err)
	}
	if !strings.Contains(out.String(), "🧊 Vodka") || !strings.Contains(out.String(), "6.00") {
		t.Errorf("Expected Absolut under Vodka with 6.00, got:\n%s", out.String())
	}
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "no command given"},
		{"unknown command", []string{"fly"}, "unknown command: fly"},
		{"missing args", []string{"set", "x"}, "usage: app set"},
		{"bad crate tally", []string{"snapshot", "moritz"}, "brand=count"},
		{"reorder without analysis", []string{"reorder"}, "insufficient data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newRunner(t, "")
			err := r.Run(ctx, tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRun_SnapshotAndHistory(t *testing.T) {
	ctx := context.Background()
	r, out, svc := newRunner(t, "")
	if _, err := svc.SaveItem(ctx, app.SaveItemRequest{Name: "Tonica"}); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	if err := r.Run(ctx, []string{"snapshot", "schweppes=2"}); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !strings.Contains(out.String(), "Inventario (") || !strings.Contains(out.String(), "(2 lines)") {
		t.Errorf("Unexpected snapshot output %q", out.String())
	}
	out.Reset()
	if err := r.Run(ctx, []string{"history", "snapshot"}); err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out.String(), "snapshot") {
		t.Errorf("Expected the snapshot listed, got %q", out.String())
	}
}
