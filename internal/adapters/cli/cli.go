package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"bar-inventory/internal/app"
	"bar-inventory/internal/core"

	"github.com/shopspring/decimal"
)

const usage = `Available commands:
  items [category]                 list stock by location
  set <item-id> <location> <qty>   write one location (decimal comma accepted)
  reset-item <item-id>             zero every location of one item
  bulk <reset|set|add>             apply [{"name","quantity"}] read from stdin
  scan <barcode> <qty>             add a scanned quantity to Almacén
  orders [status]                  list purchase orders
  receive <order-id>               mark a Pending order Completed
  archive <order-id>               archive a Completed order
  archive-completed                archive every Completed order
  preview                          show what an analysis close would record
  snapshot [brand=crates ...]      close a snapshot with empty crate tallies
  close [--reset]                  close an analysis, optionally zeroing the ledger
  reorder                          suggest purchases from the last analysis
  history [analysis|snapshot]      list period records
  export <record-id> [csv|xlsx]    write a record export to the current directory
  stats [record-id]                consumption spend by category
  seed                             restore the built-in catalog`

// Runner executes one-shot commands against the application service.
type Runner struct {
	svc app.ApplicationService
	in  io.Reader
	out io.Writer
}

// NewRunner returns a Runner reading stdin from in and printing to out.
func NewRunner(svc app.ApplicationService, in io.Reader, out io.Writer) *Runner {
	return &Runner{svc: svc, in: in, out: out}
}

// Run executes a one-shot CLI command.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) error {
	return NewRunner(svc, os.Stdin, os.Stdout).Run(ctx, args)
}

func need(args []string, n int, form string) error {
	if len(args) < n {
		return fmt.Errorf("usage: app %s", form)
	}
	return nil
}

// Run dispatches args[0].
func (c *Runner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given\n%s", usage)
	}

	switch args[0] {
	case "items", "ls":
		res, err := c.svc.ListItems(ctx)
		if err != nil {
			return err
		}
		category := ""
		if len(args) > 1 {
			category = args[1]
		}
		printItems(c.out, res, category)

	case "set":
		if err := need(args, 4, "set <item-id> <location> <qty>"); err != nil {
			return err
		}
		res, err := c.svc.SetStock(ctx, app.SetStockRequest{ItemID: args[1], Location: args[2], Quantity: args[3]})
		if err != nil {
			return err
		}
		if !res.Changed {
			fmt.Fprintln(c.out, "No change.")
			return nil
		}
		fmt.Fprintf(c.out, "%s @ %s = %s\n", res.Item.Name, args[2], res.Item.LocationStock(args[2]).StringFixed(2))

	case "reset-item":
		if err := need(args, 2, "reset-item <item-id>"); err != nil {
			return err
		}
		res, err := c.svc.ResetItem(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s reset.\n", res.Item.Name)

	case "bulk":
		if err := need(args, 2, "bulk <reset|set|add> < updates.json"); err != nil {
			return err
		}
		var updates []core.BulkUpdate
		if err := json.NewDecoder(c.in).Decode(&updates); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
		res, err := c.svc.BulkUpdate(ctx, app.BulkUpdateRequest{Mode: args[1], Updates: updates})
		if err != nil {
			return err
		}
		printBatch(c.out, "Bulk update", res)

	case "scan":
		if err := need(args, 3, "scan <barcode> <qty>"); err != nil {
			return err
		}
		res, err := c.svc.ScanReceive(ctx, app.ScanRequest{Barcode: args[1], Quantity: args[2]})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s: %s now %s\n", res.Item.Name, core.DefaultLocation,
			res.Item.LocationStock(core.DefaultLocation).StringFixed(2))

	case "orders":
		status := ""
		if len(args) > 1 {
			status = args[1]
		}
		res, err := c.svc.ListOrders(ctx, status)
		if err != nil {
			return err
		}
		printOrders(c.out, res)

	case "receive", "archive":
		if err := need(args, 2, args[0]+" <order-id>"); err != nil {
			return err
		}
		var res *app.OrderResult
		var err error
		if args[0] == "receive" {
			res, err = c.svc.ReceiveOrder(ctx, args[1])
		} else {
			res, err = c.svc.ArchiveOrder(ctx, args[1])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Order %s is now %s.\n", res.Order.ID, res.Order.Status)

	case "archive-completed":
		res, err := c.svc.ArchiveCompleted(ctx)
		if err != nil {
			return err
		}
		printBatch(c.out, "Archive", res)

	case "preview":
		res, err := c.svc.PreviewAnalysis(ctx)
		if err != nil {
			return err
		}
		printRecordItems(c.out, "ANALYSIS PREVIEW", res.Items)

	case "snapshot":
		req := app.SnapshotRequest{}
		for _, a := range args[1:] {
			brand, count, ok := strings.Cut(a, "=")
			if !ok {
				return fmt.Errorf("crate tally %q must be brand=count", a)
			}
			n, err := decimal.NewFromString(count)
			if err != nil {
				return fmt.Errorf("crate tally %q: %w", a, err)
			}
			req.Containers = append(req.Containers, core.ContainerCount{Brand: brand, Count: n})
		}
		res, err := c.svc.CloseSnapshot(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s saved as %s (%d lines).\n", res.Record.Label, res.Record.ID, len(res.Record.Items))

	case "close":
		reset := len(args) > 1 && args[1] == "--reset"
		res, err := c.svc.CloseAnalysis(ctx, app.AnalysisRequest{ResetLedger: reset})
		if res != nil {
			printClose(c.out, res)
		}
		return err

	case "reorder":
		res, err := c.svc.SmartReorder(ctx)
		if err != nil {
			return err
		}
		printReorder(c.out, res)

	case "history":
		typ := ""
		if len(args) > 1 {
			typ = args[1]
		}
		res, err := c.svc.ListRecords(ctx, typ)
		if err != nil {
			return err
		}
		printRecords(c.out, res)

	case "export":
		if err := need(args, 2, "export <record-id> [csv|xlsx]"); err != nil {
			return err
		}
		format := "csv"
		if len(args) > 2 {
			format = args[2]
		}
		res, err := c.svc.ExportRecord(ctx, args[1], format)
		if err != nil {
			return err
		}
		if err := os.WriteFile(res.Filename, res.Data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", res.Filename, err)
		}
		fmt.Fprintf(c.out, "Wrote %s (%d bytes).\n", res.Filename, len(res.Data))

	case "stats":
		recordID := ""
		if len(args) > 1 {
			recordID = args[1]
		}
		res, err := c.svc.Stats(ctx, recordID, "")
		if err != nil {
			return err
		}
		printStats(c.out, res)

	case "seed":
		res, err := c.svc.RestoreSeed(ctx)
		if err != nil {
			return err
		}
		printBatch(c.out, "Seed catalog", res)

	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], usage)
	}
	return nil
}
