package cli

import (
	"fmt"
	"io"
	"strings"

	"bar-inventory/internal/app"
	"bar-inventory/internal/core"

	"github.com/shopspring/decimal"
)

func rule(w io.Writer, ch string, n int) {
	fmt.Fprintln(w, strings.Repeat(ch, n))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func printItems(w io.Writer, res *app.ItemListResult, category string) {
	fmt.Fprintln(w)
	rule(w, "=", 78)
	fmt.Fprintf(w, "  %-74s\n", "STOCK")
	rule(w, "=", 78)
	fmt.Fprintf(w, "  %-36s %-10s %10s %10s %10s\n", "ITEM", "ID", core.DefaultLocation, "TOTAL", "VALUE")
	current := ""
	shown := 0
	for _, it := range res.Items {
		cat := core.CategoryOf(it.Category)
		if category != "" && !strings.EqualFold(cat, category) {
			continue
		}
		if cat != current {
			current = cat
			rule(w, "-", 78)
			fmt.Fprintf(w, "  %s\n", cat)
		}
		fmt.Fprintf(w, "  %-36s %-10s %10s %10s %10s\n",
			truncate(it.Name, 36), truncate(it.ID, 10),
			it.LocationStock(core.DefaultLocation).StringFixed(2),
			it.TotalStock().StringFixed(2), it.TotalValue().StringFixed(2))
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(w, "  No items found.")
	}
	rule(w, "=", 78)
	fmt.Fprintf(w, "  Stock value: %s\n", res.TotalValue.StringFixed(2))
}

func printOrders(w io.Writer, res *app.OrderListResult) {
	fmt.Fprintln(w)
	rule(w, "=", 78)
	fmt.Fprintf(w, "  %-74s\n", "PURCHASE ORDERS")
	rule(w, "=", 78)
	if len(res.Orders) == 0 {
		fmt.Fprintln(w, "  No orders found.")
		rule(w, "=", 78)
		return
	}
	fmt.Fprintf(w, "  %-36s %-10s %-12s %-10s %5s %10s\n", "SUPPLIER", "DATE", "ID", "STATUS", "LINES", "TOTAL")
	rule(w, "-", 78)
	for _, o := range res.Orders {
		fmt.Fprintf(w, "  %-36s %-10s %-12s %-10s %5d %10s\n",
			truncate(o.SupplierName, 36), o.OrderDate, truncate(o.ID, 12), o.Status, len(o.Lines), o.TotalAmount.StringFixed(2))
	}
	rule(w, "=", 78)
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.StringFixed(2)
}

func printRecordItems(w io.Writer, title string, items []core.RecordItem) {
	fmt.Fprintln(w)
	rule(w, "=", 78)
	fmt.Fprintf(w, "  %-74s\n", title)
	rule(w, "=", 78)
	fmt.Fprintf(w, "  %-34s %10s %10s %10s %10s\n", "ITEM", "CURRENT", "PENDING", "INITIAL", "CONSUMED")
	for _, g := range core.GroupByCategory(items) {
		rule(w, "-", 78)
		fmt.Fprintf(w, "  %s\n", g.Category)
		for _, it := range g.Items {
			fmt.Fprintf(w, "  %-34s %10s %10s %10s %10s\n", truncate(it.Name, 34),
				nullString(it.CurrentStock),
				nullString(it.PendingStock),
				nullString(it.InitialStock),
				nullString(it.Consumption))
		}
	}
	rule(w, "=", 78)
}

func printClose(w io.Writer, res *core.CloseResult) {
	printRecordItems(w, strings.ToUpper(res.Record.Label), res.Relevant)
	fmt.Fprintf(w, "  Record:   %s\n", res.Record.ID)
	if len(res.Surplus) > 0 {
		names := make([]string, len(res.Surplus))
		for i, s := range res.Surplus {
			names[i] = s.Name
		}
		fmt.Fprintf(w, "  Surplus:  %s\n", strings.Join(names, ", "))
	}
	if res.Archived != nil {
		fmt.Fprintf(w, "  Archived: %s\n", res.Archived.Summary())
	}
	if res.Reset != nil {
		fmt.Fprintf(w, "  Reset:    %s\n", res.Reset.Summary())
	}
	if res.Warning != "" {
		fmt.Fprintf(w, "  Warning:  %s\n", res.Warning)
	}
}

func printReorder(w io.Writer, plan *core.ReorderPlan) {
	fmt.Fprintln(w)
	rule(w, "=", 78)
	fmt.Fprintf(w, "  %-74s\n", "SUGGESTED REORDER")
	rule(w, "=", 78)
	if len(plan.Lines) == 0 {
		fmt.Fprintln(w, "  Current stock covers the last analysed consumption.")
		rule(w, "=", 78)
		return
	}
	fmt.Fprintf(w, "  %-40s %10s %10s %12s\n", "ITEM", "QTY", "PRICE", "LINE TOTAL")
	rule(w, "-", 78)
	for _, l := range plan.Lines {
		fmt.Fprintf(w, "  %-40s %10s %10s %12s\n", truncate(l.Name, 40),
			l.Quantity.String(), l.UnitPrice.StringFixed(2), l.LineTotal.StringFixed(2))
	}
	rule(w, "=", 78)
	fmt.Fprintf(w, "  Estimated total: %s\n", plan.Total.StringFixed(2))
}

func printRecords(w io.Writer, res *app.RecordListResult) {
	fmt.Fprintln(w)
	rule(w, "=", 78)
	fmt.Fprintf(w, "  %-74s\n", "HISTORY")
	rule(w, "=", 78)
	if len(res.Records) == 0 {
		fmt.Fprintln(w, "  No records yet.")
		rule(w, "=", 78)
		return
	}
	for _, r := range res.Records {
		fmt.Fprintf(w, "  %-30s %-9s %-36s %5d\n", r.Label, r.Type, r.ID, len(r.Items))
	}
	rule(w, "=", 78)
}

func printStats(w io.Writer, res *app.StatsResult) {
	fmt.Fprintln(w)
	rule(w, "=", 62)
	fmt.Fprintf(w, "  CONSUMPTION SPEND (%d analyses)\n", res.Records)
	rule(w, "=", 62)
	for _, c := range res.Categories {
		fmt.Fprintf(w, "  %-44s %15s\n", c.Category, c.Spend.StringFixed(2))
	}
	rule(w, "-", 62)
	fmt.Fprintf(w, "  %-44s %15s\n", "TOTAL", res.Total.StringFixed(2))
	if len(res.TopItems) > 0 {
		rule(w, "-", 62)
		fmt.Fprintln(w, "  Top items")
		for _, it := range res.TopItems {
			fmt.Fprintf(w, "  %-34s %10s %15s\n", truncate(it.Name, 34), it.Consumption.String(), it.Spend.StringFixed(2))
		}
	}
	rule(w, "=", 62)
}

func printBatch(w io.Writer, what string, res *core.BatchResult) {
	fmt.Fprintf(w, "%s: %s\n", what, res.Summary())
	for _, f := range res.Failures {
		fmt.Fprintf(w, "  %s: %s\n", f.Key, f.Reason)
	}
}
