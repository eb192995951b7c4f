// Package export renders period records as spreadsheets.
package export

import (
	"regexp"
	"strings"

	"bar-inventory/internal/core"

	"github.com/shopspring/decimal"
)

// Column headers of the two layouts.
var (
	AnalysisHeader     = []string{"Articulo", "Stock Actual", "En Pedidos", "Stock Inicial Total", "Consumo"}
	snapshotLeadHeader = []string{"Articulo", "P.U. s/IVA", "VALOR TOTAL"}
)

// Table is the tabular form of a record: a header and category groups of rows.
type Table struct {
	Header []string
	Groups []Group
}

// Group is a category header followed by its rows.
type Group struct {
	Category string
	Rows     []Row
}

// Row is an item name with one value per numeric column.
type Row struct {
	Name   string
	Values []decimal.Decimal
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}

// snapshotLocations returns the known locations present in any line, in fixed order.
func snapshotLocations(items []core.RecordItem) []string {
	present := map[string]bool{}
	for _, it := range items {
		for loc := range it.StockByLocationSnapshot {
			present[loc] = true
		}
	}
	var out []string
	for _, loc := range core.Locations {
		if present[loc] {
			out = append(out, loc)
		}
	}
	return out
}

// Build lays out rec. Analysis tables carry only the relevant lines; snapshot tables
// carry every line with a column per location.
func Build(rec core.PeriodRecord) Table {
	var t Table
	var row func(core.RecordItem) Row

	if rec.Type == core.RecordAnalysis {
		t.Header = append([]string(nil), AnalysisHeader...)
		row = func(it core.RecordItem) Row {
			return Row{Name: it.Name, Values: []decimal.Decimal{
				orZero(it.CurrentStock),
				orZero(it.PendingStock),
				orZero(it.InitialStock),
				orZero(it.Consumption),
			}}
		}
	} else {
		locations := snapshotLocations(rec.Items)
		t.Header = append([]string(nil), snapshotLeadHeader...)
		for _, loc := range locations {
			t.Header = append(t.Header, strings.ToUpper(loc))
		}
		t.Header = append(t.Header, "Total")
		row = func(it core.RecordItem) Row {
			total := decimal.Zero
			for _, q := range it.StockByLocationSnapshot {
				total = total.Add(q)
			}
			values := []decimal.Decimal{it.UnitPrice, core.RoundCurrency(total.Mul(it.UnitPrice))}
			for _, loc := range locations {
				values = append(values, it.StockByLocationSnapshot[loc])
			}
			return Row{Name: it.Name, Values: append(values, total)}
		}
	}

	for _, g := range core.GroupByCategory(core.RelevantItems(rec)) {
		group := Group{Category: g.Category}
		for _, it := range g.Items {
			group.Rows = append(group.Rows, row(it))
		}
		t.Groups = append(t.Groups, group)
	}
	return t
}

var unsafeFilename = regexp.MustCompile(`[\\/:*?"<>|]`)

// Filename is the download name of rec with the given extension ("csv", "xlsx").
func Filename(rec core.PeriodRecord, ext string) string {
	label := []rune(unsafeFilename.ReplaceAllString(rec.Label, ""))
	if len(label) > 50 {
		label = label[:50]
	}
	kind := "Inventario"
	if rec.Type == core.RecordAnalysis {
		kind = "Analisis"
	}
	return string(label) + "_" + kind + "." + ext
}
