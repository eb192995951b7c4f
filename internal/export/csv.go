package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"bar-inventory/internal/core"

	"github.com/shopspring/decimal"
)

const bom = "\uFEFF"

// FormatNumber renders d with two decimals and a decimal comma.
func FormatNumber(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// ParseNumber reads a number written with a decimal comma or dot.
func ParseNumber(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
}

// WriteCSV writes rec as a semicolon separated, BOM prefixed CSV for spreadsheet tools
// using a decimal comma. Each category starts with a blank line and a one-cell row.
func WriteCSV(w io.Writer, rec core.PeriodRecord) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(bom); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	cw := csv.NewWriter(bw)
	cw.Comma = ';'

	t := Build(rec)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, g := range t.Groups {
		if err := cw.Write(nil); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		if err := cw.Write([]string{g.Category}); err != nil {
			return fmt.Errorf("write csv category %q: %w", g.Category, err)
		}
		for _, r := range g.Rows {
			fields := make([]string, 0, len(r.Values)+1)
			fields = append(fields, r.Name)
			for _, v := range r.Values {
				fields = append(fields, FormatNumber(v))
			}
			if err := cw.Write(fields); err != nil {
				return fmt.Errorf("write csv row %q: %w", r.Name, err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return bw.Flush()
}

// ParseCSV reads a file produced by WriteCSV back into a Table.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: empty file")
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], bom)
	t := &Table{Header: header}

	for i, rec := range records[1:] {
		if len(rec) == 1 {
			t.Groups = append(t.Groups, Group{Category: rec[0]})
			continue
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("read csv line %d: %d fields, want %d", i+2, len(rec), len(header))
		}
		if len(t.Groups) == 0 {
			t.Groups = append(t.Groups, Group{Category: core.Uncategorized})
		}
		row := Row{Name: rec[0]}
		for _, field := range rec[1:] {
			v, err := ParseNumber(field)
			if err != nil {
				return nil, fmt.Errorf("read csv line %d: %w", i+2, err)
			}
			row.Values = append(row.Values, v)
		}
		g := &t.Groups[len(t.Groups)-1]
		g.Rows = append(g.Rows, row)
	}
	return t, nil
}
