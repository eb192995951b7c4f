package export

import (
	"fmt"
	"io"

	"bar-inventory/internal/core"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds rec.
func SheetName(rec core.PeriodRecord) string {
	if rec.Type == core.RecordAnalysis {
		return "Analisis"
	}
	return "Inventario"
}

// WriteXLSX writes rec as a single-sheet workbook with the same rows as WriteCSV.
// Header and category rows are bold; numbers are stored as numeric cells.
func WriteXLSX(w io.Writer, rec core.PeriodRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(rec)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	t := Build(rec)
	rowNo := 1
	writeRow := func(values []any, style int) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNo)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		if style != 0 {
			last, err := excelize.CoordinatesToCellName(len(values), rowNo)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, last, style); err != nil {
				return err
			}
		}
		rowNo++
		return nil
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := writeRow(header, bold); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, g := range t.Groups {
		rowNo++
		if err := writeRow([]any{g.Category}, bold); err != nil {
			return fmt.Errorf("write category %q: %w", g.Category, err)
		}
		for _, r := range g.Rows {
			values := make([]any, 0, len(r.Values)+1)
			values = append(values, r.Name)
			for _, v := range r.Values {
				values = append(values, v.Round(2).InexactFloat64())
			}
			if err := writeRow(values, 0); err != nil {
				return fmt.Errorf("write row %q: %w", r.Name, err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 36); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
