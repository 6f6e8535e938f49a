package export

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/bizledger/backend/internal/domain/report"
)

const (
	// ExcelContentType is the MIME type of .xlsx files
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	maxSheetName = 31
	minColWidth  = 10
	maxColWidth  = 50
)

// ExcelRenderer writes a dataset to a single-sheet workbook
type ExcelRenderer struct{}

// NewExcelRenderer creates a new ExcelRenderer
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

// Format returns "xlsx"
func (r *ExcelRenderer) Format() string { return "xlsx" }

// ContentType returns the xlsx MIME type
func (r *ExcelRenderer) ContentType() string { return ExcelContentType }

// Render lays out a title row, a range row, a header row and one row per record.
// Amount columns are written as numbers so they can be summed in the sheet.
func (r *ExcelRenderer) Render(_ context.Context, ds report.Dataset) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := Humanize(string(ds.Kind))
	if len(sheet) > maxSheetName {
		sheet = sheet[:maxSheetName]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "#000000", Style: 1}},
	})
	if err != nil {
		return nil, err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(max(len(ds.Columns), 1))
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(sheet, "A1", Title(ds)); err != nil {
		return nil, err
	}
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A2", fmt.Sprintf("%s (generated %s)", RangeLabel(ds), ds.GeneratedAt.Format("2006-01-02 15:04"))); err != nil {
		return nil, err
	}

	const headerRow = 3
	widths := make([]int, len(ds.Columns))
	for i, col := range ds.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		title := Humanize(col.Title)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
		widths[i] = len(title)
	}
	if len(ds.Columns) > 0 {
		if err := f.SetCellStyle(sheet, "A3", fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range ds.Rows {
		excelRow := headerRow + 1 + rowIdx
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, excelRow)
			if err != nil {
				return nil, err
			}
			if colIdx < len(ds.Columns) && isAmountColumn(ds.Columns[colIdx].Key) && value != "" {
				if err := setAmount(f, sheet, cell, value, amountStyle); err != nil {
					return nil, err
				}
			} else if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
			if colIdx < len(widths) {
				widths[colIdx] = max(widths[colIdx], len(value))
			}
		}
	}

	if ds.Totals != nil {
		totalsRow := headerRow + len(ds.Rows) + 2
		for i, t := range []struct {
			label string
			value decimal.Decimal
		}{
			{"Income", ds.Totals.Income},
			{"Expenses", ds.Totals.Expenses},
			{"Balance", ds.Totals.Balance},
		} {
			row := totalsRow + i
			if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), t.label); err != nil {
				return nil, err
			}
			if err := setAmount(f, sheet, fmt.Sprintf("B%d", row), t.value.StringFixed(2), amountStyle); err != nil {
				return nil, err
			}
		}
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, name, name, float64(min(max(w+2, minColWidth), maxColWidth))); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setAmount(f *excelize.File, sheet, cell, value string, style int) error {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return f.SetCellValue(sheet, cell, value)
	}
	if err := f.SetCellValue(sheet, cell, d.InexactFloat64()); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}
