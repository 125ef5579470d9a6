package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Payroll"

// XLSXExporter renders datasets into a single-sheet workbook.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// ContentType implements Exporter.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension implements Exporter.
func (e *XLSXExporter) Extension() string { return "xlsx" }

// Render writes the title, a bold frozen header row and typed numeric cells.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate("xlsx"); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	row := 1
	if data.Title != "" {
		if err := f.SetCellValue(xlsxSheet, "A1", data.Title); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(xlsxSheet, "A1", "A1", bold)
		row++
		if data.Subtitle != "" {
			if err := f.SetCellValue(xlsxSheet, "A2", data.Subtitle); err != nil {
				return nil, err
			}
			row++
		}
		row++
	}

	headerRow := row
	for i, col := range data.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, col.Title); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := 14.0
		if col.Width > 0 {
			width = col.Width / 2
		}
		_ = f.SetColWidth(xlsxSheet, colName, colName, width)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(data.Columns), headerRow)
	_ = f.SetCellStyle(xlsxSheet, first, last, bold)

	for _, r := range data.Rows {
		row++
		for i, value := range r.Cells {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(xlsxSheet, cell, typedCell(value, data.Columns[i].Numeric)); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
		if r.Emphasis {
			a, _ := excelize.CoordinatesToCellName(1, row)
			b, _ := excelize.CoordinatesToCellName(len(r.Cells), row)
			_ = f.SetCellStyle(xlsxSheet, a, b, bold)
		}
	}

	if err := f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func typedCell(value string, numeric bool) interface{} {
	if !numeric || value == "" {
		return value
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	return value
}
