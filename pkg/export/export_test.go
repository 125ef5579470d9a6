package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:    "Payroll 2025-03-01 to 2025-03-07",
		Subtitle: "All locations",
		Columns: []Column{
			{Title: "Coach"},
			{Title: "Date"},
			{Title: "Activity"},
			{Title: "Pay", Numeric: true},
		},
		Rows: []Row{
			{Cells: []string{"Ana Silva", "2025-03-03", "BJJ Fundamentals", "30.00"}},
			{Cells: []string{"Ana Silva", "", "Total", "30.00"}, Emphasis: true},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Coach,Date,Activity,Pay\nAna Silva,2025-03-03,BJJ Fundamentals,30.00\nAna Silva,,Total,30.00\n", string(out))
}

func TestExportersRejectRaggedRows(t *testing.T) {
	data := sampleDataset()
	data.Rows = append(data.Rows, Row{Cells: []string{"only one"}})
	for _, exp := range []Exporter{NewCSVExporter(), NewPDFExporter(), NewXLSXExporter()} {
		_, err := exp.Render(data)
		assert.Error(t, err, exp.Extension())
	}
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	header, err := f.GetCellValue(xlsxSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Coach", header)
	pay, err := f.GetCellValue(xlsxSheet, "D5")
	require.NoError(t, err)
	assert.Equal(t, "30", pay)
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths([]Column{{Width: 40}, {}, {}}, 100)
	assert.Equal(t, []float64{40, 30, 30}, widths)
}
