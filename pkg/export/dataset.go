package export

import "fmt"

// Column describes one exported column.
type Column struct {
	Title   string
	Width   float64
	Numeric bool
}

// Row is a single line of cells. Emphasis marks subtotal and total lines.
type Row struct {
	Cells    []string
	Emphasis bool
}

// Dataset defines tabular export content.
type Dataset struct {
	Title    string
	Subtitle string
	Columns  []Column
	Rows     []Row
}

// Exporter renders a dataset into a downloadable document.
type Exporter interface {
	Render(data Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

func (d Dataset) validate(kind string) error {
	if len(d.Columns) == 0 {
		return fmt.Errorf("%s requires at least one column", kind)
	}
	for i, row := range d.Rows {
		if len(row.Cells) != len(d.Columns) {
			return fmt.Errorf("%s row %d has %d cells, want %d", kind, i, len(row.Cells), len(d.Columns))
		}
	}
	return nil
}

func (d Dataset) headers() []string {
	out := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		out[i] = col.Title
	}
	return out
}
