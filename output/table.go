package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tomyedwab/jamajira/database"
)

// NullText is shown for SQL NULL cells.
const NullText = "(null)"

// Table provides table rendering for result rows
type Table struct {
	table  *tablewriter.Table
	header []string
	rows   [][]string
}

func NewTable(w io.Writer, headers []string) *Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.Off,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	return &Table{table: table, header: headers}
}

func (t *Table) AddRow(row []string) {
	t.rows = append(t.rows, row)
}

// AddDatabaseRow formats each value of row as a cell.
func (t *Table) AddDatabaseRow(row database.Row) {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = FormatValue(v)
	}
	t.AddRow(cells)
}

func (t *Table) Render() {
	t.table.Header(t.header)
	t.table.Bulk(t.rows)
	t.table.Render()
}

func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return NullText
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// Rows prints title, then rows under headers, or a note when there are none.
func (p *Printer) Rows(title string, headers []string, rows []database.Row) {
	p.Header(title)
	if len(rows) == 0 {
		p.Info("No rows found")
		return
	}
	table := NewTable(p.out, headers)
	for _, row := range rows {
		table.AddDatabaseRow(row)
	}
	table.Render()
}
