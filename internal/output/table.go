package output

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter outputs rows as an aligned text table for terminals.
type TableFormatter struct {
	writer   io.Writer
	maxWidth int
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// SetMaxWidth sets the display width above which cells are truncated.
func (t *TableFormatter) SetMaxWidth(width int) {
	t.maxWidth = width
}

// Format renders rows with the same columns and cell text as the CSV
// formatter. Newlines inside cells are shown as a literal \n.
func (t *TableFormatter) Format(rows []map[string]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	columns := Columns(rows)

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = t.cell(FormatValue(row[col]))
		}
		table.Append(cells)
	}

	table.Render()
	return nil
}

func (t *TableFormatter) cell(s string) string {
	s = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`).Replace(s)
	if t.maxWidth > 0 && runewidth.StringWidth(s) > t.maxWidth {
		return runewidth.Truncate(s, t.maxWidth, "…")
	}
	return s
}
