package output

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// CSVFormatter outputs rows as CSV with a header row.
type CSVFormatter struct {
	writer   io.Writer
	useCRLF  bool
	sanitize bool
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// SetCRLF selects \r\n line terminators.
func (c *CSVFormatter) SetCRLF(useCRLF bool) {
	c.useCRLF = useCRLF
}

// SetSanitize enables the spreadsheet formula guard on string cells.
func (c *CSVFormatter) SetSanitize(sanitize bool) {
	c.sanitize = sanitize
}

// Format writes rows as CSV.
//
// The header is Columns(rows). Each row has exactly one cell per header
// column; keys a row does not carry produce an empty cell. No output is
// produced for zero rows.
func (c *CSVFormatter) Format(rows []map[string]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	csvWriter := csv.NewWriter(c.writer)
	csvWriter.UseCRLF = c.useCRLF

	columns := Columns(rows)

	if err := csvWriter.Write(columns); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = c.cell(row[col])
		}
		if err := csvWriter.Write(record); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return errors.Wrap(err, "failed to flush CSV writer")
	}

	return nil
}

func (c *CSVFormatter) cell(v interface{}) string {
	s, isString := v.(string)
	if !isString || !c.sanitize {
		return FormatValue(v)
	}
	return sanitizeFormula(s)
}

// sanitizeFormula prefixes values whose first character makes spreadsheet
// applications evaluate the cell as a formula.
func sanitizeFormula(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune("=+-@\t\r\n|", rune(s[0])) {
		return "'" + s
	}
	return s
}
