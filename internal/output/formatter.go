package output

import (
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned by NewFormatter for an unknown format name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to convert rows to the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rows []map[string]interface{}) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Options tunes formatter behavior. Fields that do not apply to the chosen
// format are ignored.
type Options struct {
	// UseCRLF terminates CSV lines with \r\n instead of \n.
	UseCRLF bool

	// Sanitize prefixes string cells that a spreadsheet would evaluate as a
	// formula with a single quote. CSV only.
	Sanitize bool

	// MaxWidth truncates table cells wider than this many columns. Zero
	// disables truncation. Table only.
	MaxWidth int
}

// Formats lists the names accepted by NewFormatter.
var Formats = []string{"csv", "json", "jsonl", "table", "yaml", "yml"}

// NewFormatter returns the formatter registered under name, writing to w.
func NewFormatter(name string, w io.Writer, opts Options) (Formatter, error) {
	switch strings.ToLower(name) {
	case "csv":
		f := NewCSVFormatter(w)
		f.SetCRLF(opts.UseCRLF)
		f.SetSanitize(opts.Sanitize)
		return f, nil
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	case "yaml", "yml":
		return NewYAMLFormatter(w), nil
	case "table":
		f := NewTableFormatter(w)
		f.SetMaxWidth(opts.MaxWidth)
		return f, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q (supported: %s)", name, strings.Join(Formats, ", "))
	}
}

// Columns returns the sorted union of keys across all rows.
//
// Rows may carry different key sets (sparse records); the result covers every
// key seen at least once, in byte order, independent of row order.
func Columns(rows []map[string]interface{}) []string {
	columnSet := make(map[string]struct{})
	for _, row := range rows {
		for col := range row {
			columnSet[col] = struct{}{}
		}
	}

	columns := make([]string, 0, len(columnSet))
	for col := range columnSet {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}
