// Package convert turns a file of structured records into a table.
//
// The input (JSON Lines by default) is read into memory in one pass, every
// non-blank line is decoded as one record, and the records are written as a
// CSV table whose header is the sorted union of all record keys. The output
// file is replaced atomically and only when at least one record was decoded.
package convert

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/vegasq/jl2csv/internal/logging"
	"github.com/vegasq/jl2csv/internal/output"
	"github.com/vegasq/jl2csv/internal/reader"
)

// Default file names used when no paths are given.
const (
	DefaultInput  = "transactions.txt"
	DefaultOutput = "transactions.csv"
)

// Converter converts one input file to one output file.
//
// The zero value converts auto-detected input to CSV with \n line endings
// and no logging.
type Converter struct {
	// InputFormat is "auto", "jsonl" or "parquet".
	InputFormat string

	// OutputFormat is any name accepted by output.NewFormatter. Empty means csv.
	OutputFormat string

	// Options is passed to the output formatter.
	Options output.Options

	Logger *slog.Logger
}

// Convert converts inputPath to outputPath using a zero Converter.
func Convert(inputPath, outputPath string) (int, error) {
	var c Converter
	return c.Convert(inputPath, outputPath)
}

// Convert reads every record from inputPath and writes the table to
// outputPath, returning the number of records written.
//
// On any error outputPath is left as it was. A *Error of KindEmptyInput is
// returned, with a zero count, when the input holds no records.
func (c *Converter) Convert(inputPath, outputPath string) (int, error) {
	log := c.logger().With("input", inputPath, "output", outputPath)

	formatName := c.OutputFormat
	if formatName == "" {
		formatName = "csv"
	}

	var rendered bytes.Buffer
	formatter, err := output.NewFormatter(formatName, &rendered, c.Options)
	if err != nil {
		return 0, &Error{Kind: KindFormat, Path: outputPath, Err: err}
	}

	rows, err := c.read(inputPath)
	if err != nil {
		return 0, err
	}
	log.Debug("decoded input", "records", len(rows))

	if len(rows) == 0 {
		log.Info("no records in input, output not written")
		return 0, &Error{Kind: KindEmptyInput, Path: inputPath}
	}

	if err := formatter.Format(rows); err != nil {
		return 0, &Error{Kind: KindWrite, Path: outputPath, Err: err}
	}
	log.Debug("rendered table", "format", formatName, "bytes", rendered.Len(), "columns", len(output.Columns(rows)))

	if err := writeFileAtomic(outputPath, rendered.Bytes()); err != nil {
		return 0, &Error{Kind: KindWrite, Path: outputPath, Err: err}
	}

	log.Info("conversion complete", "records", len(rows))
	return len(rows), nil
}

// Records decodes inputPath without writing anything. Errors are classified
// the same way as for Convert, except that empty input is not an error.
func (c *Converter) Records(inputPath string) ([]map[string]interface{}, error) {
	return c.read(inputPath)
}

func (c *Converter) read(inputPath string) ([]map[string]interface{}, error) {
	rows, err := reader.ReadFile(inputPath, c.InputFormat)
	if err == nil {
		return rows, nil
	}

	var lineErr *reader.LineError
	switch {
	case errors.As(err, &lineErr):
		return nil, &Error{Kind: KindParse, Path: inputPath, Line: lineErr.Line, Err: lineErr.Err}
	case errors.Is(err, reader.ErrInvalidParquet):
		return nil, &Error{Kind: KindParse, Path: inputPath, Err: err}
	case errors.Is(err, reader.ErrUnsupportedInput):
		return nil, &Error{Kind: KindFormat, Path: inputPath, Err: err}
	default:
		// Missing files, permission errors, directories and broken
		// compressed streams all leave the input unreadable.
		return nil, &Error{Kind: KindFileNotFound, Path: inputPath, Err: err}
	}
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}
