package reader

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

var (
	// ErrNotObject is reported for a line that is valid JSON but not an object.
	ErrNotObject = errors.New("record is not a JSON object")

	// ErrTrailingData is reported for a line holding more than one JSON value.
	ErrTrailingData = errors.New("unexpected data after JSON object")

	// ErrInvalidUTF8 is reported for a line that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 in record")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LineError reports a line that could not be decoded as a record.
// Line is 1-based and counts blank lines.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ReadLines reads a whole JSON Lines file into memory and decodes it.
//
// Compressed files are decompressed according to their extension. Errors
// opening or reading the file are returned wrapped; decoding failures are
// returned as *LineError.
func ReadLines(path string) ([]map[string]interface{}, error) {
	rc, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	return ParseLines(data)
}

// ParseLines decodes JSON Lines content.
//
// Lines end in \n, \r\n or a lone \r. Blank and whitespace-only lines are
// skipped. Every other line must be valid UTF-8 holding exactly one JSON
// object; the first line that is not aborts decoding and no records are
// returned. A leading UTF-8 byte order mark is ignored.
func ParseLines(data []byte) ([]map[string]interface{}, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	rows := make([]map[string]interface{}, 0)
	for i, line := range splitLines(data) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if !utf8.Valid(line) {
			return nil, &LineError{Line: i + 1, Err: ErrInvalidUTF8}
		}

		row, err := decodeRecord(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// splitLines splits data on \n, \r\n and lone \r. JSON strings cannot hold
// raw carriage returns, so no record is split in two.
func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			lines = append(lines, data[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, data[start:i])
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, data[start:])
}

func decodeRecord(line []byte) (map[string]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(line))
	decoder.UseNumber()

	var v interface{}
	if err := decoder.Decode(&v); err != nil {
		return nil, err
	}

	row, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.Wrapf(ErrNotObject, "found %s", Kind(v))
	}

	var extra interface{}
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	return row, nil
}
