package reader

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Input format names accepted by ReadFile.
const (
	FormatAuto    = "auto"
	FormatJSONL   = "jsonl"
	FormatParquet = "parquet"
)

// ErrUnsupportedInput is returned for an unknown input format name.
var ErrUnsupportedInput = errors.New("unsupported input format")

// DetectFormat resolves the input format for path. An explicit format wins;
// "auto" or "" picks parquet for a .parquet extension and JSON Lines for
// everything else.
func DetectFormat(path, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatAuto:
	case FormatJSONL, "json", "ndjson":
		return FormatJSONL, nil
	case FormatParquet:
		return FormatParquet, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedInput, "%q (supported: auto, jsonl, parquet)", format)
	}

	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return FormatParquet, nil
	}
	return FormatJSONL, nil
}

// ReadFile decodes path in the given input format.
func ReadFile(path, format string) ([]map[string]interface{}, error) {
	resolved, err := DetectFormat(path, format)
	if err != nil {
		return nil, err
	}

	if resolved == FormatParquet {
		return ReadParquet(path)
	}
	return ReadLines(path)
}
