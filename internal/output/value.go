package output

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/encoding/json"
)

// FormatValue converts a record value to its cell text.
//
// Values decoded from JSON Lines arrive as nil, bool, json.Number, string,
// []interface{} or map[string]interface{}; values read from Parquet arrive as
// native Go scalars. Both are handled here.
func FormatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return formatNumber(string(val))
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return formatFloat(float64(val), 32)
	case float64:
		return formatFloat(val, 64)
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return encodeCompact(val)
	}
}

// formatNumber renders a JSON number literal in minimal decimal form.
// Integer literals are already minimal and are kept verbatim so values
// beyond the float64 mantissa survive.
func formatNumber(s string) string {
	if !strings.ContainsAny(s, ".eE") {
		if s == "-0" {
			return "0"
		}
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return formatFloat(f, 64)
}

func formatFloat(f float64, bitSize int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-4 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	return strconv.FormatFloat(f, 'e', -1, bitSize)
}

// encodeCompact re-encodes composite values as single-line JSON with sorted
// keys. Nested numbers are rendered like top-level ones. Values that cannot
// be encoded fall back to an empty cell.
func encodeCompact(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalizeNumbers(v)); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

// normalizeNumbers returns a copy of v with every json.Number leaf in
// minimal decimal form.
func normalizeNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		return json.Number(formatNumber(string(val)))
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			out[k] = normalizeNumbers(elem)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = normalizeNumbers(elem)
		}
		return out
	default:
		return v
	}
}
