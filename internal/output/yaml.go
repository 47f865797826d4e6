package output

import (
	"io"

	"github.com/segmentio/encoding/json"
	"go.yaml.in/yaml/v3"
)

// YAMLFormatter outputs rows as a YAML sequence of mappings.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// SetOutput sets the output writer
func (y *YAMLFormatter) SetOutput(w io.Writer) {
	y.writer = w
}

// Format writes rows as one YAML document. Nothing is written for zero rows.
func (y *YAMLFormatter) Format(rows []map[string]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	docs := make([]interface{}, len(rows))
	for i, row := range rows {
		docs[i] = yamlValue(row)
	}

	encoder := yaml.NewEncoder(y.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(docs); err != nil {
		return err
	}
	return encoder.Close()
}

// yamlValue turns json.Number into a YAML number so it is not emitted as a
// quoted string.
func yamlValue(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return string(val)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			out[k] = yamlValue(elem)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = yamlValue(elem)
		}
		return out
	default:
		return v
	}
}
