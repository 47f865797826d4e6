package reader

import (
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// SchemaInfo describes one field of the input.
//
// For JSON Lines input Type lists every JSON kind seen for the field joined
// with "|", and Count is the number of records carrying it. For Parquet
// input the physical and logical types come from the file metadata.
type SchemaInfo struct {
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	PhysicalType string `json:"physical_type,omitempty" yaml:"physical_type,omitempty"`
	LogicalType  string `json:"logical_type,omitempty" yaml:"logical_type,omitempty"`
	Count        int    `json:"count" yaml:"count"`
	Required     bool   `json:"required" yaml:"required"`
	Optional     bool   `json:"optional" yaml:"optional"`
	Repeated     bool   `json:"repeated" yaml:"repeated"`
}

// Row returns the info as a record so it can go through an output formatter.
func (s SchemaInfo) Row() map[string]interface{} {
	return map[string]interface{}{
		"name":          s.Name,
		"type":          s.Type,
		"physical_type": s.PhysicalType,
		"logical_type":  s.LogicalType,
		"count":         s.Count,
		"required":      s.Required,
		"optional":      s.Optional,
		"repeated":      s.Repeated,
	}
}

// Kind names the JSON kind of a decoded value.
func Kind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case string, []byte:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return "unknown"
	}
}

// InferSchema summarizes the fields of decoded records, sorted by name.
// A field is required when every record carries it.
func InferSchema(rows []map[string]interface{}) []SchemaInfo {
	counts := make(map[string]int)
	kinds := make(map[string]map[string]struct{})

	for _, row := range rows {
		for name, v := range row {
			counts[name]++
			if kinds[name] == nil {
				kinds[name] = make(map[string]struct{})
			}
			kinds[name][Kind(v)] = struct{}{}
		}
	}

	infos := make([]SchemaInfo, 0, len(counts))
	for name, count := range counts {
		names := make([]string, 0, len(kinds[name]))
		for k := range kinds[name] {
			names = append(names, k)
		}
		sort.Strings(names)

		_, hasArray := kinds[name]["array"]
		infos = append(infos, SchemaInfo{
			Name:     name,
			Type:     strings.Join(names, "|"),
			Count:    count,
			Required: count == len(rows),
			Optional: count < len(rows),
			Repeated: hasArray,
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// ExtractSchemaInfo reads the column metadata of a Parquet file.
//
// Nested groups are flattened to their leaf columns using dot notation
// (e.g. "address.street"). Count is the number of rows in the file.
func ExtractSchemaInfo(path string) ([]SchemaInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open parquet file")
	}
	defer func() { _ = r.Close() }()

	numRows := int(r.pqFile.NumRows())

	var infos []SchemaInfo
	for _, field := range r.Schema().Fields() {
		infos = append(infos, leafFields(field, "", false, numRows)...)
	}
	return infos, nil
}

func leafFields(field parquet.Field, prefix string, parentRepeated bool, numRows int) []SchemaInfo {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}
	repeated := parentRepeated || field.Repeated()

	if children := field.Fields(); len(children) > 0 {
		var infos []SchemaInfo
		for _, child := range children {
			infos = append(infos, leafFields(child, name, repeated, numRows)...)
		}
		return infos
	}

	info := SchemaInfo{
		Name:     name,
		Type:     "GROUP",
		Count:    numRows,
		Required: field.Required(),
		Optional: field.Optional(),
		Repeated: repeated,
	}
	if typ := field.Type(); typ != nil {
		info.PhysicalType = physicalTypes[typ.Kind()]
		if info.PhysicalType == "" {
			info.PhysicalType = "UNKNOWN"
		}
		if lt := typ.LogicalType(); lt != nil {
			info.LogicalType = lt.String()
		}
		info.Type = friendlyType(info.PhysicalType, info.LogicalType)
	}
	return []SchemaInfo{info}
}

var physicalTypes = map[parquet.Kind]string{
	parquet.Boolean:           "BOOLEAN",
	parquet.Int32:             "INT32",
	parquet.Int64:             "INT64",
	parquet.Int96:             "INT96",
	parquet.Float:             "FLOAT",
	parquet.Double:            "DOUBLE",
	parquet.ByteArray:         "BYTE_ARRAY",
	parquet.FixedLenByteArray: "FIXED_LEN_BYTE_ARRAY",
}

// friendlyType prefers the logical type name, collapsing the STRING aliases,
// and falls back to the physical type.
func friendlyType(physical, logical string) string {
	switch {
	case logical == "STRING" || logical == "UTF8":
		return "STRING"
	case logical == "" || strings.HasPrefix(logical, "INT"):
		switch physical {
		case "FLOAT":
			return "FLOAT32"
		case "DOUBLE":
			return "FLOAT64"
		}
		return physical
	default:
		if i := strings.IndexByte(logical, '('); i > 0 {
			return logical[:i]
		}
		return logical
	}
}
