// Package output provides formatters for writing decoded records to tabular
// and line-oriented formats.
//
// All formatters work with rows represented as []map[string]interface{}, the
// shape produced by the reader package for both JSON Lines and Parquet input.
//
// # Supported Formats
//
//   - CSV: header row made of the sorted union of all keys, then one row per record
//   - JSON Lines: one normalized JSON object per line
//   - YAML: a sequence of mappings
//   - Table: an aligned text table for terminals
//
// # Basic Usage
//
//	formatter, err := output.NewFormatter("csv", os.Stdout, output.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(rows); err != nil {
//	    log.Fatal(err)
//	}
//
// # Cell Rendering
//
// FormatValue is the single place where a record value becomes cell text.
// Missing and null values render as an empty cell, numbers use their
// shortest decimal form, and arrays or objects are re-encoded as compact
// JSON whose nested numbers follow the same rule.
package output
