// Package reader decodes input files into records.
//
// A record is a map[string]interface{} holding one decoded object. Two input
// formats are supported:
//
//   - JSON Lines: one JSON object per line, blank lines ignored. The file may
//     be compressed with gzip (.gz), zstd (.zst), lz4 (.lz4) or brotli (.br);
//     the codec is chosen from the file extension.
//   - Parquet: every row of the file becomes one record.
//
// # Basic Usage
//
// Reading a JSON Lines file:
//
//	rows, err := reader.ReadLines("transactions.txt")
//	if err != nil {
//	    var lineErr *reader.LineError
//	    if errors.As(err, &lineErr) {
//	        log.Fatalf("bad record on line %d", lineErr.Line)
//	    }
//	    log.Fatal(err)
//	}
//
// Letting the extension pick the format:
//
//	rows, err := reader.ReadFile("events.parquet", reader.FormatAuto)
//
// # Numbers
//
// JSON numbers are decoded as json.Number so their text survives until it is
// rendered. Parquet values keep their native Go types.
//
// # Schema Introspection
//
// InferSchema summarizes the fields observed across decoded records.
// ExtractSchemaInfo reports the declared column types of a Parquet file.
package reader

//go:generate go run ../../testdata/generate.go -dir ../../testdata
