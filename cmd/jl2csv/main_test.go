package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
)

// TestRow defines a simple test data structure
type TestRow struct {
	ID     int64   `parquet:"id"`
	Name   string  `parquet:"name"`
	Age    int64   `parquet:"age"`
	Salary float64 `parquet:"salary"`
}

// createTestParquetFile creates a temporary parquet file with test data
func createTestParquetFile(t *testing.T, dir, filename string, rows []TestRow) string {
	t.Helper()
	testFile := filepath.Join(dir, filename)

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	writer := parquet.NewGenericWriter[TestRow](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	return testFile
}

// isolate runs the test from an empty directory with an empty home so no
// config file or JL2CSV_* variable leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "JL2CSV_") {
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_DefaultPaths(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "transactions.txt"), `{"a":1,"b":2}`+"\n"+`{"b":3,"c":4}`+"\n")

	code, stdout, stderr := runCLI(t, "--crlf=false")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "Converted transactions.txt to transactions.csv (2 records)") {
		t.Errorf("stdout = %q", stdout)
	}

	data, err := os.ReadFile(filepath.Join(dir, "transactions.csv"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "a,b,c\n1,2,\n,3,4\n" {
		t.Errorf("output = %q", string(data))
	}
}

func TestRun_ExplicitPaths(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "events.jsonl")
	out := filepath.Join(dir, "events.csv")
	writeFile(t, in, `{"id":1}`)

	code, stdout, stderr := runCLI(t, "--input", in, "-o", out)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, in) || !strings.Contains(stdout, out) {
		t.Errorf("completion message should name both paths: %q", stdout)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "transactions.txt"), "\n  \n")

	code, stdout, _ := runCLI(t)
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "No data found in input file.") {
		t.Errorf("stdout = %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "transactions.csv")); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat err = %v", err)
	}
}

func TestRun_MissingInput(t *testing.T) {
	isolate(t)

	code, _, stderr := runCLI(t, "--input", "nope.jsonl")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "nope.jsonl") || !strings.Contains(stderr, "Please check the file path") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_ParseError(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "transactions.txt"), `{"a":1}`+"\n"+`{"a":}`+"\n")

	code, _, stderr := runCLI(t)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "line 2") {
		t.Errorf("stderr should name the failing line: %q", stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "transactions.csv")); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat err = %v", err)
	}
}

func TestRun_InvalidFlags(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad format", args: []string{"-f", "xlsx"}, want: "unsupported format"},
		{name: "bad log level", args: []string{"--log-level", "loud"}, want: "log level"},
		{name: "negative width", args: []string{"--max-width", "-1"}, want: "max_width"},
		{name: "positional args", args: []string{"extra"}, want: "unknown command"},
		{name: "missing config", args: []string{"--config", "missing.yaml"}, want: "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.want)
			}
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "data.jsonl"), `{"x":"y"}`)
	writeFile(t, filepath.Join(dir, "jl2csv.yaml"), "input: data.jsonl\noutput: data.out\nformat: jsonl\n")

	code, _, stderr := runCLI(t)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}

	data, err := os.ReadFile(filepath.Join(dir, "data.out"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != `{"x":"y"}`+"\n" {
		t.Errorf("output = %q", string(data))
	}
}

func TestRun_Parquet(t *testing.T) {
	dir := isolate(t)
	testFile := createTestParquetFile(t, dir, "test.parquet", []TestRow{
		{ID: 1, Name: "Alice", Age: 30, Salary: 50000.0},
		{ID: 2, Name: "Bob", Age: 25, Salary: 45000.5},
	})
	out := filepath.Join(dir, "test.csv")

	code, _, stderr := runCLI(t, "-i", testFile, "-o", out, "--crlf=false")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := "age,id,name,salary\n30,1,Alice,50000\n25,2,Bob,45000.5\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", string(data), want)
	}
}

func TestSchema(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "events.jsonl")
	writeFile(t, in, `{"id":1,"name":"a"}`+"\n"+`{"id":2}`+"\n")

	t.Run("schema_csv", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "schema", "-i", in, "--crlf=false")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}

		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		if len(lines) != 3 {
			t.Fatalf("schema output has %d lines, want 3: %q", len(lines), stdout)
		}
		if lines[0] != "count,logical_type,name,optional,physical_type,repeated,required,type" {
			t.Errorf("header = %q", lines[0])
		}
		if lines[1] != "2,,id,false,,false,true,number" {
			t.Errorf("id row = %q", lines[1])
		}
		if lines[2] != "1,,name,true,,false,false,string" {
			t.Errorf("name row = %q", lines[2])
		}
	})

	t.Run("schema_jsonl", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "schema", "-i", in, "-f", "jsonl")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}
		if !strings.Contains(stdout, `"name":"id"`) || !strings.Contains(stdout, `"type":"number"`) {
			t.Errorf("schema output missing fields: %q", stdout)
		}
	})

	t.Run("schema_parquet", func(t *testing.T) {
		testFile := createTestParquetFile(t, dir, "test.parquet", []TestRow{{ID: 1, Name: "Alice"}})

		code, stdout, stderr := runCLI(t, "schema", "-i", testFile, "-f", "table")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}
		for _, want := range []string{"salary", "FLOAT64", "STRING", "INT64"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("schema output missing %q: %q", want, stdout)
			}
		}
	})

	t.Run("schema_input_named_like_default_output", func(t *testing.T) {
		writeFile(t, filepath.Join(dir, "transactions.csv"), `{"id":1}`+"\n")

		code, stdout, stderr := runCLI(t, "schema", "-i", "transactions.csv", "-f", "jsonl")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %q", code, stderr)
		}
		if !strings.Contains(stdout, `"name":"id"`) {
			t.Errorf("schema output missing id: %q", stdout)
		}
	})

	t.Run("schema_empty", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.jsonl")
		writeFile(t, empty, "\n")

		code, stdout, _ := runCLI(t, "schema", "-i", empty)
		if code != 0 {
			t.Errorf("exit code = %d, want 0", code)
		}
		if !strings.Contains(stdout, "No data found") {
			t.Errorf("stdout = %q", stdout)
		}
	})
}

func TestVersion(t *testing.T) {
	isolate(t)

	code, stdout, _ := runCLI(t, "version")
	if code != 0 {
		t.Errorf("exit code = %d", code)
	}
	if stdout != "jl2csv dev\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRun_SampleFixture(t *testing.T) {
	in, err := filepath.Abs(filepath.Join("..", "..", "testdata", "transactions.txt"))
	if err != nil {
		t.Fatal(err)
	}
	dir := isolate(t)
	out := filepath.Join(dir, "transactions.csv")

	code, stdout, stderr := runCLI(t, "-i", in, "-o", out, "--crlf=false")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "(4 records)") {
		t.Errorf("stdout = %q", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := "account,amount,currency,id,memo\n" +
		"acc-001,120.5,EUR,1,\n" +
		"acc-002,-40,USD,2,\"refund, partial\"\n" +
		"acc-001,0.0001,EUR,3,\n" +
		"acc-003,1999.99,GBP,4,\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", string(data), want)
	}
}
