//go:build ignore

// Generate writes the sample inputs used to try jl2csv by hand:
// transactions.txt, its gzip and zstd copies, and transactions.parquet.
package main

import (
	"bytes"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/parquet-go/parquet-go"
	"github.com/segmentio/encoding/json"
)

type Transaction struct {
	ID       int64   `parquet:"id" json:"id"`
	Account  string  `parquet:"account" json:"account"`
	Amount   float64 `parquet:"amount" json:"amount"`
	Currency string  `parquet:"currency" json:"currency"`
	Memo     *string `parquet:"memo,optional" json:"memo,omitempty"`
}

func main() {
	dir := flag.String("dir", ".", "directory to write fixtures into")
	flag.Parse()

	refund := "refund, partial"
	txs := []Transaction{
		{ID: 1, Account: "acc-001", Amount: 120.5, Currency: "EUR"},
		{ID: 2, Account: "acc-002", Amount: -40, Currency: "USD", Memo: &refund},
		{ID: 3, Account: "acc-001", Amount: 0.0001, Currency: "EUR"},
		{ID: 4, Account: "acc-003", Amount: 1999.99, Currency: "GBP"},
	}

	var lines bytes.Buffer
	enc := json.NewEncoder(&lines)
	enc.SetEscapeHTML(false)
	for _, tx := range txs {
		if err := enc.Encode(tx); err != nil {
			log.Fatal(err)
		}
	}

	write(filepath.Join(*dir, "transactions.txt"), lines.Bytes())

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	if _, err := gw.Write(lines.Bytes()); err != nil {
		log.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		log.Fatal(err)
	}
	write(filepath.Join(*dir, "transactions.txt.gz"), gz.Bytes())

	zw, err := zstd.NewWriter(nil)
	if err != nil {
		log.Fatal(err)
	}
	write(filepath.Join(*dir, "transactions.txt.zst"), zw.EncodeAll(lines.Bytes(), nil))
	_ = zw.Close()

	file, err := os.Create(filepath.Join(*dir, "transactions.parquet"))
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Transaction](file)
	if _, err := writer.Write(txs); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated fixtures for %d transactions in %s", len(txs), *dir)
}

func write(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatal(err)
	}
}
