// Command jl2csv converts a JSON Lines file into a CSV table.
//
// Every non-blank input line must be a JSON object. The CSV header is the
// sorted union of all keys; records missing a key get an empty cell.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vegasq/jl2csv/internal/config"
	"github.com/vegasq/jl2csv/internal/convert"
	"github.com/vegasq/jl2csv/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// app carries the state shared by the root command and its subcommands
// once flags and config are resolved.
type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "jl2csv",
		Short: "Convert a JSON Lines file to CSV",
		Long: `jl2csv reads a file holding one JSON object per line and writes a CSV
table. The header is the sorted union of every key seen; records without a
key get an empty cell. Blank lines are ignored and any malformed line aborts
the conversion without touching the output file.

Input may be gzip, zstd, lz4 or brotli compressed (chosen by extension), or
a Parquet file.`,
		Example: `  jl2csv
  jl2csv --input events.jsonl.gz --output events.csv
  jl2csv -i data.parquet -o data.csv
  jl2csv schema -i events.jsonl -f table`,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runConvert,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./jl2csv.yaml or ~/.config/jl2csv/jl2csv.yaml)")
	flags.StringP("input", "i", convert.DefaultInput, "input file path")
	flags.StringP("format", "f", "csv", "output format: csv, jsonl, yaml, table")
	flags.String("input-format", "auto", "input format: auto, jsonl, parquet")
	flags.Bool("crlf", false, "terminate CSV lines with \\r\\n (default true on Windows)")
	flags.Bool("sanitize", false, "prefix spreadsheet formula characters in string cells with '")
	flags.Int("max-width", 0, "truncate table cells wider than this (0 = unlimited)")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")

	rootCmd.Flags().StringP("output", "o", convert.DefaultOutput, "output file path")

	rootCmd.AddCommand(newSchemaCmd(a), newVersionCmd(a))
	return rootCmd
}

// setup resolves configuration for whichever command is running.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	v := viper.New()
	config.SetDefaults(v)

	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfgFile, _ := cmd.Flags().GetString("config")
	used, err := config.ReadFile(v, cfgFile)
	if err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := logging.New("jl2csv", cfg.LogLevel, a.stderr)
	if err != nil {
		return err
	}
	if used != "" {
		logger.Info("using config file", "path", used)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) runConvert(cmd *cobra.Command, args []string) error {
	n, err := a.cfg.Converter(a.logger).Convert(a.cfg.Input, a.cfg.Output)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Converted %s to %s (%d records)\n", a.cfg.Input, a.cfg.Output, n)
	return nil
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var convErr *convert.Error
	if errors.As(err, &convErr) {
		switch convErr.Kind {
		case convert.KindEmptyInput:
			fmt.Fprintln(stdout, "No data found in input file.")
			return 0
		case convert.KindFileNotFound:
			fmt.Fprintf(stderr, "Error: %v\n", err)
			fmt.Fprintf(stderr, "Please check the file path and try again.\n")
			return 1
		}
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
