package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vegasq/jl2csv/internal/convert"
	"github.com/vegasq/jl2csv/internal/output"
	"github.com/vegasq/jl2csv/internal/reader"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the fields found in the input",
		Long: `Schema decodes the input and prints one row per field: the JSON kinds
seen for it, how many records carry it, and whether every record does.
For Parquet input the declared column types are shown instead.

The rows are written to stdout in the format selected with --format.`,
		Args: cobra.NoArgs,
		RunE: a.runSchema,
	}
}

func (a *app) runSchema(cmd *cobra.Command, args []string) error {
	infos, err := a.schemaInfos()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return &convert.Error{Kind: convert.KindEmptyInput, Path: a.cfg.Input}
	}

	rows := make([]map[string]interface{}, len(infos))
	for i, info := range infos {
		rows[i] = info.Row()
	}

	formatter, err := output.NewFormatter(a.cfg.Format, a.stdout, a.cfg.OutputOptions())
	if err != nil {
		return err
	}
	if err := formatter.Format(rows); err != nil {
		return fmt.Errorf("failed to format schema: %w", err)
	}
	return nil
}

func (a *app) schemaInfos() ([]reader.SchemaInfo, error) {
	format, err := reader.DetectFormat(a.cfg.Input, a.cfg.InputFormat)
	if err != nil {
		return nil, err
	}

	converter := a.cfg.Converter(a.logger)
	if format == reader.FormatParquet {
		// Reading the rows first classifies open and decode errors the
		// same way a conversion would.
		if _, err := converter.Records(a.cfg.Input); err != nil {
			return nil, err
		}
		return reader.ExtractSchemaInfo(a.cfg.Input)
	}

	rows, err := converter.Records(a.cfg.Input)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("inferring schema", "records", len(rows))
	return reader.InferSchema(rows), nil
}
