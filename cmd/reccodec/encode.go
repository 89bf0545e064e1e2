package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/solidcoredata/reccodec/record"
	"github.com/spf13/cobra"
)

func encodeCmd() *cobra.Command {
	var typeFile, rowFile, outFile string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a JSON row into wire bytes",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runEncode(typeFile, rowFile, outFile)
		},
	}
	cmd.Flags().StringVar(&typeFile, "type", "", "path to a type schema JSON file (required)")
	cmd.Flags().StringVar(&rowFile, "row", "", "path to a JSON object mapping column name to value (required)")
	cmd.Flags().StringVar(&outFile, "out", "", "output path for wire bytes (default stdout)")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("row")
	return cmd
}

func runEncode(typeFile, rowFile, outFile string) error {
	typ, err := readRecordType(typeFile)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(rowFile)
	if err != nil {
		return fmt.Errorf("reading row %q: %w", rowFile, err)
	}
	var jsonRow map[string]any
	if err := json.Unmarshal(raw, &jsonRow); err != nil {
		return fmt.Errorf("parsing row %q: %w", rowFile, err)
	}
	row, err := coerceRow(typ, jsonRow)
	if err != nil {
		return fmt.Errorf("coercing row %q: %w", rowFile, err)
	}
	rec, err := record.NewFromMapping(typ, row)
	if err != nil {
		return fmt.Errorf("building record: %w", err)
	}
	buf, err := rec.Encode()
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if outFile == "" {
		_, err := os.Stdout.Write(buf)
		return err
	}
	if err := os.WriteFile(outFile, buf, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", outFile, err)
	}
	return nil
}
