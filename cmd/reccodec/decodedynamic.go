package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/solidcoredata/reccodec/bufrange"
	"github.com/solidcoredata/reccodec/record"
	"github.com/spf13/cobra"
)

func decodeDynamicCmd() *cobra.Command {
	var defFile, dataFile string
	cmd := &cobra.Command{
		Use:   "decode-dynamic",
		Short: "Decode a dynamic (columnar) response into JSON rows",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDecodeDynamic(defFile, dataFile)
		},
	}
	cmd.Flags().StringVar(&defFile, "def", "", "path to the raw Avro-style dynamic type definition JSON (required)")
	cmd.Flags().StringVar(&dataFile, "data", "", "path to a file of wire bytes (required)")
	cmd.MarkFlagRequired("def")
	cmd.MarkFlagRequired("data")
	return cmd
}

func runDecodeDynamic(defFile, dataFile string) error {
	defJSON, err := os.ReadFile(defFile)
	if err != nil {
		return fmt.Errorf("reading %q: %w", defFile, err)
	}
	buf, err := os.ReadFile(dataFile)
	if err != nil {
		return fmt.Errorf("reading %q: %w", dataFile, err)
	}
	recs, err := record.DecodeDynamicRecords(string(defJSON), buf, bufrange.Unset)
	if err != nil {
		return fmt.Errorf("decoding %q: %w", dataFile, err)
	}
	rows := make([]map[string]any, len(recs))
	for i, rec := range recs {
		items, err := rec.Items()
		if err != nil {
			return fmt.Errorf("rendering decoded row %d: %w", i, err)
		}
		rows[i] = recordToJSON(items)
	}
	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("rendering decoded rows: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
