package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/solidcoredata/reccodec/bufrange"
	"github.com/solidcoredata/reccodec/dt"
	"github.com/solidcoredata/reccodec/record"
	"github.com/solidcoredata/reccodec/rectype"
	"github.com/spf13/cobra"
)

func decodeCmd() *cobra.Command {
	var typeFile, dataFile string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode wire bytes into a JSON row",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDecode(typeFile, dataFile)
		},
	}
	cmd.Flags().StringVar(&typeFile, "type", "", "path to a type schema JSON file (required)")
	cmd.Flags().StringVar(&dataFile, "data", "", "path to a file of wire bytes (required)")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("data")
	return cmd
}

func runDecode(typeFile, dataFile string) error {
	typ, err := readRecordType(typeFile)
	if err != nil {
		return err
	}
	buf, err := os.ReadFile(dataFile)
	if err != nil {
		return fmt.Errorf("reading %q: %w", dataFile, err)
	}
	recs, err := recordsFromBuffer(typ, buf)
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

// recordsFromBuffer decodes buf as a single record bound to typ, spanning
// the whole buffer.
func recordsFromBuffer(typ *rectype.RecordType, buf []byte) ([]*record.Record, error) {
	return record.DecodeRecords(typ, buf, []bufrange.BufferRange{bufrange.New(0, len(buf))})
}

// renderValue turns a decoded record value into a JSON-friendly form:
// dt.Date/Time/DateTime render as their ASCII wire representation instead
// of their raw bit-packed integer, so the CLI's decode output round-trips
// back through encode's date/time string parsing.
func renderValue(v any) any {
	switch tv := v.(type) {
	case dt.Date:
		year, month, day, _, _ := tv.Unpack()
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	case dt.Time:
		hour, minute, second, ms := tv.Unpack()
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hour, minute, second, ms)
	case dt.DateTime:
		year, month, day, hour, minute, second, ms, _, _ := tv.Unpack()
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%03d", year, month, day, hour, minute, second, ms)
	default:
		return v
	}
}

func recordToJSON(items []record.KeyValue) map[string]any {
	out := make(map[string]any, len(items))
	for _, kv := range items {
		out[kv.Key] = renderValue(kv.Value)
	}
	return out
}
