package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func inspectCmd() *cobra.Command {
	var typeFile string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Render a record type's JSON type schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInspect(typeFile)
		},
	}
	cmd.Flags().StringVar(&typeFile, "type", "", "path to a type schema JSON file (required)")
	cmd.MarkFlagRequired("type")
	return cmd
}

func runInspect(typeFile string) error {
	typ, err := readRecordType(typeFile)
	if err != nil {
		return err
	}
	ts, err := typ.ToTypeSchema()
	if err != nil {
		return fmt.Errorf("rendering type schema: %w", err)
	}
	out, err := writeTypeSchemaJSON(ts)
	if err != nil {
		return fmt.Errorf("marshaling type schema: %w", err)
	}
	fmt.Fprintf(os.Stdout, "label: %s\ncolumns: %d\n%s\n", typ.Label(), typ.Len(), out)
	return nil
}
