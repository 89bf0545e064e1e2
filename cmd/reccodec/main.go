// Command reccodec is a round-trip tool for the record and schema codecs:
// it inspects a record type's JSON type schema, encodes a JSON row into
// wire bytes, decodes wire bytes back into JSON, and decodes dynamic
// (columnar) responses, exposing the codec's external interface the way an
// out-of-process caller would use it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reccodec",
		Short: "Inspect, encode and decode records against the reccodec wire format",
	}
	rootCmd.PersistentFlags().String("config", "", "path to a TOML configuration file")

	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(encodeCmd())
	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(decodeDynamicCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
