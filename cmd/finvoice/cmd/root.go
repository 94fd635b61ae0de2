package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "finvoice",
	Short: "Generate and parse Finvoice 2.0 e-invoice documents",
	Long: `Finvoice is a CLI tool for the Finnish Finvoice 2.0 e-invoicing format.

Supports:
  - Generating Finvoice XML documents from JSON invoice settings
  - Batching several invoices into one document with a shared envelope
  - Reverse-mapping received Finvoice XML back to JSON

Examples:
  # Generate a document from settings
  finvoice generate settings.json

  # Generate without the SOAP transport envelope
  finvoice generate settings.json --no-envelope -o invoice.xml

  # Parse a received document back to JSON
  finvoice parse invoice.xml

  # Run the HTTP API
  finvoice serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
