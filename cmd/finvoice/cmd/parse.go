package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/finvoice/internal/finvoice"
)

var parseOutputFile string

var parseCmd = &cobra.Command{
	Use:   "parse [invoice.xml]",
	Short: "Parse a Finvoice document back to JSON settings",
	Long: `Parse a received Finvoice 2.0 XML document and print the reconstructed
invoice settings as JSON.

The mapping is lossy: per-row quantities and units, and the buyer's bank
identifiers, are not present in a received document and come back as
fixed defaults.

Examples:
  finvoice parse invoice.xml
  finvoice parse invoice.xml -o settings.json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseOutputFile, "output", "o", "", "Output file (default: stdout)")
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	invoices, err := finvoice.Parse(data)
	if err != nil {
		return err
	}

	printVerbose("Found %d Finvoice body/bodies\n", len(invoices))

	writer := os.Stdout
	if parseOutputFile != "" {
		f, err := os.Create(parseOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(invoices)
}
