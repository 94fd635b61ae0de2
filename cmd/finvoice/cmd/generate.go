package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/finvoice/internal/finvoice"
	"github.com/rezonia/finvoice/internal/model"
)

var (
	outputFile  string
	noEnvelope  bool
	checkTotals bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [settings.json]",
	Short: "Generate a Finvoice document from JSON settings",
	Long: `Generate a Finvoice 2.0 XML document from invoice settings.

The input file holds either a single settings object or an array of them;
an array produces one document with several Finvoice bodies behind a
shared envelope. Output is ISO-8859-15 encoded XML.

Examples:
  finvoice generate settings.json
  finvoice generate settings.json -o invoice.xml
  finvoice generate settings.json --no-envelope
  finvoice generate settings.json --check`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	generateCmd.Flags().BoolVar(&noEnvelope, "no-envelope", false, "Skip the SOAP transport envelope")
	generateCmd.Flags().BoolVar(&checkTotals, "check", false, "Verify stated totals against the row sums before generating")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	batch, err := readSettings(args[0])
	if err != nil {
		return err
	}

	printVerbose("Read %d invoice(s) from %s\n", len(batch), args[0])

	if checkTotals {
		for i, settings := range batch {
			if err := finvoice.CheckTotals(settings.Invoice); err != nil {
				return fmt.Errorf("invoice %d (%s): %w", i+1, settings.Invoice.ID, err)
			}
		}
		printVerbose("Totals check passed\n")
	}

	var opts []finvoice.Option
	if noEnvelope {
		opts = append(opts, finvoice.WithoutEnvelope())
	}

	doc := finvoice.New(batch[0], opts...)
	for _, settings := range batch[1:] {
		doc.AddInvoice(settings)
	}

	raw, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if outputFile == "" {
		_, err = os.Stdout.Write(raw)
		return err
	}

	printVerbose("Writing %d bytes to %s\n", len(raw), outputFile)
	return os.WriteFile(outputFile, raw, 0o644)
}

// readSettings reads either a single settings object or a non-empty array.
func readSettings(path string) ([]model.InvoiceSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var batch []model.InvoiceSettings
	if err := json.Unmarshal(data, &batch); err == nil {
		if len(batch) == 0 {
			return nil, fmt.Errorf("%s: empty invoice list", path)
		}
		return batch, nil
	}

	var single model.InvoiceSettings
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("invalid invoice settings in %s: %w", path, err)
	}
	return []model.InvoiceSettings{single}, nil
}
