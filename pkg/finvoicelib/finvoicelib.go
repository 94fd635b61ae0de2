// Package finvoicelib provides a public API for generating and parsing
// Finvoice 2.0 e-invoice documents.
//
// This package exposes the core types and entry points of the internal
// implementation. A document is built from one or more InvoiceSettings
// values and serialized as ISO-8859-15 XML, optionally wrapped in an
// ebXML/SOAP transport envelope.
//
// Example usage:
//
//	raw, err := finvoicelib.Generate([]finvoicelib.InvoiceSettings{settings})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(raw)
package finvoicelib

import (
	"github.com/rezonia/finvoice/internal/finvoice"
	"github.com/rezonia/finvoice/internal/model"
)

// Re-export core types for public API
type (
	Party           = model.Party
	InvoiceLine     = model.InvoiceLine
	Invoice         = model.Invoice
	InvoiceSettings = model.InvoiceSettings
)

// Re-export error types
type (
	ParseError      = model.ParseError
	ValidationError = model.ValidationError
)

// Re-export document construction types
type (
	Document   = finvoice.Document
	Option     = finvoice.Option
	IDSource   = finvoice.IDSource
	Clock      = finvoice.Clock
	Namespaces = finvoice.Namespaces
)

// Re-export aggregation types
type (
	Aggregate = finvoice.Aggregate
	VATBucket = finvoice.VATBucket
)

// Re-export construction options
var (
	WithoutEnvelope = finvoice.WithoutEnvelope
	WithIDSource    = finvoice.WithIDSource
	WithClock       = finvoice.WithClock
	WithNamespaces  = finvoice.WithNamespaces
)

// New constructs a document from one InvoiceSettings; further bodies are
// appended with AddInvoice.
func New(settings InvoiceSettings, opts ...Option) *Document {
	return finvoice.New(settings, opts...)
}

// Generate builds a document holding one Finvoice body per settings value
// and returns its ISO-8859-15 encoded serialization.
func Generate(batch []InvoiceSettings, opts ...Option) ([]byte, error) {
	if len(batch) == 0 {
		return nil, model.NewValidationError("invoices", nil, "empty invoice list")
	}

	doc := finvoice.New(batch[0], opts...)
	for _, settings := range batch[1:] {
		doc.AddInvoice(settings)
	}
	return doc.Bytes()
}

// Parse reverse-maps a received Finvoice document into one InvoiceSettings
// per body. The mapping is lossy; see the finvoice package documentation.
func Parse(data []byte) ([]InvoiceSettings, error) {
	return finvoice.Parse(data)
}

// AggregateRows computes per-VAT-rate buckets and invoice totals from rows.
func AggregateRows(rows []InvoiceLine) *Aggregate {
	return finvoice.AggregateRows(rows)
}

// CheckTotals verifies an invoice's stated totals against its row sums.
func CheckTotals(inv Invoice) error {
	return finvoice.CheckTotals(inv)
}
