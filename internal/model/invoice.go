// Package model defines the Finvoice document model: the parties, invoice
// lines and invoice header that the builder projects into Finvoice 2.0 XML
// and that the parser reconstructs from incoming documents.
//
// All types are plain value records. They are constructed once, by the
// caller or by the parser, and never mutated afterwards.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party identifies one participant of an invoice: the seller, the buyer or
// an optional delivery party. The shape is identical across roles. Optional
// string fields are absent when empty.
//
// A payable invoice requires the seller to carry IBAN, BIC and BusinessID.
// The buyer's bank identifiers are typically empty.
type Party struct {
	IBAN       string `json:"IBAN,omitempty"`
	BIC        string `json:"BIC,omitempty"`
	Name       string `json:"name"`
	BusinessID string `json:"business_id,omitempty"` // Finnish registry id, NNNNNNN-N
	Address    string `json:"address"`
	Postcode   string `json:"postcode"`
	City       string `json:"city"`
	Contact    string `json:"contact,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

// InvoiceLine is a single invoiced row.
//
// PriceNet and PriceGross are both read independently by the builder and are
// not cross-validated against each other or against VAT; keeping them
// consistent is the caller's responsibility.
type InvoiceLine struct {
	ID               int              `json:"id,omitempty"` // 0 suppresses RowIdentifier
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"` // truncated to 70 chars on output
	Amount           decimal.Decimal  `json:"amount"`                // invoiced quantity
	Unit             string           `json:"unit"`                  // unit-of-measure code
	Ordered          *decimal.Decimal `json:"ordered,omitempty"`     // quantity originally ordered
	PriceNet         decimal.Decimal  `json:"price_net"`             // unit price excluding tax
	PriceGross       decimal.Decimal  `json:"price_gross"`           // unit price including tax
	VAT              int              `json:"vat"`                   // percent
	DiscountRelative decimal.Decimal  `json:"discount_relative,omitempty"`
	DiscountAbsolute decimal.Decimal  `json:"discount_absolute,omitempty"`
}

// Invoice is the invoice header plus its ordered rows.
//
// PriceNet and PriceGross are the invoice-level totals supplied by the
// caller; they are rendered as-is and are not derived from Rows.
type Invoice struct {
	ID              string          `json:"id"` // invoice number
	OrderID         string          `json:"order_id,omitempty"`
	Date            time.Time       `json:"date"`
	DueDate         time.Time       `json:"due_date"`
	ReferenceNumber string          `json:"reference_number"` // payment reference
	PriceNet        decimal.Decimal `json:"price_net"`
	PriceGross      decimal.Decimal `json:"price_gross"`
	SellerReference string          `json:"seller_reference,omitempty"` // truncated to 35 chars
	BuyerReference  string          `json:"buyer_reference,omitempty"`  // truncated to 35 chars
	Rows            []InvoiceLine   `json:"rows"`
}

// InvoiceSettings is the aggregate root handed to the builder and produced
// by the parser: seller, buyer, optional delivery party and the invoice.
type InvoiceSettings struct {
	From     Party   `json:"from"`
	To       Party   `json:"to"`
	Delivery *Party  `json:"delivery,omitempty"`
	Invoice  Invoice `json:"invoice"`
}
