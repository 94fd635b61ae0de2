package finvoice

import (
	"bytes"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/rezonia/finvoice/internal/model"
	"github.com/rezonia/finvoice/internal/money"
)

var (
	preambleRe = regexp.MustCompile(`<(\?xml|!DOCTYPE).*?>`)
	encodingRe = regexp.MustCompile(`<\?xml[^>]*encoding="(?i:ISO-8859-15|ISO-8859-1)"`)
)

// Parse extracts one InvoiceSettings per Finvoice body found in data. The
// input may carry XML declaration and doctype preambles (stripped before
// parsing) and may hold several concatenated bodies with or without a
// transport envelope.
//
// The mapping is lossy: the buyer's bank identifiers are not present in a
// received document's buyer block, and per-row quantity and unit are not
// recoverable, so every reconstructed row carries amount 1 and unit "kpl".
// Malformed XML fails the whole parse; there is no partial recovery.
func Parse(data []byte) ([]model.InvoiceSettings, error) {
	// Documents arriving as raw Latin-9 bytes get decoded first. Valid
	// UTF-8 input is left alone even when it carries the ISO declaration,
	// since pure-ASCII content is indistinguishable anyway.
	if encodingRe.Match(data) && !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_15.NewDecoder().Bytes(data)
		if err != nil {
			return nil, model.NewParseError("document", "cannot decode charset", err)
		}
		data = decoded
	}

	stripped := preambleRe.ReplaceAll(data, nil)

	var wrapped bytes.Buffer
	wrapped.WriteString("<Container>")
	wrapped.Write(stripped)
	wrapped.WriteString("</Container>")

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(wrapped.Bytes()); err != nil {
		return nil, model.NewParseError("document", "malformed XML", err)
	}

	var result []model.InvoiceSettings
	for _, body := range doc.Root().FindElements("//Finvoice") {
		result = append(result, extractSettings(body))
	}
	return result, nil
}

func extractSettings(body *etree.Element) model.InvoiceSettings {
	settings := model.InvoiceSettings{
		From: model.Party{
			IBAN:       elementText(body, "SellerInformationDetails/SellerAccountDetails/SellerAccountID"),
			BIC:        elementText(body, "SellerInformationDetails/SellerAccountDetails/SellerBic"),
			Name:       elementText(body, "SellerPartyDetails/SellerOrganisationName"),
			BusinessID: elementText(body, "SellerPartyDetails/SellerPartyIdentifier"),
			Address:    elementText(body, "SellerPartyDetails/SellerPostalAddressDetails/SellerStreetName"),
			Postcode:   elementText(body, "SellerPartyDetails/SellerPostalAddressDetails/SellerPostCodeIdentifier"),
			City:       elementText(body, "SellerPartyDetails/SellerPostalAddressDetails/SellerTownName"),
		},
		// Buyer bank identifiers and business id are not reconstructible
		// from the buyer block of a received Finvoice.
		To: model.Party{
			Name:     elementText(body, "BuyerPartyDetails/BuyerOrganisationName"),
			Address:  elementText(body, "BuyerPartyDetails/BuyerPostalAddressDetails/BuyerStreetName"),
			Postcode: elementText(body, "BuyerPartyDetails/BuyerPostalAddressDetails/BuyerPostCodeIdentifier"),
			City:     elementText(body, "BuyerPartyDetails/BuyerPostalAddressDetails/BuyerTownName"),
		},
	}

	inv := model.Invoice{
		ID:              elementText(body, "EpiDetails/EpiPaymentInstructionDetails/EpiPaymentInstructionId"),
		ReferenceNumber: elementText(body, "EpiDetails/EpiPaymentInstructionDetails/EpiRemittanceInfoIdentifier"),
	}
	if t, err := ParseDate(elementText(body, "EpiDetails/EpiIdentificationDetails/EpiDate")); err == nil {
		inv.Date = t
	}
	if t, err := ParseDate(elementText(body, "EpiDetails/EpiPaymentInstructionDetails/EpiDateOptionDate")); err == nil {
		inv.DueDate = t
	}
	if amount, err := money.Parse(elementText(body, "EpiDetails/EpiPaymentInstructionDetails/EpiInstructedAmount")); err == nil {
		inv.PriceGross = amount
	}

	for _, row := range body.SelectElements("InvoiceRow") {
		// Sub-rows are skipped entirely.
		if row.FindElement("SubInvoiceRow") != nil {
			continue
		}
		inv.Rows = append(inv.Rows, extractRow(row))
	}

	settings.Invoice = inv
	return settings
}

func extractRow(row *etree.Element) model.InvoiceLine {
	excluded := parseAmount(row, "RowVatExcludedAmount")
	included := parseAmount(row, "RowAmount")
	vat := parseAmount(row, "RowVatAmount")

	vatPercent := 0
	if excluded.IsPositive() {
		vatPercent = int(vat.Div(excluded).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	}

	id, _ := strconv.Atoi(elementText(row, "ArticleIdentifier"))

	return model.InvoiceLine{
		ID:   id,
		Name: elementText(row, "ArticleName"),
		// Quantity and unit are not recoverable by this mapping.
		Amount:     decimal.NewFromInt(1),
		Unit:       "kpl",
		PriceNet:   excluded,
		PriceGross: included,
		VAT:        vatPercent,
	}
}

func elementText(parent *etree.Element, path string) string {
	if el := parent.FindElement(path); el != nil {
		return el.Text()
	}
	return ""
}

func parseAmount(parent *etree.Element, path string) decimal.Decimal {
	d, err := money.Parse(elementText(parent, path))
	if err != nil {
		return decimal.Zero
	}
	return d
}
