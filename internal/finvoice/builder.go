package finvoice

import (
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/rezonia/finvoice/internal/model"
	"github.com/rezonia/finvoice/internal/money"
)

// buildFinvoice constructs one Finvoice body from the settings. Field order
// and the embedded constants follow the Finvoice 2.0 SPY application
// guideline. XML escaping of text content is performed by the serializer.
func buildFinvoice(settings model.InvoiceSettings, id, timestamp string, ns Namespaces) *etree.Element {
	finvoice := etree.NewElement("Finvoice")
	finvoice.CreateAttr("Version", Version)
	finvoice.CreateAttr("xmlns:xsi", ns.XSI)
	finvoice.CreateAttr("xsi:noNamespaceSchemaLocation", schemaLocation)

	buildTransmission(finvoice, settings, id, timestamp)
	buildSeller(finvoice, settings.From)
	buildBuyer(finvoice, settings.To)
	if settings.Delivery != nil {
		buildDelivery(finvoice, *settings.Delivery)
	}
	if settings.To.Contact != "" {
		finvoice.CreateElement("BuyerContactPersonName").SetText(settings.To.Contact)
	}

	agg := AggregateRows(settings.Invoice.Rows)
	buildInvoiceDetails(finvoice, settings.Invoice, agg)

	for _, row := range settings.Invoice.Rows {
		buildInvoiceRow(finvoice, row)
	}

	buildEpi(finvoice, settings)

	return finvoice
}

// The transmission block duplicates the envelope's party identifiers; the
// two builders intentionally share no state.
func buildTransmission(finvoice *etree.Element, settings model.InvoiceSettings, id, timestamp string) {
	transmission := finvoice.CreateElement("MessageTransmissionDetails")

	sender := transmission.CreateElement("MessageSenderDetails")
	sender.CreateElement("FromIdentifier").SetText(settings.From.IBAN)
	sender.CreateElement("FromIntermediator").SetText(settings.From.BIC)

	receiver := transmission.CreateElement("MessageReceiverDetails")
	receiver.CreateElement("ToIdentifier").SetText(settings.To.IBAN)
	receiver.CreateElement("ToIntermediator").SetText(settings.To.BIC)

	details := transmission.CreateElement("MessageDetails")
	details.CreateElement("MessageIdentifier").SetText(id)
	details.CreateElement("MessageTimeStamp").SetText(timestamp)
}

func buildSeller(finvoice *etree.Element, from model.Party) {
	party := finvoice.CreateElement("SellerPartyDetails")
	party.CreateElement("SellerPartyIdentifier").SetText(from.BusinessID)
	party.CreateElement("SellerOrganisationName").SetText(from.Name)

	address := party.CreateElement("SellerPostalAddressDetails")
	address.CreateElement("SellerStreetName").SetText(from.Address)
	address.CreateElement("SellerTownName").SetText(from.City)
	address.CreateElement("SellerPostCodeIdentifier").SetText(from.Postcode)
	address.CreateElement("CountryCode").SetText(countryCode)

	finvoice.CreateElement("SellerOrganisationUnitNumber").
		SetText(ovtPrefix + bareBusinessID(from.BusinessID) + ovtSuffix)

	if from.Contact != "" {
		finvoice.CreateElement("SellerContactPersonName").SetText(from.Contact)
	}

	if from.Phone != "" || from.Email != "" {
		comm := finvoice.CreateElement("SellerCommunicationDetails")
		if from.Phone != "" {
			comm.CreateElement("SellerPhoneNumberIdentifier").SetText(from.Phone)
		}
		if from.Email != "" {
			comm.CreateElement("SellerEmailaddressIdentifier").SetText(from.Email)
		}
	}

	information := finvoice.CreateElement("SellerInformationDetails")
	account := information.CreateElement("SellerAccountDetails")
	accountID := account.CreateElement("SellerAccountID")
	accountID.SetText(from.IBAN)
	accountID.CreateAttr("IdentificationSchemeName", "IBAN")
	bic := account.CreateElement("SellerBic")
	bic.SetText(from.BIC)
	bic.CreateAttr("IdentificationSchemeName", "BIC")
}

func buildBuyer(finvoice *etree.Element, to model.Party) {
	party := finvoice.CreateElement("BuyerPartyDetails")
	party.CreateElement("BuyerPartyIdentifier").SetText(to.BusinessID)
	party.CreateElement("BuyerOrganisationName").SetText(to.Name)
	// Empty element when the business id is absent, never a bare "FI".
	party.CreateElement("BuyerOrganisationTaxCode").SetText(taxCode(to.BusinessID))

	address := party.CreateElement("BuyerPostalAddressDetails")
	address.CreateElement("BuyerStreetName").SetText(to.Address)
	address.CreateElement("BuyerTownName").SetText(to.City)
	address.CreateElement("BuyerPostCodeIdentifier").SetText(to.Postcode)
	address.CreateElement("CountryCode").SetText(countryCode)
	address.CreateElement("CountryName").SetText(countryName)
}

func buildDelivery(finvoice *etree.Element, delivery model.Party) {
	party := finvoice.CreateElement("DeliveryPartyDetails")
	party.CreateElement("DeliveryPartyIdentifier").SetText(delivery.BusinessID)
	party.CreateElement("DeliveryOrganisationName").SetText(delivery.Name)
	if delivery.BusinessID != "" {
		party.CreateElement("DeliveryOrganisationTaxCode").SetText(taxCode(delivery.BusinessID))
	}

	address := party.CreateElement("DeliveryPostalAddressDetails")
	address.CreateElement("DeliveryStreetName").SetText(delivery.Address)
	address.CreateElement("DeliveryTownName").SetText(delivery.City)
	address.CreateElement("DeliveryPostCodeIdentifier").SetText(delivery.Postcode)
	address.CreateElement("CountryCode").SetText(countryCode)
	address.CreateElement("CountryName").SetText(countryName)
}

func buildInvoiceDetails(finvoice *etree.Element, inv model.Invoice, agg *Aggregate) {
	details := finvoice.CreateElement("InvoiceDetails")

	typeCode := details.CreateElement("InvoiceTypeCode")
	typeCode.SetText(invoiceTypeCode)
	typeCode.CreateAttr("CodeListAgencyIdentifier", "SPY")
	details.CreateElement("InvoiceTypeText").SetText(invoiceTypeText)
	details.CreateElement("OriginCode").SetText(originCode)
	details.CreateElement("InvoiceNumber").SetText(inv.ID)
	addDate(details, "InvoiceDate", inv.Date)

	if inv.SellerReference != "" {
		details.CreateElement("SellerReferenceIdentifier").SetText(truncate(inv.SellerReference, 35))
	}
	if inv.OrderID != "" {
		details.CreateElement("OrderIdentifier").SetText(inv.OrderID)
	}
	if inv.BuyerReference != "" {
		details.CreateElement("BuyerReferenceIdentifier").SetText(truncate(inv.BuyerReference, 35))
	}

	// The invoice-level totals are the caller-supplied figures, not the
	// aggregated row sums; keeping them consistent is the caller's problem.
	addAmount(details, "InvoiceTotalVatExcludedAmount", money.Format(inv.PriceNet))
	addAmount(details, "InvoiceTotalVatAmount", money.Format(inv.PriceGross.Sub(inv.PriceNet)))
	addAmount(details, "InvoiceTotalVatIncludedAmount", money.Format(inv.PriceGross))

	for _, bucket := range agg.Buckets() {
		spec := details.CreateElement("VatSpecificationDetails")
		addAmount(spec, "VatBaseAmount", money.Format(bucket.Base))
		spec.CreateElement("VatRatePercent").SetText(strconv.Itoa(bucket.RatePercent))
		addAmount(spec, "VatRateAmount", money.Format(bucket.Amount))
	}

	terms := details.CreateElement("PaymentTermsDetails")
	addDate(terms, "InvoiceDueDate", inv.DueDate)
}

// Row-level amounts are recomputed directly from the line; they reconcile
// with the aggregator's buckets but nothing enforces that at build time.
func buildInvoiceRow(finvoice *etree.Element, row model.InvoiceLine) {
	invoiceRow := finvoice.CreateElement("InvoiceRow")

	invoiceRow.CreateElement("ArticleName").SetText(row.Name)

	if row.Description != "" {
		definition := invoiceRow.CreateElement("RowDefinitionDetails")
		definition.CreateElement("RowDefinitionHeaderText").SetText(rowDefinitionHeader)
		definition.CreateElement("RowDefinitionValue").SetText(truncate(row.Description, 70))
	}

	if row.Ordered != nil {
		ordered := invoiceRow.CreateElement("OrderedQuantity")
		ordered.SetText(money.Format(*row.Ordered))
		ordered.CreateAttr("QuantityUnitCode", row.Unit)
	}

	quantity := invoiceRow.CreateElement("InvoicedQuantity")
	quantity.SetText(money.Format(row.Amount))
	quantity.CreateAttr("QuantityUnitCode", row.Unit)

	unitPrice := invoiceRow.CreateElement("UnitPriceAmount")
	unitPrice.SetText(money.Format(row.PriceNet))
	unitPrice.CreateAttr("AmountCurrencyIdentifier", currency)
	unitPrice.CreateAttr("UnitPriceUnitCode", "e/"+row.Unit)

	addAmount(invoiceRow, "UnitPriceVatIncludedAmount", money.Format(row.PriceGross))

	if row.ID > 0 {
		invoiceRow.CreateElement("RowIdentifier").SetText(strconv.Itoa(row.ID))
	}
	if !row.DiscountRelative.IsZero() {
		invoiceRow.CreateElement("RowDiscountPercent").SetText(row.DiscountRelative.String())
	}
	if !row.DiscountAbsolute.IsZero() {
		addAmount(invoiceRow, "RowDiscountAmount", money.Format(row.DiscountAbsolute))
	}

	invoiceRow.CreateElement("RowVatRatePercent").SetText(strconv.Itoa(row.VAT))
	addAmount(invoiceRow, "RowVatAmount", money.Format(row.Amount.Mul(row.PriceGross.Sub(row.PriceNet))))
	addAmount(invoiceRow, "RowVatExcludedAmount", money.Format(row.Amount.Mul(row.PriceNet)))
	addAmount(invoiceRow, "RowAmount", money.Format(row.Amount.Mul(row.PriceGross)))
}

func buildEpi(finvoice *etree.Element, settings model.InvoiceSettings) {
	inv := settings.Invoice
	epi := finvoice.CreateElement("EpiDetails")

	identification := epi.CreateElement("EpiIdentificationDetails")
	addDate(identification, "EpiDate", inv.Date)
	identification.CreateElement("EpiReference").SetText(inv.ReferenceNumber)

	parties := epi.CreateElement("EpiPartyDetails")
	bfi := parties.CreateElement("EpiBfiPartyDetails")
	bfiID := bfi.CreateElement("EpiBfiIdentifier")
	bfiID.SetText(settings.From.BIC)
	bfiID.CreateAttr("IdentificationSchemeName", "BIC")

	beneficiary := parties.CreateElement("EpiBeneficiaryPartyDetails")
	beneficiary.CreateElement("EpiNameAddressDetails").SetText(settings.From.Name)
	accountID := beneficiary.CreateElement("EpiAccountID")
	accountID.SetText(settings.From.IBAN)
	accountID.CreateAttr("IdentificationSchemeName", "IBAN")

	instruction := epi.CreateElement("EpiPaymentInstructionDetails")
	remittance := instruction.CreateElement("EpiRemittanceInfoIdentifier")
	remittance.SetText(inv.ReferenceNumber)
	remittance.CreateAttr("IdentificationSchemeName", "SPY")
	addAmount(instruction, "EpiInstructedAmount", money.Format(inv.PriceGross))
	charge := instruction.CreateElement("EpiCharge")
	charge.SetText(chargeCode)
	charge.CreateAttr("ChargeOption", chargeCode)
	addDate(instruction, "EpiDateOptionDate", inv.DueDate)
}

// Helpers shared across the body builder.

func addAmount(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(value)
	el.CreateAttr("AmountCurrencyIdentifier", currency)
	return el
}

func addDate(parent *etree.Element, tag string, t time.Time) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(FormatDate(t))
	el.CreateAttr("Format", "CCYYMMDD")
	return el
}

// bareBusinessID strips the separating hyphen of a business id for use in
// derived codes.
func bareBusinessID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

// taxCode derives the organisation tax code, empty when no business id.
func taxCode(businessID string) string {
	if businessID == "" {
		return ""
	}
	return countryCode + bareBusinessID(businessID)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
