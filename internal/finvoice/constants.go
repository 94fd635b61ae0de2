package finvoice

// Namespaces holds the namespace URIs referenced by the transport envelope
// and the Finvoice root. It is a read-only table shared by the builder and
// the formatter.
type Namespaces struct {
	SOAPEnv string
	EB      string
	XLink   string
	XSI     string
}

// DefaultNamespaces is the namespace table of Finvoice 2.0 / ebXML v2.0.
var DefaultNamespaces = Namespaces{
	SOAPEnv: "http://schemas.xmlsoap.org/soap/envelope/",
	EB:      "http://www.oasis-open.org/committees/ebxml-msg/schema/msg-header-2_0.xsd",
	XLink:   "http://www.w3.org/1999/xlink",
	XSI:     "http://www.w3.org/2001/XMLSchema-instance",
}

// Fixed values embedded in every generated document.
const (
	Version = "2.0"

	schemaLocation = "Finvoice.xsd"
	schemaURL      = "http://www.finvoice.info/finvoice.xsd"

	cpaID         = "yoursandmycpa"
	serviceName   = "Routing"
	routingAction = "ProcessInvoice"

	invoiceTypeCode = "INV01"
	invoiceTypeText = "LASKU"
	originCode      = "Original"

	countryCode = "FI"
	countryName = "Suomi"
	currency    = "EUR"
	chargeCode  = "SHA"

	// Derived SellerOrganisationUnitNumber frame around the bare business id.
	ovtPrefix = "0037"
	ovtSuffix = "000001"

	rowDefinitionHeader = "Lisätieto"

	xmlDeclaration = `<?xml version="1.0" encoding="ISO-8859-15"?>`
	stylesheetPI   = `<?xml-stylesheet href="/vendor/virtueoy/finvoice/src/Finvoice.xsl" type="text/xsl"?>`
)
