package finvoice

import (
	"github.com/beevik/etree"

	"github.com/rezonia/finvoice/internal/model"
)

// buildEnvelope constructs the ebXML message header inside a SOAP envelope.
// Everything except the message id, timestamp and the four party identifiers
// is constant; given well-formed inputs this cannot fail.
//
// The SOAP-ENV prefix is built into the tree directly rather than patched
// in at serialization time.
func buildEnvelope(settings model.InvoiceSettings, id, timestamp string, ns Namespaces) *etree.Element {
	envelope := etree.NewElement("SOAP-ENV:Envelope")
	envelope.CreateAttr("xmlns:SOAP-ENV", ns.SOAPEnv)

	header := envelope.CreateElement("SOAP-ENV:Header")
	messageHeader := header.CreateElement("eb:MessageHeader")
	messageHeader.CreateAttr("xmlns:eb", ns.EB)

	from := messageHeader.CreateElement("From")
	from.CreateElement("PartyId").SetText(settings.From.IBAN)
	from.CreateElement("Role").SetText("Sender")

	from = messageHeader.CreateElement("From")
	from.CreateElement("PartyId").SetText(settings.From.BIC)
	from.CreateElement("Role").SetText("Intermediator")

	to := messageHeader.CreateElement("To")
	to.CreateElement("PartyId").SetText(settings.To.IBAN)
	to.CreateElement("Role").SetText("Receiver")

	to = messageHeader.CreateElement("To")
	to.CreateElement("PartyId").SetText(settings.To.BIC)
	to.CreateElement("Role").SetText("Intermediator")

	messageHeader.CreateElement("CPAId").SetText(cpaID)
	messageHeader.CreateElement("ConversationId")
	messageHeader.CreateElement("Service").SetText(serviceName)
	messageHeader.CreateElement("Routing").SetText(routingAction)

	messageData := messageHeader.CreateElement("MessageData")
	messageData.CreateElement("MessageId").SetText(id)
	messageData.CreateElement("Timestamp").SetText(timestamp)
	messageData.CreateElement("RefToMessageId")

	body := envelope.CreateElement("SOAP-ENV:Body")
	manifest := body.CreateElement("eb:Manifest")
	manifest.CreateAttr("xmlns:eb", ns.EB)
	manifest.CreateAttr("eb:version", Version)

	reference := manifest.CreateElement("Reference")
	reference.CreateAttr("xmlns:xlink", ns.XLink)
	reference.CreateAttr("xlink:href", id)

	schema := reference.CreateElement("Schema")
	schema.CreateAttr("eb:location", schemaURL)
	schema.CreateAttr("eb:version", Version)

	return envelope
}
