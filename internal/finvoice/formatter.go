package finvoice

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
)

// String serializes the document: the envelope first (when present), then
// the fixed XML declaration and stylesheet processing instruction exactly
// once, immediately before the first Finvoice body, then every body in
// order. The synthetic container element is never emitted. Output is
// deterministic for a given model except for message id and timestamp.
func (d *Document) String() string {
	var b strings.Builder
	declared := false

	for _, child := range d.container.ChildElements() {
		if child.Tag == "Finvoice" && !declared {
			b.WriteString(xmlDeclaration)
			b.WriteByte('\n')
			b.WriteString(stylesheetPI)
			b.WriteByte('\n')
			declared = true
		}
		b.WriteString(serializeElement(child))
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}

// Bytes returns the document encoded to ISO-8859-15, the charset the fixed
// declaration promises. Characters outside Latin-9 fail the encoding.
func (d *Document) Bytes() ([]byte, error) {
	return charmap.ISO8859_15.NewEncoder().Bytes([]byte(d.String()))
}

// serializeElement pretty-prints one top-level element with two-space
// indentation and no serializer-generated declaration.
func serializeElement(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	doc.Indent(2)

	s, err := doc.WriteToString()
	if err != nil {
		// WriteToString cannot fail writing to a buffer.
		panic(err)
	}
	return strings.TrimRight(s, "\n")
}
