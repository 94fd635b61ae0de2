// Package finvoice builds and parses Finvoice 2.0 documents, optionally
// wrapped in an ebXML/SOAP transport envelope.
//
// Generation projects an InvoiceSettings value into the exact Finvoice
// element tree with its formatting conventions. Parsing is the reverse
// mapping and is lossy by design: it recovers the seller identity and a
// coarse per-line VAT classification, not an economic replica of the
// original invoice.
//
// Neither direction validates against the official XSD schema.
package finvoice

import (
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/rezonia/finvoice/internal/model"
)

// IDSource produces a unique identifier for a generated message.
type IDSource func() string

// Clock captures the message timestamp.
type Clock func() time.Time

// defaultIDSource returns a random 128-bit identifier in the 32-hex-char
// shape intermediator systems expect from a message id.
func defaultIDSource() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Document is a Finvoice document under construction: zero or one transport
// envelope followed by one or more Finvoice bodies. Bodies are held as
// siblings under a synthetic container element that is never serialized.
type Document struct {
	ns       Namespaces
	envelope bool
	idSource IDSource
	clock    Clock

	container *etree.Element
}

// Option configures document construction.
type Option func(*Document)

// WithoutEnvelope skips the ebXML/SOAP transport wrapper.
func WithoutEnvelope() Option {
	return func(d *Document) {
		d.envelope = false
	}
}

// WithIDSource overrides message-identifier generation.
func WithIDSource(src IDSource) Option {
	return func(d *Document) {
		d.idSource = src
	}
}

// WithClock overrides timestamp capture.
func WithClock(c Clock) Option {
	return func(d *Document) {
		d.clock = c
	}
}

// WithNamespaces overrides the namespace table.
func WithNamespaces(ns Namespaces) Option {
	return func(d *Document) {
		d.ns = ns
	}
}

// New constructs a document from one InvoiceSettings. The envelope, when
// present, carries the same sender/receiver identifiers as the first body's
// transmission block; the two are built independently and share no state.
func New(settings model.InvoiceSettings, opts ...Option) *Document {
	d := &Document{
		ns:       DefaultNamespaces,
		envelope: true,
		idSource: defaultIDSource,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.container = etree.NewElement("container")

	id := d.idSource()
	timestamp := d.clock().Format(time.RFC3339)

	if d.envelope {
		d.container.AddChild(buildEnvelope(settings, id, timestamp, d.ns))
	}
	d.container.AddChild(buildFinvoice(settings, id, timestamp, d.ns))

	return d
}

// AddInvoice appends another Finvoice body as a sibling of the existing
// ones, with a freshly generated message id and timestamp.
func (d *Document) AddInvoice(settings model.InvoiceSettings) {
	id := d.idSource()
	timestamp := d.clock().Format(time.RFC3339)
	d.container.AddChild(buildFinvoice(settings, id, timestamp, d.ns))
}
