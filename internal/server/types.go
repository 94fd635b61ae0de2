package server

import (
	"github.com/rezonia/finvoice/internal/model"
)

// ParseResponse is the response for the parse endpoint
type ParseResponse struct {
	Invoices []model.InvoiceSettings `json:"invoices"`
	Count    int                     `json:"count"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
