package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/finvoice/internal/model"
	"github.com/rezonia/finvoice/internal/server"
)

func newTestServer() *server.Server {
	config := &server.Config{
		Address: ":8080",
		Debug:   true,
	}
	return server.NewServer(config)
}

func sampleSettings() model.InvoiceSettings {
	return model.InvoiceSettings{
		From: model.Party{
			IBAN:       "FI2487000710446218",
			BIC:        "DABAFIHH",
			Name:       "Virtue Softworks",
			BusinessID: "2444711-4",
			Address:    "Minna Canthin katu 4 A 4. krs",
			Postcode:   "70200",
			City:       "Kuopio",
		},
		To: model.Party{
			IBAN:     "FI3387000710510658",
			BIC:      "DABAFIHH",
			Name:     "OmaStore Osuuskunta",
			Address:  "Minna Canthin katu 4 A 4. krs",
			Postcode: "70200",
			City:     "Kuopio",
		},
		Invoice: model.Invoice{
			ID:              "275536",
			Date:            time.Date(2013, 7, 2, 0, 0, 0, 0, time.UTC),
			DueDate:         time.Date(2013, 7, 15, 0, 0, 0, 0, time.UTC),
			ReferenceNumber: "2755366",
			PriceNet:        decimal.NewFromInt(295),
			PriceGross:      decimal.RequireFromString("365.8"),
			Rows: []model.InvoiceLine{
				{
					ID:         1331,
					Name:       "Tuntityö",
					Amount:     decimal.RequireFromString("5.5"),
					Unit:       "h",
					PriceNet:   decimal.NewFromInt(50),
					PriceGross: decimal.NewFromInt(62),
					VAT:        24,
				},
			},
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestGenerateEndpoint(t *testing.T) {
	srv := newTestServer()

	payload, err := json.Marshal(sampleSettings())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/xml; charset=ISO-8859-15", w.Header().Get("Content-Type"))

	out := w.Body.String()
	assert.Contains(t, out, "<SOAP-ENV:Envelope")
	assert.Contains(t, out, `<?xml version="1.0" encoding="ISO-8859-15"?>`)
	assert.Contains(t, out, `<Finvoice Version="2.0"`)
	assert.Contains(t, out, "<InvoiceNumber>275536</InvoiceNumber>")
	// ö arrives as a Latin-9 byte, not UTF-8.
	assert.Contains(t, out, "Tuntity\xf6")
}

func TestGenerateEndpoint_WithoutEnvelope(t *testing.T) {
	srv := newTestServer()

	payload, err := json.Marshal(sampleSettings())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate?envelope=false", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "SOAP-ENV")
	assert.True(t, strings.HasPrefix(w.Body.String(), `<?xml version="1.0" encoding="ISO-8859-15"?>`))
}

func TestGenerateEndpoint_Batch(t *testing.T) {
	srv := newTestServer()

	payload, err := json.Marshal([]model.InvoiceSettings{sampleSettings(), sampleSettings()})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate?envelope=false", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, strings.Count(w.Body.String(), "<Finvoice "))
	assert.Equal(t, 1, strings.Count(w.Body.String(), "<?xml version"))
}

func TestGenerateEndpoint_EmptyBody(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateEndpoint_InvalidJSON(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseEndpoint(t *testing.T) {
	srv := newTestServer()

	// Generate first, then feed the document back.
	payload, err := json.Marshal(sampleSettings())
	require.NoError(t, err)
	genReq := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewReader(payload))
	genW := httptest.NewRecorder()
	srv.Handler().ServeHTTP(genW, genReq)
	require.Equal(t, http.StatusOK, genW.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", bytes.NewReader(genW.Body.Bytes()))
	req.Header.Set("Content-Type", "text/xml")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response server.ParseResponse
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, 1, response.Count)
	require.Len(t, response.Invoices, 1)
	got := response.Invoices[0]
	assert.Equal(t, "Virtue Softworks", got.From.Name)
	assert.Equal(t, "FI2487000710446218", got.From.IBAN)
	assert.Empty(t, got.To.IBAN)
	require.Len(t, got.Invoice.Rows, 1)
	assert.Equal(t, "kpl", got.Invoice.Rows[0].Unit)
}

func TestParseEndpoint_MalformedXML(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", bytes.NewReader([]byte("<Finvoice><broken>")))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestParseEndpoint_EmptyBody(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
