package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/finvoice/internal/finvoice"
	"github.com/rezonia/finvoice/internal/model"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server exposes Finvoice generation and parsing over HTTP
type Server struct {
	config *Config
	router *gin.Engine
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: config,
		router: router,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/generate", s.handleGenerate)
		v1.POST("/parse", s.handleParse)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleGenerate accepts one InvoiceSettings object or an array of them as
// JSON and responds with the generated document in its declared charset.
// Every settings value of an array becomes a Finvoice body of the same
// document; `?envelope=false` skips the transport wrapper.
func (s *Server) handleGenerate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	batch, err := decodeSettings(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid invoice settings",
			Details: err.Error(),
		})
		return
	}

	var opts []finvoice.Option
	if c.Query("envelope") == "false" {
		opts = append(opts, finvoice.WithoutEnvelope())
	}

	doc := finvoice.New(batch[0], opts...)
	for _, settings := range batch[1:] {
		doc.AddInvoice(settings)
	}

	raw, err := doc.Bytes()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "document not representable in ISO-8859-15",
			Details: err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "text/xml; charset=ISO-8859-15", raw)
}

// handleParse accepts a Finvoice XML document and responds with the
// reconstructed settings. The reverse mapping is lossy; see the finvoice
// package documentation.
func (s *Server) handleParse(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	invoices, err := finvoice.Parse(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "failed to parse document",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ParseResponse{
		Invoices: invoices,
		Count:    len(invoices),
	})
}

// decodeSettings reads either a single settings object or a non-empty array.
func decodeSettings(body []byte) ([]model.InvoiceSettings, error) {
	var batch []model.InvoiceSettings
	if err := json.Unmarshal(body, &batch); err == nil {
		if len(batch) == 0 {
			return nil, model.NewValidationError("invoices", nil, "empty invoice list")
		}
		return batch, nil
	}

	var single model.InvoiceSettings
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []model.InvoiceSettings{single}, nil
}
