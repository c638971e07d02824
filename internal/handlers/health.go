// Package handlers contains HTTP handler functions for the API.
//
// Handlers in Gin receive a *gin.Context for request data and responses.
// Related handlers hang off a Handler struct that holds shared dependencies,
// so tests can build one with stubs instead of a real PDF parser.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/models"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/pdf"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/quote"
)

// TextExtractor turns PDF bytes into text. pdf.Extractor is the real one.
type TextExtractor interface {
	Extract(data []byte) (*pdf.ExtractionResult, error)
}

// Notifier receives quote events. *webhook.Service implements it.
type Notifier interface {
	Enabled() bool
	NotifyEvent(event string, data interface{})
}

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	Extractor      TextExtractor
	Quotes         *quote.Generator
	Webhooks       Notifier
	MaxUploadBytes int64
	Version        string
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(ext TextExtractor, quotes *quote.Generator, webhooks Notifier, maxUploadBytes int64, version string) *Handler {
	return &Handler{
		Extractor:      ext,
		Quotes:         quotes,
		Webhooks:       webhooks,
		MaxUploadBytes: maxUploadBytes,
		Version:        version,
	}
}

// HealthCheck returns the API health status.
// GET /api/v1/health
func (h *Handler) HealthCheck(c *gin.Context) {
	webhooks := "disabled"
	if h.Webhooks != nil && h.Webhooks.Enabled() {
		webhooks = "enabled"
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Version:  h.Version,
		Webhooks: webhooks,
	})
}
