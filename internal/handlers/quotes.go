package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/middleware"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/models"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/pdf"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/quote"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/techspec"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/webhook"
)

// CreateQuote drafts a quote whose technical specifications section is the
// keyword report for the uploaded datasheet.
// POST /api/v1/quotes?format=json|md|txt|html|docx
//
// Multipart fields: "file", "requirements", and optionally
// "customer_name", "customer_street", "customer_city" to replace the
// profile's default customer.
func (h *Handler) CreateQuote(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	if !validQuoteFormats[format] {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_format",
			Message: "Supported formats: json, md, txt, html, docx",
			Code:    http.StatusBadRequest,
		})
		return
	}

	up, ok := h.readUpload(c)
	if !ok {
		return
	}

	keywords := techspec.ParseRequirements(c.PostForm("requirements"))
	if !techspec.HasKeyword(keywords) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "missing_keywords",
			Message: "Please enter at least one keyword",
			Code:    http.StatusBadRequest,
		})
		return
	}

	logger := log.WithFields(log.Fields{
		"request_id": middleware.GetRequestID(c),
		"filename":   up.filename,
		"keywords":   len(keywords),
		"format":     format,
	})

	result, err := h.Extractor.Extract(up.data)
	if err != nil {
		logger.WithError(err).Error("❌ Processing error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "processing_error",
			Message: "Processing error: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	report := techspec.Assemble(result.Text, keywords)
	logReport(logger, report)

	customer := quote.Party{
		Name:   strings.TrimSpace(c.PostForm("customer_name")),
		Street: strings.TrimSpace(c.PostForm("customer_street")),
		City:   strings.TrimSpace(c.PostForm("customer_city")),
	}
	q := h.Quotes.New(up.filename, report, customer)
	logger.WithField("quote", q.Number).Info("📄 Quote drafted")

	resp := quoteResponse(q, result)
	if h.Webhooks != nil {
		h.Webhooks.NotifyEvent(webhook.EventQuoteGenerated, resp)
	}

	base := strings.TrimSuffix(filepath.Base(up.filename), filepath.Ext(up.filename))
	exportQuote(c, q, resp, format, sanitizeFilename(q.Number+" "+base))
}

// quoteResponse flattens a quote and its extraction metadata for JSON.
func quoteResponse(q *quote.Quote, result *pdf.ExtractionResult) models.QuoteResponse {
	sections := make([]models.SectionResponse, 0, len(q.Report.Sections))
	for _, s := range q.Report.Sections {
		sections = append(sections, models.SectionResponse{
			Keyword:    s.Keyword,
			Title:      s.Title,
			Body:       s.Body,
			MatchCount: s.MatchCount,
		})
	}

	return models.QuoteResponse{
		ID:               q.ID,
		Number:           q.Number,
		Date:             q.Date.Format(quote.DateLayout),
		ValidUntil:       q.ValidUntil.Format(quote.DateLayout),
		Provider:         models.QuoteParty(q.Provider),
		Customer:         models.QuoteParty(q.Customer),
		SourceFile:       q.SourceFile,
		PageCount:        result.PageCount,
		WordCount:        result.WordCount,
		Sections:         sections,
		TechnicalDetails: q.TechnicalDetails,
	}
}
