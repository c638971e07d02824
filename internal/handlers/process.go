package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/middleware"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/models"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/techspec"
)

// ProcessDocument searches an uploaded datasheet for the requested keywords
// and returns the technical specifications report.
// POST /api/process
//
// Multipart fields: "file" (the PDF) and "requirements" (one keyword per
// line, optionally prefixed with "-" or "/"). A blank requirements field
// yields an empty report.
func (h *Handler) ProcessDocument(c *gin.Context) {
	up, ok := h.readUpload(c)
	if !ok {
		return
	}

	keywords := techspec.ParseRequirements(c.PostForm("requirements"))
	logger := log.WithFields(log.Fields{
		"request_id": middleware.GetRequestID(c),
		"filename":   up.filename,
		"keywords":   len(keywords),
	})

	result, err := h.Extractor.Extract(up.data)
	if err != nil {
		logger.WithError(err).Error("❌ Processing error")
		c.JSON(http.StatusInternalServerError, models.ProcessResponse{
			TechnicalDetails: "Processing error: " + err.Error(),
			Success:          false,
		})
		return
	}

	report := techspec.Assemble(result.Text, keywords)
	logReport(logger, report)

	c.JSON(http.StatusOK, models.ProcessResponse{
		TechnicalDetails: report.String(),
		Success:          true,
	})
}

// logReport records a summary and, at debug level, every keyword that
// matched nothing.
func logReport(logger *log.Entry, report techspec.Report) {
	for _, s := range report.Sections {
		if !s.Found() {
			logger.Debugf("🔍 No matches for %q", s.Keyword)
		}
	}
	logger.Infof("✅ Report built: %d/%d keywords matched", report.MatchedCount(), len(report.Sections))
}
