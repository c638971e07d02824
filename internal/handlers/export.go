// export.go writes a drafted quote in the requested format.
//
// Supported formats:
//   - json — Quote fields, sections and extraction metadata
//   - md   — Markdown with a metadata table
//   - txt  — Plain text
//   - html — Standalone page with the specifications rendered as HTML
//   - docx — Word document
//
// Each format is its own function; adding one means a new case in the
// switch and a new entry in validQuoteFormats.
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/models"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/quote"
)

var validQuoteFormats = map[string]bool{"json": true, "md": true, "txt": true, "html": true, "docx": true}

func exportQuote(c *gin.Context, q *quote.Quote, resp models.QuoteResponse, format, filename string) {
	switch format {
	case "md":
		exportMarkdown(c, q, filename)
	case "txt":
		exportTXT(c, q, filename)
	case "html":
		exportHTML(c, q, filename)
	case "docx":
		exportDOCX(c, q, filename)
	default:
		// JSON is for API clients, not downloads.
		c.JSON(http.StatusOK, resp)
	}
}

func exportTXT(c *gin.Context, q *quote.Quote, filename string) {
	attachment(c, filename, "txt")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(quote.Text(q)))
}

func exportMarkdown(c *gin.Context, q *quote.Quote, filename string) {
	attachment(c, filename, "md")
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(quote.Markdown(q)))
}

func exportHTML(c *gin.Context, q *quote.Quote, filename string) {
	page, err := quote.HTML(q)
	if err != nil {
		exportFailed(c, "HTML")
		return
	}
	attachment(c, filename, "html")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func exportDOCX(c *gin.Context, q *quote.Quote, filename string) {
	var buf bytes.Buffer
	if err := quote.WriteDOCX(&buf, q); err != nil {
		exportFailed(c, "DOCX")
		return
	}
	attachment(c, filename, "docx")
	c.Data(http.StatusOK, quote.DOCXContentType, buf.Bytes())
}

func attachment(c *gin.Context, filename, ext string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, filename, ext))
}

func exportFailed(c *gin.Context, kind string) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "export_error",
		Message: "Failed to generate " + kind + " export",
		Code:    http.StatusInternalServerError,
	})
}

// sanitizeFilename removes characters that aren't safe for filenames.
// It only has to be good enough for a Content-Disposition header.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-",
		"|", "-", "\n", " ", "\r", "",
	)
	name = replacer.Replace(name)

	// Collapse multiple hyphens/spaces
	for strings.Contains(name, "  ") {
		name = strings.ReplaceAll(name, "  ", " ")
	}
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}

	name = strings.TrimSpace(name)

	// Limit length, without splitting a multi-byte character.
	if r := []rune(name); len(r) > 100 {
		name = strings.TrimSpace(string(r[:100]))
	}

	return name
}
