package quote

import (
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/techspec"
)

// DOCXContentType is the MIME type of Word documents.
const DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Colors and sizes match the HTML page. Sizes are in half-points.
const (
	accentColor  = "1D4ED8"
	noMatchColor = "854D0E"
	titleSize    = "40"
	headingSize  = "28"
)

// WriteDOCX writes the quote as a Word document. Every line of reflowed
// text becomes its own paragraph so the 80-column layout survives.
func WriteDOCX(w io.Writer, q *Quote) error {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("Final Quote").Bold().Size(titleSize).Color(accentColor)
	doc.AddParagraph().AddText("Based on your requirements")
	doc.AddParagraph().AddText(q.Number).Bold()
	doc.AddParagraph().AddText("Date: " + q.Date.Format(DateLayout))

	writeParty(doc, "Provider", q.Provider)
	writeParty(doc, "Customer", q.Customer)

	doc.AddParagraph().AddText("Technical Specifications").Bold().Size(headingSize).Color(accentColor)
	for _, s := range q.Report.Sections {
		if !s.Found() {
			doc.AddParagraph().AddText(techspec.NoMatchLine(s.Keyword)).Color(noMatchColor)
			continue
		}
		doc.AddParagraph().AddText(s.Title).Bold().Color(accentColor)
		for _, line := range strings.Split(s.Body, "\n") {
			doc.AddParagraph().AddText(line)
		}
	}

	doc.AddParagraph().AddText("Quote valid until: " + q.ValidUntil.Format(DateLayout))
	doc.AddParagraph().AddText("Please contact us if you have any questions.")

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write docx: %w", err)
	}
	return nil
}

func writeParty(doc *docx.Docx, label string, p Party) {
	doc.AddParagraph().AddText(label).Bold()
	for _, l := range p.Lines() {
		doc.AddParagraph().AddText(l)
	}
}
