package quote

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/techspec"
)

// Markdown renders the quote as a Markdown document. The technical
// specifications are included verbatim, so their "## " headings become
// second-level headings.
func Markdown(q *Quote) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Final Quote %s\n\n", q.Number))
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Date | %s |\n", q.Date.Format(DateLayout)))
	sb.WriteString(fmt.Sprintf("| Valid until | %s |\n", q.ValidUntil.Format(DateLayout)))
	sb.WriteString(fmt.Sprintf("| Provider | %s |\n", strings.Join(q.Provider.Lines(), ", ")))
	sb.WriteString(fmt.Sprintf("| Customer | %s |\n", strings.Join(q.Customer.Lines(), ", ")))
	if q.SourceFile != "" {
		sb.WriteString(fmt.Sprintf("| Datasheet | %s |\n", q.SourceFile))
	}
	sb.WriteString("\n---\n\n")
	sb.WriteString("# Technical Specifications\n\n")
	sb.WriteString(q.TechnicalDetails)
	sb.WriteString("\n")

	return sb.String()
}

// Text renders the quote as plain text.
func Text(q *Quote) string {
	var sb strings.Builder

	sb.WriteString("FINAL QUOTE " + q.Number + "\n")
	sb.WriteString("Date: " + q.Date.Format(DateLayout) + "\n")
	sb.WriteString("Valid until: " + q.ValidUntil.Format(DateLayout) + "\n\n")

	sb.WriteString("Provider:\n")
	for _, l := range q.Provider.Lines() {
		sb.WriteString("  " + l + "\n")
	}
	sb.WriteString("Customer:\n")
	for _, l := range q.Customer.Lines() {
		sb.WriteString("  " + l + "\n")
	}

	sb.WriteString("\nTECHNICAL SPECIFICATIONS\n\n")
	sb.WriteString(q.TechnicalDetails)
	sb.WriteString("\n")

	return sb.String()
}

// markdownEscaper backslash-escapes every character CommonMark could read
// as markup, so datasheet text is always rendered literally.
var markdownEscaper = func() *strings.Replacer {
	var pairs []string
	for _, r := range "\\`*_{}[]()<>#+-.!|~&\"'=:" {
		pairs = append(pairs, string(r), "\\"+string(r))
	}
	return strings.NewReplacer(pairs...)
}()

// reportMarkdown rebuilds the report with escaped text. Sections without a
// match become block quotes so the page can style them as callouts.
func reportMarkdown(r techspec.Report) string {
	parts := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		if !s.Found() {
			parts = append(parts, "> "+markdownEscaper.Replace(techspec.NoMatchLine(s.Keyword)))
			continue
		}
		parts = append(parts, "## "+markdownEscaper.Replace(s.Title)+"\n\n"+markdownEscaper.Replace(s.Body))
	}
	return strings.Join(parts, "\n\n")
}

// md keeps the reflowed line breaks as <br>. Raw HTML stays disabled.
var md = goldmark.New(
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// ReportHTML converts the technical specifications into an HTML fragment.
func ReportHTML(r techspec.Report) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(reportMarkdown(r)), &buf); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

var pageTemplate = template.Must(template.New("quote").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Quote {{.Quote.Number}}</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 56rem; margin: 2rem auto; color: #1f2937; }
    header { display: flex; justify-content: space-between; border-bottom: 2px solid #1d4ed8; }
    .parties { display: flex; gap: 4rem; margin: 2rem 0; }
    .specs h2 { color: #1d4ed8; border-bottom: 1px solid #e5e7eb; padding-bottom: .5rem; }
    .specs blockquote { background: #fefce8; border: 1px solid #fde68a; color: #854d0e; margin: 1rem 0; padding: 1rem; }
    .specs p { font-family: ui-monospace, monospace; }
  </style>
</head>
<body>
  <header>
    <div><h1>Final Quote</h1><p>Based on your requirements</p></div>
    <div><p><strong>{{.Quote.Number}}</strong></p><p>Date: {{.Date}}</p></div>
  </header>
  <section class="parties">
    <div><h2>Provider</h2>{{range .Quote.Provider.Lines}}<p>{{.}}</p>{{end}}</div>
    <div><h2>Customer</h2>{{range .Quote.Customer.Lines}}<p>{{.}}</p>{{end}}</div>
  </section>
  <section class="specs">
    <h1>Technical Specifications</h1>
    {{.Specs}}
  </section>
  <footer>
    <p>Quote valid until: {{.ValidUntil}}</p>
    <p>Please contact us if you have any questions.</p>
  </footer>
</body>
</html>
`))

// HTML renders the quote as a standalone HTML page.
func HTML(q *Quote) (string, error) {
	specs, err := ReportHTML(q.Report)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Quote      *Quote
		Date       string
		ValidUntil string
		Specs      template.HTML
	}{
		Quote:      q,
		Date:       q.Date.Format(DateLayout),
		ValidUntil: q.ValidUntil.Format(DateLayout),
		// goldmark escapes all text and drops raw HTML, so its output is safe.
		Specs: template.HTML(specs),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render quote page: %w", err)
	}
	return buf.String(), nil
}
