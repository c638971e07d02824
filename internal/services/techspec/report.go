package techspec

import (
	"fmt"
	"strings"
)

// Section is the report entry for one requested keyword.
type Section struct {
	Keyword string `json:"keyword"`
	// Title is the located heading, or "Information about <keyword>".
	// Empty when nothing matched.
	Title string `json:"title,omitempty"`
	// Body is the first matching sentence reflowed to DefaultLineWidth.
	Body       string `json:"body,omitempty"`
	MatchCount int    `json:"match_count"`
}

// Found reports whether the keyword matched at least one sentence.
func (s Section) Found() bool {
	return s.MatchCount > 0
}

// String renders the section as it appears in the technical details text.
func (s Section) String() string {
	if !s.Found() {
		return NoMatchLine(s.Keyword)
	}
	return "## " + s.Title + "\n\n" + s.Body
}

// NoMatchLine is the placeholder emitted for a keyword without matches.
func NoMatchLine(keyword string) string {
	return fmt.Sprintf(`No matches for: "%s"`, keyword)
}

// Report is the ordered list of sections, one per normalized keyword.
type Report struct {
	Sections []Section `json:"sections"`
}

// String joins all sections with a blank line in between.
// A report without sections renders as the empty string.
func (r Report) String() string {
	parts := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n\n")
}

// MatchedCount returns how many sections found a match.
func (r Report) MatchedCount() int {
	n := 0
	for _, s := range r.Sections {
		if s.Found() {
			n++
		}
	}
	return n
}

// NormalizeKeyword trims raw and strips one leading list marker ('-' or '/').
// "-Heat recovery", "/Heat recovery" and "Heat recovery" all become
// "Heat recovery". Only a single marker is removed: "--x" becomes "-x".
func NormalizeKeyword(raw string) string {
	k := trimSpace(raw)
	if strings.HasPrefix(k, "-") || strings.HasPrefix(k, "/") {
		k = trimSpace(k[1:])
	}
	return k
}

// HasKeyword reports whether any raw keyword survives NormalizeKeyword.
func HasKeyword(raw []string) bool {
	for _, k := range raw {
		if NormalizeKeyword(k) != "" {
			return true
		}
	}
	return false
}

// ParseRequirements splits a block of requirements (one keyword per line)
// into trimmed, non-empty raw keywords. Markers are left for NormalizeKeyword.
func ParseRequirements(block string) []string {
	var keywords []string
	for _, line := range strings.Split(block, "\n") {
		if k := trimSpace(line); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// Assemble builds the structured report for rawKeywords against text.
// Keywords that are empty after normalization are skipped; duplicates are
// kept and produce their own sections.
func Assemble(text string, rawKeywords []string) Report {
	doc := NewDocument(text)
	report := Report{Sections: make([]Section, 0, len(rawKeywords))}

	for _, raw := range rawKeywords {
		keyword := NormalizeKeyword(raw)
		if keyword == "" {
			continue
		}
		report.Sections = append(report.Sections, doc.section(keyword))
	}
	return report
}

// section resolves a single keyword. Only the first match is rendered;
// the rest are counted but dropped.
func (d *Document) section(keyword string) Section {
	matches := d.Matches(keyword)
	s := Section{Keyword: keyword, MatchCount: len(matches)}
	if len(matches) == 0 {
		return s
	}

	title, ok := d.Title(keyword)
	if !ok {
		title = "Information about " + keyword
	}
	s.Title = title
	s.Body = Reflow(matches[0], DefaultLineWidth)
	return s
}

// BuildReport returns the technical details text for rawKeywords.
func BuildReport(text string, rawKeywords []string) string {
	return Assemble(text, rawKeywords).String()
}
