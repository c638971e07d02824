package techspec

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLineWidth is the column limit used for quote text.
const DefaultLineWidth = 80

// referenceNumber matches an article/drawing reference at the start of a
// sentence, e.g. "4711 2", "12-3 5" or "12-3 Seite 4 / 5".
var referenceNumber = regexp.MustCompile(`^(\d+[-\s]*\d*\s+(?:Seite\s+\d+\s+/\s+)?\d+)`)

// isSpace is unicode.IsSpace plus the byte order mark. PDF text layers
// mix in no-break and thin spaces, and sometimes a leading BOM.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// collapseSpace replaces every run of whitespace with one ASCII space and
// trims both ends.
func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

// Reflow normalizes whitespace in text and word-wraps it to maxLineLength
// columns. A leading reference number is moved onto its own line.
//
// Words longer than the limit are never split; they get a line to
// themselves. A non-positive maxLineLength means DefaultLineWidth.
func Reflow(text string, maxLineLength int) string {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineWidth
	}

	// After this the only whitespace left is single ASCII spaces, which is
	// all referenceNumber and wrapWords have to deal with.
	clean := collapseSpace(text)

	var reference string
	if m := referenceNumber.FindStringSubmatch(clean); m != nil {
		reference = m[1] + "\n"
		clean = trimSpace(clean[len(m[1]):])
	}

	return reference + strings.Join(wrapWords(clean, maxLineLength), "\n")
}

// wrapWords greedily packs single-space separated words into lines.
// A word moves to a new line when current + " " + word would be longer
// than width.
func wrapWords(text string, width int) []string {
	var lines []string
	var current strings.Builder

	for _, word := range strings.Split(text, " ") {
		if word == "" {
			continue
		}
		if current.Len() > 0 && utf8.RuneCountInString(current.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
