// Package techspec turns the extracted text of a datasheet into the
// "Technical Specifications" section of a quote.
//
// The pipeline per requested keyword is:
//  1. find every sentence that mentions the keyword (case-insensitive)
//  2. walk back from the keyword's first line to the nearest section heading
//  3. reflow the first matching sentence to a fixed width
//
// Everything in this package is a pure function of its string inputs, so
// it's safe to call from any goroutine.
package techspec

import (
	"strings"
)

// Document wraps the extracted text of one PDF.
//
// Go Pattern: Segmentation is computed once in NewDocument and reused for
// every keyword. The text itself is never mutated after construction, so a
// Document can be shared freely without locking.
type Document struct {
	text      string
	sentences []string
	lines     []string
}

// NewDocument splits text into sentences and raw lines.
func NewDocument(text string) *Document {
	return &Document{
		text:      text,
		sentences: SplitSentences(text),
		lines:     strings.Split(text, "\n"),
	}
}

// Text returns the original document text.
func (d *Document) Text() string {
	return d.text
}

// Sentences returns the trimmed, non-empty sentences in document order.
func (d *Document) Sentences() []string {
	return d.sentences
}

// Matches returns every sentence containing keyword, ignoring case.
// Order follows the document and identical sentences are kept.
func (d *Document) Matches(keyword string) []string {
	needle := strings.ToLower(trimSpace(keyword))
	if needle == "" {
		return nil
	}

	var matches []string
	for _, s := range d.sentences {
		if strings.Contains(strings.ToLower(s), needle) {
			matches = append(matches, s)
		}
	}
	return matches
}

// SplitSentences splits text on '.', '!', '?' and newlines, trims each piece
// and drops the empty ones.
func SplitSentences(text string) []string {
	pieces := strings.FieldsFunc(text, isSentenceBreak)

	sentences := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if s := trimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func isSentenceBreak(r rune) bool {
	switch r {
	case '.', '!', '?', '\n':
		return true
	}
	return false
}

// Search maps each non-blank keyword (trimmed) to its matching sentences.
// Blank keywords get no entry. Keywords with no matches map to an empty slice.
func Search(text string, keywords []string) map[string][]string {
	doc := NewDocument(text)
	results := make(map[string][]string, len(keywords))

	for _, kw := range keywords {
		clean := trimSpace(kw)
		if clean == "" {
			continue
		}
		matches := doc.Matches(clean)
		if matches == nil {
			matches = []string{}
		}
		results[clean] = matches
	}
	return results
}
