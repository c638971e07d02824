// Package pdf extracts the text layer of uploaded datasheets.
//
// Parsing is delegated to ledongthuc/pdf, a pure Go reader, so the server
// still ships as a single binary without CGO. Scanned (image-only) PDFs
// have no text layer and come back empty.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// MIMEType is the only content type accepted for uploads.
const MIMEType = "application/pdf"

// ErrExtraction is matched by every error returned from Extract.
var ErrExtraction = errors.New("PDF extraction failed")

// ExtractionError wraps the underlying reason a PDF could not be read.
//
// Go Pattern: A custom error type lets callers use errors.As to get at the
// cause, while Is(ErrExtraction) keeps the simple check simple.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return ErrExtraction.Error() + ": " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrExtraction) true for any ExtractionError.
func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// ExtractionResult holds the output from a PDF text extraction.
type ExtractionResult struct {
	Text      string // Page texts joined with "\n"
	PageCount int    // Number of pages
	WordCount int    // Word count
}

// Extractor is the default PDF text extractor. It has no state; the
// type exists so handlers can depend on an interface and tests can swap it.
type Extractor struct{}

// Extract implements the handlers' TextExtractor interface.
func (Extractor) Extract(data []byte) (*ExtractionResult, error) {
	return Extract(data)
}

// Extract reads a PDF held in memory and returns the text of all pages,
// separated by newlines.
//
// Go Pattern: We accept a byte slice instead of a filename because the data
// comes from an HTTP upload (in memory), not a file on disk. The pdf library
// requires io.ReaderAt for random access, which bytes.Reader provides.
func Extract(data []byte) (result *ExtractionResult, err error) {
	// The pdf library panics on some malformed files instead of returning
	// an error, so convert that into an extraction failure.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ExtractionError{Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	pageCount := pdfReader.NumPage()

	// Font lookups are cached across pages; datasheets reuse the same few fonts.
	fonts := make(map[string]*pdf.Font)
	var allText strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			return nil, &ExtractionError{Err: fmt.Errorf("page %d: %w", i, err)}
		}

		allText.WriteString(text)
		allText.WriteString("\n")
	}

	// Text from PDFs often carries decomposed umlauts ("u" + combining
	// diaeresis). Compose them so keyword matching sees what users type.
	extractedText := norm.NFC.String(allText.String())

	return &ExtractionResult{
		Text:      extractedText,
		PageCount: pageCount,
		WordCount: countWords(extractedText),
	}, nil
}

// countWords counts the number of words in a text string.
func countWords(text string) int {
	return len(strings.Fields(text))
}

// ValidatePDF checks if the data looks like a valid PDF by checking the magic bytes.
func ValidatePDF(data []byte) bool {
	// PDF files start with "%PDF-"
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}

// DetectMIME sniffs the content type of data, ignoring whatever the client
// claimed in the upload headers.
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// IsPDF reports whether data both sniffs as application/pdf and starts with
// the PDF magic bytes.
func IsPDF(data []byte) bool {
	return mimetype.Detect(data).Is(MIMEType) && ValidatePDF(data)
}
