package pdf

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/pdf/pdftest"
)

func TestExtract(t *testing.T) {
	data := pdftest.Build("Heat Recovery wheel", "Drive Module with EC fans")

	result, err := Extract(data)
	require.NoError(t, err)

	assert.Equal(t, 2, result.PageCount)
	assert.Contains(t, result.Text, "Heat Recovery wheel")
	assert.Contains(t, result.Text, "Drive Module with EC fans")
	assert.Less(t, strings.Index(result.Text, "Heat Recovery"), strings.Index(result.Text, "Drive Module"),
		"pages keep their order")
	assert.True(t, strings.HasSuffix(result.Text, "\n"), "every page ends with a newline")
	assert.Equal(t, len(strings.Fields(result.Text)), result.WordCount)
}

func TestExtractFailures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not a PDF", []byte("hello, world")},
		{"truncated header", []byte("%PDF-1.4\n")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Extract(tt.data)
			require.Error(t, err)
			assert.Nil(t, result)

			assert.True(t, errors.Is(err, ErrExtraction))
			var extErr *ExtractionError
			require.True(t, errors.As(err, &extErr))
			assert.NotNil(t, extErr.Err)
			assert.True(t, strings.HasPrefix(err.Error(), "PDF extraction failed: "))
		})
	}
}

func TestExtractorImplementsExtract(t *testing.T) {
	result, err := Extractor{}.Extract(pdftest.Build("Safety Devices"))
	require.NoError(t, err)
	assert.Contains(t, result.Text, "Safety Devices")
}

func TestValidatePDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"generated PDF", pdftest.Build("x"), true},
		{"magic only", []byte("%PDF-"), true},
		{"too short", []byte("%PDF"), false},
		{"plain text", []byte("just text"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePDF(tt.data))
		})
	}
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF(pdftest.Build("x")))
	assert.Equal(t, MIMEType, DetectMIME(pdftest.Build("x")))

	assert.False(t, IsPDF([]byte("just text")))
	assert.False(t, IsPDF([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}))
}
