package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/pdf"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/pdf/pdftest"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/techspec"
)

// writePDF stores a generated PDF in the test's temp dir.
func writePDF(t *testing.T, name string, pages ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, pdftest.Build(pages...), 0o600))
	return path
}

// run executes specdraft with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func extractedText(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	result, err := pdf.Extract(data)
	require.NoError(t, err)
	return result.Text
}

func TestExtractCommand(t *testing.T) {
	path := writePDF(t, "sheet.pdf", "NOISE", "Sound power level 42 dB")

	out, err := run(t, "extract", path)
	require.NoError(t, err)
	assert.Equal(t, extractedText(t, path), out)
	assert.Contains(t, out, "Sound power level 42 dB")
}

func TestExtractRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	_, err := run(t, "extract", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a PDF file")
}

func TestReportCommand(t *testing.T) {
	path := writePDF(t, "sheet.pdf", "NOISE", "Sound power level 42 dB")
	reqs := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(reqs, []byte("/Missing Feature\n\n"), 0o600))

	out, err := run(t, "report", path, "--keyword=-sound", "-r", reqs)
	require.NoError(t, err)

	want := techspec.BuildReport(extractedText(t, path), []string{"-sound", "/Missing Feature"})
	assert.Equal(t, want+"\n", out)
	assert.Contains(t, out, `No matches for: "Missing Feature"`)
}

func TestReportCommandSeveralFiles(t *testing.T) {
	a := writePDF(t, "a.pdf", "Energy Efficiency class A")
	b := writePDF(t, "b.pdf", "Dimensions 1200 x 800 mm")
	outDir := filepath.Join(t.TempDir(), "quotes")

	_, err := run(t, "report", a, b, "-k", "class", "--format", "md", "--out", outDir)
	require.NoError(t, err)

	mdA, err := os.ReadFile(filepath.Join(outDir, "a.md"))
	require.NoError(t, err)
	assert.Contains(t, string(mdA), "## Energy Efficiency")

	mdB, err := os.ReadFile(filepath.Join(outDir, "b.md"))
	require.NoError(t, err)
	assert.Contains(t, string(mdB), `No matches for: "class"`)
}

func TestReportCommandFormats(t *testing.T) {
	path := writePDF(t, "sheet.pdf", "SAFETY", "Frost protection is standard")

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "report", path, "-k", "frost", "--format", "json", "--customer", "Acme GmbH")
		require.NoError(t, err)

		var q struct {
			Number   string `json:"number"`
			Customer struct {
				Name string `json:"name"`
			} `json:"customer"`
			SourceFile string `json:"source_file"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &q))
		assert.True(t, strings.HasPrefix(q.Number, "QUO-"))
		assert.Equal(t, "Acme GmbH", q.Customer.Name)
		assert.Equal(t, "sheet.pdf", q.SourceFile)
	})

	t.Run("docx", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "quote.docx")
		_, err := run(t, "report", path, "-k", "frost", "--format", "docx", "--out", out)
		require.NoError(t, err)

		f, err := os.Open(out)
		require.NoError(t, err)
		defer f.Close()
		info, err := f.Stat()
		require.NoError(t, err)
		_, err = docx.Parse(f, info.Size())
		assert.NoError(t, err)
	})
}

func TestReportCommandErrors(t *testing.T) {
	path := writePDF(t, "sheet.pdf", "x")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"report", path, "-k", "x", "--format", "pdf"}, "unsupported --format"},
		{"quote without keywords", []string{"report", path, "--format", "md"}, "at least one"},
		{"quote with only list markers", []string{"report", path, "--keyword=-", "--keyword=/", "--format", "md"}, "at least one"},
		{"docx to stdout", []string{"report", path, "-k", "x", "--format", "docx"}, "needs --out"},
		{"missing requirements file", []string{"report", path, "-r", "/does/not/exist"}, "failed to read requirements"},
		{"missing pdf", []string{"report", "/does/not/exist.pdf", "-k", "x"}, "failed to read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
