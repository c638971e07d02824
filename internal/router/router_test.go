package router

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/handlers"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/middleware"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/pdf"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/quote"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/webhook"
)

type fixedText string

func (f fixedText) Extract([]byte) (*pdf.ExtractionResult, error) {
	return &pdf.ExtractionResult{Text: string(f), PageCount: 1}, nil
}

func newTestEngine(t *testing.T, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rl := middleware.NewRateLimiter(limit)
	t.Cleanup(rl.Stop)

	h := handlers.NewHandler(fixedText("NOISE\nSound power level 42 dB."), quote.NewGenerator(quote.Profile{}), webhook.New("", ""), 1<<20, "test")
	return Setup(h, rl, []string{"*"})
}

func processRequest(t *testing.T, path string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("requirements", "sound"))
	part, err := mw.CreateFormFile("file", "sheet.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7\n%%EOF\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.RemoteAddr = "198.51.100.4:40000"
	return req
}

func TestRoutes(t *testing.T) {
	r := newTestEngine(t, 100)

	tests := []struct {
		name     string
		req      *http.Request
		wantCode int
	}{
		{"health", httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), http.StatusOK},
		{"docs page", httptest.NewRequest(http.MethodGet, "/api/docs", nil), http.StatusOK},
		{"openapi document", httptest.NewRequest(http.MethodGet, "/api/docs/openapi.yaml", nil), http.StatusOK},
		{"process", processRequest(t, "/api/process"), http.StatusOK},
		{"process v1", processRequest(t, "/api/v1/process"), http.StatusOK},
		{"quotes", processRequest(t, "/api/v1/quotes"), http.StatusOK},
		{"unknown", httptest.NewRequest(http.MethodGet, "/api/v1/transcripts", nil), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, tt.req)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestUploadsShareRateLimit(t *testing.T) {
	r := newTestEngine(t, 2)

	for _, path := range []string{"/api/process", "/api/v1/process"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, processRequest(t, path))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, processRequest(t, "/api/v1/quotes"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Health is not limited.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPreflight(t *testing.T) {
	r := newTestEngine(t, 100)

	req := httptest.NewRequest(http.MethodOptions, "/api/process", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
