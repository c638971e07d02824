package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter whose clock the test controls.
func newTestLimiter(t *testing.T, limit int) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(limit)
	t.Cleanup(rl.Stop)

	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestAllow(t *testing.T) {
	rl, now := newTestLimiter(t, 2)

	assert.True(t, rl.allow("10.0.0.1").allowed)
	assert.True(t, rl.allow("10.0.0.1").allowed)

	denied := rl.allow("10.0.0.1")
	assert.False(t, denied.allowed)
	assert.Equal(t, float64(2), denied.limit)

	// Other clients have their own bucket.
	assert.True(t, rl.allow("10.0.0.2").allowed)

	// Two tokens per hour: one comes back after 30 minutes.
	*now = now.Add(30 * time.Minute)
	assert.True(t, rl.allow("10.0.0.1").allowed)
	assert.False(t, rl.allow("10.0.0.1").allowed)
}

func TestPrune(t *testing.T) {
	rl, now := newTestLimiter(t, 5)

	rl.allow("stale")
	*now = now.Add(2 * time.Hour)
	rl.allow("fresh")
	rl.prune()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.buckets, "stale")
	assert.Contains(t, rl.buckets, "fresh")
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, _ := newTestLimiter(t, 1)

	r := gin.New()
	r.POST("/upload", rl.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/upload", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		r.ServeHTTP(w, req)
		return w
	}

	first := send()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := send()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "rate_limit_exceeded")
}
