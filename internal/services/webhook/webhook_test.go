package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignPayload(t *testing.T) {
	a := SignPayload([]byte(`{"a":1}`), "secret")
	b := SignPayload([]byte(`{"a":1}`), "secret")
	c := SignPayload([]byte(`{"a":1}`), "other")

	assert.Equal(t, a, b, "signing is deterministic")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestNotifyEventDelivers(t *testing.T) {
	type received struct {
		payload   Payload
		signature string
	}
	got := make(chan received, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var p Payload
		_ = json.Unmarshal(body, &p)
		assert.Equal(t, SignPayload(body, "s3cret"), r.Header.Get("X-Webhook-Signature"))
		got <- received{payload: p, signature: r.Header.Get("X-Webhook-Signature")}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := New(srv.URL, "s3cret")
	s.NotifyEvent(EventQuoteGenerated, map[string]string{"number": "QUO-1-2026"})
	s.Wait()

	select {
	case r := <-got:
		assert.Equal(t, EventQuoteGenerated, r.payload.Event)
		assert.NotEmpty(t, r.signature)
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was not delivered")
	}
}

func TestNotifyEventRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := New(srv.URL, "")
	s.retryDelays = []time.Duration{0, time.Millisecond, time.Millisecond, time.Millisecond}
	s.NotifyEvent(EventQuoteGenerated, nil)
	s.Wait()

	assert.Equal(t, int32(3), calls.Load())
}

func TestShutdownAbortsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := New(srv.URL, "")
	s.retryDelays = []time.Duration{0, time.Hour}
	s.NotifyEvent(EventQuoteGenerated, nil)

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	s.Shutdown()
	s.Shutdown()
	s.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestDisabledService(t *testing.T) {
	s := New("", "")
	assert.False(t, s.Enabled())
	s.NotifyEvent(EventQuoteGenerated, nil)
	s.Wait()

	var nilService *Service
	assert.False(t, nilService.Enabled())
}
