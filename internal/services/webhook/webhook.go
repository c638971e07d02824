// Package webhook notifies an external system when a quote is drafted.
//
// There is a single, optional endpoint configured at startup
// (QUOTE_WEBHOOK_URL). Deliveries run in the background, are signed with
// HMAC-SHA256 when a secret is set, and are retried with backoff.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventQuoteGenerated is sent after a quote has been drafted.
const EventQuoteGenerated = "quote.generated"

// Payload is the JSON body of every delivery.
type Payload struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Service handles webhook notification delivery.
type Service struct {
	url         string
	secret      string
	client      *http.Client
	retryDelays []time.Duration
	shutdownCh  chan struct{} // Signals pending deliveries to stop
	once        sync.Once
	wg          sync.WaitGroup
}

// New creates a webhook service. An empty url disables delivery.
func New(url, secret string) *Service {
	return &Service{
		url:    url,
		secret: secret,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		retryDelays: []time.Duration{0, 1 * time.Second, 5 * time.Second, 30 * time.Second},
		shutdownCh:  make(chan struct{}),
	}
}

// Enabled reports whether a target URL is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.url != ""
}

// Shutdown signals all pending webhook deliveries to stop.
// Call this during graceful server shutdown. Safe to call more than once.
func (s *Service) Shutdown() {
	s.once.Do(func() { close(s.shutdownCh) })
}

// Wait blocks until in-flight deliveries have finished or given up.
func (s *Service) Wait() {
	s.wg.Wait()
}

// SignPayload creates an HMAC-SHA256 signature for a payload.
func SignPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// NotifyEvent sends event to the configured endpoint in the background.
// It returns immediately; failures are only logged. Delivery is detached
// from the caller's request and bounded by its own timeout, so there is no
// context parameter.
func (s *Service) NotifyEvent(event string, data interface{}) {
	if !s.Enabled() {
		return
	}

	payloadJSON, err := json.Marshal(Payload{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("⚠️  Failed to marshal webhook payload: %v", err)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.deliverWithRetry(event, payloadJSON)
	}()
}

// deliverWithRetry attempts delivery up to len(retryDelays) times, waiting
// the given delay before each attempt. Shutdown aborts the remaining waits.
func (s *Service) deliverWithRetry(event string, payloadJSON []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var lastErr string
	for attempt, delay := range s.retryDelays {
		if delay > 0 {
			select {
			case <-s.shutdownCh:
				log.Printf("⚠️  Webhook delivery aborted due to shutdown: %s → %s", event, s.url)
				return
			case <-ctx.Done():
				log.Printf("⚠️  Webhook delivery timed out: %s → %s", event, s.url)
				return
			case <-time.After(delay):
			}
		}

		statusCode, err := s.deliver(ctx, payloadJSON)
		if err == nil && statusCode >= 200 && statusCode < 300 {
			log.Printf("✅ Webhook delivered: %s → %s (attempt %d)", event, s.url, attempt+1)
			return
		}

		if err != nil {
			lastErr = err.Error()
		} else {
			lastErr = fmt.Sprintf("HTTP %d", statusCode)
		}
		log.Printf("⚠️  Webhook delivery failed (attempt %d/%d): %s → %s: %s",
			attempt+1, len(s.retryDelays), event, s.url, lastErr)
	}

	log.Printf("❌ Webhook delivery failed permanently: %s → %s", event, s.url)
}

// deliver sends a single webhook HTTP request with context support.
func (s *Service) deliver(ctx context.Context, payloadJSON []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payloadJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "TechSpecQuoteAPI-Webhook/1.0")

	if s.secret != "" {
		req.Header.Set("X-Webhook-Signature", SignPayload(payloadJSON, s.secret))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
