// Package main is the entry point for the TechSpec Quote API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/config"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/handlers"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/middleware"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/router"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/pdf"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/quote"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/services/webhook"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	cfg.ConfigureLogging()
	gin.SetMode(cfg.GinMode)

	log.Printf("🚀 TechSpec Quote API %s starting...", Version)
	log.Printf("📋 Config loaded: port=%s, gin_mode=%s, max_upload=%d bytes, rate_limit=%d/h",
		cfg.Port, cfg.GinMode, cfg.MaxUploadBytes, cfg.DefaultRateLimit)

	// Step 2: Quote profile
	profile, err := quote.LoadProfile(cfg.QuoteProfile)
	if err != nil {
		log.Fatalf("❌ Failed to load quote profile: %v", err)
	}
	if cfg.QuoteValidDays > 0 {
		profile.ValidDays = cfg.QuoteValidDays
	}
	if cfg.QuoteProfile != "" {
		log.Printf("✅ Quote profile loaded from %s (provider: %s)", cfg.QuoteProfile, profile.Provider.Name)
	} else {
		log.Println("⚠️  No quote profile set, using built-in provider and customer (set QUOTE_PROFILE)")
	}

	// Step 3: Create Services
	webhookService := webhook.New(cfg.WebhookURL, cfg.WebhookSecret)
	if webhookService.Enabled() {
		log.Println("✅ Quote webhook enabled")
	} else {
		log.Println("⚠️  Quote webhook disabled (set QUOTE_WEBHOOK_URL to enable)")
	}

	rateLimiter := middleware.NewRateLimiter(cfg.DefaultRateLimit)
	defer rateLimiter.Stop()

	h := handlers.NewHandler(pdf.Extractor{}, quote.NewGenerator(profile), webhookService, cfg.MaxUploadBytes, Version)

	// Step 4: Setup HTTP Router
	r := router.Setup(h, rateLimiter, cfg.AllowedOrigins)

	// Step 5: Start the HTTP Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Printf("📖 API docs: http://localhost:%s/api/docs", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Step 6: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("🛑 Received signal %v, shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	// No new quotes can arrive now; stop retrying pending deliveries.
	webhookService.Shutdown()
	webhookService.Wait()
	log.Println("⏳ Webhook deliveries stopped")

	log.Println("👋 Server stopped. Goodbye!")
}
