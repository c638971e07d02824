// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/techspec-quote-api/internal/handlers"
	"github.com/Shimizu-Technology/techspec-quote-api/internal/middleware"
)

// Setup creates and configures the Gin router with all routes. Upload
// endpoints share rl; the caller owns it and stops it on shutdown.
func Setup(h *handlers.Handler, rl *middleware.RateLimiter, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// --- Public Routes ---
	r.GET("/api/v1/health", h.HealthCheck)
	r.GET("/api/docs", h.ServeSwaggerUI)
	r.GET("/api/docs/openapi.yaml", h.ServeOpenAPISpec)

	// --- Upload Routes (rate limited per client IP) ---
	limited := rl.RateLimit()

	// The unversioned path is what existing form front ends post to.
	r.POST("/api/process", limited, h.ProcessDocument)

	v1 := r.Group("/api/v1")
	v1.Use(limited)
	{
		v1.POST("/process", h.ProcessDocument)
		v1.POST("/quotes", h.CreateQuote)
	}

	return r
}
