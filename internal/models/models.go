// Package models defines the request and response shapes of the HTTP API.
//
// Models are plain structs with JSON tags. Domain types (reports, quotes)
// live in their service packages; these are only the wire contract.
package models



// ProcessResponse is returned by POST /api/process.
// On extraction failure TechnicalDetails carries "Processing error: <msg>"
// and Success is false.
type ProcessResponse struct {
	TechnicalDetails string `json:"technical_details"`
	Success          bool   `json:"success"`
}

// QuoteParty is a provider or customer block on a quote.
type QuoteParty struct {
	Name   string `json:"name"`
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
}

// SectionResponse is one keyword's entry in a quote.
type SectionResponse struct {
	Keyword    string `json:"keyword"`
	Title      string `json:"title,omitempty"`
	Body       string `json:"body,omitempty"`
	MatchCount int    `json:"match_count"`
}

// QuoteResponse is the JSON rendering of a drafted quote.
type QuoteResponse struct {
	ID               string            `json:"id"`
	Number           string            `json:"number"`
	Date             string            `json:"date"`        // M/D/YYYY
	ValidUntil       string            `json:"valid_until"` // M/D/YYYY
	Provider         QuoteParty        `json:"provider"`
	Customer         QuoteParty        `json:"customer"`
	SourceFile       string            `json:"source_file,omitempty"`
	PageCount        int               `json:"page_count"`
	WordCount        int               `json:"word_count"`
	Sections         []SectionResponse `json:"sections"`
	TechnicalDetails string            `json:"technical_details"`
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Webhooks string `json:"webhooks"` // "enabled" or "disabled"
}
