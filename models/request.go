package models

import "strings"

// Default result caps for the two entry points.
const (
	DefaultCLILimit = 15
	DefaultAPILimit = 10
)

// ScrapeRequest describes one pipeline invocation. It doubles as the
// payload for POST /api/v1/scrape.
type ScrapeRequest struct {
	// SearchTerm is the free-text query typed into the storefront. Required.
	SearchTerm string `json:"search_term" binding:"required"`

	// Category is carried onto every extracted record. Required.
	Category string `json:"category" binding:"required"`

	// Limit caps the number of accepted records.
	Limit int `json:"limit,omitempty" binding:"omitempty,min=1,max=100"`

	// MaxAge (ms) lets the API answer from a recent identical run.
	// Ignored by the CLI.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// NewScrapeRequest validates the inputs and returns an immutable request.
// A non-positive limit falls back to defaultLimit.
func NewScrapeRequest(term, category string, limit, defaultLimit int) (ScrapeRequest, error) {
	req := ScrapeRequest{SearchTerm: term, Category: category, Limit: limit}
	req.Defaults(defaultLimit)
	if err := req.Validate(); err != nil {
		return ScrapeRequest{}, err
	}
	return req, nil
}

// Defaults trims the inputs and applies the limit fallback.
func (r *ScrapeRequest) Defaults(defaultLimit int) {
	r.SearchTerm = strings.TrimSpace(r.SearchTerm)
	r.Category = strings.TrimSpace(r.Category)
	if r.Limit <= 0 {
		r.Limit = defaultLimit
	}
}

// Validate reports a usage error for missing required fields.
func (r ScrapeRequest) Validate() error {
	switch {
	case r.SearchTerm == "":
		return NewScrapeError(ErrCodeInvalidInput, "search term is required", nil)
	case r.Category == "":
		return NewScrapeError(ErrCodeInvalidInput, "category is required", nil)
	case r.Limit <= 0:
		return NewScrapeError(ErrCodeInvalidInput, "limit must be positive", nil)
	}
	return nil
}
