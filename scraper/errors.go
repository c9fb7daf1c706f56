package scraper

import (
	"context"
	"errors"

	"github.com/use-agent/scout/models"
)

// categorizeError wraps raw errors into typed ScrapeErrors. Context
// expiry always maps to SCRAPE_TIMEOUT; anything else gets code.
func categorizeError(err error, code, msg string) *models.ScrapeError {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		return se
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "run canceled", err)
	default:
		return models.NewScrapeError(code, msg, err)
	}
}
