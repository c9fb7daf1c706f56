package scraper

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/use-agent/scout/models"
)

func TestCategorizeError(t *testing.T) {
	typed := models.NewScrapeError(models.ErrCodeSearchInput, "no search box", nil)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", context.DeadlineExceeded, models.ErrCodeTimeout},
		{"wrapped deadline", fmt.Errorf("wait load: %w", context.DeadlineExceeded), models.ErrCodeTimeout},
		{"canceled", context.Canceled, models.ErrCodeTimeout},
		{"typed passthrough", fmt.Errorf("search: %w", typed), models.ErrCodeSearchInput},
		{"other", errors.New("net::ERR_NAME_NOT_RESOLVED"), models.ErrCodeNavigation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizeError(tt.err, models.ErrCodeNavigation, "navigation failed")
			if got.Code != tt.want {
				t.Errorf("code = %s, want %s", got.Code, tt.want)
			}
		})
	}
}

func TestCategorizeError_PreservesCause(t *testing.T) {
	cause := errors.New("websocket closed")
	got := categorizeError(cause, models.ErrCodeNavigation, "navigation failed")
	if !errors.Is(got, cause) {
		t.Error("categorized error should unwrap to its cause")
	}
}
