package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScrapeRequest(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		category string
		limit    int
		wantErr  bool
		want     ScrapeRequest
	}{
		{"valid", "laptops", "electronics", 5, false, ScrapeRequest{SearchTerm: "laptops", Category: "electronics", Limit: 5}},
		{"default limit", "laptops", "electronics", 0, false, ScrapeRequest{SearchTerm: "laptops", Category: "electronics", Limit: DefaultCLILimit}},
		{"trims input", "  rings ", " jewelery", -1, false, ScrapeRequest{SearchTerm: "rings", Category: "jewelery", Limit: DefaultCLILimit}},
		{"missing term", "", "electronics", 5, true, ScrapeRequest{}},
		{"blank term", "   ", "electronics", 5, true, ScrapeRequest{}},
		{"missing category", "laptops", "", 5, true, ScrapeRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewScrapeRequest(tt.term, tt.category, tt.limit, DefaultCLILimit)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrCodeInvalidInput, CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCodeOf(t *testing.T) {
	base := NewScrapeError(ErrCodePersistence, "write corpus", errors.New("disk full"))
	wrapped := fmt.Errorf("run: %w", base)

	assert.Equal(t, ErrCodePersistence, CodeOf(base))
	assert.Equal(t, ErrCodePersistence, CodeOf(wrapped))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
	assert.Contains(t, base.Error(), "disk full")
	assert.Same(t, base, AsScrapeError(wrapped))
	assert.Equal(t, ErrCodeInternal, AsScrapeError(errors.New("x")).Code)
}

func TestScreenshotOf(t *testing.T) {
	se := NewScrapeError(ErrCodeBlocked, "no results", nil)
	assert.Empty(t, ScreenshotOf(se))

	se.Screenshot = "shot.png"
	assert.Equal(t, "shot.png", ScreenshotOf(fmt.Errorf("run: %w", se)))
	assert.Empty(t, ScreenshotOf(errors.New("plain")))
}

func TestRunResultSummary(t *testing.T) {
	assert.Equal(t, "Scraped 0 products. A screenshot has been saved to 'shot.png' for debugging.",
		(&RunResult{Empty: true, Screenshot: "shot.png"}).Summary())
	assert.Equal(t, "Scraped 0 products.", (&RunResult{Empty: true}).Summary())
	assert.Equal(t, "Appended 7 new unique products. Corpus now contains a total of 8 products.",
		(&RunResult{Extracted: 8, Added: 7, Total: 8}).Summary())
	assert.Equal(t, "No new unique products found to add.", (&RunResult{Extracted: 8, Total: 8}).Summary())
}
