package scraper

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/scout/models"
)

const (
	searchInputSelector = `#twotabsearchtextbox`
	resultSelector      = `div.s-result-item[data-asin]`
)

// Search opens the storefront root, submits term through the search box
// and waits until at least one result container is rendered.
//
// Steps (numbered to match the inline comments):
//
//  1. Navigate to the base URL with the long navigation timeout.
//  2. Bail out early if the storefront served its bot wall.
//  3. Locate the search input.
//  4. Type the term, press Enter and wait for the next navigation.
//  5. Wait for the first result container.
func (s *rodSession) Search(ctx context.Context, term string) error {
	// ── 1. Navigate ──────────────────────────────────────────────────
	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavigationTimeout)
	defer cancel()

	p := s.page.Context(navCtx)
	if err := p.Navigate(s.cfg.BaseURL); err != nil {
		return categorizeError(err, models.ErrCodeNavigation, "navigation to storefront failed")
	}
	if err := p.WaitLoad(); err != nil {
		return categorizeError(err, models.ErrCodeNavigation, "storefront did not finish loading")
	}
	s.logger.Info("storefront loaded", "url", s.cfg.BaseURL)

	// ── 2. Bot wall ──────────────────────────────────────────────────
	if reason := s.robotCheck(ctx); reason != "" {
		return models.NewScrapeError(models.ErrCodeBlocked, "storefront is blocking automated access: "+reason, nil)
	}

	// ── 3. Search input ──────────────────────────────────────────────
	elCtx, elCancel := context.WithTimeout(ctx, s.cfg.ElementTimeout)
	defer elCancel()

	box, err := s.page.Context(elCtx).Element(searchInputSelector)
	if err != nil {
		if ctx.Err() != nil {
			return categorizeError(ctx.Err(), models.ErrCodeSearchInput, "search input lookup interrupted")
		}
		return models.NewScrapeError(models.ErrCodeSearchInput, "search input not found, the storefront layout may have changed", err)
	}

	// ── 4. Submit ────────────────────────────────────────────────────
	submitCtx, submitCancel := context.WithTimeout(ctx, s.cfg.NavigationTimeout)
	defer submitCancel()

	p = s.page.Context(submitCtx)
	if err := box.Context(submitCtx).Focus(); err != nil {
		return categorizeError(err, models.ErrCodeSearchInput, "failed to focus search input")
	}
	if err := typeText(submitCtx, p, term, s.cfg.TypeDelay); err != nil {
		return categorizeError(err, models.ErrCodeNavigation, "failed to type search term")
	}

	// Registered before Enter so the navigation event cannot be missed.
	waitNav := p.WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := p.Keyboard.Press(input.Enter); err != nil {
		return categorizeError(err, models.ErrCodeNavigation, "failed to submit search")
	}
	waitNav()
	if err := submitCtx.Err(); err != nil {
		return categorizeError(err, models.ErrCodeNavigation, "search results navigation timed out")
	}
	s.logger.Info("search submitted", "term", term)

	// ── 5. Results ready ─────────────────────────────────────────────
	resCtx, resCancel := context.WithTimeout(ctx, s.cfg.ResultsTimeout)
	defer resCancel()

	if err := s.page.Context(resCtx).WaitElementsMoreThan(resultSelector, 0); err != nil {
		if ctx.Err() != nil {
			return categorizeError(ctx.Err(), models.ErrCodeBlocked, "results wait interrupted")
		}
		msg := "Could not find any product items. Amazon may be showing a CAPTCHA or a different layout."
		if reason := s.robotCheck(ctx); reason != "" {
			msg = "Could not find any product items: " + reason + "."
		}
		return models.NewScrapeError(models.ErrCodeBlocked, msg, err)
	}
	return nil
}

// typeText enters text into the focused element. A positive delay types
// one character at a time with that pause between keystrokes.
func typeText(ctx context.Context, p *rod.Page, text string, delay time.Duration) error {
	if delay <= 0 {
		return p.InsertText(text)
	}
	for _, r := range text {
		if err := p.InsertText(string(r)); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil
}
