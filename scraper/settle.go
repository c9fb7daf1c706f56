package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/use-agent/scout/config"
	"github.com/use-agent/scout/models"
)

// scrollJS scrolls by dy pixels and returns the distance that must be
// covered to reach the bottom of the page.
const scrollJS = `(dy) => {
	window.scrollBy(0, dy);
	return document.body.scrollHeight - window.innerHeight;
}`

// scroller is the page surface the settle loop needs.
type scroller interface {
	// scrollBy scrolls down by dy and returns scrollHeight - innerHeight.
	scrollBy(ctx context.Context, dy int) (int, error)

	// waitStable returns once the DOM stopped changing for quiet, or when
	// ctx is done.
	waitStable(ctx context.Context, quiet time.Duration) error
}

type pageScroller struct {
	page *rod.Page
}

func (s pageScroller) scrollBy(ctx context.Context, dy int) (int, error) {
	res, err := s.page.Context(ctx).Eval(scrollJS, dy)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (s pageScroller) waitStable(ctx context.Context, quiet time.Duration) error {
	return s.page.Context(ctx).WaitDOMStable(quiet, 0)
}

// settleReport describes how the scroll loop ended.
type settleReport struct {
	Steps    int
	Distance int
	Bounded  bool // stopped by ScrollMaxSteps
	Settled  bool // DOM went quiet before SettleMax
}

// settle scrolls by cfg.ScrollStep every cfg.ScrollInterval until the
// accumulated distance reaches the scrollable height, which is re-read
// after every step so lazily appended rows extend the loop. A positive
// cfg.ScrollMaxSteps caps the loop. Afterwards it waits up to
// cfg.SettleMax for the DOM to stay unchanged for cfg.SettleQuiet.
func settle(ctx context.Context, sc scroller, cfg config.ScraperConfig) (settleReport, error) {
	var rep settleReport

	ticker := time.NewTicker(cfg.ScrollInterval)
	defer ticker.Stop()

	for {
		if cfg.ScrollMaxSteps > 0 && rep.Steps >= cfg.ScrollMaxSteps {
			rep.Bounded = true
			break
		}
		limit, err := sc.scrollBy(ctx, cfg.ScrollStep)
		if err != nil {
			return rep, err
		}
		rep.Steps++
		rep.Distance += cfg.ScrollStep
		if rep.Distance >= limit {
			break
		}

		select {
		case <-ctx.Done():
			return rep, ctx.Err()
		case <-ticker.C:
		}
	}

	settleCtx, cancel := context.WithTimeout(ctx, cfg.SettleMax)
	defer cancel()

	// Reaching SettleMax is the normal upper bound, not a failure.
	if err := sc.waitStable(settleCtx, cfg.SettleQuiet); err == nil {
		rep.Settled = true
	}
	return rep, ctx.Err()
}

// Settle scrolls the results page to trigger lazy loading, then waits for
// the DOM to stop changing.
func (s *rodSession) Settle(ctx context.Context) error {
	start := time.Now()
	rep, err := settle(ctx, pageScroller{page: s.page}, s.cfg)
	if err != nil {
		return categorizeError(err, models.ErrCodeNavigation, "scrolling the results page failed")
	}
	level := slog.LevelInfo
	if rep.Bounded {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "results page settled",
		"steps", rep.Steps,
		"distance", rep.Distance,
		"bounded", rep.Bounded,
		"quiet", rep.Settled,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
