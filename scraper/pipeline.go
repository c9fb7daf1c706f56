package scraper

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/use-agent/scout/config"
	"github.com/use-agent/scout/corpus"
	"github.com/use-agent/scout/extract"
	"github.com/use-agent/scout/models"
)

// LaunchFunc acquires a fresh session for one run.
type LaunchFunc func(ctx context.Context) (Session, error)

// BrowserLauncher returns a LaunchFunc that starts a rod session.
func BrowserLauncher(browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) LaunchFunc {
	return func(ctx context.Context) (Session, error) {
		return Launch(ctx, browserCfg, scraperCfg)
	}
}

// Runner executes the acquisition pipeline: acquire a session, search,
// settle, extract, then merge into the corpus. Runs are sequential and
// own their browser; a Runner does not serialise concurrent Run calls.
type Runner struct {
	launch         LaunchFunc
	store          corpus.Store
	screenshotPath string
	logger         *slog.Logger
}

// NewRunner creates a Runner. Diagnostics screenshots go to screenshotPath;
// an empty path disables them.
func NewRunner(launch LaunchFunc, store corpus.Store, screenshotPath string) *Runner {
	return &Runner{
		launch:         launch,
		store:          store,
		screenshotPath: screenshotPath,
		logger:         slog.Default().With("component", "pipeline"),
	}
}

// Run performs one invocation for req.
//
// A run with zero extracted records is not an error: the result has Empty
// set and the corpus is left untouched. Any error after the session is
// acquired triggers a diagnostics screenshot first, and the session is
// always closed before Run returns.
func (r *Runner) Run(ctx context.Context, req models.ScrapeRequest) (_ *models.RunResult, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	res := &models.RunResult{
		RunID:      uuid.NewString(),
		SearchTerm: req.SearchTerm,
		Category:   req.Category,
	}
	logger := r.logger.With("run_id", res.RunID, "term", req.SearchTerm, "category", req.Category)
	logger.Info("run started", "limit", req.Limit)

	// ── 1. Acquire session ───────────────────────────────────────────
	sess, err := r.launch(ctx)
	if err != nil {
		logger.Error("browser session unavailable", "error", err)
		return nil, categorizeError(err, models.ErrCodeBrowserLaunch, "failed to start browser session")
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logger.Warn("session close failed", "error", cerr)
		}
	}()
	// Runs before Close: the page must still be open for the screenshot.
	defer func() {
		if err != nil {
			logger.Error("run failed", "code", models.CodeOf(err), "error", err)
			if captureDiagnostics(ctx, sess, r.screenshotPath, models.CodeOf(err), logger) {
				se := models.AsScrapeError(err)
				se.Screenshot = r.screenshotPath
				err = se
			}
		}
	}()

	// ── 2. Search ────────────────────────────────────────────────────
	if err := sess.Search(ctx, req.SearchTerm); err != nil {
		return nil, err
	}

	// ── 3. Scroll and settle ─────────────────────────────────────────
	if err := sess.Settle(ctx); err != nil {
		return nil, err
	}

	// ── 4. Extract ───────────────────────────────────────────────────
	doc, err := sess.HTML(ctx)
	if err != nil {
		return nil, err
	}
	seq, page, err := extract.Products(doc, req.Limit, req.Category)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInternal, "failed to parse results page", err)
	}
	products := slices.Collect(seq)
	stats := page.Stats()
	logger.Debug("extraction finished",
		"candidates", page.Candidates(),
		"visited", stats.Nodes,
		"accepted", stats.Accepted,
		"sponsored", stats.Sponsored,
		"missing_field", stats.MissingField,
		"invalid_price", stats.InvalidPrice,
		"insecure_image", stats.InsecureImage,
	)
	res.Extracted = len(products)
	res.Products = products

	// ── 5. Empty outcome ─────────────────────────────────────────────
	if len(products) == 0 {
		res.Empty = true
		logger.Warn("scraped 0 products", "candidates", page.Candidates())
		if captureDiagnostics(ctx, sess, r.screenshotPath, "empty", logger) {
			res.Screenshot = r.screenshotPath
		}
		return finish(res, start), nil
	}

	// ── 6. Merge and persist ─────────────────────────────────────────
	prior, err := r.store.Load(ctx)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodePersistence, "failed to read corpus", err)
	}
	merged, added := corpus.Merge(products, prior)
	res.Added = added
	res.Total = len(merged)

	if added == 0 {
		logger.Info("no new unique products found to add", "total", res.Total)
		return finish(res, start), nil
	}
	if err := r.store.Save(ctx, merged); err != nil {
		return nil, models.NewScrapeError(models.ErrCodePersistence, "failed to write corpus", err)
	}
	logger.Info("appended new unique products", "added", added, "total", res.Total)

	return finish(res, start), nil
}

func finish(res *models.RunResult, start time.Time) *models.RunResult {
	res.FinishedAt = time.Now()
	res.DurationMs = res.FinishedAt.Sub(start).Milliseconds()
	return res
}
