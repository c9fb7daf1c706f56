package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/scout/cache"
	"github.com/use-agent/scout/models"
	"github.com/use-agent/scout/webhook"
)

// Runner executes one acquisition run.
type Runner interface {
	Run(ctx context.Context, req models.ScrapeRequest) (*models.RunResult, error)
}

// Scrape returns a handler for POST /api/v1/scrape.
//
// Flow:
//  1. Parse & validate the request, apply the server default limit.
//  2. Answer from the cache when max_age allows it.
//  3. Claim the run slot; a concurrent caller gets 409.
//  4. Run the pipeline.
//  5. Refresh the cache, fire the webhook and respond.
func Scrape(rn Runner, state *RunState, cc *cache.Cache, wh *webhook.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ── 1. Parse request ────────────────────────────────────────
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, models.NewScrapeError(models.ErrCodeInvalidInput, err.Error(), err))
			return
		}
		req.Defaults(models.DefaultAPILimit)
		if err := req.Validate(); err != nil {
			respondError(c, err)
			return
		}

		// ── 2. Cache lookup ─────────────────────────────────────────
		key := cache.Key(req)
		if cc != nil && req.MaxAge > 0 {
			if cached, hit := cc.Get(key, req.MaxAge); hit {
				c.JSON(http.StatusOK, models.ScrapeResponse{
					Success:     true,
					Result:      cached,
					CacheStatus: "hit",
					Message:     cached.Summary(),
				})
				return
			}
		}

		// ── 3. Single run ───────────────────────────────────────────
		if !state.TryStart() {
			respondError(c, models.NewScrapeError(models.ErrCodeRunInProgress, "another scrape is already running", nil))
			return
		}
		defer state.Finish()

		// ── 4. Run ──────────────────────────────────────────────────
		res, err := rn.Run(c.Request.Context(), req)
		if err != nil {
			wh.Notify(webhook.NewEvent(webhook.RunFailed, "", gin.H{
				"search_term": req.SearchTerm,
				"category":    req.Category,
				"error":       models.AsScrapeError(err).ToDetail(),
			}))
			respondError(c, err)
			return
		}

		// ── 5. Cache, notify, respond ───────────────────────────────
		resp := models.ScrapeResponse{Success: true, Result: res, Message: res.Summary()}
		if cc != nil {
			// Totals of every cached run are stale once the corpus grew.
			if res.Added > 0 {
				cc.Purge()
			}
			if req.MaxAge > 0 {
				cc.Set(key, res)
				resp.CacheStatus = "miss"
			}
		}

		event := webhook.RunCompleted
		if res.Empty {
			event = webhook.RunEmpty
		}
		wh.Notify(webhook.NewEvent(event, res.RunID, res))

		c.JSON(http.StatusOK, resp)
	}
}
