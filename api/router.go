package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/scout/api/handler"
	"github.com/use-agent/scout/api/middleware"
	"github.com/use-agent/scout/cache"
	"github.com/use-agent/scout/config"
	"github.com/use-agent/scout/corpus"
	"github.com/use-agent/scout/webhook"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health stays outside auth so monitoring probes always work.
func NewRouter(rn handler.Runner, store corpus.Store, im handler.Importer, cc *cache.Cache, wh *webhook.Notifier, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	state := &handler.RunState{}
	v1 := r.Group("/api/v1")

	// Health, no auth required.
	v1.GET("/health", handler.Health(state, startTime))

	// Protected group: auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Acquisition
	protected.POST("/scrape", handler.Scrape(rn, state, cc, wh))

	// Staged corpus
	protected.GET("/staged", handler.Staged(store))
	protected.GET("/staged.csv", handler.StagedCSV(store))

	// Catalog import
	protected.POST("/import", handler.Import(im))

	return r
}
