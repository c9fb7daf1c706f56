package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/scout/catalog"
	"github.com/use-agent/scout/models"
)

// Importer submits curated records to the catalog.
type Importer interface {
	Import(ctx context.Context, cand models.ImportCandidate) (*catalog.Result, error)
}

// Import returns a handler for POST /api/v1/import.
func Import(im Importer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cand models.ImportCandidate
		if err := c.ShouldBindJSON(&cand); err != nil {
			respondError(c, models.NewScrapeError(models.ErrCodeInvalidInput, err.Error(), err))
			return
		}

		res, err := im.Import(c.Request.Context(), cand)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.ImportResponse{
			Success:   true,
			ProductID: res.ProductID,
			Category:  res.Category,
		})
	}
}
