package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/scout/corpus"
	"github.com/use-agent/scout/models"
)

// Staged returns a handler for GET /api/v1/staged. An optional ?category=
// narrows the listing. Likely duplicates are reported alongside.
func Staged(store corpus.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := loadStaged(c, store)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.StagedResponse{
			Success:        true,
			Total:          len(records),
			Products:       records,
			NearDuplicates: corpus.NearDuplicates(records, corpus.DefaultNearThreshold),
		})
	}
}

// StagedCSV returns a handler for GET /api/v1/staged.csv.
func StagedCSV(store corpus.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := loadStaged(c, store)
		if err != nil {
			respondError(c, err)
			return
		}

		var buf bytes.Buffer
		if err := corpus.WriteCSV(&buf, records); err != nil {
			respondError(c, models.NewScrapeError(models.ErrCodeInternal, "failed to render CSV", err))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="staged_products.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}
}

func loadStaged(c *gin.Context, store corpus.Store) ([]models.ScrapedProduct, error) {
	records, err := store.Load(c.Request.Context())
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodePersistence, "failed to read corpus", err)
	}

	category := c.Query("category")
	if category == "" {
		return records, nil
	}
	filtered := make([]models.ScrapedProduct, 0, len(records))
	for _, r := range records {
		if r.Category == category {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
