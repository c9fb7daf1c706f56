package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/scout/models"
)

// pipelineFailureMessage replaces the detail of browser-side failures in
// API answers. The detail is logged instead.
const pipelineFailureMessage = "Scraping failed. Amazon may be blocking requests."

// respondError maps a ScrapeError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error) {
	scrapeErr := models.AsScrapeError(err)
	detail := scrapeErr.ToDetail()

	status := mapErrorToStatus(scrapeErr)
	switch scrapeErr.Code {
	case models.ErrCodeNavigation, models.ErrCodeTimeout, models.ErrCodeSearchInput, models.ErrCodeBlocked:
		slog.Warn("pipeline failed", "code", scrapeErr.Code, "error", err)
		detail.Message = pipelineFailureMessage
	default:
		if status >= http.StatusInternalServerError {
			slog.Error("request failed", "path", c.FullPath(), "code", scrapeErr.Code, "error", err)
		}
	}

	c.JSON(status, models.ErrorResponse{Error: detail})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeRunInProgress:
		return http.StatusConflict // 409
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeNavigation, models.ErrCodeSearchInput, models.ErrCodeBlocked, models.ErrCodeImport:
		return http.StatusBadGateway // 502
	case models.ErrCodeBrowserLaunch:
		return http.StatusServiceUnavailable // 503
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	default:
		return http.StatusInternalServerError // 500
	}
}
