package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/scout/models"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Health returns a handler for GET /api/v1/health.
//
// Status is "busy" while a run holds the browser.
func Health(state *RunState, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := models.HealthResponse{
			Status:  "healthy",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Running: state.Running(),
			Version: Version,
		}
		if resp.Running {
			resp.Status = "busy"
		}
		if last := state.LastRun(); !last.IsZero() {
			resp.LastRun = last.UTC().Format(time.RFC3339)
		}
		c.JSON(http.StatusOK, resp)
	}
}
