package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/scribe/observability"
)

// Readiness answers 200 while no component is down. A degraded engine, for
// example one without an API key, still accepts utterances and reports the
// problem per call.
func Readiness(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := collect(c.Request.Context(), "", checker)
		if sh.Status == observability.HealthStatusDown {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
