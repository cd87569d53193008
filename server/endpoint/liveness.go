package endpoint

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// Liveness answers as long as the process can serve HTTP. It never consults
// components, so a missing speech model does not get the process restarted.
func Liveness(serviceName string) gin.HandlerFunc {
	pid := os.Getpid()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "alive",
			"service":        serviceName,
			"pid":            pid,
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
		})
	}
}
