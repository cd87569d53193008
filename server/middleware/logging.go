package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/nativebridge/logger"
)

// RequestLogger logs every request with method, path, status code, and
// duration. Health-check paths are silently skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logger.Fields(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		)
		if code, ok := c.Get(ErrorCodeKey); ok {
			fields[logger.FieldErrorCode] = code
		}

		logByStatus(log.WithContext(c.Request.Context()), fields, status)
	}
}

// ErrorCodeKey is the gin context key handlers set to the error code of a
// failed request so it shows up in the request log.
const ErrorCodeKey = "error_code"

func isHealthEndpoint(path string) bool {
	switch path {
	case "/health", "/alive", "/ready":
		return true
	}
	return false
}

// logByStatus logs request fields at the appropriate level based on HTTP status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
