package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/nativebridge/version"
)

// Version returns a handler that reports build version information and the
// engines compiled into this binary.
func Version() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, DataResponse{Data: version.Get()})
	}
}
