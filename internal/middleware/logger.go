package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"evodex/pkg/logger"
)

// Logger logs one line per request. Server errors log at error level and
// include any errors attached to the context.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", GetRequestID(c),
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}

		if status >= 500 {
			log.Error("http.request", kv...)
			return
		}
		log.Info("http.request", kv...)
	}
}
