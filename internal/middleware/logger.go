package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AaSu9/Aamcare/pkg/logger"
)

// Logger logs every request with latency and status, at a level matching the
// response class.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		event := log.ZL.Info()
		switch {
		case status >= 500:
			event = log.ZL.Error()
		case status >= 400:
			event = log.ZL.Warn()
		}

		event.
			Str("request_id", c.GetString(ContextRequestID)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("client_ip", c.ClientIP()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request processed")
	}
}
