package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AaSu9/Aamcare/pkg/logger"
)

// ErrorResponse is the standardized error body.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler turns errors attached to the gin context into JSON responses.
// AppError values map to their status code; everything else is a 500.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.ZL.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request error")
		}

		lastErr := c.Errors.Last()
		status := http.StatusInternalServerError
		if err, ok := lastErr.Err.(interface{ StatusCode() int }); ok {
			status = err.StatusCode()
		}

		c.JSON(status, ErrorResponse{
			Code:      status,
			Message:   lastErr.Error(),
			RequestID: requestID,
		})
	}
}
