package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CacheControl sets cache headers on GET responses. Content endpoints serve
// rarely-changing material, so clients may cache it for the given seconds.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAgeSeconds))
		c.Next()
	}
}
