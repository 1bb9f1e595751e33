package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware answers cross-origin requests from origins. An empty list
// or a "*" entry admits every origin. Preflight requests end here with 204.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	admitAll := len(origins) == 0 || slices.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if admitAll || slices.Contains(origins, origin) {
			allowOrigin := origin
			if allowOrigin == "" && len(origins) > 0 {
				allowOrigin = origins[0]
			}

			h := c.Writer.Header()
			if allowOrigin != "" {
				h.Set("Access-Control-Allow-Origin", allowOrigin)
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
			h.Set("Access-Control-Expose-Headers", RequestIDHeader)
			h.Set("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
