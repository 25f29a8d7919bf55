package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/notiontext/config"
)

// CORS attaches the permissive cross-origin header set to every response and
// short-circuits OPTIONS pre-flight requests with an empty 200, on any path.
// The header values come from the immutable startup config.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.AllowOrigin)
		c.Header("Access-Control-Allow-Methods", cfg.AllowMethods)
		c.Header("Access-Control-Allow-Headers", cfg.AllowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
