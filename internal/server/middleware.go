package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"auction-house/internal/identity"
	handler "auction-house/services/auction/handler"
	"auction-house/utils"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// IdentityMiddleware resolves the X-Session-Id header to a caller
// identity. Requests without a valid session pass through without one;
// handlers that require an identity reject those themselves.
func IdentityMiddleware(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Session-Id")
		if userID, ok := resolver.Resolve(token); ok {
			c.Set(handler.CallerIDKey, userID)
		}
		c.Next()
	}
}
