package middleware

import (
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/security"
	"github.com/gin-gonic/gin"
)

// RequestIDHeader carries the correlation id assigned to each request.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware assigns a ULID to every request that does not already
// carry one and echoes it on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = security.GenerateULID()
		}
		c.Set("requestID", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
