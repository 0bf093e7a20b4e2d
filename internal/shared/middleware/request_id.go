package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
)

// RequestID tags every request with a unique id for log correlation.
// An incoming X-Request-ID header is trusted so gateway traces line up.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = xid.New().String()
		}

		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}
