package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"nexwms-backend/internal/shared/utils"
	"nexwms-backend/pkg/logger"
)

type clientIPKey struct{}

// ClientIPMiddleware resolves the real client IP behind proxies and puts
// it on the request context. Register early in the chain.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c)

		c.Set("client_ip", clientIP)

		ctx := context.WithValue(c.Request.Context(), clientIPKey{}, clientIP)
		c.Request = c.Request.WithContext(ctx)

		logger.Info("Client IP extracted", map[string]interface{}{
			"ip":         clientIP,
			"is_private": utils.IsPrivateIP(clientIP),
			"path":       c.Request.URL.Path,
		})

		c.Next()
	}
}

// GetClientIPFromContext retrieves the client IP, or "" when absent.
func GetClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}
