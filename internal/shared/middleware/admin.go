package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SupervisorMiddleware gates destructive operations (manual adjustments,
// count session generation) behind the supervisor or admin role.
func SupervisorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied: supervisor role required",
			})
			c.Abort()
			return
		}

		role, ok := roleInterface.(string)
		if !ok || (role != "supervisor" && role != "admin") {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied: supervisor role required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
