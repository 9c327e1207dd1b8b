package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminOnlyMiddleware allows only authenticated admin users through.
// Runs after a token middleware has populated the context.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, _ := c.Get("isAdmin")
		if adminFlag, ok := isAdmin.(bool); ok && adminFlag {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}
