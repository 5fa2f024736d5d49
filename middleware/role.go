package middleware

import (
	"net/http"

	"tripmart/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to the given roles. It must run after
// JWTAuthMiddleware, which sets "role" on the context.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := c.GetString("role")
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.Envelope{Success: false, Message: "insufficient permissions"})
			return
		}
		c.Next()
	}
}
