package middleware

import (
	"net/http"
	"strings"

	userRepo "tripmart/database/repository/user"
	"tripmart/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and binds the session to the
// account's stored token hash, so logging in again invalidates old tokens.
// It sets userID and role on the context.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.Envelope{Success: false, Message: "missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.Envelope{Success: false, Message: "invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		u, err := users.GetByTokenHash(computedHash)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.Envelope{Success: false, Message: "session not found"})
			return
		}

		c.Set("userID", u.ID)
		c.Set("role", u.Role)
		c.Next()
	}
}
