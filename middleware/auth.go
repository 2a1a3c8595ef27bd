package middleware

import (
	"net/http"
	"strings"

	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware. Handlers read the resolved
// identity from here and never inspect the token themselves.
const (
	ContextActorID = "actorID"
	ContextRole    = "actorRole"
)

// JWTAuth validates the bearer token and resolves the caller's identity.
// When allowedRoles is non-empty, callers outside those roles are rejected.
func JWTAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		actorID, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || actorID == "" || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		if len(allowedRoles) > 0 {
			allowed := false
			for _, r := range allowedRoles {
				if role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden for this role"})
				return
			}
		}

		c.Set(ContextActorID, actorID)
		c.Set(ContextRole, role)
		c.Next()
	}
}
