package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"socialfeed/services"
)

const claimsKey = "claims"

// Auth guards a route group with bearer-token authentication. On
// success the verified claims are stored in the request context for
// handlers to pick up via CurrentClaims.
func Auth(identity *services.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No authorization token provided"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header must be: Bearer <token>"})
			return
		}

		claims, err := identity.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the verified claims set by Auth.
func CurrentClaims(c *gin.Context) (services.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return services.Claims{}, false
	}
	claims, ok := v.(services.Claims)
	return claims, ok
}
