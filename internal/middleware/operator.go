package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// OperatorOnlyMiddleware lets through only usernames listed in operators.
// It must run after JWTAuthMiddleware. An empty list admits every authenticated user.
func OperatorOnlyMiddleware(operators []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(operators))
	for _, op := range operators {
		allowed[op] = struct{}{}
	}
	return func(c *gin.Context) {
		username := c.GetString(UsernameKey)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if len(allowed) == 0 {
			c.Next()
			return
		}
		if _, ok := allowed[username]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Operator access required"})
			return
		}
		c.Next()
	}
}
