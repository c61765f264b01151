package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	tokensvc "photobooking/internal/pkg/token"
)

// DraftToken resolves the configurator instance from the Bearer token and puts
// its draft id on the context for every draft-scoped handler.
func DraftToken(tokens *tokensvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing draft token",
				},
			})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid draft token",
				},
			})
			return
		}

		c.Set("draft_id", claims.DraftID)
		c.Next()
	}
}

// DraftID reads the draft id set by DraftToken.
func DraftID(c *gin.Context) string {
	return c.GetString("draft_id")
}
