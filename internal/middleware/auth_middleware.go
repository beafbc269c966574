package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"suraksha/internal/models"
	"suraksha/internal/utils"
)

// AuthRequired validates the bearer token and sets user context. The
// websocket endpoint cannot send headers from the browser, so a
// ?token= query parameter is accepted as a fallback.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			utils.UnauthorizedResponse(c, "Authorization token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// AdminRequired ensures the authenticated user is an admin. Must run
// after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return roleRequired(models.RoleAdmin, "Admin access required")
}

// CounsellorRequired ensures the authenticated user is a counsellor.
// Must run after AuthRequired.
func CounsellorRequired() gin.HandlerFunc {
	return roleRequired(models.RoleCounsellor, "Counsellor access required")
}

func roleRequired(required models.Role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user_role")
		if !exists {
			utils.UnauthorizedResponse(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		role, ok := value.(models.Role)
		if !ok || role != required {
			utils.ForbiddenResponse(c, message)
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}
		return ""
	}
	return c.Query("token")
}
