package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"teamtask-api/internal/auth"
	"teamtask-api/internal/models"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxStaffID   = "staff_id"
	CtxStaffName = "staff_name"
	CtxRole      = "role"
)

// JWTAuthMiddleware validates the JWT token in the Authorization header and
// stores the staff identity in the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		// WebSocket clients cannot set custom headers; allow token in query
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is required",
			})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(CtxStaffID, claims.StaffID)
		c.Set(CtxStaffName, claims.Name)
		c.Set(CtxRole, string(claims.Role))

		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated staff member has one
// of the given roles. Must run after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := models.Role(c.GetString(CtxRole))
		for _, r := range roles {
			if current == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error": "You do not have permission to perform this action",
		})
		c.Abort()
	}
}
