package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/internal/service/auth"
)

// AuthMiddleware validates the JWT and stores the caller's identity in the
// request context. WebSocket upgrade requests may carry the token as a
// query parameter since browsers cannot set headers on them.
func AuthMiddleware(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		if strings.Contains(c.Request.URL.Path, "/ws/") {
			tokenString = c.Query("token")
			if tokenString == "" {
				c.JSON(http.StatusUnauthorized, model.Error(401, "missing token parameter"))
				c.Abort()
				return
			}
		} else {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, model.Error(401, "missing Authorization header"))
				c.Abort()
				return
			}
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				c.JSON(http.StatusUnauthorized, model.Error(401, "Authorization header must use the Bearer scheme"))
				c.Abort()
				return
			}
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, model.Error(401, "invalid or expired token: "+err.Error()))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("holding_id", claims.HoldingID)

		c.Next()
	}
}

// AdminMiddleware restricts the route to platform operators.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != model.RoleAdmin {
			c.JSON(http.StatusForbidden, model.Error(403, "administrator access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// HoldingAdminMiddleware restricts the route to tenant administrators and
// platform operators.
func HoldingAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || (role != model.RoleAdmin && role != model.RoleHoldingAdmin) {
			c.JSON(http.StatusForbidden, model.Error(403, "holding administrator access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
