package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/pkg/casbin"
)

// PermissionMiddleware checks the caller against the casbin policy. The
// subject is the caller's role; platform admins always pass.
func PermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, model.Error(401, "missing identity"))
			c.Abort()
			return
		}
		roleStr, ok := role.(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, model.Error(401, "malformed identity"))
			c.Abort()
			return
		}
		if roleStr == model.RoleAdmin {
			c.Next()
			return
		}

		path := strings.TrimPrefix(c.Request.URL.Path, "/api")
		allowed, err := casbin.Enforce(roleStr, path, c.Request.Method)
		if err != nil || !allowed {
			// Also consult user-level policies keyed by user id.
			if userID, found := c.Get("user_id"); found {
				if uid, ok := userID.(string); ok {
					if allowed, err = casbin.Enforce(uid, path, c.Request.Method); err == nil && allowed {
						c.Next()
						return
					}
				}
			}
			c.JSON(http.StatusForbidden, model.Error(403, "insufficient permissions"))
			c.Abort()
			return
		}
		c.Next()
	}
}
