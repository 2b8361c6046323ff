package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
)

// RecoveryMiddleware converts panics into 500 responses with a full stack
// trace in the log.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}

		userID := ""
		if uid, exists := c.Get("user_id"); exists {
			userID = fmt.Sprintf("%v", uid)
		}

		logger.Errorf(
			"Panic recovered: %v\n  Request: %s %s\n  Client IP: %s\n  User ID: %s\n  Stack Trace:\n%s",
			err,
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			userID,
			string(debug.Stack()),
		)

		c.JSON(http.StatusInternalServerError, model.Error(500, "internal server error"))
		c.Abort()
	})
}
