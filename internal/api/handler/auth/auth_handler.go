package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	authsvc "github.com/veritlyapp-cell/liah-backend/internal/service/auth"
)

type AuthHandler struct {
	svc *authsvc.AuthService
}

func NewAuthHandler(svc *authsvc.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login authenticates with username and password and returns a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "username and password are required"))
		return
	}

	resp, err := h.svc.Login(&req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, model.Error(401, err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.Success(resp))
}

// Profile returns the authenticated caller's account.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.svc.GetUserByID(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, model.Error(404, "user not found"))
		return
	}
	c.JSON(http.StatusOK, model.Success(user))
}
