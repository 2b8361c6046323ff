package system

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	authsvc "github.com/veritlyapp-cell/liah-backend/internal/service/auth"
)

type UserHandler struct {
	svc *authsvc.AuthService
}

func NewUserHandler(svc *authsvc.AuthService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ListUsers returns a page of accounts in the caller's holding.
func (h *UserHandler) ListUsers(c *gin.Context) {
	holdingID := c.GetString("holding_id")
	if c.GetString("role") == model.RoleAdmin {
		if hid := c.Query("holding_id"); hid != "" {
			holdingID = hid
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.svc.ListUsers(holdingID, page, pageSize)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "list users")
		return
	}
	c.JSON(http.StatusOK, model.Success(model.NewPaginatedResponse(users, total, page, pageSize)))
}

// GetUser returns one account.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.svc.GetUserByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, model.Error(404, "user not found"))
		return
	}
	c.JSON(http.StatusOK, model.Success(user))
}

// CreateUser registers a new account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}

	// Tenant admins only create accounts within their own holding.
	if c.GetString("role") != model.RoleAdmin {
		req.HoldingID = c.GetString("holding_id")
	}

	user, err := h.svc.CreateUser(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.Success(user))
}

// UpdateUser updates profile, role or status fields.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}

	user, err := h.svc.UpdateUser(c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.Success(user))
}

// ResetPassword sets a new password on the account.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var body struct {
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "password must be at least 8 characters"))
		return
	}

	if err := h.svc.ResetPassword(c.Param("id"), body.Password); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.Success(nil))
}

// DeleteUser removes the account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.Success(nil))
}
