package requisition

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/internal/service/approvalconfig"
)

type ApprovalConfigHandler struct {
	svc *approvalconfig.Service
}

func NewApprovalConfigHandler(svc *approvalconfig.Service) *ApprovalConfigHandler {
	return &ApprovalConfigHandler{svc: svc}
}

// ListConfigs returns all approval ladder configs for the caller's
// holding.
func (h *ApprovalConfigHandler) ListConfigs(c *gin.Context) {
	holdingID := c.GetString("holding_id")
	configs, err := h.svc.ListByHolding(holdingID)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "list approval configs")
		return
	}
	c.JSON(http.StatusOK, model.Success(configs))
}

// GetEffectiveLevels returns the levels that would govern a requisition in
// the given scope, after brand-over-holding fallback.
func (h *ApprovalConfigHandler) GetEffectiveLevels(c *gin.Context) {
	holdingID := c.GetString("holding_id")
	var brandID *string
	if b := c.Query("brand_id"); b != "" {
		brandID = &b
	}

	levels, err := h.svc.GetLevelsFor(holdingID, brandID)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "resolve approval levels")
		return
	}
	if levels == nil {
		levels = []model.ApprovalLevel{}
	}
	c.JSON(http.StatusOK, model.Success(levels))
}

// SaveConfig creates or replaces an approval ladder.
func (h *ApprovalConfigHandler) SaveConfig(c *gin.Context) {
	var req model.SaveApprovalConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}

	// Tenant admins only manage their own holding.
	if role := c.GetString("role"); role != model.RoleAdmin {
		req.HoldingID = c.GetString("holding_id")
	}

	cfg, err := h.svc.Save(c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.Success(cfg))
}

// CreateConfig creates a new approval ladder.
func (h *ApprovalConfigHandler) CreateConfig(c *gin.Context) {
	var req model.SaveApprovalConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}

	if role := c.GetString("role"); role != model.RoleAdmin {
		req.HoldingID = c.GetString("holding_id")
	}

	cfg, err := h.svc.Save("", req)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.Success(cfg))
}

// DeleteConfig removes an approval ladder.
func (h *ApprovalConfigHandler) DeleteConfig(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id"), c.GetString("holding_id")); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "delete approval config")
		return
	}
	c.JSON(http.StatusOK, model.Success(nil))
}
