package requisition

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/internal/service/workflow"
)

type WorkflowTemplateHandler struct {
	svc *workflow.Service
}

func NewWorkflowTemplateHandler(svc *workflow.Service) *WorkflowTemplateHandler {
	return &WorkflowTemplateHandler{svc: svc}
}

// ListTemplates returns all workflow templates for the caller's holding.
func (h *WorkflowTemplateHandler) ListTemplates(c *gin.Context) {
	tpls, err := h.svc.ListByHolding(c.GetString("holding_id"))
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "list workflow templates")
		return
	}
	c.JSON(http.StatusOK, model.Success(tpls))
}

// GetTemplate returns one template with its steps.
func (h *WorkflowTemplateHandler) GetTemplate(c *gin.Context) {
	tpl, err := h.svc.FindTemplateByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, model.Error(404, "workflow template not found"))
		return
	}
	c.JSON(http.StatusOK, model.Success(tpl))
}

// CreateTemplate creates a new template.
func (h *WorkflowTemplateHandler) CreateTemplate(c *gin.Context) {
	var req model.SaveWorkflowTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}
	if role := c.GetString("role"); role != model.RoleAdmin {
		req.HoldingID = c.GetString("holding_id")
	}

	tpl, err := h.svc.Save("", req)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.Success(tpl))
}

// UpdateTemplate replaces an existing template's definition.
func (h *WorkflowTemplateHandler) UpdateTemplate(c *gin.Context) {
	var req model.SaveWorkflowTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}
	if role := c.GetString("role"); role != model.RoleAdmin {
		req.HoldingID = c.GetString("holding_id")
	}

	tpl, err := h.svc.Save(c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.Success(tpl))
}

// DeleteTemplate removes a template. Requisitions already resolved from it
// keep their stored approvers.
func (h *WorkflowTemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "delete workflow template")
		return
	}
	c.JSON(http.StatusOK, model.Success(nil))
}
