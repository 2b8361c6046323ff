package requisition

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/internal/repository"
	reqsvc "github.com/veritlyapp-cell/liah-backend/internal/service/requisition"
)

type RequisitionHandler struct {
	svc *reqsvc.Service
}

func NewRequisitionHandler(svc *reqsvc.Service) *RequisitionHandler {
	return &RequisitionHandler{svc: svc}
}

// actorFromContext rebuilds the caller identity stored by the auth
// middleware.
func actorFromContext(c *gin.Context) reqsvc.Actor {
	get := func(key string) string {
		if v, exists := c.Get(key); exists {
			return fmt.Sprintf("%v", v)
		}
		return ""
	}
	return reqsvc.Actor{
		ID:        get("user_id"),
		Name:      get("username"),
		Email:     get("email"),
		Role:      get("role"),
		HoldingID: get("holding_id"),
	}
}

// writeServiceError maps service errors to HTTP status codes.
func writeServiceError(c *gin.Context, err error) {
	var authErr *reqsvc.AuthorizationError
	var stateErr *reqsvc.StateError
	var valErr *reqsvc.ValidationError

	switch {
	case errors.Is(err, reqsvc.ErrNotFound):
		c.JSON(http.StatusNotFound, model.Error(404, "requisition not found"))
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, model.Error(403, err.Error()))
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, model.Error(409, err.Error()))
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
	default:
		model.HandleError(c, http.StatusInternalServerError, err)
	}
}

// CreateRequisition opens a new requisition for the caller's holding.
func (h *RequisitionHandler) CreateRequisition(c *gin.Context) {
	var req model.CreateRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}

	rq, err := h.svc.Create(req, actorFromContext(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(rq))
}

// ListRequisitions returns a filtered page of requisitions within the
// caller's holding.
func (h *RequisitionHandler) ListRequisitions(c *gin.Context) {
	actor := actorFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filter := repository.ListFilter{
		HoldingID:      actor.HoldingID,
		BrandID:        c.Query("brand_id"),
		AreaID:         c.Query("area_id"),
		Status:         c.Query("status"),
		ApprovalStatus: c.Query("approval_status"),
		Page:           page,
		PageSize:       pageSize,
	}
	if lvl := c.Query("level"); lvl != "" {
		if n, err := strconv.Atoi(lvl); err == nil {
			filter.Level = n
		}
	}
	if alert := c.Query("alert_unfilled"); alert != "" {
		v := alert == "true"
		filter.AlertUnfilled = &v
	}

	rqs, total, err := h.svc.List(filter)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "list requisitions")
		return
	}
	c.JSON(http.StatusOK, model.Success(model.NewPaginatedResponse(rqs, total, page, pageSize)))
}

// GetRequisition returns a single requisition with its approval chain and
// history.
func (h *RequisitionHandler) GetRequisition(c *gin.Context) {
	rq, err := h.svc.Get(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(rq))
}

// ListPendingApprovals returns requisitions awaiting the caller's decision.
func (h *RequisitionHandler) ListPendingApprovals(c *gin.Context) {
	rqs, err := h.svc.ListPendingFor(actorFromContext(c))
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "list pending approvals")
		return
	}
	if rqs == nil {
		rqs = []model.Requisition{}
	}
	c.JSON(http.StatusOK, model.Success(rqs))
}

// ApproveRequisition records an approval at the current level.
func (h *RequisitionHandler) ApproveRequisition(c *gin.Context) {
	var body struct {
		Comment string `json:"comment"`
	}
	_ = c.ShouldBindJSON(&body)

	rq, err := h.svc.Approve(c.Param("id"), actorFromContext(c), body.Comment)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(rq))
}

// RejectRequisition terminates the approval flow with a mandatory reason.
func (h *RequisitionHandler) RejectRequisition(c *gin.Context) {
	var req model.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "a rejection reason is required"))
		return
	}

	rq, err := h.svc.Reject(c.Param("id"), actorFromContext(c), req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(rq))
}

// BulkApprove approves a batch; individual failures never abort the rest.
func (h *RequisitionHandler) BulkApprove(c *gin.Context) {
	var req model.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}

	result := h.svc.BulkApprove(req.IDs, actorFromContext(c), req.Reason)
	c.JSON(http.StatusOK, model.Success(result))
}

// BulkReject rejects a batch with a shared reason.
func (h *RequisitionHandler) BulkReject(c *gin.Context) {
	var req model.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}
	if req.Reason == "" {
		c.JSON(http.StatusBadRequest, model.Error(400, "a rejection reason is required"))
		return
	}

	result := h.svc.BulkReject(req.IDs, actorFromContext(c), req.Reason)
	c.JSON(http.StatusOK, model.Success(result))
}

// StartRecruitment opens recruiting on an approved requisition.
func (h *RequisitionHandler) StartRecruitment(c *gin.Context) {
	rq, err := h.svc.StartRecruitment(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(rq))
}

// CloseRequisition ends recruiting as closed or filled.
func (h *RequisitionHandler) CloseRequisition(c *gin.Context) {
	var req model.CloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "outcome must be closed or filled"))
		return
	}

	rq, err := h.svc.Close(c.Param("id"), req.Outcome)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(rq))
}

// CancelRequisition terminates the requisition from any non-terminal
// state.
func (h *RequisitionHandler) CancelRequisition(c *gin.Context) {
	var req model.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "a cancellation reason is required"))
		return
	}

	rq, err := h.svc.Cancel(c.Param("id"), actorFromContext(c), req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(rq))
}

// RequestDeletion flags the requisition for removal pending admin
// sign-off.
func (h *RequisitionHandler) RequestDeletion(c *gin.Context) {
	var req model.DeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "a deletion reason is required"))
		return
	}

	rq, err := h.svc.RequestDeletion(c.Param("id"), actorFromContext(c), req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(rq))
}

// ResolveDeletion approves or denies a pending deletion request.
func (h *RequisitionHandler) ResolveDeletion(c *gin.Context) {
	var req model.ResolveDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}

	if err := h.svc.ResolveDeletion(c.Param("id"), actorFromContext(c), req.Approve); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(gin.H{"approved": req.Approve}))
}

// DeleteRequisition removes the requisition outright (admin roles only).
func (h *RequisitionHandler) DeleteRequisition(c *gin.Context) {
	var req model.DeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "a deletion reason is required"))
		return
	}

	if err := h.svc.DeleteDirectly(c.Param("id"), actorFromContext(c), req.Reason); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(nil))
}
