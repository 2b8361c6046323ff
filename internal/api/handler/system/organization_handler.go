package system

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/internal/repository"
)

// OrganizationHandler serves the organizational directory: holdings,
// brands, stores, areas and gerencias.
type OrganizationHandler struct {
	repo *repository.OrganizationRepository
}

func NewOrganizationHandler(repo *repository.OrganizationRepository) *OrganizationHandler {
	return &OrganizationHandler{repo: repo}
}

// holdingScope resolves which holding the caller may operate on. Platform
// admins may target any holding via query or body; everyone else is pinned
// to their own.
func holdingScope(c *gin.Context, requested string) string {
	if c.GetString("role") == model.RoleAdmin && requested != "" {
		return requested
	}
	return c.GetString("holding_id")
}

// --- Holdings ---

func (h *OrganizationHandler) ListHoldings(c *gin.Context) {
	holdings, err := h.repo.ListHoldings()
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "list holdings")
		return
	}
	c.JSON(http.StatusOK, model.Success(holdings))
}

func (h *OrganizationHandler) CreateHolding(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Slug string `json:"slug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "name and slug are required"))
		return
	}

	holding := &model.Holding{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Slug:     req.Slug,
		IsActive: true,
	}
	if err := h.repo.CreateHolding(holding); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "create holding")
		return
	}
	c.JSON(http.StatusOK, model.Success(holding))
}

// --- Brands ---

func (h *OrganizationHandler) ListBrands(c *gin.Context) {
	holdingID := holdingScope(c, c.Query("holding_id"))
	brands, err := h.repo.ListBrandsByHolding(holdingID)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "list brands")
		return
	}
	c.JSON(http.StatusOK, model.Success(brands))
}

func (h *OrganizationHandler) CreateBrand(c *gin.Context) {
	var req struct {
		HoldingID string `json:"holdingId"`
		Name      string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "name is required"))
		return
	}

	brand := &model.Brand{
		ID:        uuid.New().String(),
		HoldingID: holdingScope(c, req.HoldingID),
		Name:      req.Name,
		IsActive:  true,
	}
	if err := h.repo.CreateBrand(brand); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "create brand")
		return
	}
	c.JSON(http.StatusOK, model.Success(brand))
}

// --- Stores ---

func (h *OrganizationHandler) ListStores(c *gin.Context) {
	brandID := c.Query("brand_id")
	if brandID == "" {
		c.JSON(http.StatusBadRequest, model.Error(400, "brand_id is required"))
		return
	}
	stores, err := h.repo.ListStoresByBrand(brandID)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "list stores")
		return
	}
	c.JSON(http.StatusOK, model.Success(stores))
}

func (h *OrganizationHandler) CreateStore(c *gin.Context) {
	var req struct {
		HoldingID string  `json:"holdingId"`
		BrandID   string  `json:"brandId" binding:"required"`
		AreaID    *string `json:"areaId"`
		Name      string  `json:"name" binding:"required"`
		Code      string  `json:"code"`
		Address   string  `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}

	store := &model.Store{
		ID:        uuid.New().String(),
		HoldingID: holdingScope(c, req.HoldingID),
		BrandID:   req.BrandID,
		AreaID:    req.AreaID,
		Name:      req.Name,
		Code:      req.Code,
		Address:   req.Address,
		IsActive:  true,
	}
	if err := h.repo.CreateStore(store); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "create store")
		return
	}
	c.JSON(http.StatusOK, model.Success(store))
}

// --- Areas ---

func (h *OrganizationHandler) ListAreas(c *gin.Context) {
	holdingID := holdingScope(c, c.Query("holding_id"))
	areas, err := h.repo.ListAreasByHolding(holdingID)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "list areas")
		return
	}
	c.JSON(http.StatusOK, model.Success(areas))
}

func (h *OrganizationHandler) CreateArea(c *gin.Context) {
	var req struct {
		HoldingID  string  `json:"holdingId"`
		GerenciaID *string `json:"gerenciaId"`
		Name       string  `json:"name" binding:"required"`
		ManagerID  *string `json:"managerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "name is required"))
		return
	}

	area := &model.Area{
		ID:         uuid.New().String(),
		HoldingID:  holdingScope(c, req.HoldingID),
		GerenciaID: req.GerenciaID,
		Name:       req.Name,
		ManagerID:  req.ManagerID,
		IsActive:   true,
	}
	if err := h.repo.CreateArea(area); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "create area")
		return
	}
	c.JSON(http.StatusOK, model.Success(area))
}

// UpdateArea changes an area's name or manager of record. The manager
// assignment feeds approver resolution for new requisitions only.
func (h *OrganizationHandler) UpdateArea(c *gin.Context) {
	area, err := h.repo.FindAreaByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, model.Error(404, "area not found"))
		return
	}

	var req struct {
		Name      string  `json:"name"`
		ManagerID *string `json:"managerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}

	if req.Name != "" {
		area.Name = req.Name
	}
	area.ManagerID = req.ManagerID

	if err := h.repo.UpdateArea(area); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "update area")
		return
	}
	c.JSON(http.StatusOK, model.Success(area))
}

// --- Gerencias ---

func (h *OrganizationHandler) ListGerencias(c *gin.Context) {
	holdingID := holdingScope(c, c.Query("holding_id"))
	gerencias, err := h.repo.ListGerenciasByHolding(holdingID)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "list gerencias")
		return
	}
	c.JSON(http.StatusOK, model.Success(gerencias))
}

func (h *OrganizationHandler) CreateGerencia(c *gin.Context) {
	var req struct {
		HoldingID string  `json:"holdingId"`
		Name      string  `json:"name" binding:"required"`
		ManagerID *string `json:"managerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "name is required"))
		return
	}

	gerencia := &model.Gerencia{
		ID:        uuid.New().String(),
		HoldingID: holdingScope(c, req.HoldingID),
		Name:      req.Name,
		ManagerID: req.ManagerID,
		IsActive:  true,
	}
	if err := h.repo.CreateGerencia(gerencia); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "create gerencia")
		return
	}
	c.JSON(http.StatusOK, model.Success(gerencia))
}

// UpdateGerencia changes a gerencia's name or manager of record.
func (h *OrganizationHandler) UpdateGerencia(c *gin.Context) {
	gerencia, err := h.repo.FindGerenciaByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, model.Error(404, "gerencia not found"))
		return
	}

	var req struct {
		Name      string  `json:"name"`
		ManagerID *string `json:"managerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, "invalid request: "+err.Error()))
		return
	}

	if req.Name != "" {
		gerencia.Name = req.Name
	}
	gerencia.ManagerID = req.ManagerID

	if err := h.repo.UpdateGerencia(gerencia); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "update gerencia")
		return
	}
	c.JSON(http.StatusOK, model.Success(gerencia))
}
