package repository

import (
	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
)

// OrganizationRepository covers the organizational directory: holdings,
// brands, stores, areas and gerencias.
type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// --- Holdings ---

func (r *OrganizationRepository) CreateHolding(h *model.Holding) error {
	return r.db.Create(h).Error
}

func (r *OrganizationRepository) FindHoldingByID(id string) (*model.Holding, error) {
	var h model.Holding
	if err := r.db.Where("id = ?", id).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *OrganizationRepository) ListHoldings() ([]model.Holding, error) {
	var holdings []model.Holding
	err := r.db.Order("created_at ASC").Find(&holdings).Error
	return holdings, err
}

// --- Brands ---

func (r *OrganizationRepository) CreateBrand(b *model.Brand) error {
	return r.db.Create(b).Error
}

func (r *OrganizationRepository) FindBrandByID(id string) (*model.Brand, error) {
	var b model.Brand
	if err := r.db.Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *OrganizationRepository) ListBrandsByHolding(holdingID string) ([]model.Brand, error) {
	var brands []model.Brand
	err := r.db.Where("holding_id = ?", holdingID).Order("name ASC").Find(&brands).Error
	return brands, err
}

// --- Stores ---

func (r *OrganizationRepository) CreateStore(s *model.Store) error {
	return r.db.Create(s).Error
}

func (r *OrganizationRepository) FindStoreByID(id string) (*model.Store, error) {
	var s model.Store
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *OrganizationRepository) ListStoresByBrand(brandID string) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.Where("brand_id = ?", brandID).Order("name ASC").Find(&stores).Error
	return stores, err
}

// --- Areas ---

func (r *OrganizationRepository) CreateArea(a *model.Area) error {
	return r.db.Create(a).Error
}

func (r *OrganizationRepository) UpdateArea(a *model.Area) error {
	return r.db.Model(&model.Area{}).
		Where("id = ?", a.ID).
		Omit("created_at").
		Updates(a).Error
}

func (r *OrganizationRepository) FindAreaByID(id string) (*model.Area, error) {
	var a model.Area
	if err := r.db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *OrganizationRepository) ListAreasByHolding(holdingID string) ([]model.Area, error) {
	var areas []model.Area
	err := r.db.Where("holding_id = ?", holdingID).Order("name ASC").Find(&areas).Error
	return areas, err
}

// --- Gerencias ---

func (r *OrganizationRepository) CreateGerencia(g *model.Gerencia) error {
	return r.db.Create(g).Error
}

func (r *OrganizationRepository) UpdateGerencia(g *model.Gerencia) error {
	return r.db.Model(&model.Gerencia{}).
		Where("id = ?", g.ID).
		Omit("created_at").
		Updates(g).Error
}

func (r *OrganizationRepository) FindGerenciaByID(id string) (*model.Gerencia, error) {
	var g model.Gerencia
	if err := r.db.Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *OrganizationRepository) ListGerenciasByHolding(holdingID string) ([]model.Gerencia, error) {
	var gerencias []model.Gerencia
	err := r.db.Where("holding_id = ?", holdingID).Order("name ASC").Find(&gerencias).Error
	return gerencias, err
}
