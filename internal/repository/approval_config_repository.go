package repository

import (
	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
)

type ApprovalConfigRepository struct {
	db *gorm.DB
}

func NewApprovalConfigRepository(db *gorm.DB) *ApprovalConfigRepository {
	return &ApprovalConfigRepository{db: db}
}

// FindByScope returns the active config for the exact scope (holding +
// brand, or holding-wide when brandID is nil). Levels come back ordered.
func (r *ApprovalConfigRepository) FindByScope(holdingID string, brandID *string) (*model.ApprovalConfig, error) {
	query := r.db.Where("holding_id = ? AND is_active = ?", holdingID, true)
	if brandID == nil || *brandID == "" {
		query = query.Where("brand_id IS NULL")
	} else {
		query = query.Where("brand_id = ?", *brandID)
	}

	var cfg model.ApprovalConfig
	err := query.
		Preload("Levels", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *ApprovalConfigRepository) ListByHolding(holdingID string) ([]model.ApprovalConfig, error) {
	var configs []model.ApprovalConfig
	err := r.db.
		Preload("Levels", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		Where("holding_id = ?", holdingID).
		Order("created_at ASC").
		Find(&configs).Error
	return configs, err
}

// Save replaces the config's levels atomically.
func (r *ApprovalConfigRepository) Save(cfg *model.ApprovalConfig) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&model.ApprovalConfig{
			ID:        cfg.ID,
			HoldingID: cfg.HoldingID,
			BrandID:   cfg.BrandID,
			Name:      cfg.Name,
			IsActive:  cfg.IsActive,
			CreatedAt: cfg.CreatedAt,
			UpdatedAt: cfg.UpdatedAt,
		}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ApprovalLevel{}, "config_id = ?", cfg.ID).Error; err != nil {
			return err
		}
		for i := range cfg.Levels {
			cfg.Levels[i].ID = 0
			cfg.Levels[i].ConfigID = cfg.ID
		}
		if len(cfg.Levels) > 0 {
			return tx.Create(&cfg.Levels).Error
		}
		return nil
	})
}

func (r *ApprovalConfigRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ApprovalLevel{}, "config_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ApprovalConfig{}, "id = ?", id).Error
	})
}
