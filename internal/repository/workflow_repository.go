package repository

import (
	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
)

type WorkflowRepository struct {
	db *gorm.DB
}

func NewWorkflowRepository(db *gorm.DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

func (r *WorkflowRepository) FindTemplateByID(id string) (*model.WorkflowTemplate, error) {
	var tpl model.WorkflowTemplate
	err := r.db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Where("id = ?", id).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *WorkflowRepository) ListByHolding(holdingID string) ([]model.WorkflowTemplate, error) {
	var tpls []model.WorkflowTemplate
	err := r.db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Where("holding_id = ?", holdingID).
		Order("created_at ASC").
		Find(&tpls).Error
	return tpls, err
}

// Save replaces the template's steps atomically.
func (r *WorkflowRepository) Save(tpl *model.WorkflowTemplate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&model.WorkflowTemplate{
			ID:        tpl.ID,
			HoldingID: tpl.HoldingID,
			Name:      tpl.Name,
			IsActive:  tpl.IsActive,
			CreatedAt: tpl.CreatedAt,
			UpdatedAt: tpl.UpdatedAt,
		}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.WorkflowStep{}, "template_id = ?", tpl.ID).Error; err != nil {
			return err
		}
		for i := range tpl.Steps {
			tpl.Steps[i].ID = 0
			tpl.Steps[i].TemplateID = tpl.ID
		}
		if len(tpl.Steps) > 0 {
			return tx.Create(&tpl.Steps).Error
		}
		return nil
	})
}

func (r *WorkflowRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.WorkflowStep{}, "template_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.WorkflowTemplate{}, "id = ?", id).Error
	})
}
