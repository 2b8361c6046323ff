package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
)

type RequisitionRepository struct {
	db *gorm.DB
}

func NewRequisitionRepository(db *gorm.DB) *RequisitionRepository {
	return &RequisitionRepository{db: db}
}

// CreateWithApprovers persists a requisition together with its resolved
// approval chain in one transaction.
func (r *RequisitionRepository) CreateWithApprovers(rq *model.Requisition, approvers []model.RequisitionApprover) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rq).Error; err != nil {
			return err
		}
		for i := range approvers {
			approvers[i].RequisitionID = rq.ID
		}
		if len(approvers) > 0 {
			if err := tx.Create(&approvers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RequisitionRepository) FindByID(id string) (*model.Requisition, error) {
	var rq model.Requisition
	err := r.db.
		Preload("Records", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Approvers", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Where("id = ?", id).
		First(&rq).Error
	if err != nil {
		return nil, err
	}
	return &rq, nil
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	HoldingID      string
	BrandID        string
	AreaID         string
	Status         string
	ApprovalStatus string
	Level          int
	AlertUnfilled  *bool
	Page           int
	PageSize       int
}

func (r *RequisitionRepository) List(f ListFilter) ([]model.Requisition, int64, error) {
	query := r.db.Model(&model.Requisition{})

	if f.HoldingID != "" {
		query = query.Where("holding_id = ?", f.HoldingID)
	}
	if f.BrandID != "" {
		query = query.Where("brand_id = ?", f.BrandID)
	}
	if f.AreaID != "" {
		query = query.Where("area_id = ?", f.AreaID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", f.ApprovalStatus)
	}
	if f.Level > 0 {
		query = query.Where("current_approval_level = ?", f.Level)
	}
	if f.AlertUnfilled != nil {
		query = query.Where("alert_unfilled = ?", *f.AlertUnfilled)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * f.PageSize).Limit(f.PageSize)
	}

	var rqs []model.Requisition
	err := query.Order("created_at DESC").Find(&rqs).Error
	return rqs, total, err
}

// ListPendingForApprover returns requisitions whose current gate names the
// given identity (dynamic chains) or is open to the given role (role-level
// chains at any level the caller's role can approve is decided by the
// service; here we only pre-filter pending ones for the holding).
func (r *RequisitionRepository) ListPending(holdingID string) ([]model.Requisition, error) {
	var rqs []model.Requisition
	err := r.db.
		Preload("Approvers", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Where("holding_id = ? AND approval_status = ? AND status <> ?",
			holdingID, model.ApprovalStatusPending, model.RequisitionStatusCancelled).
		Order("created_at ASC").
		Find(&rqs).Error
	return rqs, err
}

// AdvanceLevel appends the approval record and moves the level pointer in
// one transaction. The UPDATE is guarded on the level the caller read;
// when a concurrent approval got there first, RowsAffected is zero and
// ErrStaleLevel is returned without writing the record.
func (r *RequisitionRepository) AdvanceLevel(rq *model.Requisition, fromLevel int, updates map[string]interface{}, record *model.ApprovalRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Requisition{}).
			Where("id = ? AND current_approval_level = ? AND approval_status = ?",
				rq.ID, fromLevel, model.ApprovalStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleLevel
		}
		return tx.Create(record).Error
	})
}

// ErrStaleLevel signals that the requisition's approval level moved under
// the caller between read and write.
var ErrStaleLevel = errors.New("requisition approval level changed concurrently")

// Update writes the given columns unconditionally (lifecycle transitions
// that are not level-guarded, e.g. start recruitment, close, cancel).
func (r *RequisitionRepository) Update(id string, updates map[string]interface{}) error {
	return r.db.Model(&model.Requisition{}).Where("id = ?", id).Updates(updates).Error
}

// AppendRecord writes an approval record outside a level advance
// (rejections, deletion decisions).
func (r *RequisitionRepository) AppendRecord(record *model.ApprovalRecord) error {
	return r.db.Create(record).Error
}

// Delete hard-removes the requisition with its chain and history. Only the
// deletion sub-flow calls this.
func (r *RequisitionRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ApprovalRecord{}, "requisition_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.RequisitionApprover{}, "requisition_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Requisition{}, "id = ?", id).Error
	})
}

// MarkUnfilled flags requisitions that have stayed pending or active past
// the cutoff and returns how many rows changed.
func (r *RequisitionRepository) MarkUnfilled(cutoff time.Time) (int64, error) {
	res := r.db.Model(&model.Requisition{}).
		Where("alert_unfilled = ? AND created_at < ?", false, cutoff).
		Where("(approval_status = ? AND status NOT IN ?) OR status = ?",
			model.ApprovalStatusPending,
			[]string{model.RequisitionStatusCancelled, model.RequisitionStatusClosed, model.RequisitionStatusFilled},
			model.RequisitionStatusActive).
		Update("alert_unfilled", true)
	return res.RowsAffected, res.Error
}

// CountUnfilled reports how many requisitions currently carry the flag.
func (r *RequisitionRepository) CountUnfilled() (int64, error) {
	var n int64
	err := r.db.Model(&model.Requisition{}).Where("alert_unfilled = ?", true).Count(&n).Error
	return n, err
}
