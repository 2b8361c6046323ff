package repository

import (
	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", user.ID).
		Omit("created_at", "username", "password").
		Updates(user).Error
}

func (r *UserRepository) UpdatePassword(id, hashed string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("password", hashed).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindRecruitmentLead is a holding-wide lookup: the oldest active account
// holding the recruitment_lead role. Returns gorm.ErrRecordNotFound when
// the holding has no lead configured.
func (r *UserRepository) FindRecruitmentLead(holdingID string) (*model.User, error) {
	var user model.User
	err := r.db.Where("holding_id = ? AND role = ? AND status = ?",
		holdingID, model.RoleRecruitmentLead, model.UserStatusActive).
		Order("created_at ASC").
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListByHolding(holdingID string, page, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.db.Model(&model.User{}).Where("holding_id = ?", holdingID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}
	err := query.Order("created_at DESC").Find(&users).Error
	return users, total, err
}

func (r *UserRepository) Delete(id string) error {
	return r.db.Delete(&model.User{}, "id = ?", id).Error
}
