package model

import (
	"time"
)

// ApprovalConfig is the role-based approval ladder for a holding. A config
// with a BrandID overrides the holding-wide default for that brand. The
// engine only ever reads these; tenant administrators own them.
type ApprovalConfig struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	HoldingID string    `json:"holdingId" gorm:"type:varchar(36);index:idx_config_scope;not null"`
	BrandID   *string   `json:"brandId,omitempty" gorm:"type:varchar(36);index:idx_config_scope"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	IsActive  bool      `json:"isActive" gorm:"type:boolean;default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Levels []ApprovalLevel `json:"levels" gorm:"foreignKey:ConfigID"`
}

func (ApprovalConfig) TableName() string {
	return "approval_configs"
}

// ApprovalLevel is one rung of the ladder. Level numbers are contiguous
// starting at 1.
type ApprovalLevel struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	ConfigID string `json:"configId" gorm:"type:varchar(36);index;not null"`
	Level    int    `json:"level" gorm:"type:int;not null"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
	// AuthorizedRoles lists the roles allowed to approve at this level.
	AuthorizedRoles StringArray `json:"authorizedRoles" gorm:"type:text;not null"`
	// IsMultipleChoice: any one holder of any authorized role approves.
	// When false the level has single-approver semantics: only the first
	// configured role may act, and Save enforces exactly one role.
	IsMultipleChoice bool      `json:"isMultipleChoice" gorm:"type:boolean;default:true"`
	CreatedAt        time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (ApprovalLevel) TableName() string {
	return "approval_levels"
}

type ApprovalLevelInput struct {
	Level            int      `json:"level" binding:"required,min=1"`
	Name             string   `json:"name" binding:"required"`
	AuthorizedRoles  []string `json:"authorizedRoles" binding:"required,min=1"`
	IsMultipleChoice bool     `json:"isMultipleChoice"`
}

type SaveApprovalConfigRequest struct {
	HoldingID string               `json:"holdingId" binding:"required"`
	BrandID   *string              `json:"brandId"`
	Name      string               `json:"name" binding:"required"`
	Levels    []ApprovalLevelInput `json:"levels" binding:"required,min=1"`
}
