package model

import (
	"time"
)

// Holding is the top-level tenant. Brands, stores, areas and gerencias all
// hang off a holding, and approval configuration is scoped by it.
type Holding struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Slug      string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	IsActive  bool      `json:"isActive" gorm:"type:boolean;default:true;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Holding) TableName() string {
	return "holdings"
}

type Brand struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	HoldingID string    `json:"holdingId" gorm:"type:varchar(36);index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	IsActive  bool      `json:"isActive" gorm:"type:boolean;default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Brand) TableName() string {
	return "brands"
}

type Store struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	HoldingID string    `json:"holdingId" gorm:"type:varchar(36);index;not null"`
	BrandID   string    `json:"brandId" gorm:"type:varchar(36);index;not null"`
	AreaID    *string   `json:"areaId,omitempty" gorm:"type:varchar(36);index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Code      string    `json:"code" gorm:"type:varchar(50);index"`
	Address   string    `json:"address" gorm:"type:varchar(500)"`
	IsActive  bool      `json:"isActive" gorm:"type:boolean;default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Store) TableName() string {
	return "stores"
}

// Area groups stores under a manager of record. ManagerID may be unset;
// approver resolution degrades to a skipped step in that case.
type Area struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	HoldingID  string    `json:"holdingId" gorm:"type:varchar(36);index;not null"`
	GerenciaID *string   `json:"gerenciaId,omitempty" gorm:"type:varchar(36);index"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null"`
	ManagerID  *string   `json:"managerId,omitempty" gorm:"type:varchar(36);index"`
	IsActive   bool      `json:"isActive" gorm:"type:boolean;default:true"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Area) TableName() string {
	return "areas"
}

// Gerencia is the higher organizational unit above areas.
type Gerencia struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	HoldingID string    `json:"holdingId" gorm:"type:varchar(36);index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	ManagerID *string   `json:"managerId,omitempty" gorm:"type:varchar(36);index"`
	IsActive  bool      `json:"isActive" gorm:"type:boolean;default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Gerencia) TableName() string {
	return "gerencias"
}
