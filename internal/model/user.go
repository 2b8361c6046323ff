package model

import (
	"time"

	"gorm.io/datatypes"
)

// Platform roles. Role names double as the authorized-role identifiers in
// approval level configuration.
const (
	RoleAdmin           = "admin"            // platform operator
	RoleHoldingAdmin    = "holding_admin"    // tenant administrator
	RoleGerente         = "gerente"          // gerencia (org unit) manager
	RoleAreaManager     = "area_manager"     // area manager
	RoleStoreManager    = "store_manager"    // store supervisor
	RoleRecruiter       = "recruiter"        // recruiter
	RoleRecruitmentLead = "recruitment_lead" // holding-wide recruitment lead
)

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// StringArray stores a JSON string array in a text column.
type StringArray = datatypes.JSONSlice[string]

// ContainsRole reports whether the role list includes the given role.
func ContainsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// AuthorizesRole decides role authorization for one approval level.
// Multiple-choice levels accept any listed role. Single-approver levels
// designate exactly one role, the first configured, and only holders of
// that role may act.
func AuthorizesRole(authorized []string, multipleChoice bool, role string) bool {
	if len(authorized) == 0 {
		return false
	}
	if !multipleChoice {
		return authorized[0] == role
	}
	return ContainsRole(authorized, role)
}

// User is a platform account, always scoped to a holding.
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string     `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"type:varchar(255);not null"`
	Email     string     `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	FullName  string     `json:"fullName" gorm:"type:varchar(100)"`
	Phone     string     `json:"phone" gorm:"type:varchar(30)"`
	Role      string     `json:"role" gorm:"type:varchar(30);default:'recruiter';index"`
	HoldingID string     `json:"holdingId" gorm:"type:varchar(36);index;not null"`
	AreaID    *string    `json:"areaId,omitempty" gorm:"type:varchar(36);index"`
	StoreID   *string    `json:"storeId,omitempty" gorm:"type:varchar(36);index"`
	Status    string     `json:"status" gorm:"type:varchar(20);default:'active';index"`
	LastLogin *time.Time `json:"lastLogin,omitempty" gorm:"type:timestamp"`
	CreatedAt time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

type CreateUserRequest struct {
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required,min=8"`
	Email     string  `json:"email" binding:"required,email"`
	FullName  string  `json:"fullName"`
	Phone     string  `json:"phone"`
	Role      string  `json:"role" binding:"required"`
	HoldingID string  `json:"holdingId" binding:"required"`
	AreaID    *string `json:"areaId"`
	StoreID   *string `json:"storeId"`
}

type UpdateUserRequest struct {
	Email    string  `json:"email"`
	FullName string  `json:"fullName"`
	Phone    string  `json:"phone"`
	Role     string  `json:"role"`
	AreaID   *string `json:"areaId"`
	StoreID  *string `json:"storeId"`
	Status   string  `json:"status"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
