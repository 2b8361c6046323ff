package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Requisition lifecycle status
const (
	RequisitionStatusDraft     = "draft"
	RequisitionStatusActive    = "active" // recruiting open
	RequisitionStatusClosed    = "closed"
	RequisitionStatusFilled    = "filled"
	RequisitionStatusCancelled = "cancelled"
)

// Approval progress, orthogonal to lifecycle status
const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

// Requisition category
const (
	CategoryOperational = "operational"
	CategoryManagerial  = "managerial"
)

// Approval chain variants
const (
	ChainTypeRoleLevels   = "role_levels"   // configured role-based ladder
	ChainTypeDynamicSteps = "dynamic_steps" // identity-based resolved steps
)

// Approval decisions recorded in the history
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// Requisition (RQ) is a request to fill one or more positions at a store.
// Approval progress and the record list are owned exclusively by the
// requisition service; nothing else writes them.
type Requisition struct {
	ID           string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PositionName string          `json:"positionName" gorm:"type:varchar(255);not null"`
	Category     string          `json:"category" gorm:"type:varchar(20);not null;index"` // operational, managerial
	Quantity     int             `json:"quantity" gorm:"type:int;default:1"`
	SalaryOffer  decimal.Decimal `json:"salaryOffer" gorm:"type:decimal(12,2)"`

	HoldingID  string  `json:"holdingId" gorm:"type:varchar(36);index;not null"`
	BrandID    string  `json:"brandId" gorm:"type:varchar(36);index"`
	StoreID    string  `json:"storeId" gorm:"type:varchar(36);index"`
	AreaID     *string `json:"areaId,omitempty" gorm:"type:varchar(36);index"`
	GerenciaID *string `json:"gerenciaId,omitempty" gorm:"type:varchar(36);index"`

	Status               string `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	ApprovalStatus       string `json:"approvalStatus" gorm:"type:varchar(20);default:'pending';index"`
	CurrentApprovalLevel int    `json:"currentApprovalLevel" gorm:"type:int;default:1"`
	ChainType            string `json:"chainType" gorm:"type:varchar(20);default:'role_levels'"`

	CreatedByID    string `json:"createdById" gorm:"type:varchar(36);index;not null"`
	CreatedByName  string `json:"createdByName" gorm:"type:varchar(100)"`
	CreatedByEmail string `json:"createdByEmail" gorm:"type:varchar(100)"`
	Description    string `json:"description" gorm:"type:text"`
	RejectReason   string `json:"rejectReason" gorm:"type:text"`
	CancelReason   string `json:"cancelReason" gorm:"type:text"`

	// Deletion request sub-flow
	DeletionRequested   bool   `json:"deletionRequested" gorm:"type:boolean;default:false;index"`
	DeletionRequestedBy string `json:"deletionRequestedBy" gorm:"type:varchar(36)"`
	DeletionReason      string `json:"deletionReason" gorm:"type:text"`

	// AlertUnfilled is a read-only dashboard signal set by the staleness
	// sweep once the requisition stays unfilled past the threshold.
	AlertUnfilled bool `json:"alertUnfilled" gorm:"type:boolean;default:false;index"`

	ApprovedAt  *time.Time `json:"approvedAt,omitempty" gorm:"type:timestamp"`
	ActivatedAt *time.Time `json:"activatedAt,omitempty" gorm:"type:timestamp"`
	ClosedAt    *time.Time `json:"closedAt,omitempty" gorm:"type:timestamp"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`

	Records   []ApprovalRecord      `json:"records,omitempty" gorm:"foreignKey:RequisitionID"`
	Approvers []RequisitionApprover `json:"approvers,omitempty" gorm:"foreignKey:RequisitionID"`
}

func (Requisition) TableName() string {
	return "requisitions"
}

// IsTerminal reports whether no further approval action may touch the
// requisition: a rejected or cancelled requisition never accepts another
// approval record.
func (r *Requisition) IsTerminal() bool {
	return r.ApprovalStatus == ApprovalStatusRejected ||
		r.Status == RequisitionStatusCancelled ||
		r.Status == RequisitionStatusClosed ||
		r.Status == RequisitionStatusFilled
}

// ApprovalRecord is one append-only entry in a requisition's approval
// history.
type ApprovalRecord struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	RequisitionID string    `json:"requisitionId" gorm:"type:varchar(36);index;not null"`
	Level         int       `json:"level" gorm:"type:int;not null"`
	ApproverID    string    `json:"approverId" gorm:"type:varchar(36);not null"`
	ApproverName  string    `json:"approverName" gorm:"type:varchar(100)"`
	ApproverEmail string    `json:"approverEmail" gorm:"type:varchar(100)"`
	ApproverRole  string    `json:"approverRole" gorm:"type:varchar(30)"`
	Decision      string    `json:"decision" gorm:"type:varchar(20);not null"` // approved, rejected
	Comment       string    `json:"comment" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (ApprovalRecord) TableName() string {
	return "approval_records"
}

// CreateRequisitionRequest is the payload for opening a new RQ.
type CreateRequisitionRequest struct {
	PositionName string          `json:"positionName" binding:"required"`
	Category     string          `json:"category" binding:"required,oneof=operational managerial"`
	Quantity     int             `json:"quantity"`
	SalaryOffer  decimal.Decimal `json:"salaryOffer"`
	BrandID      string          `json:"brandId"`
	StoreID      string          `json:"storeId"`
	AreaID       *string         `json:"areaId"`
	GerenciaID   *string         `json:"gerenciaId"`
	Description  string          `json:"description"`
	// TemplateID selects an identity-based workflow template. Empty means
	// the holding's role-level config drives the chain.
	TemplateID string `json:"templateId"`
	// ManualApproverID optionally prepends a direct-superior approval step
	// (dynamic chains only).
	ManualApproverID string `json:"manualApproverId"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CloseRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=closed filled"`
}

type BulkRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1"`
	Reason string   `json:"reason"`
}

type DeletionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ResolveDeletionRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment"`
}
