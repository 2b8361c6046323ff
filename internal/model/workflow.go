package model

import (
	"time"
)

// Approver types for identity-based workflow steps.
const (
	ApproverTypeHiringManager   = "hiring_manager"   // the requisition's creator
	ApproverTypeAreaManager     = "area_manager"     // manager of record on the area
	ApproverTypeGerenciaManager = "gerencia_manager" // manager of record on the gerencia
	ApproverTypeRecruitmentLead = "recruitment_lead" // holding-wide lead, never dedup-skipped
	ApproverTypeSpecificUser    = "specific_user"    // explicit identity on the step
)

// WorkflowTemplate is an identity-based approval ladder owned by tenant
// administrators, resolved per requisition into concrete approvers.
type WorkflowTemplate struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	HoldingID string    `json:"holdingId" gorm:"type:varchar(36);index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	IsActive  bool      `json:"isActive" gorm:"type:boolean;default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Steps []WorkflowStep `json:"steps" gorm:"foreignKey:TemplateID"`
}

func (WorkflowTemplate) TableName() string {
	return "workflow_templates"
}

type WorkflowStep struct {
	ID         uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	TemplateID string `json:"templateId" gorm:"type:varchar(36);index;not null"`
	StepOrder  int    `json:"stepOrder" gorm:"type:int;not null"`
	StepName   string `json:"stepName" gorm:"type:varchar(255);not null"`
	// ApproverType decides how the identity is resolved; SpecificUserID is
	// only consulted for specific_user steps.
	ApproverType   string    `json:"approverType" gorm:"type:varchar(30);not null"`
	SpecificUserID *string   `json:"specificUserId,omitempty" gorm:"type:varchar(36)"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (WorkflowStep) TableName() string {
	return "workflow_steps"
}

// RequisitionApprover is a resolved workflow step persisted on a
// requisition. Entries are renumbered 1..N after resolution; skipped
// entries keep their slot so the audit trail stays complete.
type RequisitionApprover struct {
	ID            uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	RequisitionID string `json:"requisitionId" gorm:"type:varchar(36);index;not null"`
	StepOrder     int    `json:"stepOrder" gorm:"type:int;not null"`
	StepName      string `json:"stepName" gorm:"type:varchar(255)"`
	ApproverType  string `json:"approverType" gorm:"type:varchar(30)"`
	UserID        string `json:"userId" gorm:"type:varchar(36);index"`
	Email         string `json:"email" gorm:"type:varchar(100)"`
	FullName      string `json:"fullName" gorm:"type:varchar(100)"`
	Skipped       bool   `json:"skipped" gorm:"type:boolean;default:false"`
	// SkipReason is present iff Skipped is true.
	SkipReason string    `json:"skipReason,omitempty" gorm:"type:varchar(500)"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (RequisitionApprover) TableName() string {
	return "requisition_approvers"
}

type WorkflowStepInput struct {
	StepOrder      int     `json:"stepOrder" binding:"required,min=1"`
	StepName       string  `json:"stepName" binding:"required"`
	ApproverType   string  `json:"approverType" binding:"required,oneof=hiring_manager area_manager gerencia_manager recruitment_lead specific_user"`
	SpecificUserID *string `json:"specificUserId"`
}

type SaveWorkflowTemplateRequest struct {
	HoldingID string              `json:"holdingId" binding:"required"`
	Name      string              `json:"name" binding:"required"`
	Steps     []WorkflowStepInput `json:"steps" binding:"required,min=1"`
}
