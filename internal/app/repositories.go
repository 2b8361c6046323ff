package app

import (
	"github.com/veritlyapp-cell/liah-backend/internal/repository"
	"github.com/veritlyapp-cell/liah-backend/pkg/database"
)

// Repositories bundles all data-access objects.
type Repositories struct {
	User           *repository.UserRepository
	Organization   *repository.OrganizationRepository
	Requisition    *repository.RequisitionRepository
	ApprovalConfig *repository.ApprovalConfigRepository
	Workflow       *repository.WorkflowRepository
}

func InitializeRepositories() *Repositories {
	db := database.DB
	return &Repositories{
		User:           repository.NewUserRepository(db),
		Organization:   repository.NewOrganizationRepository(db),
		Requisition:    repository.NewRequisitionRepository(db),
		ApprovalConfig: repository.NewApprovalConfigRepository(db),
		Workflow:       repository.NewWorkflowRepository(db),
	}
}
