package app

import (
	"github.com/veritlyapp-cell/liah-backend/internal/api/handler"
	"github.com/veritlyapp-cell/liah-backend/internal/events"
)

// Handlers bundles the HTTP layer.
type Handlers struct {
	Auth             *handler.AuthHandler
	Requisition      *handler.RequisitionHandler
	ApprovalConfig   *handler.ApprovalConfigHandler
	WorkflowTemplate *handler.WorkflowTemplateHandler
	Organization     *handler.OrganizationHandler
	User             *handler.UserHandler
	Events           *handler.EventsHandler
}

func InitializeHandlers(repos *Repositories, services *Services, hub *events.Hub) *Handlers {
	return &Handlers{
		Auth:             handler.NewAuthHandler(services.Auth),
		Requisition:      handler.NewRequisitionHandler(services.Requisition),
		ApprovalConfig:   handler.NewApprovalConfigHandler(services.ApprovalConfig),
		WorkflowTemplate: handler.NewWorkflowTemplateHandler(services.Workflow),
		Organization:     handler.NewOrganizationHandler(repos.Organization),
		User:             handler.NewUserHandler(services.Auth),
		Events:           handler.NewEventsHandler(hub),
	}
}
