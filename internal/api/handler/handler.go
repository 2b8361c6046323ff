// Package handler re-exports all handler types from their feature
// subpackages so the router and app wiring can refer to them uniformly.
package handler

import (
	authHandler "github.com/veritlyapp-cell/liah-backend/internal/api/handler/auth"
	eventsHandler "github.com/veritlyapp-cell/liah-backend/internal/api/handler/events"
	requisitionHandler "github.com/veritlyapp-cell/liah-backend/internal/api/handler/requisition"
	systemHandler "github.com/veritlyapp-cell/liah-backend/internal/api/handler/system"
)

// Auth handlers
type AuthHandler = authHandler.AuthHandler

var NewAuthHandler = authHandler.NewAuthHandler

// Requisition handlers
type RequisitionHandler = requisitionHandler.RequisitionHandler
type ApprovalConfigHandler = requisitionHandler.ApprovalConfigHandler
type WorkflowTemplateHandler = requisitionHandler.WorkflowTemplateHandler

var NewRequisitionHandler = requisitionHandler.NewRequisitionHandler
var NewApprovalConfigHandler = requisitionHandler.NewApprovalConfigHandler
var NewWorkflowTemplateHandler = requisitionHandler.NewWorkflowTemplateHandler

// System handlers
type OrganizationHandler = systemHandler.OrganizationHandler
type UserHandler = systemHandler.UserHandler

var NewOrganizationHandler = systemHandler.NewOrganizationHandler
var NewUserHandler = systemHandler.NewUserHandler

// Event stream handlers
type EventsHandler = eventsHandler.EventsHandler

var NewEventsHandler = eventsHandler.NewEventsHandler
