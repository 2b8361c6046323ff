package app

import (
	"time"

	"github.com/veritlyapp-cell/liah-backend/internal/events"
	"github.com/veritlyapp-cell/liah-backend/internal/notification"
	"github.com/veritlyapp-cell/liah-backend/internal/service/approvalconfig"
	"github.com/veritlyapp-cell/liah-backend/internal/service/auth"
	"github.com/veritlyapp-cell/liah-backend/internal/service/requisition"
	"github.com/veritlyapp-cell/liah-backend/internal/service/workflow"
	"github.com/veritlyapp-cell/liah-backend/pkg/config"
	"github.com/veritlyapp-cell/liah-backend/pkg/distributed"
	pkgredis "github.com/veritlyapp-cell/liah-backend/pkg/redis"
)

// Services bundles the business layer.
type Services struct {
	Auth           *auth.AuthService
	ApprovalConfig *approvalconfig.Service
	Workflow       *workflow.Service
	Requisition    *requisition.Service
	Sweeper        *requisition.Sweeper
}

func InitializeServices(repos *Repositories, cfg *config.Config, notify *notification.Manager, hub *events.Hub) *Services {
	authSvc := auth.NewAuthService(repos.User, cfg.Security.JWTSecret, cfg.Security.TokenExpiryHours)
	configSvc := approvalconfig.NewService(repos.ApprovalConfig)
	workflowSvc := workflow.NewService(repos.Workflow)

	resolver := requisition.NewResolver(repos.User, repos.Organization)
	requisitionSvc := requisition.NewService(
		repos.Requisition,
		configSvc,
		workflowSvc,
		resolver,
		notify,
		hub,
	)

	sweepLock := distributed.NewLock(pkgredis.GetClient(), "liah:sweep:unfilled", 5*time.Minute)
	sweeper := requisition.NewSweeper(repos.Requisition, cfg.Workflow, sweepLock)

	return &Services{
		Auth:           authSvc,
		ApprovalConfig: configSvc,
		Workflow:       workflowSvc,
		Requisition:    requisitionSvc,
		Sweeper:        sweeper,
	}
}
