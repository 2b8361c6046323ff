package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veritlyapp-cell/liah-backend/internal/api/handler"
	"github.com/veritlyapp-cell/liah-backend/internal/api/middleware"
	authsvc "github.com/veritlyapp-cell/liah-backend/internal/service/auth"
)

func Setup(
	authHandler *handler.AuthHandler,
	requisitionHandler *handler.RequisitionHandler,
	approvalConfigHandler *handler.ApprovalConfigHandler,
	workflowTemplateHandler *handler.WorkflowTemplateHandler,
	organizationHandler *handler.OrganizationHandler,
	userHandler *handler.UserHandler,
	eventsHandler *handler.EventsHandler,
	authService *authsvc.AuthService,
	mode string,
) *gin.Engine {
	gin.SetMode(mode)
	r := gin.New()

	r.Use(middleware.RecoveryMiddleware())
	r.Use(gin.Logger())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	{
		authed.GET("/auth/profile", authHandler.Profile)

		// Requisition lifecycle
		rq := authed.Group("/requisitions")
		rq.Use(middleware.PermissionMiddleware())
		{
			rq.POST("", requisitionHandler.CreateRequisition)
			rq.GET("", requisitionHandler.ListRequisitions)
			rq.GET("/pending", requisitionHandler.ListPendingApprovals)
			rq.POST("/bulk-approve", requisitionHandler.BulkApprove)
			rq.POST("/bulk-reject", requisitionHandler.BulkReject)
			rq.GET("/:id", requisitionHandler.GetRequisition)
			rq.POST("/:id/approve", requisitionHandler.ApproveRequisition)
			rq.POST("/:id/reject", requisitionHandler.RejectRequisition)
			rq.POST("/:id/start", requisitionHandler.StartRecruitment)
			rq.POST("/:id/close", requisitionHandler.CloseRequisition)
			rq.POST("/:id/cancel", requisitionHandler.CancelRequisition)
			rq.POST("/:id/deletion-request", requisitionHandler.RequestDeletion)
			rq.POST("/:id/deletion-request/resolve",
				middleware.HoldingAdminMiddleware(), requisitionHandler.ResolveDeletion)
			rq.DELETE("/:id",
				middleware.HoldingAdminMiddleware(), requisitionHandler.DeleteRequisition)
		}

		// Approval ladder configuration
		configs := authed.Group("/approval-configs")
		configs.Use(middleware.PermissionMiddleware())
		{
			configs.GET("", approvalConfigHandler.ListConfigs)
			configs.GET("/effective", approvalConfigHandler.GetEffectiveLevels)
			configs.POST("", middleware.HoldingAdminMiddleware(), approvalConfigHandler.CreateConfig)
			configs.PUT("/:id", middleware.HoldingAdminMiddleware(), approvalConfigHandler.SaveConfig)
			configs.DELETE("/:id", middleware.HoldingAdminMiddleware(), approvalConfigHandler.DeleteConfig)
		}

		// Workflow templates
		templates := authed.Group("/workflow-templates")
		templates.Use(middleware.PermissionMiddleware())
		{
			templates.GET("", workflowTemplateHandler.ListTemplates)
			templates.GET("/:id", workflowTemplateHandler.GetTemplate)
			templates.POST("", middleware.HoldingAdminMiddleware(), workflowTemplateHandler.CreateTemplate)
			templates.PUT("/:id", middleware.HoldingAdminMiddleware(), workflowTemplateHandler.UpdateTemplate)
			templates.DELETE("/:id", middleware.HoldingAdminMiddleware(), workflowTemplateHandler.DeleteTemplate)
		}

		// Organizational directory
		authed.GET("/holdings", organizationHandler.ListHoldings)
		authed.POST("/holdings", middleware.AdminMiddleware(), organizationHandler.CreateHolding)
		authed.GET("/brands", organizationHandler.ListBrands)
		authed.POST("/brands", middleware.HoldingAdminMiddleware(), organizationHandler.CreateBrand)
		authed.GET("/stores", organizationHandler.ListStores)
		authed.POST("/stores", middleware.HoldingAdminMiddleware(), organizationHandler.CreateStore)
		authed.GET("/areas", organizationHandler.ListAreas)
		authed.POST("/areas", middleware.HoldingAdminMiddleware(), organizationHandler.CreateArea)
		authed.PUT("/areas/:id", middleware.HoldingAdminMiddleware(), organizationHandler.UpdateArea)
		authed.GET("/gerencias", organizationHandler.ListGerencias)
		authed.POST("/gerencias", middleware.HoldingAdminMiddleware(), organizationHandler.CreateGerencia)
		authed.PUT("/gerencias/:id", middleware.HoldingAdminMiddleware(), organizationHandler.UpdateGerencia)

		// Accounts
		users := authed.Group("/users")
		users.Use(middleware.HoldingAdminMiddleware())
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.POST("/:id/reset-password", userHandler.ResetPassword)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Live event stream
		authed.GET("/ws/requisitions", eventsHandler.Subscribe)
	}

	return r
}
