package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veritlyapp-cell/liah-backend/internal/api/router"
	"github.com/veritlyapp-cell/liah-backend/pkg/config"
	"github.com/veritlyapp-cell/liah-backend/pkg/database"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
	pkgredis "github.com/veritlyapp-cell/liah-backend/pkg/redis"
)

// StartServer runs the HTTP server and background workers until SIGINT or
// SIGTERM, then shuts down gracefully.
func StartServer(cfg *config.Config, handlers *Handlers, services *Services) {
	r := router.Setup(
		handlers.Auth,
		handlers.Requisition,
		handlers.ApprovalConfig,
		handlers.WorkflowTemplate,
		handlers.Organization,
		handlers.User,
		handlers.Events,
		services.Auth,
		cfg.Server.Mode,
	)

	// Staleness sweep runs for the lifetime of the process.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go services.Sweeper.Run(sweepCtx)

	addr := fmt.Sprintf(":%d", cfg.Server.APIPort)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logger.Infof("HTTP server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Infof("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("HTTP server shutdown error: %v", err)
	}

	stopSweep()

	pkgredis.Close()
	database.Close()
	logger.Sync()

	logger.Infof("Shutdown complete")
}
