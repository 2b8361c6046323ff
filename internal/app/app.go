package app

import (
	"github.com/veritlyapp-cell/liah-backend/internal/events"
	"github.com/veritlyapp-cell/liah-backend/internal/notification"
	"github.com/veritlyapp-cell/liah-backend/pkg/config"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
)

// App is the assembled application context.
type App struct {
	Config              *config.Config
	Repos               *Repositories
	Services            *Services
	Handlers            *Handlers
	Hub                 *events.Hub
	NotificationManager *notification.Manager
}

// Initialize boots infrastructure and wires repositories, services and
// handlers together.
func Initialize(cfgPath string) (*App, error) {
	cfg, err := Bootstrap(cfgPath)
	if err != nil {
		return nil, err
	}

	repos := InitializeRepositories()
	logger.Infof("Repositories initialized")

	hub := events.NewHub()
	notificationMgr := notification.InitFromConfig(&cfg.Notification)
	logger.Infof("Notification manager initialized")

	services := InitializeServices(repos, cfg, notificationMgr, hub)
	logger.Infof("Services initialized")

	handlers := InitializeHandlers(repos, services, hub)
	logger.Infof("Handlers initialized")

	return &App{
		Config:              cfg,
		Repos:               repos,
		Services:            services,
		Handlers:            handlers,
		Hub:                 hub,
		NotificationManager: notificationMgr,
	}, nil
}
