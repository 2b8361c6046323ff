package notification

import (
	"time"

	"github.com/veritlyapp-cell/liah-backend/pkg/config"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
)

// InitFromConfig builds the manager from the notification section.
func InitFromConfig(cfg *config.NotificationConfig) *Manager {
	m := NewManager()
	m.SetEnabled(cfg.Enabled)

	if !cfg.Enabled {
		logger.Infof("[Notification] disabled in config")
		return m
	}

	if cfg.WebhookURL != "" {
		m.AddNotifier(NewWebhookNotifier(cfg.WebhookURL, cfg.Secret,
			time.Duration(cfg.TimeoutSeconds)*time.Second))
		logger.Infof("[Notification] webhook notifier enabled")
	} else {
		logger.Warnf("[Notification] enabled but no webhook URL configured")
	}
	return m
}
