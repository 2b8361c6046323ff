package app

import (
	"log"

	casbinpkg "github.com/veritlyapp-cell/liah-backend/pkg/casbin"
	"github.com/veritlyapp-cell/liah-backend/pkg/config"
	"github.com/veritlyapp-cell/liah-backend/pkg/database"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
	pkgredis "github.com/veritlyapp-cell/liah-backend/pkg/redis"
)

// Bootstrap initializes infrastructure: config, logger, database, redis
// and casbin, in that order.
func Bootstrap(cfgPath string) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(&cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	logger.Infof("Database initialized")

	// Redis is optional; without it the system runs single-instance with
	// no cross-node cache or policy sync.
	if err := pkgredis.Init(&cfg.Redis); err != nil {
		logger.Warnf("Redis initialization failed: %v", err)
		logger.Info("   Running in database mode (single-server deployment)")
	} else if cfg.Redis.Enabled {
		logger.Infof("Redis initialized, distributed features enabled")
	} else {
		logger.Info("Redis disabled in config, running in database mode")
	}

	// Casbin comes after redis so the watcher can attach.
	if err := casbinpkg.Init(); err != nil {
		logger.Fatalf("Failed to initialize casbin: %v", err)
	}
	if err := casbinpkg.SeedDefaultPolicies(); err != nil {
		logger.Warnf("Failed to seed default casbin policies: %v", err)
	}
	logger.Infof("Casbin permission manager initialized")

	return cfg, nil
}
