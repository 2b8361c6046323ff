package casbin

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v3"
	casbinmodel "github.com/casbin/casbin/v3/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	rediswatcher "github.com/casbin/redis-watcher/v2"

	"github.com/veritlyapp-cell/liah-backend/pkg/database"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
	pkgredis "github.com/veritlyapp-cell/liah-backend/pkg/redis"
)

// RBAC model with role inheritance. Policies are stored in the database
// through the gorm adapter; tenants do not edit the model itself.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var (
	enforcer     *casbin.SyncedCachedEnforcer
	enforcerOnce sync.Once
	enforcerMu   sync.RWMutex
)

// Init sets up the enforcer. Safe to call more than once.
func Init() error {
	var initErr error
	enforcerOnce.Do(func() {
		initErr = initEnforcer()
	})
	return initErr
}

func initEnforcer() error {
	adapter, err := gormadapter.NewAdapterByDB(database.DB)
	if err != nil {
		return fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return fmt.Errorf("failed to load casbin model: %w", err)
	}

	// SyncedCachedEnforcer is thread-safe and caches decisions; cross
	// instance sync still needs a watcher.
	enforcer, err = casbin.NewSyncedCachedEnforcer(m, adapter)
	if err != nil {
		return fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	enforcer.SetExpireTime(60 * 60)

	// With Redis enabled, policy updates on one instance invalidate the
	// others through the watcher. Without Redis a policy change requires
	// ReloadPolicy on each instance.
	if pkgredis.IsEnabled() {
		redisClient := pkgredis.GetClient()
		if redisClient != nil {
			watcher, err := rediswatcher.NewWatcher(redisClient.Options().Addr, rediswatcher.WatcherOptions{})
			if err != nil {
				logger.Warnf("Failed to create casbin redis watcher: %v (policy sync degraded to manual reload)", err)
			} else if err := enforcer.SetWatcher(watcher); err != nil {
				logger.Warnf("Failed to set casbin watcher: %v", err)
			} else {
				watcher.SetUpdateCallback(func(msg string) {
					if err := enforcer.LoadPolicy(); err != nil {
						logger.Errorf("Failed to reload casbin policy: %v", err)
						return
					}
					enforcer.InvalidateCache()
				})
				logger.Infof("Casbin redis watcher configured")
			}
		}
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to load casbin policy: %w", err)
	}

	logger.Infof("Casbin enforcer initialized")
	return nil
}

// GetEnforcer returns the enforcer, initializing lazily if needed.
func GetEnforcer() *casbin.SyncedCachedEnforcer {
	enforcerMu.RLock()
	if enforcer != nil {
		defer enforcerMu.RUnlock()
		return enforcer
	}
	enforcerMu.RUnlock()

	enforcerMu.Lock()
	defer enforcerMu.Unlock()
	if enforcer == nil {
		if err := Init(); err != nil {
			logger.Errorf("Failed to lazily initialize casbin: %v", err)
		}
	}
	return enforcer
}

// Enforce checks whether sub may perform act on obj.
func Enforce(sub, obj, act string) (bool, error) {
	e := GetEnforcer()
	if e == nil {
		return false, fmt.Errorf("casbin enforcer not initialized")
	}
	return e.Enforce(sub, obj, act)
}

// AddPolicy grants act on obj to sub and persists the rule.
func AddPolicy(sub, obj, act string) error {
	e := GetEnforcer()
	if e == nil {
		return fmt.Errorf("casbin enforcer not initialized")
	}
	_, err := e.AddPolicy(sub, obj, act)
	return err
}

// AddRoleForUser links a user id to a role subject.
func AddRoleForUser(userID, role string) error {
	e := GetEnforcer()
	if e == nil {
		return fmt.Errorf("casbin enforcer not initialized")
	}
	_, err := e.AddGroupingPolicy(userID, role)
	return err
}

// defaultPolicies is the baseline grant set applied on first start. Rules
// use keyMatch2 patterns against the path with the /api prefix stripped.
var defaultPolicies = [][3]string{
	// Every operational role works the requisition surface; the service
	// layer enforces who may act at each approval gate.
	{"holding_admin", "/requisitions", "*"},
	{"holding_admin", "/requisitions/*", "*"},
	{"gerente", "/requisitions", "*"},
	{"gerente", "/requisitions/*", "*"},
	{"area_manager", "/requisitions", "*"},
	{"area_manager", "/requisitions/*", "*"},
	{"store_manager", "/requisitions", "*"},
	{"store_manager", "/requisitions/*", "*"},
	{"recruiter", "/requisitions", "*"},
	{"recruiter", "/requisitions/*", "*"},
	{"recruitment_lead", "/requisitions", "*"},
	{"recruitment_lead", "/requisitions/*", "*"},

	// Ladder and template definitions are readable by everyone who files
	// requisitions; writes stay behind the admin route middleware.
	{"holding_admin", "/approval-configs", "*"},
	{"holding_admin", "/approval-configs/*", "*"},
	{"gerente", "/approval-configs", "GET"},
	{"gerente", "/approval-configs/*", "GET"},
	{"area_manager", "/approval-configs", "GET"},
	{"area_manager", "/approval-configs/*", "GET"},
	{"store_manager", "/approval-configs", "GET"},
	{"store_manager", "/approval-configs/*", "GET"},
	{"recruiter", "/approval-configs", "GET"},
	{"recruiter", "/approval-configs/*", "GET"},
	{"recruitment_lead", "/approval-configs", "GET"},
	{"recruitment_lead", "/approval-configs/*", "GET"},

	{"holding_admin", "/workflow-templates", "*"},
	{"holding_admin", "/workflow-templates/*", "*"},
	{"gerente", "/workflow-templates", "GET"},
	{"gerente", "/workflow-templates/*", "GET"},
	{"area_manager", "/workflow-templates", "GET"},
	{"area_manager", "/workflow-templates/*", "GET"},
	{"store_manager", "/workflow-templates", "GET"},
	{"store_manager", "/workflow-templates/*", "GET"},
	{"recruiter", "/workflow-templates", "GET"},
	{"recruiter", "/workflow-templates/*", "GET"},
	{"recruitment_lead", "/workflow-templates", "GET"},
	{"recruitment_lead", "/workflow-templates/*", "GET"},
}

// SeedDefaultPolicies inserts the baseline grants. Existing rules are left
// untouched, so tenant-specific edits survive restarts.
func SeedDefaultPolicies() error {
	e := GetEnforcer()
	if e == nil {
		return fmt.Errorf("casbin enforcer not initialized")
	}
	for _, p := range defaultPolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("seed policy %v: %w", p, err)
		}
	}
	return nil
}

// ReloadPolicy re-reads rules from the database and clears the cache.
func ReloadPolicy() error {
	e := GetEnforcer()
	if e == nil {
		return fmt.Errorf("casbin enforcer not initialized")
	}
	if err := e.LoadPolicy(); err != nil {
		return err
	}
	e.InvalidateCache()
	return nil
}
