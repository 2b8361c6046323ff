package approvalconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
	pkgredis "github.com/veritlyapp-cell/liah-backend/pkg/redis"
)

const (
	cacheKeyPrefix = "liah:approval_levels:"
	cacheTTL       = 10 * time.Minute
)

// ConfigStore is the persistence surface the service needs. Implemented by
// repository.ApprovalConfigRepository.
type ConfigStore interface {
	FindByScope(holdingID string, brandID *string) (*model.ApprovalConfig, error)
	ListByHolding(holdingID string) ([]model.ApprovalConfig, error)
	Save(cfg *model.ApprovalConfig) error
	Delete(id string) error
}

// Service serves approval ladder reads to the workflow engine and CRUD to
// tenant administrators. Reads go through a redis cache when redis is up;
// writes invalidate it.
type Service struct {
	repo ConfigStore
}

func NewService(repo ConfigStore) *Service {
	return &Service{repo: repo}
}

// GetLevelsFor returns the ordered approval levels governing a requisition
// scope. A brand-specific config wins over the holding-wide one; a missing
// config yields an empty slice, not an error.
func (s *Service) GetLevelsFor(holdingID string, brandID *string) ([]model.ApprovalLevel, error) {
	if levels, ok := s.cacheGet(holdingID, brandID); ok {
		return levels, nil
	}

	cfg, err := s.repo.FindByScope(holdingID, brandID)
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) && brandID != nil && *brandID != "" {
		// Fall back to the holding-wide config.
		cfg, err = s.repo.FindByScope(holdingID, nil)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	s.cacheSet(holdingID, brandID, cfg.Levels)
	return cfg.Levels, nil
}

// ValidateApprover reports whether the role may approve the given level
// within the scope. This is the authorization gate for role-level chains;
// the state machine consults it on every approve and reject.
func (s *Service) ValidateApprover(holdingID string, brandID *string, level int, role string) (bool, error) {
	levels, err := s.GetLevelsFor(holdingID, brandID)
	if err != nil {
		return false, err
	}
	for _, lvl := range levels {
		if lvl.Level == level {
			return model.AuthorizesRole(lvl.AuthorizedRoles, lvl.IsMultipleChoice, role), nil
		}
	}
	return false, nil
}

func (s *Service) ListByHolding(holdingID string) ([]model.ApprovalConfig, error) {
	return s.repo.ListByHolding(holdingID)
}

// Save creates or replaces a config. Level numbers must be contiguous from
// 1 so the engine's level pointer always lands on a configured rung.
func (s *Service) Save(id string, req model.SaveApprovalConfigRequest) (*model.ApprovalConfig, error) {
	if err := validateLevels(req.Levels); err != nil {
		return nil, err
	}

	cfg := &model.ApprovalConfig{
		ID:        id,
		HoldingID: req.HoldingID,
		BrandID:   req.BrandID,
		Name:      req.Name,
		IsActive:  true,
	}
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	for _, in := range req.Levels {
		cfg.Levels = append(cfg.Levels, model.ApprovalLevel{
			Level:            in.Level,
			Name:             in.Name,
			AuthorizedRoles:  in.AuthorizedRoles,
			IsMultipleChoice: in.IsMultipleChoice,
		})
	}

	if err := s.repo.Save(cfg); err != nil {
		return nil, err
	}
	// A brand read that fell back to the holding-wide config caches the
	// result under the brand key, so a save of either scope must drop
	// every key of the holding.
	s.invalidateHolding(req.HoldingID)
	return cfg, nil
}

func (s *Service) Delete(id, holdingID string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateHolding(holdingID)
	return nil
}

func validateLevels(levels []model.ApprovalLevelInput) error {
	seen := make(map[int]bool, len(levels))
	for _, lvl := range levels {
		if seen[lvl.Level] {
			return fmt.Errorf("duplicate level %d", lvl.Level)
		}
		seen[lvl.Level] = true
		if !lvl.IsMultipleChoice && len(lvl.AuthorizedRoles) != 1 {
			return fmt.Errorf("level %d: single-approver levels must name exactly one role", lvl.Level)
		}
	}
	for i := 1; i <= len(levels); i++ {
		if !seen[i] {
			return fmt.Errorf("levels must be contiguous from 1, missing level %d", i)
		}
	}
	return nil
}

// --- cache ---

func cacheKey(holdingID string, brandID *string) string {
	if brandID != nil && *brandID != "" {
		return cacheKeyPrefix + holdingID + ":" + *brandID
	}
	return cacheKeyPrefix + holdingID + ":_"
}

func (s *Service) cacheGet(holdingID string, brandID *string) ([]model.ApprovalLevel, bool) {
	if !pkgredis.IsEnabled() {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := pkgredis.GetClient().Get(ctx, cacheKey(holdingID, brandID)).Bytes()
	if err != nil {
		return nil, false
	}
	var levels []model.ApprovalLevel
	if err := json.Unmarshal(raw, &levels); err != nil {
		return nil, false
	}
	return levels, true
}

func (s *Service) cacheSet(holdingID string, brandID *string, levels []model.ApprovalLevel) {
	if !pkgredis.IsEnabled() {
		return
	}
	raw, err := json.Marshal(levels)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pkgredis.GetClient().Set(ctx, cacheKey(holdingID, brandID), raw, cacheTTL).Err(); err != nil {
		logger.Warnf("Approval level cache write failed: %v", err)
	}
}

// invalidateHolding drops every cached ladder of the holding, brand-keyed
// entries included.
func (s *Service) invalidateHolding(holdingID string) {
	if !pkgredis.IsEnabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	iter := pkgredis.GetClient().Scan(ctx, 0, invalidationPattern(holdingID), 100).Iterator()
	for iter.Next(ctx) {
		pkgredis.GetClient().Del(ctx, iter.Val())
	}
}

// invalidationPattern matches every cacheKey variant of a holding.
func invalidationPattern(holdingID string) string {
	return cacheKeyPrefix + holdingID + ":*"
}
