package approvalconfig

import (
	"path"
	"testing"

	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
)

func level(n int, name string) model.ApprovalLevelInput {
	return model.ApprovalLevelInput{Level: n, Name: name, AuthorizedRoles: []string{model.RoleStoreManager}}
}

// fakeConfigStore keys configs by scope the way the repository's
// holding+brand unique index does.
type fakeConfigStore struct {
	configs map[string]*model.ApprovalConfig
}

func scopeKey(holdingID string, brandID *string) string {
	if brandID != nil && *brandID != "" {
		return holdingID + "/" + *brandID
	}
	return holdingID + "/"
}

func (f *fakeConfigStore) FindByScope(holdingID string, brandID *string) (*model.ApprovalConfig, error) {
	if cfg, ok := f.configs[scopeKey(holdingID, brandID)]; ok {
		return cfg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConfigStore) ListByHolding(holdingID string) ([]model.ApprovalConfig, error) {
	var out []model.ApprovalConfig
	for _, cfg := range f.configs {
		if cfg.HoldingID == holdingID {
			out = append(out, *cfg)
		}
	}
	return out, nil
}

func (f *fakeConfigStore) Save(cfg *model.ApprovalConfig) error {
	f.configs[scopeKey(cfg.HoldingID, cfg.BrandID)] = cfg
	return nil
}

func (f *fakeConfigStore) Delete(id string) error {
	for key, cfg := range f.configs {
		if cfg.ID == id {
			delete(f.configs, key)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func strPtr(s string) *string { return &s }

func ladder(names ...string) []model.ApprovalLevel {
	out := make([]model.ApprovalLevel, len(names))
	for i, name := range names {
		out[i] = model.ApprovalLevel{
			Level:           i + 1,
			Name:            name,
			AuthorizedRoles: model.StringArray{model.RoleStoreManager},
		}
	}
	return out
}

func TestGetLevelsForScoping(t *testing.T) {
	store := &fakeConfigStore{configs: map[string]*model.ApprovalConfig{}}
	store.configs["h-1/"] = &model.ApprovalConfig{
		ID: "cfg-holding", HoldingID: "h-1",
		Levels: ladder("Store", "Holding"),
	}
	store.configs["h-1/b-1"] = &model.ApprovalConfig{
		ID: "cfg-brand", HoldingID: "h-1", BrandID: strPtr("b-1"),
		Levels: ladder("Brand review"),
	}
	svc := NewService(store)

	t.Run("brand config wins over holding wide", func(t *testing.T) {
		levels, err := svc.GetLevelsFor("h-1", strPtr("b-1"))
		if err != nil {
			t.Fatalf("GetLevelsFor() error: %v", err)
		}
		if len(levels) != 1 || levels[0].Name != "Brand review" {
			t.Errorf("levels = %+v, expected the brand ladder", levels)
		}
	})

	t.Run("unknown brand falls back to holding wide", func(t *testing.T) {
		levels, err := svc.GetLevelsFor("h-1", strPtr("b-other"))
		if err != nil {
			t.Fatalf("GetLevelsFor() error: %v", err)
		}
		if len(levels) != 2 || levels[0].Name != "Store" {
			t.Errorf("levels = %+v, expected the holding ladder", levels)
		}
	})

	t.Run("no brand reads holding wide", func(t *testing.T) {
		levels, err := svc.GetLevelsFor("h-1", nil)
		if err != nil {
			t.Fatalf("GetLevelsFor() error: %v", err)
		}
		if len(levels) != 2 {
			t.Errorf("len(levels) = %d, expected 2", len(levels))
		}
	})

	t.Run("unconfigured holding yields nothing", func(t *testing.T) {
		levels, err := svc.GetLevelsFor("h-ghost", strPtr("b-1"))
		if err != nil {
			t.Fatalf("GetLevelsFor() error: %v", err)
		}
		if levels != nil {
			t.Errorf("levels = %+v, expected nil", levels)
		}
	})
}

func TestValidateApprover(t *testing.T) {
	store := &fakeConfigStore{configs: map[string]*model.ApprovalConfig{
		"h-1/": {
			ID: "cfg-1", HoldingID: "h-1",
			Levels: []model.ApprovalLevel{
				{Level: 1, Name: "Store", AuthorizedRoles: model.StringArray{model.RoleStoreManager}},
				{Level: 2, Name: "Sign-off",
					AuthorizedRoles:  model.StringArray{model.RoleAreaManager, model.RoleHoldingAdmin},
					IsMultipleChoice: true},
			},
		},
	}}
	svc := NewService(store)

	tests := []struct {
		name  string
		level int
		role  string
		want  bool
	}{
		{"designated role at level 1", 1, model.RoleStoreManager, true},
		{"wrong role at level 1", 1, model.RoleRecruiter, false},
		{"first listed role at level 2", 2, model.RoleAreaManager, true},
		{"second listed role at level 2", 2, model.RoleHoldingAdmin, true},
		{"unconfigured level", 3, model.RoleHoldingAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ValidateApprover("h-1", nil, tt.level, tt.role)
			if err != nil {
				t.Fatalf("ValidateApprover() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ValidateApprover(level=%d, role=%s) = %v, expected %v",
					tt.level, tt.role, got, tt.want)
			}
		})
	}
}

func TestValidateLevels(t *testing.T) {
	multi := func(n int, name string, roles ...string) model.ApprovalLevelInput {
		return model.ApprovalLevelInput{Level: n, Name: name, AuthorizedRoles: roles, IsMultipleChoice: true}
	}

	tests := []struct {
		name    string
		levels  []model.ApprovalLevelInput
		wantErr bool
	}{
		{"empty config", nil, false},
		{"single level", []model.ApprovalLevelInput{level(1, "Store")}, false},
		{"contiguous ladder", []model.ApprovalLevelInput{level(2, "Area"), level(1, "Store"), level(3, "Holding")}, false},
		{"gap in levels", []model.ApprovalLevelInput{level(1, "Store"), level(3, "Holding")}, true},
		{"starts above 1", []model.ApprovalLevelInput{level(2, "Area"), level(3, "Holding")}, true},
		{"duplicate level", []model.ApprovalLevelInput{level(1, "Store"), level(1, "Also store")}, true},
		{"multiple choice with several roles",
			[]model.ApprovalLevelInput{multi(1, "Sign-off", model.RoleAreaManager, model.RoleHoldingAdmin)}, false},
		{"single approver with several roles",
			[]model.ApprovalLevelInput{{Level: 1, Name: "Store",
				AuthorizedRoles: []string{model.RoleStoreManager, model.RoleHoldingAdmin}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLevels(tt.levels)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateLevels() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	brand := "b-1"
	empty := ""

	tests := []struct {
		name    string
		brandID *string
		want    string
	}{
		{"holding wide", nil, "liah:approval_levels:h-1:_"},
		{"empty brand falls back", &empty, "liah:approval_levels:h-1:_"},
		{"brand scoped", &brand, "liah:approval_levels:h-1:b-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheKey("h-1", tt.brandID); got != tt.want {
				t.Errorf("cacheKey() = %q, expected %q", got, tt.want)
			}
		})
	}
}

// Writes drop every cached ladder of the holding, so the invalidation
// pattern must cover both the holding-wide and the brand-scoped keys.
func TestInvalidationPatternCoversAllScopes(t *testing.T) {
	brand := "b-1"
	pattern := invalidationPattern("h-1")

	for _, key := range []string{cacheKey("h-1", nil), cacheKey("h-1", &brand)} {
		ok, err := path.Match(pattern, key)
		if err != nil {
			t.Fatalf("path.Match(%q, %q) error: %v", pattern, key, err)
		}
		if !ok {
			t.Errorf("pattern %q does not match key %q", pattern, key)
		}
	}

	foreign := cacheKey("h-2", nil)
	if ok, _ := path.Match(pattern, foreign); ok {
		t.Errorf("pattern %q must not match another holding's key %q", pattern, foreign)
	}
}
