package requisition

import (
	"testing"

	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
)

type fakeUserLookup struct {
	users map[string]*model.User
	lead  *model.User
}

func (f *fakeUserLookup) FindByID(id string) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserLookup) FindRecruitmentLead(holdingID string) (*model.User, error) {
	if f.lead != nil {
		return f.lead, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeOrgLookup struct {
	areas     map[string]*model.Area
	gerencias map[string]*model.Gerencia
}

func (f *fakeOrgLookup) FindAreaByID(id string) (*model.Area, error) {
	if a, ok := f.areas[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrgLookup) FindGerenciaByID(id string) (*model.Gerencia, error) {
	if g, ok := f.gerencias[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func activeUser(id, email, name string) *model.User {
	return &model.User{ID: id, Email: email, FullName: name, Status: model.UserStatusActive}
}

func strPtr(s string) *string { return &s }

func testResolver() (*Resolver, *fakeUserLookup, *fakeOrgLookup) {
	users := &fakeUserLookup{users: map[string]*model.User{
		"creator": activeUser("creator", "creator@acme.test", "Creator"),
		"am":      activeUser("am", "am@acme.test", "Area Manager"),
		"gm":      activeUser("gm", "gm@acme.test", "Gerencia Manager"),
		"vip":     activeUser("vip", "vip@acme.test", "VIP"),
	}}
	users.lead = activeUser("lead", "lead@acme.test", "Lead")
	orgs := &fakeOrgLookup{
		areas:     map[string]*model.Area{"area-1": {ID: "area-1", ManagerID: strPtr("am")}},
		gerencias: map[string]*model.Gerencia{"ger-1": {ID: "ger-1", ManagerID: strPtr("gm")}},
	}
	return NewResolver(users, orgs), users, orgs
}

func resolveCtx() ResolveContext {
	return ResolveContext{
		HoldingID:  "h-1",
		AreaID:     strPtr("area-1"),
		GerenciaID: strPtr("ger-1"),
		CreatorID:  "creator",
	}
}

func TestResolveAllApproverTypes(t *testing.T) {
	r, _, _ := testResolver()

	steps := []model.WorkflowStep{
		{StepOrder: 1, StepName: "Hiring manager", ApproverType: model.ApproverTypeHiringManager},
		{StepOrder: 2, StepName: "Area manager", ApproverType: model.ApproverTypeAreaManager},
		{StepOrder: 3, StepName: "Gerencia manager", ApproverType: model.ApproverTypeGerenciaManager},
		{StepOrder: 4, StepName: "Recruitment lead", ApproverType: model.ApproverTypeRecruitmentLead},
		{StepOrder: 5, StepName: "Finance", ApproverType: model.ApproverTypeSpecificUser, SpecificUserID: strPtr("vip")},
	}

	out, err := r.Resolve(steps, resolveCtx(), "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("Resolve() returned %d entries, expected 5", len(out))
	}

	wantIDs := []string{"creator", "am", "gm", "lead", "vip"}
	for i, want := range wantIDs {
		if out[i].UserID != want {
			t.Errorf("entry %d: UserID = %q, expected %q", i, out[i].UserID, want)
		}
		if out[i].Skipped {
			t.Errorf("entry %d: unexpectedly skipped (%s)", i, out[i].SkipReason)
		}
		if out[i].StepOrder != i+1 {
			t.Errorf("entry %d: StepOrder = %d, expected %d", i, out[i].StepOrder, i+1)
		}
	}
}

func TestResolveStepsSortedByOrder(t *testing.T) {
	r, _, _ := testResolver()

	steps := []model.WorkflowStep{
		{StepOrder: 3, StepName: "Third", ApproverType: model.ApproverTypeGerenciaManager},
		{StepOrder: 1, StepName: "First", ApproverType: model.ApproverTypeHiringManager},
		{StepOrder: 2, StepName: "Second", ApproverType: model.ApproverTypeAreaManager},
	}

	out, err := r.Resolve(steps, resolveCtx(), "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	want := []string{"First", "Second", "Third"}
	for i, name := range want {
		if out[i].StepName != name {
			t.Errorf("entry %d: StepName = %q, expected %q", i, out[i].StepName, name)
		}
	}
}

func TestResolveDuplicateEmailSkipped(t *testing.T) {
	r, _, orgs := testResolver()
	// The creator is also the area manager of record.
	orgs.areas["area-1"].ManagerID = strPtr("creator")

	steps := []model.WorkflowStep{
		{StepOrder: 1, StepName: "Hiring manager", ApproverType: model.ApproverTypeHiringManager},
		{StepOrder: 2, StepName: "Area manager", ApproverType: model.ApproverTypeAreaManager},
	}

	out, err := r.Resolve(steps, resolveCtx(), "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if out[0].Skipped {
		t.Errorf("first occurrence should not be skipped")
	}
	if !out[1].Skipped {
		t.Fatalf("duplicate approver not skipped")
	}
	if out[1].SkipReason == "" {
		t.Errorf("skipped entry has no reason")
	}
	// Skipped entries keep their slot in the renumbered list.
	if out[1].StepOrder != 2 {
		t.Errorf("skipped entry StepOrder = %d, expected 2", out[1].StepOrder)
	}
}

func TestResolveRecruitmentLeadNeverDeduplicated(t *testing.T) {
	r, users, _ := testResolver()
	// The lead is also the creator.
	users.lead = users.users["creator"]

	steps := []model.WorkflowStep{
		{StepOrder: 1, StepName: "Hiring manager", ApproverType: model.ApproverTypeHiringManager},
		{StepOrder: 2, StepName: "Recruitment lead", ApproverType: model.ApproverTypeRecruitmentLead},
	}

	out, err := r.Resolve(steps, resolveCtx(), "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if out[1].Skipped {
		t.Errorf("recruitment lead step must never be deduplicated, got skip: %s", out[1].SkipReason)
	}
}

func TestResolveUnresolvableStepsDegrade(t *testing.T) {
	r, users, orgs := testResolver()
	users.lead = nil
	orgs.areas["area-1"].ManagerID = nil

	tests := []struct {
		name string
		step model.WorkflowStep
		ctx  ResolveContext
	}{
		{"no area on requisition", model.WorkflowStep{StepOrder: 1, StepName: "Area", ApproverType: model.ApproverTypeAreaManager},
			ResolveContext{HoldingID: "h-1", CreatorID: "creator"}},
		{"area without manager", model.WorkflowStep{StepOrder: 1, StepName: "Area", ApproverType: model.ApproverTypeAreaManager},
			resolveCtx()},
		{"holding without lead", model.WorkflowStep{StepOrder: 1, StepName: "Lead", ApproverType: model.ApproverTypeRecruitmentLead},
			resolveCtx()},
		{"specific user missing", model.WorkflowStep{StepOrder: 1, StepName: "VIP", ApproverType: model.ApproverTypeSpecificUser, SpecificUserID: strPtr("ghost")},
			resolveCtx()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Resolve([]model.WorkflowStep{tt.step}, tt.ctx, "")
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if len(out) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(out))
			}
			if !out[0].Skipped {
				t.Errorf("unresolvable step should be skipped")
			}
			if out[0].SkipReason == "" {
				t.Errorf("skipped entry has no reason")
			}
		})
	}
}

func TestResolveInactiveUserTreatedAsMissing(t *testing.T) {
	r, users, _ := testResolver()
	users.users["vip"].Status = model.UserStatusDisabled

	steps := []model.WorkflowStep{
		{StepOrder: 1, StepName: "Finance", ApproverType: model.ApproverTypeSpecificUser, SpecificUserID: strPtr("vip")},
	}

	out, err := r.Resolve(steps, resolveCtx(), "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if !out[0].Skipped {
		t.Errorf("inactive approver should degrade to a skipped step")
	}
}

func TestResolveManualApproverPrepended(t *testing.T) {
	r, _, _ := testResolver()

	steps := []model.WorkflowStep{
		{StepOrder: 1, StepName: "Area manager", ApproverType: model.ApproverTypeAreaManager},
	}

	out, err := r.Resolve(steps, resolveCtx(), "vip")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0].UserID != "vip" || out[0].StepOrder != 1 {
		t.Errorf("manual approver not first: %+v", out[0])
	}
	if out[0].StepName != directSuperiorStepName {
		t.Errorf("manual approver step name = %q", out[0].StepName)
	}
}

func TestResolveManualApproverSeedsDedup(t *testing.T) {
	r, _, _ := testResolver()

	// The manual approver is the same person the area-manager step would
	// resolve to; the later step must be skipped.
	steps := []model.WorkflowStep{
		{StepOrder: 1, StepName: "Area manager", ApproverType: model.ApproverTypeAreaManager},
	}

	out, err := r.Resolve(steps, resolveCtx(), "am")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if out[0].Skipped {
		t.Errorf("manual approver should not be skipped")
	}
	if !out[1].Skipped {
		t.Errorf("area manager duplicate of manual approver should be skipped")
	}
}

func TestResolveUnknownManualApproverDegrades(t *testing.T) {
	r, _, _ := testResolver()

	out, err := r.Resolve(nil, resolveCtx(), "ghost")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(out) != 1 || !out[0].Skipped {
		t.Fatalf("missing manual approver should degrade to a skipped step, got %+v", out)
	}
}
