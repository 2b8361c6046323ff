package requisition

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/internal/repository"
)

// fakeStore keeps requisitions in memory and applies the same update maps
// the real repository would hand to gorm.
type fakeStore struct {
	m       map[string]*model.Requisition
	records []model.ApprovalRecord
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{m: make(map[string]*model.Requisition)}
}

func (f *fakeStore) CreateWithApprovers(rq *model.Requisition, approvers []model.RequisitionApprover) error {
	cp := *rq
	cp.Approvers = approvers
	f.m[rq.ID] = &cp
	return nil
}

func (f *fakeStore) FindByID(id string) (*model.Requisition, error) {
	rq, ok := f.m[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rq
	return &cp, nil
}

func (f *fakeStore) List(filter repository.ListFilter) ([]model.Requisition, int64, error) {
	var out []model.Requisition
	for _, rq := range f.m {
		out = append(out, *rq)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) ListPending(holdingID string) ([]model.Requisition, error) {
	var out []model.Requisition
	for _, rq := range f.m {
		if rq.HoldingID == holdingID && rq.ApprovalStatus == model.ApprovalStatusPending && !rq.IsTerminal() {
			out = append(out, *rq)
		}
	}
	return out, nil
}

func (f *fakeStore) AdvanceLevel(rq *model.Requisition, fromLevel int, updates map[string]interface{}, record *model.ApprovalRecord) error {
	stored, ok := f.m[rq.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.CurrentApprovalLevel != fromLevel || stored.ApprovalStatus != model.ApprovalStatusPending {
		return repository.ErrStaleLevel
	}
	f.apply(stored, updates)
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeStore) Update(id string, updates map[string]interface{}) error {
	stored, ok := f.m[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.apply(stored, updates)
	return nil
}

func (f *fakeStore) AppendRecord(record *model.ApprovalRecord) error {
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeStore) Delete(id string) error {
	if _, ok := f.m[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.m, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) apply(rq *model.Requisition, updates map[string]interface{}) {
	for col, v := range updates {
		switch col {
		case "status":
			rq.Status = v.(string)
		case "approval_status":
			rq.ApprovalStatus = v.(string)
		case "current_approval_level":
			rq.CurrentApprovalLevel = v.(int)
		case "reject_reason":
			rq.RejectReason = v.(string)
		case "cancel_reason":
			rq.CancelReason = v.(string)
		case "deletion_requested":
			rq.DeletionRequested = v.(bool)
		case "deletion_requested_by":
			rq.DeletionRequestedBy = v.(string)
		case "deletion_reason":
			rq.DeletionReason = v.(string)
		case "alert_unfilled":
			rq.AlertUnfilled = v.(bool)
		case "approved_at":
			t := v.(time.Time)
			rq.ApprovedAt = &t
		case "activated_at":
			t := v.(time.Time)
			rq.ActivatedAt = &t
		case "closed_at":
			t := v.(time.Time)
			rq.ClosedAt = &t
		default:
			panic(fmt.Sprintf("fakeStore: unexpected update column %q", col))
		}
	}
}

type fakeLevels struct {
	levels []model.ApprovalLevel
	err    error
}

func (f *fakeLevels) GetLevelsFor(holdingID string, brandID *string) ([]model.ApprovalLevel, error) {
	return f.levels, f.err
}

func (f *fakeLevels) ValidateApprover(holdingID string, brandID *string, level int, role string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, lvl := range f.levels {
		if lvl.Level == level {
			return model.AuthorizesRole(lvl.AuthorizedRoles, lvl.IsMultipleChoice, role), nil
		}
	}
	return false, nil
}

type fakeTemplates struct {
	templates map[string]*model.WorkflowTemplate
}

func (f *fakeTemplates) FindTemplateByID(id string) (*model.WorkflowTemplate, error) {
	if tpl, ok := f.templates[id]; ok {
		return tpl, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func twoLevels() []model.ApprovalLevel {
	return []model.ApprovalLevel{
		{Level: 1, Name: "Store review", AuthorizedRoles: model.StringArray{model.RoleStoreManager}},
		{Level: 2, Name: "Holding sign-off", AuthorizedRoles: model.StringArray{model.RoleHoldingAdmin}},
	}
}

func testService(store *fakeStore, levels []model.ApprovalLevel, templates map[string]*model.WorkflowTemplate) *Service {
	users := &fakeUserLookup{users: map[string]*model.User{
		"creator": activeUser("creator", "creator@acme.test", "Creator"),
		"am":      activeUser("am", "am@acme.test", "Area Manager"),
	}}
	orgs := &fakeOrgLookup{
		areas:     map[string]*model.Area{"area-1": {ID: "area-1", ManagerID: strPtr("am")}},
		gerencias: map[string]*model.Gerencia{},
	}
	return NewService(store, &fakeLevels{levels: levels}, &fakeTemplates{templates: templates},
		NewResolver(users, orgs), nil, nil)
}

func creatorActor() Actor {
	return Actor{ID: "creator", Name: "Creator", Email: "creator@acme.test",
		Role: model.RoleRecruiter, HoldingID: "h-1"}
}

func storeManagerActor() Actor {
	return Actor{ID: "sm", Name: "Store Manager", Role: model.RoleStoreManager, HoldingID: "h-1"}
}

func holdingAdminActor() Actor {
	return Actor{ID: "ha", Name: "Holding Admin", Role: model.RoleHoldingAdmin, HoldingID: "h-1"}
}

func mustCreate(t *testing.T, svc *Service, category string) *model.Requisition {
	t.Helper()
	rq, err := svc.Create(model.CreateRequisitionRequest{
		PositionName: "Cashier",
		Category:     category,
	}, creatorActor())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	return rq
}

func TestCreateRoleLevelChain(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)

	rq := mustCreate(t, svc, model.CategoryOperational)

	if rq.Status != model.RequisitionStatusDraft {
		t.Errorf("status = %q, expected draft", rq.Status)
	}
	if rq.ApprovalStatus != model.ApprovalStatusPending {
		t.Errorf("approval status = %q, expected pending", rq.ApprovalStatus)
	}
	if rq.CurrentApprovalLevel != 1 {
		t.Errorf("current level = %d, expected 1", rq.CurrentApprovalLevel)
	}
	if rq.ChainType != model.ChainTypeRoleLevels {
		t.Errorf("chain type = %q, expected role_levels", rq.ChainType)
	}
	if rq.Quantity != 1 {
		t.Errorf("quantity = %d, expected default 1", rq.Quantity)
	}
}

func TestCreateWithoutConfigRejected(t *testing.T) {
	svc := testService(newFakeStore(), nil, nil)

	_, err := svc.Create(model.CreateRequisitionRequest{
		PositionName: "Cashier",
		Category:     model.CategoryOperational,
	}, creatorActor())

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError when the holding has no approval config, got %v", err)
	}
}

func TestCreateFromTemplateResolvesChain(t *testing.T) {
	store := newFakeStore()
	templates := map[string]*model.WorkflowTemplate{
		"tpl-1": {
			ID:        "tpl-1",
			HoldingID: "h-1",
			Steps: []model.WorkflowStep{
				{StepOrder: 1, StepName: "Hiring manager", ApproverType: model.ApproverTypeHiringManager},
				{StepOrder: 2, StepName: "Area manager", ApproverType: model.ApproverTypeAreaManager},
			},
		},
	}
	svc := testService(store, nil, templates)

	rq, err := svc.Create(model.CreateRequisitionRequest{
		PositionName: "Barista",
		Category:     model.CategoryOperational,
		TemplateID:   "tpl-1",
		AreaID:       strPtr("area-1"),
	}, creatorActor())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if rq.ChainType != model.ChainTypeDynamicSteps {
		t.Errorf("chain type = %q, expected dynamic_steps", rq.ChainType)
	}
	if len(rq.Approvers) != 2 {
		t.Fatalf("approvers = %d, expected 2", len(rq.Approvers))
	}
	if rq.Approvers[0].UserID != "creator" || rq.Approvers[1].UserID != "am" {
		t.Errorf("resolved approvers = %q, %q", rq.Approvers[0].UserID, rq.Approvers[1].UserID)
	}
}

func TestCreateAllSkippedChainApprovedOutright(t *testing.T) {
	// Neither step can resolve: no area on the requisition, no recruitment
	// lead configured. The chain has no gates, so the requisition must not
	// sit pending waiting for approvals that can never happen.
	templates := map[string]*model.WorkflowTemplate{
		"tpl-gapped": {
			ID:        "tpl-gapped",
			HoldingID: "h-1",
			Steps: []model.WorkflowStep{
				{StepOrder: 1, StepName: "Area manager", ApproverType: model.ApproverTypeAreaManager},
				{StepOrder: 2, StepName: "Recruitment lead", ApproverType: model.ApproverTypeRecruitmentLead},
			},
		},
	}

	newReq := func(category string) model.CreateRequisitionRequest {
		return model.CreateRequisitionRequest{
			PositionName: "Cashier",
			Category:     category,
			TemplateID:   "tpl-gapped",
		}
	}

	t.Run("operational activates", func(t *testing.T) {
		svc := testService(newFakeStore(), nil, templates)

		rq, err := svc.Create(newReq(model.CategoryOperational), creatorActor())
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		if rq.ApprovalStatus != model.ApprovalStatusApproved {
			t.Errorf("approval status = %q, expected approved", rq.ApprovalStatus)
		}
		if rq.Status != model.RequisitionStatusActive {
			t.Errorf("status = %q, expected active", rq.Status)
		}
		if rq.ApprovedAt == nil {
			t.Errorf("approvedAt not set")
		}

		// An approval attempt now hits the approved guard, not a dead gate.
		_, err = svc.Approve(rq.ID, holdingAdminActor(), "")
		var serr *StateError
		if !errors.As(err, &serr) {
			t.Fatalf("expected StateError approving a gateless requisition, got %v", err)
		}
	})

	t.Run("managerial stays draft until started", func(t *testing.T) {
		svc := testService(newFakeStore(), nil, templates)

		rq, err := svc.Create(newReq(model.CategoryManagerial), creatorActor())
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		if rq.ApprovalStatus != model.ApprovalStatusApproved {
			t.Errorf("approval status = %q, expected approved", rq.ApprovalStatus)
		}
		if rq.Status != model.RequisitionStatusDraft {
			t.Errorf("status = %q, expected draft", rq.Status)
		}

		started, err := svc.StartRecruitment(rq.ID)
		if err != nil {
			t.Fatalf("StartRecruitment() error: %v", err)
		}
		if started.Status != model.RequisitionStatusActive {
			t.Errorf("status after start = %q, expected active", started.Status)
		}
	})
}

func TestCreateFromForeignTemplateDenied(t *testing.T) {
	templates := map[string]*model.WorkflowTemplate{
		"tpl-x": {ID: "tpl-x", HoldingID: "h-other"},
	}
	svc := testService(newFakeStore(), nil, templates)

	_, err := svc.Create(model.CreateRequisitionRequest{
		PositionName: "Barista",
		Category:     model.CategoryOperational,
		TemplateID:   "tpl-x",
	}, creatorActor())

	var aerr *AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AuthorizationError for a template of another holding, got %v", err)
	}
}

func TestApproveAdvancesLevel(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryOperational)

	updated, err := svc.Approve(rq.ID, storeManagerActor(), "looks fine")
	if err != nil {
		t.Fatalf("Approve() error: %v", err)
	}
	if updated.CurrentApprovalLevel != 2 {
		t.Errorf("current level = %d, expected 2", updated.CurrentApprovalLevel)
	}
	if updated.ApprovalStatus != model.ApprovalStatusPending {
		t.Errorf("approval status = %q, expected still pending", updated.ApprovalStatus)
	}
	if len(store.records) != 1 {
		t.Fatalf("records = %d, expected 1", len(store.records))
	}
	rec := store.records[0]
	if rec.Level != 1 || rec.Decision != model.DecisionApproved || rec.Comment != "looks fine" {
		t.Errorf("record = %+v", rec)
	}
}

func TestFinalApproveOperationalActivates(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryOperational)

	if _, err := svc.Approve(rq.ID, storeManagerActor(), ""); err != nil {
		t.Fatalf("Approve() level 1 error: %v", err)
	}
	updated, err := svc.Approve(rq.ID, holdingAdminActor(), "")
	if err != nil {
		t.Fatalf("Approve() level 2 error: %v", err)
	}

	if updated.ApprovalStatus != model.ApprovalStatusApproved {
		t.Errorf("approval status = %q, expected approved", updated.ApprovalStatus)
	}
	if updated.Status != model.RequisitionStatusActive {
		t.Errorf("status = %q, expected operational requisition to activate", updated.Status)
	}
	if updated.ApprovedAt == nil || updated.ActivatedAt == nil {
		t.Errorf("timestamps not set: approvedAt=%v activatedAt=%v", updated.ApprovedAt, updated.ActivatedAt)
	}
}

func TestFinalApproveManagerialStaysDraft(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryManagerial)

	if _, err := svc.Approve(rq.ID, storeManagerActor(), ""); err != nil {
		t.Fatalf("Approve() level 1 error: %v", err)
	}
	updated, err := svc.Approve(rq.ID, holdingAdminActor(), "")
	if err != nil {
		t.Fatalf("Approve() level 2 error: %v", err)
	}

	if updated.ApprovalStatus != model.ApprovalStatusApproved {
		t.Errorf("approval status = %q, expected approved", updated.ApprovalStatus)
	}
	if updated.Status != model.RequisitionStatusDraft {
		t.Errorf("status = %q, managerial requisitions wait for an explicit start", updated.Status)
	}

	started, err := svc.StartRecruitment(rq.ID)
	if err != nil {
		t.Fatalf("StartRecruitment() error: %v", err)
	}
	if started.Status != model.RequisitionStatusActive {
		t.Errorf("status after start = %q, expected active", started.Status)
	}
}

func TestApproveWrongRoleDenied(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryOperational)

	// Holding admin authorizes level 2, not level 1.
	_, err := svc.Approve(rq.ID, holdingAdminActor(), "")
	var aerr *AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
}

func TestApproveStaleLevelConflicts(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryOperational)

	// Another approver advanced the level between read and write; the
	// guarded write must refuse the stale level.
	store.m[rq.ID].CurrentApprovalLevel = 2
	err := store.AdvanceLevel(rq, 1, map[string]interface{}{}, &model.ApprovalRecord{})
	if !errors.Is(err, repository.ErrStaleLevel) {
		t.Fatalf("AdvanceLevel guard = %v, expected ErrStaleLevel", err)
	}
}

func TestApproveTerminalRejected(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryOperational)

	if _, err := svc.Reject(rq.ID, storeManagerActor(), "over headcount"); err != nil {
		t.Fatalf("Reject() error: %v", err)
	}

	_, err := svc.Approve(rq.ID, storeManagerActor(), "")
	var serr *StateError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StateError on a rejected requisition, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryOperational)

	_, err := svc.Reject(rq.ID, storeManagerActor(), "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty reason, got %v", err)
	}
}

func TestRejectTerminatesFlow(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryOperational)

	updated, err := svc.Reject(rq.ID, storeManagerActor(), "position frozen")
	if err != nil {
		t.Fatalf("Reject() error: %v", err)
	}
	if updated.ApprovalStatus != model.ApprovalStatusRejected {
		t.Errorf("approval status = %q, expected rejected", updated.ApprovalStatus)
	}
	if updated.RejectReason != "position frozen" {
		t.Errorf("reject reason = %q", updated.RejectReason)
	}
}

func TestGetUnknownID(t *testing.T) {
	svc := testService(newFakeStore(), twoLevels(), nil)
	if _, err := svc.Get("nope"); err != ErrNotFound {
		t.Errorf("Get() = %v, expected ErrNotFound", err)
	}
}

func TestListPendingForFiltersByGate(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	first := mustCreate(t, svc, model.CategoryOperational)
	second := mustCreate(t, svc, model.CategoryOperational)

	// Advance the second requisition to level 2.
	if _, err := svc.Approve(second.ID, storeManagerActor(), ""); err != nil {
		t.Fatalf("Approve() error: %v", err)
	}

	smPending, err := svc.ListPendingFor(storeManagerActor())
	if err != nil {
		t.Fatalf("ListPendingFor() error: %v", err)
	}
	if len(smPending) != 1 || smPending[0].ID != first.ID {
		t.Errorf("store manager pending = %d items, expected only the level-1 requisition", len(smPending))
	}

	haPending, err := svc.ListPendingFor(holdingAdminActor())
	if err != nil {
		t.Fatalf("ListPendingFor() error: %v", err)
	}
	if len(haPending) != 1 || haPending[0].ID != second.ID {
		t.Errorf("holding admin pending = %d items, expected only the level-2 requisition", len(haPending))
	}
}

func TestStartRecruitmentRequiresApproval(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryManagerial)

	_, err := svc.StartRecruitment(rq.ID)
	var serr *StateError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StateError for pending requisition, got %v", err)
	}
}

func TestCloseOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		outcome string
		wantErr bool
	}{
		{"filled", model.RequisitionStatusFilled, false},
		{"closed", model.RequisitionStatusClosed, false},
		{"cancelled is not a close outcome", model.RequisitionStatusCancelled, true},
		{"arbitrary string", "done", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := testService(store, twoLevels(), nil)
			rq := mustCreate(t, svc, model.CategoryOperational)
			if _, err := svc.Approve(rq.ID, storeManagerActor(), ""); err != nil {
				t.Fatalf("Approve() error: %v", err)
			}
			if _, err := svc.Approve(rq.ID, holdingAdminActor(), ""); err != nil {
				t.Fatalf("Approve() error: %v", err)
			}

			updated, err := svc.Close(rq.ID, tt.outcome)
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Close() error: %v", err)
			}
			if updated.Status != tt.outcome {
				t.Errorf("status = %q, expected %q", updated.Status, tt.outcome)
			}
			if updated.ClosedAt == nil {
				t.Errorf("closedAt not set")
			}
			if updated.AlertUnfilled {
				t.Errorf("closing must clear the unfilled alert")
			}
		})
	}
}

func TestCloseDraftDenied(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryOperational)

	_, err := svc.Close(rq.ID, model.RequisitionStatusClosed)
	var serr *StateError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StateError closing a draft, got %v", err)
	}
}

func TestCancelFromAnyNonTerminalState(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryOperational)

	updated, err := svc.Cancel(rq.ID, creatorActor(), "budget cut")
	if err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if updated.Status != model.RequisitionStatusCancelled {
		t.Errorf("status = %q, expected cancelled", updated.Status)
	}
	if updated.CancelReason != "budget cut" {
		t.Errorf("cancel reason = %q", updated.CancelReason)
	}

	// A second cancel hits the terminal guard.
	_, err = svc.Cancel(rq.ID, creatorActor(), "again")
	var serr *StateError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StateError cancelling twice, got %v", err)
	}
}

func TestDeletionRequestFlow(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryOperational)

	if _, err := svc.RequestDeletion(rq.ID, creatorActor(), "duplicate entry"); err != nil {
		t.Fatalf("RequestDeletion() error: %v", err)
	}

	stored, _ := svc.Get(rq.ID)
	if !stored.DeletionRequested || stored.DeletionRequestedBy != "creator" {
		t.Fatalf("deletion flags not set: %+v", stored)
	}

	// A second request is a conflict.
	_, err := svc.RequestDeletion(rq.ID, creatorActor(), "again")
	var serr *StateError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StateError on duplicate deletion request, got %v", err)
	}

	// Ordinary roles may not resolve the request.
	err = svc.ResolveDeletion(rq.ID, creatorActor(), true)
	var aerr *AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}

	// Denial clears the flags and keeps the requisition.
	if err := svc.ResolveDeletion(rq.ID, holdingAdminActor(), false); err != nil {
		t.Fatalf("ResolveDeletion(deny) error: %v", err)
	}
	stored, _ = svc.Get(rq.ID)
	if stored.DeletionRequested || stored.DeletionRequestedBy != "" || stored.DeletionReason != "" {
		t.Errorf("denial did not clear deletion flags: %+v", stored)
	}

	// Approve a fresh request and the requisition is gone.
	if _, err := svc.RequestDeletion(rq.ID, creatorActor(), "still duplicate"); err != nil {
		t.Fatalf("RequestDeletion() error: %v", err)
	}
	if err := svc.ResolveDeletion(rq.ID, holdingAdminActor(), true); err != nil {
		t.Fatalf("ResolveDeletion(approve) error: %v", err)
	}
	if _, err := svc.Get(rq.ID); err != ErrNotFound {
		t.Errorf("requisition still present after approved deletion: %v", err)
	}
}

func TestDeleteDirectly(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, twoLevels(), nil)
	rq := mustCreate(t, svc, model.CategoryOperational)

	// Reason is mandatory.
	err := svc.DeleteDirectly(rq.ID, holdingAdminActor(), "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty reason, got %v", err)
	}

	// Ordinary roles may not delete outright.
	err = svc.DeleteDirectly(rq.ID, storeManagerActor(), "cleanup")
	var aerr *AuthorizationError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}

	if err := svc.DeleteDirectly(rq.ID, holdingAdminActor(), "cleanup"); err != nil {
		t.Fatalf("DeleteDirectly() error: %v", err)
	}
	if _, err := svc.Get(rq.ID); err != ErrNotFound {
		t.Errorf("requisition still present after direct deletion: %v", err)
	}
}
