package requisition

import (
	"testing"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
)

func TestChainFromApproversSkipsContributeNoGate(t *testing.T) {
	approvers := []model.RequisitionApprover{
		{StepOrder: 1, StepName: "Hiring manager", UserID: "u1"},
		{StepOrder: 2, StepName: "Area manager", Skipped: true, SkipReason: "already approving as step 1 (Hiring manager)"},
		{StepOrder: 3, StepName: "Recruitment lead", UserID: "u3"},
	}

	chain := ChainFromApprovers(approvers)
	if chain.Type != model.ChainTypeDynamicSteps {
		t.Errorf("chain type = %q, expected %q", chain.Type, model.ChainTypeDynamicSteps)
	}
	if chain.Len() != 2 {
		t.Fatalf("chain.Len() = %d, expected 2", chain.Len())
	}

	// Gate levels renumber contiguously over the non-skipped steps.
	gate, ok := chain.Gate(2)
	if !ok {
		t.Fatal("gate 2 missing")
	}
	if gate.ApproverID != "u3" || gate.Name != "Recruitment lead" {
		t.Errorf("gate 2 = %+v, expected the recruitment lead step", gate)
	}
	if _, ok := chain.Gate(3); ok {
		t.Errorf("gate 3 should not exist")
	}
	if _, ok := chain.Gate(0); ok {
		t.Errorf("gate 0 should not exist")
	}
}

func TestChainFromLevels(t *testing.T) {
	levels := []model.ApprovalLevel{
		{Level: 1, Name: "Store review", AuthorizedRoles: model.StringArray{model.RoleStoreManager}},
		{Level: 2, Name: "Holding sign-off", AuthorizedRoles: model.StringArray{model.RoleHoldingAdmin}, IsMultipleChoice: true},
	}

	chain := ChainFromLevels(levels)
	if chain.Type != model.ChainTypeRoleLevels {
		t.Errorf("chain type = %q, expected %q", chain.Type, model.ChainTypeRoleLevels)
	}
	if chain.Len() != 2 {
		t.Fatalf("chain.Len() = %d, expected 2", chain.Len())
	}
	gate, _ := chain.Gate(2)
	if !gate.IsMultipleChoice {
		t.Errorf("gate 2 should carry IsMultipleChoice")
	}
}

func TestGateAuthorizes(t *testing.T) {
	tests := []struct {
		name  string
		gate  Gate
		actor Actor
		want  bool
	}{
		{"multiple choice gate accepts any listed role",
			Gate{AuthorizedRoles: []string{model.RoleStoreManager, model.RoleHoldingAdmin}, IsMultipleChoice: true},
			Actor{ID: "u1", Role: model.RoleHoldingAdmin}, true},
		{"multiple choice gate wrong role",
			Gate{AuthorizedRoles: []string{model.RoleStoreManager}, IsMultipleChoice: true},
			Actor{ID: "u1", Role: model.RoleRecruiter}, false},
		{"single approver gate accepts the designated role",
			Gate{AuthorizedRoles: []string{model.RoleStoreManager}},
			Actor{ID: "u1", Role: model.RoleStoreManager}, true},
		{"single approver gate rejects later listed roles",
			Gate{AuthorizedRoles: []string{model.RoleStoreManager, model.RoleHoldingAdmin}},
			Actor{ID: "u1", Role: model.RoleHoldingAdmin}, false},
		{"identity gate matching user",
			Gate{ApproverID: "u1"},
			Actor{ID: "u1", Role: model.RoleRecruiter}, true},
		{"identity gate wrong user",
			Gate{ApproverID: "u1"},
			Actor{ID: "u2", Role: model.RoleAdmin}, false},
		{"empty gate authorizes nobody",
			Gate{},
			Actor{ID: "u1", Role: model.RoleAdmin}, false},
		{"role gate ignores approver id",
			Gate{AuthorizedRoles: []string{model.RoleStoreManager}, ApproverID: "u1"},
			Actor{ID: "u1", Role: model.RoleRecruiter}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gate.Authorizes(tt.actor); got != tt.want {
				t.Errorf("Authorizes(%+v) = %v, expected %v", tt.actor, got, tt.want)
			}
		})
	}
}
