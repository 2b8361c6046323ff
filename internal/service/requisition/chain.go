package requisition

import (
	"github.com/veritlyapp-cell/liah-backend/internal/model"
)

// Gate is one approval requirement. Role-level chains authorize by role
// membership; dynamic chains authorize the resolved identity.
type Gate struct {
	Level            int
	Name             string
	AuthorizedRoles  []string // role_levels chains
	IsMultipleChoice bool
	ApproverID       string // dynamic_steps chains
	ApproverEmail    string
	ApproverName     string
	ApproverType     string
}

// Chain is the ordered list of approval gates for a requisition,
// regardless of which resolution strategy produced it. The state machine
// only ever talks to this abstraction.
type Chain struct {
	Type  string // model.ChainTypeRoleLevels or model.ChainTypeDynamicSteps
	Gates []Gate
}

// ChainFromLevels builds a role-based chain from configured levels.
func ChainFromLevels(levels []model.ApprovalLevel) Chain {
	gates := make([]Gate, 0, len(levels))
	for _, lvl := range levels {
		gates = append(gates, Gate{
			Level:            lvl.Level,
			Name:             lvl.Name,
			AuthorizedRoles:  lvl.AuthorizedRoles,
			IsMultipleChoice: lvl.IsMultipleChoice,
		})
	}
	return Chain{Type: model.ChainTypeRoleLevels, Gates: gates}
}

// ChainFromApprovers builds an identity-based chain from a requisition's
// resolved approvers. Skipped entries keep their audit slot but contribute
// no gate, so gate levels are contiguous over the non-skipped steps.
func ChainFromApprovers(approvers []model.RequisitionApprover) Chain {
	gates := make([]Gate, 0, len(approvers))
	level := 0
	for _, a := range approvers {
		if a.Skipped {
			continue
		}
		level++
		gates = append(gates, Gate{
			Level:         level,
			Name:          a.StepName,
			ApproverID:    a.UserID,
			ApproverEmail: a.Email,
			ApproverName:  a.FullName,
			ApproverType:  a.ApproverType,
		})
	}
	return Chain{Type: model.ChainTypeDynamicSteps, Gates: gates}
}

// Len is the number of approval gates a requisition must clear.
func (c Chain) Len() int {
	return len(c.Gates)
}

// Gate returns the gate at a 1-based level.
func (c Chain) Gate(level int) (Gate, bool) {
	if level < 1 || level > len(c.Gates) {
		return Gate{}, false
	}
	return c.Gates[level-1], true
}

// Authorizes reports whether the actor may approve at this gate. Role
// gates follow the level's multiple-choice semantics; identity gates match
// the resolved user id.
func (g Gate) Authorizes(actor Actor) bool {
	if len(g.AuthorizedRoles) > 0 {
		return model.AuthorizesRole(g.AuthorizedRoles, g.IsMultipleChoice, actor.Role)
	}
	return g.ApproverID != "" && g.ApproverID == actor.ID
}
