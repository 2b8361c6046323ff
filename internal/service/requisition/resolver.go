package requisition

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
)

// UserLookup is the slice of the user store the resolver needs. The
// recruitment-lead lookup is holding-wide, not context-scoped.
type UserLookup interface {
	FindByID(id string) (*model.User, error)
	FindRecruitmentLead(holdingID string) (*model.User, error)
}

// OrgLookup resolves the manager of record on areas and gerencias.
type OrgLookup interface {
	FindAreaByID(id string) (*model.Area, error)
	FindGerenciaByID(id string) (*model.Gerencia, error)
}

// ResolveContext carries the requisition-side inputs of chain resolution.
type ResolveContext struct {
	HoldingID  string
	AreaID     *string
	GerenciaID *string
	CreatorID  string
}

// Resolver turns workflow steps into an ordered, de-duplicated list of
// concrete approvers. Missing organizational metadata never fails the
// resolution; the affected step degrades to a skipped entry with a
// diagnostic reason.
type Resolver struct {
	users UserLookup
	orgs  OrgLookup
}

func NewResolver(users UserLookup, orgs OrgLookup) *Resolver {
	return &Resolver{users: users, orgs: orgs}
}

const directSuperiorStepName = "Direct superior approval"

// Resolve resolves the chain. A non-empty manualApproverID prepends a
// direct-superior step whose contact address seeds the deduplication set.
// Entries are renumbered 1..N in output order; skipped entries keep their
// slot so the audit trail stays complete.
func (r *Resolver) Resolve(steps []model.WorkflowStep, ctx ResolveContext, manualApproverID string) ([]model.RequisitionApprover, error) {
	sorted := make([]model.WorkflowStep, len(steps))
	copy(sorted, steps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StepOrder < sorted[j].StepOrder })

	// Contact address -> first non-skipped entry that used it.
	type firstUse struct {
		order int
		name  string
	}
	seen := make(map[string]firstUse)

	var out []model.RequisitionApprover

	appendResolved := func(stepName, approverType string, user *model.User) {
		entry := model.RequisitionApprover{
			StepName:     stepName,
			ApproverType: approverType,
			UserID:       user.ID,
			Email:        user.Email,
			FullName:     user.FullName,
		}
		if prior, dup := seen[user.Email]; dup && approverType != model.ApproverTypeRecruitmentLead {
			// The recruitment lead is exempt: its approval also performs
			// recruiter assignment and must always execute once.
			entry.Skipped = true
			entry.SkipReason = fmt.Sprintf("already approving as step %d (%s)", prior.order, prior.name)
		}
		out = append(out, entry)
		if !entry.Skipped {
			if _, exists := seen[user.Email]; !exists {
				seen[user.Email] = firstUse{order: len(out), name: stepName}
			}
		}
	}

	appendSkipped := func(stepName, approverType, reason string) {
		logger.Warnf("Approver resolution gap (holding %s): step %q (%s): %s",
			ctx.HoldingID, stepName, approverType, reason)
		out = append(out, model.RequisitionApprover{
			StepName:     stepName,
			ApproverType: approverType,
			Skipped:      true,
			SkipReason:   reason,
		})
	}

	if manualApproverID != "" {
		user, err := r.activeUser(manualApproverID)
		switch {
		case err == nil:
			appendResolved(directSuperiorStepName, model.ApproverTypeSpecificUser, user)
		case errors.Is(err, gorm.ErrRecordNotFound):
			appendSkipped(directSuperiorStepName, model.ApproverTypeSpecificUser,
				"manually selected approver not found or inactive")
		default:
			return nil, err
		}
	}

	for _, step := range sorted {
		user, err := r.resolveStep(step, ctx)
		switch {
		case err == nil:
			appendResolved(step.StepName, step.ApproverType, user)
		case errors.Is(err, gorm.ErrRecordNotFound):
			appendSkipped(step.StepName, step.ApproverType,
				"no identity configured for this approver type")
		default:
			return nil, err
		}
	}

	// Renumber 1..N in final order.
	for i := range out {
		out[i].StepOrder = i + 1
	}
	return out, nil
}

// resolveStep maps an approver type to an identity. gorm.ErrRecordNotFound
// means "unresolvable, skip"; any other error is an infrastructure
// failure and aborts the resolution.
func (r *Resolver) resolveStep(step model.WorkflowStep, ctx ResolveContext) (*model.User, error) {
	switch step.ApproverType {
	case model.ApproverTypeHiringManager:
		return r.activeUser(ctx.CreatorID)

	case model.ApproverTypeAreaManager:
		if ctx.AreaID == nil || *ctx.AreaID == "" {
			return nil, gorm.ErrRecordNotFound
		}
		area, err := r.orgs.FindAreaByID(*ctx.AreaID)
		if err != nil {
			return nil, err
		}
		if area.ManagerID == nil || *area.ManagerID == "" {
			return nil, gorm.ErrRecordNotFound
		}
		return r.activeUser(*area.ManagerID)

	case model.ApproverTypeGerenciaManager:
		if ctx.GerenciaID == nil || *ctx.GerenciaID == "" {
			return nil, gorm.ErrRecordNotFound
		}
		gerencia, err := r.orgs.FindGerenciaByID(*ctx.GerenciaID)
		if err != nil {
			return nil, err
		}
		if gerencia.ManagerID == nil || *gerencia.ManagerID == "" {
			return nil, gorm.ErrRecordNotFound
		}
		return r.activeUser(*gerencia.ManagerID)

	case model.ApproverTypeRecruitmentLead:
		return r.users.FindRecruitmentLead(ctx.HoldingID)

	case model.ApproverTypeSpecificUser:
		if step.SpecificUserID == nil || *step.SpecificUserID == "" {
			return nil, gorm.ErrRecordNotFound
		}
		return r.activeUser(*step.SpecificUserID)

	default:
		return nil, fmt.Errorf("unknown approver type: %s", step.ApproverType)
	}
}

// activeUser loads a user and treats inactive accounts as unresolvable.
func (r *Resolver) activeUser(id string) (*model.User, error) {
	user, err := r.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}
