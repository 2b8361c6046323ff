package requisition

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veritlyapp-cell/liah-backend/internal/events"
	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/internal/notification"
	"github.com/veritlyapp-cell/liah-backend/internal/repository"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
	"github.com/veritlyapp-cell/liah-backend/pkg/metrics"
)

// Actor is the authenticated identity performing an operation, as supplied
// by the identity provider. The engine trusts these fields for
// authorization checks.
type Actor struct {
	ID        string
	Name      string
	Email     string
	Role      string
	HoldingID string
}

// Store is the persistence surface the state machine needs. Implemented by
// repository.RequisitionRepository.
type Store interface {
	CreateWithApprovers(rq *model.Requisition, approvers []model.RequisitionApprover) error
	FindByID(id string) (*model.Requisition, error)
	List(f repository.ListFilter) ([]model.Requisition, int64, error)
	ListPending(holdingID string) ([]model.Requisition, error)
	AdvanceLevel(rq *model.Requisition, fromLevel int, updates map[string]interface{}, record *model.ApprovalRecord) error
	Update(id string, updates map[string]interface{}) error
	AppendRecord(record *model.ApprovalRecord) error
	Delete(id string) error
}

// LevelSource provides role-based approval ladders and the authorization
// gate over them. Implemented by the approval config service; reads never
// mutate state.
type LevelSource interface {
	GetLevelsFor(holdingID string, brandID *string) ([]model.ApprovalLevel, error)
	ValidateApprover(holdingID string, brandID *string, level int, role string) (bool, error)
}

// TemplateSource provides identity-based workflow templates.
type TemplateSource interface {
	FindTemplateByID(id string) (*model.WorkflowTemplate, error)
}

// Service owns the requisition lifecycle. All writes to approval status,
// level pointer and the record list go through here.
type Service struct {
	store     Store
	levels    LevelSource
	templates TemplateSource
	resolver  *Resolver
	notify    *notification.Manager
	hub       *events.Hub
}

func NewService(store Store, levels LevelSource, templates TemplateSource, resolver *Resolver, notify *notification.Manager, hub *events.Hub) *Service {
	return &Service{
		store:     store,
		levels:    levels,
		templates: templates,
		resolver:  resolver,
		notify:    notify,
		hub:       hub,
	}
}

// Create opens a new requisition. When a workflow template is referenced
// the approval chain is resolved to named identities up front; otherwise
// the holding's role-level config drives the chain lazily at each gate.
func (s *Service) Create(req model.CreateRequisitionRequest, actor Actor) (*model.Requisition, error) {
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	rq := &model.Requisition{
		ID:                   uuid.New().String(),
		PositionName:         req.PositionName,
		Category:             req.Category,
		Quantity:             req.Quantity,
		SalaryOffer:          req.SalaryOffer,
		HoldingID:            actor.HoldingID,
		BrandID:              req.BrandID,
		StoreID:              req.StoreID,
		AreaID:               req.AreaID,
		GerenciaID:           req.GerenciaID,
		Status:               model.RequisitionStatusDraft,
		ApprovalStatus:       model.ApprovalStatusPending,
		CurrentApprovalLevel: 1,
		ChainType:            model.ChainTypeRoleLevels,
		CreatedByID:          actor.ID,
		CreatedByName:        actor.Name,
		CreatedByEmail:       actor.Email,
		Description:          req.Description,
	}

	var approvers []model.RequisitionApprover
	if req.TemplateID != "" {
		tpl, err := s.templates.FindTemplateByID(req.TemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, validationErrorf("workflow template %s not found", req.TemplateID)
			}
			return nil, err
		}
		if tpl.HoldingID != actor.HoldingID {
			return nil, authorizationErrorf("workflow template belongs to another holding")
		}

		approvers, err = s.resolver.Resolve(tpl.Steps, ResolveContext{
			HoldingID:  actor.HoldingID,
			AreaID:     req.AreaID,
			GerenciaID: req.GerenciaID,
			CreatorID:  actor.ID,
		}, req.ManualApproverID)
		if err != nil {
			return nil, err
		}
		rq.ChainType = model.ChainTypeDynamicSteps

		// When every resolved step degraded to skipped the chain has no
		// gates, and a pending requisition could never be acted on. The
		// same fail-open policy that skips the steps approves the
		// requisition outright rather than leaving it stuck.
		if ChainFromApprovers(approvers).Len() == 0 {
			now := time.Now()
			rq.ApprovalStatus = model.ApprovalStatusApproved
			rq.ApprovedAt = &now
			if rq.Category == model.CategoryOperational {
				rq.Status = model.RequisitionStatusActive
				rq.ActivatedAt = &now
			}
			logger.Warnf("Requisition %s (holding %s): every approver step skipped, approved without gates",
				rq.ID, rq.HoldingID)
		}
	} else {
		// Role-level chain: make sure the holding actually has one.
		levels, err := s.levels.GetLevelsFor(actor.HoldingID, optionalID(req.BrandID))
		if err != nil {
			return nil, err
		}
		if len(levels) == 0 {
			return nil, validationErrorf("no approval configuration for holding %s", actor.HoldingID)
		}
	}

	if err := s.store.CreateWithApprovers(rq, approvers); err != nil {
		return nil, err
	}
	rq.Approvers = approvers

	metrics.RequisitionsCreatedTotal.WithLabelValues(rq.HoldingID, rq.Category).Inc()
	s.publish(events.TypeCreated, rq, nil)
	if rq.ApprovalStatus == model.ApprovalStatusApproved {
		s.publish(events.TypeApproved, rq, map[string]interface{}{"gateless": true})
	} else {
		s.notifyGate(rq, 1)
	}

	return rq, nil
}

// Get loads a requisition with chain and history.
func (s *Service) Get(id string) (*model.Requisition, error) {
	rq, err := s.store.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rq, nil
}

// List proxies filtered listing.
func (s *Service) List(f repository.ListFilter) ([]model.Requisition, int64, error) {
	return s.store.List(f)
}

// ListPendingFor returns requisitions whose current gate the actor may
// approve.
func (s *Service) ListPendingFor(actor Actor) ([]model.Requisition, error) {
	pending, err := s.store.ListPending(actor.HoldingID)
	if err != nil {
		return nil, err
	}

	var out []model.Requisition
	for i := range pending {
		rq := &pending[i]
		chain, err := s.chainFor(rq)
		if err != nil {
			logger.Warnf("Skipping requisition %s in pending list: %v", rq.ID, err)
			continue
		}
		gate, ok := chain.Gate(rq.CurrentApprovalLevel)
		if !ok {
			continue
		}
		allowed, err := s.authorizes(rq, gate, actor)
		if err != nil {
			logger.Warnf("Skipping requisition %s in pending list: %v", rq.ID, err)
			continue
		}
		if allowed {
			out = append(out, *rq)
		}
	}
	return out, nil
}

// Approve records an approval at the requisition's current level. On the
// last gate the requisition becomes approved; operational requisitions
// start recruiting immediately.
func (s *Service) Approve(id string, actor Actor, comment string) (*model.Requisition, error) {
	rq, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkActionable(rq); err != nil {
		return nil, err
	}

	chain, err := s.chainFor(rq)
	if err != nil {
		return nil, err
	}
	gate, ok := chain.Gate(rq.CurrentApprovalLevel)
	if !ok {
		return nil, stateErrorf("no approval gate at level %d", rq.CurrentApprovalLevel)
	}
	allowed, err := s.authorizes(rq, gate, actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, authorizationErrorf("role %s may not approve level %d (%s)",
			actor.Role, rq.CurrentApprovalLevel, gate.Name)
	}

	fromLevel := rq.CurrentApprovalLevel
	isLast := fromLevel == chain.Len()
	now := time.Now()

	updates := map[string]interface{}{}
	if isLast {
		updates["approval_status"] = model.ApprovalStatusApproved
		updates["approved_at"] = now
		// High-volume operational positions open recruiting on final
		// sign-off; managerial ones wait for an explicit start.
		if rq.Category == model.CategoryOperational {
			updates["status"] = model.RequisitionStatusActive
			updates["activated_at"] = now
		}
	} else {
		updates["current_approval_level"] = fromLevel + 1
	}

	record := &model.ApprovalRecord{
		RequisitionID: rq.ID,
		Level:         fromLevel,
		ApproverID:    actor.ID,
		ApproverName:  actor.Name,
		ApproverEmail: actor.Email,
		ApproverRole:  actor.Role,
		Decision:      model.DecisionApproved,
		Comment:       comment,
	}

	if err := s.store.AdvanceLevel(rq, fromLevel, updates, record); err != nil {
		if errors.Is(err, repository.ErrStaleLevel) {
			return nil, stateErrorf("approval level changed concurrently, please retry")
		}
		return nil, err
	}

	metrics.ApprovalDecisionsTotal.WithLabelValues(model.DecisionApproved).Inc()

	updated, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if isLast {
		s.publish(events.TypeApproved, updated, map[string]interface{}{"approver": actor.Name})
		s.notifyDecision(updated, model.DecisionApproved, "")
		// The recruitment-lead gate doubles as recruiter assignment.
		if gate.ApproverType == model.ApproverTypeRecruitmentLead {
			logger.Infof("Recruiter %s assigned to requisition %s", gate.ApproverName, updated.ID)
		}
	} else {
		s.publish(events.TypeLevelAdvanced, updated, map[string]interface{}{
			"level": updated.CurrentApprovalLevel,
		})
		s.notifyGate(updated, updated.CurrentApprovalLevel)
	}

	return updated, nil
}

// Reject terminates the approval flow at any level. A reason is mandatory.
func (s *Service) Reject(id string, actor Actor, reason string) (*model.Requisition, error) {
	if reason == "" {
		return nil, validationErrorf("rejection requires a reason")
	}

	rq, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkActionable(rq); err != nil {
		return nil, err
	}

	chain, err := s.chainFor(rq)
	if err != nil {
		return nil, err
	}
	gate, ok := chain.Gate(rq.CurrentApprovalLevel)
	if !ok {
		return nil, stateErrorf("no approval gate at level %d", rq.CurrentApprovalLevel)
	}
	allowed, err := s.authorizes(rq, gate, actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, authorizationErrorf("role %s may not reject level %d (%s)",
			actor.Role, rq.CurrentApprovalLevel, gate.Name)
	}

	fromLevel := rq.CurrentApprovalLevel
	updates := map[string]interface{}{
		"approval_status": model.ApprovalStatusRejected,
		"reject_reason":   reason,
	}
	record := &model.ApprovalRecord{
		RequisitionID: rq.ID,
		Level:         fromLevel,
		ApproverID:    actor.ID,
		ApproverName:  actor.Name,
		ApproverEmail: actor.Email,
		ApproverRole:  actor.Role,
		Decision:      model.DecisionRejected,
		Comment:       reason,
	}

	if err := s.store.AdvanceLevel(rq, fromLevel, updates, record); err != nil {
		if errors.Is(err, repository.ErrStaleLevel) {
			return nil, stateErrorf("approval level changed concurrently, please retry")
		}
		return nil, err
	}

	metrics.ApprovalDecisionsTotal.WithLabelValues(model.DecisionRejected).Inc()

	updated, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	s.publish(events.TypeRejected, updated, map[string]interface{}{"reason": reason})
	s.notifyDecision(updated, model.DecisionRejected, reason)
	return updated, nil
}

// StartRecruitment opens recruiting on an approved requisition.
func (s *Service) StartRecruitment(id string) (*model.Requisition, error) {
	rq, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if rq.ApprovalStatus != model.ApprovalStatusApproved {
		return nil, stateErrorf("requisition is not approved (approval status: %s)", rq.ApprovalStatus)
	}
	if rq.Status != model.RequisitionStatusDraft {
		return nil, stateErrorf("cannot start recruitment from status %s", rq.Status)
	}

	now := time.Now()
	if err := s.store.Update(id, map[string]interface{}{
		"status":       model.RequisitionStatusActive,
		"activated_at": now,
	}); err != nil {
		return nil, err
	}

	updated, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	s.publish(events.TypeActivated, updated, nil)
	return updated, nil
}

// Close ends recruiting. Outcome is "closed" or "filled"; both terminal.
func (s *Service) Close(id, outcome string) (*model.Requisition, error) {
	if outcome != model.RequisitionStatusClosed && outcome != model.RequisitionStatusFilled {
		return nil, validationErrorf("invalid close outcome: %s", outcome)
	}

	rq, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if rq.Status != model.RequisitionStatusActive {
		return nil, stateErrorf("cannot close requisition from status %s", rq.Status)
	}

	now := time.Now()
	if err := s.store.Update(id, map[string]interface{}{
		"status":         outcome,
		"closed_at":      now,
		"alert_unfilled": false,
	}); err != nil {
		return nil, err
	}

	updated, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	s.publish(events.TypeClosed, updated, map[string]interface{}{"outcome": outcome})
	return updated, nil
}

// Cancel terminates the requisition from any non-terminal state.
func (s *Service) Cancel(id string, actor Actor, reason string) (*model.Requisition, error) {
	if reason == "" {
		return nil, validationErrorf("cancellation requires a reason")
	}

	rq, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if rq.IsTerminal() {
		return nil, stateErrorf("requisition is already %s", terminalName(rq))
	}

	if err := s.store.Update(id, map[string]interface{}{
		"status":        model.RequisitionStatusCancelled,
		"cancel_reason": reason,
	}); err != nil {
		return nil, err
	}

	updated, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	s.publish(events.TypeCancelled, updated, map[string]interface{}{"reason": reason})
	return updated, nil
}

// RequestDeletion flags the requisition for removal pending sign-off.
func (s *Service) RequestDeletion(id string, actor Actor, reason string) (*model.Requisition, error) {
	if reason == "" {
		return nil, validationErrorf("deletion request requires a reason")
	}

	rq, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if rq.DeletionRequested {
		return nil, stateErrorf("deletion already requested")
	}

	if err := s.store.Update(id, map[string]interface{}{
		"deletion_requested":    true,
		"deletion_requested_by": actor.ID,
		"deletion_reason":       reason,
	}); err != nil {
		return nil, err
	}

	updated, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	s.publish(events.TypeDeletionRequest, updated, map[string]interface{}{"reason": reason})
	return updated, nil
}

// ResolveDeletion approves or denies a pending deletion request. Approval
// permanently removes the requisition; denial clears the flags and the
// prior state resumes untouched.
func (s *Service) ResolveDeletion(id string, actor Actor, approve bool) error {
	if !canDeleteOutright(actor.Role) {
		return authorizationErrorf("role %s may not resolve deletion requests", actor.Role)
	}

	rq, err := s.Get(id)
	if err != nil {
		return err
	}
	if !rq.DeletionRequested {
		return stateErrorf("no deletion request pending")
	}

	if !approve {
		err := s.store.Update(id, map[string]interface{}{
			"deletion_requested":    false,
			"deletion_requested_by": "",
			"deletion_reason":       "",
		})
		if err != nil {
			return err
		}
		s.publish(events.TypeDeletionResolved, rq, map[string]interface{}{"approved": false})
		return nil
	}

	if err := s.store.Delete(id); err != nil {
		return err
	}
	logger.Infof("Requisition %s deleted (requested by %s, approved by %s)",
		id, rq.DeletionRequestedBy, actor.ID)
	s.publish(events.TypeDeletionResolved, rq, map[string]interface{}{"approved": true})
	return nil
}

// DeleteDirectly bypasses the request/approve handshake for roles allowed
// to delete outright. The reason is kept in the operational log.
func (s *Service) DeleteDirectly(id string, actor Actor, reason string) error {
	if reason == "" {
		return validationErrorf("deletion requires a reason")
	}
	if !canDeleteOutright(actor.Role) {
		return authorizationErrorf("role %s may not delete requisitions directly", actor.Role)
	}

	rq, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(id); err != nil {
		return err
	}
	logger.Infof("Requisition %s (%s) deleted directly by %s (%s): %s",
		id, rq.PositionName, actor.Name, actor.Role, reason)
	s.publish(events.TypeDeletionResolved, rq, map[string]interface{}{"approved": true, "direct": true})
	return nil
}

// --- helpers ---

func canDeleteOutright(role string) bool {
	return role == model.RoleAdmin || role == model.RoleHoldingAdmin
}

// checkActionable rejects approval actions on terminal requisitions.
func (s *Service) checkActionable(rq *model.Requisition) error {
	if rq.IsTerminal() {
		return stateErrorf("requisition is already %s", terminalName(rq))
	}
	if rq.ApprovalStatus == model.ApprovalStatusApproved {
		return stateErrorf("requisition is already approved")
	}
	return nil
}

func terminalName(rq *model.Requisition) string {
	if rq.ApprovalStatus == model.ApprovalStatusRejected {
		return model.ApprovalStatusRejected
	}
	return rq.Status
}

// authorizes routes the gate check. Role-level chains delegate to the
// configuration service's approver gate so the check always runs against
// the currently configured levels; dynamic chains match the resolved
// identity on the gate itself.
func (s *Service) authorizes(rq *model.Requisition, gate Gate, actor Actor) (bool, error) {
	if rq.ChainType == model.ChainTypeRoleLevels {
		return s.levels.ValidateApprover(rq.HoldingID, optionalID(rq.BrandID), gate.Level, actor.Role)
	}
	return gate.Authorizes(actor), nil
}

// chainFor reconstructs the approval chain for the requisition's strategy.
func (s *Service) chainFor(rq *model.Requisition) (Chain, error) {
	if rq.ChainType == model.ChainTypeDynamicSteps {
		return ChainFromApprovers(rq.Approvers), nil
	}
	levels, err := s.levels.GetLevelsFor(rq.HoldingID, optionalID(rq.BrandID))
	if err != nil {
		return Chain{}, err
	}
	return ChainFromLevels(levels), nil
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func (s *Service) publish(eventType string, rq *model.Requisition, payload map[string]interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(events.Event{
		Type:          eventType,
		RequisitionID: rq.ID,
		HoldingID:     rq.HoldingID,
		Payload:       payload,
	})
}

// notifyGate tells whoever must act at the given level that a requisition
// awaits them. Best-effort.
func (s *Service) notifyGate(rq *model.Requisition, level int) {
	if s.notify == nil {
		return
	}
	chain, err := s.chainFor(rq)
	if err != nil {
		logger.Warnf("Cannot notify gate %d of requisition %s: %v", level, rq.ID, err)
		return
	}
	gate, ok := chain.Gate(level)
	if !ok {
		return
	}

	msg := notification.Message{
		Event:         "requisition.pending_approval",
		RequisitionID: rq.ID,
		Subject:       "Requisition pending your approval",
		Body:          rq.PositionName,
		Payload: map[string]interface{}{
			"level":    level,
			"gateName": gate.Name,
			"holding":  rq.HoldingID,
		},
	}
	if gate.ApproverEmail != "" {
		msg.RecipientEmail = gate.ApproverEmail
	} else {
		msg.RecipientRoles = gate.AuthorizedRoles
	}
	s.notify.Dispatch(msg)
}

func (s *Service) notifyDecision(rq *model.Requisition, decision, reason string) {
	if s.notify == nil {
		return
	}
	s.notify.Dispatch(notification.Message{
		Event:          "requisition." + decision,
		RequisitionID:  rq.ID,
		RecipientEmail: rq.CreatedByEmail,
		Subject:        "Requisition " + decision,
		Body:           rq.PositionName,
		Payload: map[string]interface{}{
			"reason": reason,
		},
	})
}
