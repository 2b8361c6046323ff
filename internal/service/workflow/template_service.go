package workflow

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/internal/repository"
)

// Service manages identity-based workflow templates.
type Service struct {
	repo *repository.WorkflowRepository
}

func NewService(repo *repository.WorkflowRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) FindTemplateByID(id string) (*model.WorkflowTemplate, error) {
	return s.repo.FindTemplateByID(id)
}

func (s *Service) ListByHolding(holdingID string) ([]model.WorkflowTemplate, error) {
	return s.repo.ListByHolding(holdingID)
}

// Save creates or replaces a template. Specific-user steps must name a
// user; step orders must be unique.
func (s *Service) Save(id string, req model.SaveWorkflowTemplateRequest) (*model.WorkflowTemplate, error) {
	seen := make(map[int]bool, len(req.Steps))
	for _, in := range req.Steps {
		if seen[in.StepOrder] {
			return nil, fmt.Errorf("duplicate step order %d", in.StepOrder)
		}
		seen[in.StepOrder] = true
		if in.ApproverType == model.ApproverTypeSpecificUser &&
			(in.SpecificUserID == nil || *in.SpecificUserID == "") {
			return nil, fmt.Errorf("step %d: specific_user steps require a user id", in.StepOrder)
		}
	}

	tpl := &model.WorkflowTemplate{
		ID:        id,
		HoldingID: req.HoldingID,
		Name:      req.Name,
		IsActive:  true,
	}
	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}
	for _, in := range req.Steps {
		tpl.Steps = append(tpl.Steps, model.WorkflowStep{
			StepOrder:      in.StepOrder,
			StepName:       in.StepName,
			ApproverType:   in.ApproverType,
			SpecificUserID: in.SpecificUserID,
		})
	}

	if err := s.repo.Save(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}
