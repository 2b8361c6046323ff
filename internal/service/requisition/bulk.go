package requisition

import (
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
	"github.com/veritlyapp-cell/liah-backend/pkg/metrics"
)

// BulkResult reports a batch operation item by item. One bad requisition
// never aborts the rest of the batch.
type BulkResult struct {
	Succeeded int               `json:"succeeded"`
	FailedIDs []string          `json:"failedIds,omitempty"`
	Failures  map[string]string `json:"failures,omitempty"`
}

func (r *BulkResult) fail(id string, err error) {
	if r.Failures == nil {
		r.Failures = make(map[string]string)
	}
	r.FailedIDs = append(r.FailedIDs, id)
	r.Failures[id] = err.Error()
}

func (r *BulkResult) outcome() string {
	switch {
	case len(r.FailedIDs) == 0:
		return "full"
	case r.Succeeded == 0:
		return "failed"
	default:
		return "partial"
	}
}

// BulkApprove approves each requisition at its current level. Every item
// goes through the same authorization and state checks as a single
// approval.
func (s *Service) BulkApprove(ids []string, actor Actor, comment string) BulkResult {
	var result BulkResult
	for _, id := range ids {
		if _, err := s.Approve(id, actor, comment); err != nil {
			result.fail(id, err)
			continue
		}
		result.Succeeded++
	}
	s.recordBulk("approve", &result, actor)
	return result
}

// BulkReject rejects each requisition with the shared reason.
func (s *Service) BulkReject(ids []string, actor Actor, reason string) BulkResult {
	var result BulkResult
	for _, id := range ids {
		if _, err := s.Reject(id, actor, reason); err != nil {
			result.fail(id, err)
			continue
		}
		result.Succeeded++
	}
	s.recordBulk("reject", &result, actor)
	return result
}

func (s *Service) recordBulk(operation string, result *BulkResult, actor Actor) {
	metrics.BulkOperationsTotal.WithLabelValues(operation, result.outcome()).Inc()
	if len(result.FailedIDs) > 0 {
		logger.Warnf("Bulk %s by %s: %d succeeded, %d failed", operation, actor.ID,
			result.Succeeded, len(result.FailedIDs))
	} else {
		logger.Infof("Bulk %s by %s: %d succeeded", operation, actor.ID, result.Succeeded)
	}
}
