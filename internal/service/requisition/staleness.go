package requisition

import (
	"context"
	"time"

	"github.com/veritlyapp-cell/liah-backend/pkg/config"
	"github.com/veritlyapp-cell/liah-backend/pkg/distributed"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
	"github.com/veritlyapp-cell/liah-backend/pkg/metrics"
)

// UnfilledStore is the persistence surface the staleness sweep needs.
type UnfilledStore interface {
	MarkUnfilled(cutoff time.Time) (int64, error)
	CountUnfilled() (int64, error)
}

// Sweeper periodically flags requisitions that stayed in active
// recruitment past the configured threshold. The flag is a dashboard
// signal only; it never changes lifecycle state.
type Sweeper struct {
	store     UnfilledStore
	alertDays int
	interval  time.Duration
	// lock keeps multi-instance deployments from sweeping concurrently.
	// Nil means single-server mode.
	lock *distributed.Lock
}

func NewSweeper(store UnfilledStore, cfg config.WorkflowConfig, lock *distributed.Lock) *Sweeper {
	return &Sweeper{
		store:     store,
		alertDays: cfg.UnfilledAlertDays,
		interval:  time.Duration(cfg.SweepIntervalMinutes) * time.Minute,
		lock:      lock,
	}
}

// Run sweeps immediately, then on every tick, until the context is
// cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	logger.Infof("Unfilled requisition sweep started (threshold %d days, interval %s)",
		s.alertDays, s.interval)

	s.Sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Unfilled requisition sweep stopped")
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs one pass and refreshes the unfilled gauge. When another
// instance holds the sweep lock the pass is skipped; its sweep covers us.
func (s *Sweeper) Sweep() {
	if s.lock != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ok, err := s.lock.TryLock(ctx)
		if err != nil {
			logger.Warnf("Cannot acquire sweep lock: %v", err)
			return
		}
		if !ok {
			return
		}
		defer s.lock.Unlock(ctx)
	}

	cutoff := time.Now().AddDate(0, 0, -s.alertDays)

	flagged, err := s.store.MarkUnfilled(cutoff)
	if err != nil {
		logger.Errorf("Unfilled sweep failed: %v", err)
		return
	}
	if flagged > 0 {
		logger.Infof("Flagged %d requisition(s) unfilled past %d days", flagged, s.alertDays)
	}

	total, err := s.store.CountUnfilled()
	if err != nil {
		logger.Warnf("Cannot refresh unfilled gauge: %v", err)
		return
	}
	metrics.UnfilledRequisitions.Set(float64(total))
}
