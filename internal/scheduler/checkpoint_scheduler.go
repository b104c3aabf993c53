package scheduler

import (
	"fmt"

	"github.com/ikkim/grocery-cart/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Checkpointer re-saves the current cart.
type Checkpointer interface {
	Checkpoint()
}

// CheckpointScheduler periodically re-saves the cart so a snapshot store
// that missed writes while it was down catches up.
type CheckpointScheduler struct {
	cron     *cron.Cron
	cart     Checkpointer
	schedule string
}

// NewCheckpointScheduler returns nil when schedule is empty or "off".
func NewCheckpointScheduler(cart Checkpointer, schedule string) *CheckpointScheduler {
	if schedule == "" || schedule == "off" {
		return nil
	}
	return &CheckpointScheduler{
		cron:     cron.New(),
		cart:     cart,
		schedule: schedule,
	}
}

func (s *CheckpointScheduler) Start() error {
	if s == nil {
		logger.Info("Cart checkpoint scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Debug("Running scheduled cart checkpoint")
		s.cart.Checkpoint()
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart checkpoint", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return fmt.Errorf("invalid checkpoint schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	logger.Info("Cart checkpoint scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// Stop waits for a running checkpoint to finish.
func (s *CheckpointScheduler) Stop() {
	if s == nil {
		return
	}
	logger.Info("Stopping cart checkpoint scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Cart checkpoint scheduler stopped")
}
