package scheduler

import (
	"context"
	"time"

	"github.com/academic-events/eventhub/pkg/logger/types"
)

// DefaultInterval is how often reminders are checked when no interval is configured.
const DefaultInterval = time.Hour

type reminderService interface {
	ReminderSweep(ctx context.Context, now time.Time) (int, error)
}

type ReminderScheduler struct {
	service  reminderService
	interval time.Duration
	logger   *types.Logger
	now      func() time.Time
}

func NewReminderScheduler(logger *types.Logger, service reminderService, interval time.Duration) *ReminderScheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &ReminderScheduler{
		service:  service,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the scheduler in its own goroutine until ctx is done.
func (s *ReminderScheduler) Start(ctx context.Context) {
	s.logger.Infof("Starting reminder scheduler (interval=%s)", s.interval)
	go s.Run(ctx)
}

// Run sweeps once immediately and then on every tick. It blocks until ctx is done.
func (s *ReminderScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			s.logger.Info("Reminder scheduler stopped")
			return
		}
	}
}

func (s *ReminderScheduler) sweep(ctx context.Context) {
	s.logger.Debugf("Checking for events starting in the next 24 hours")
	created, err := s.service.ReminderSweep(ctx, s.now())
	if err != nil {
		s.logger.Errorf("failed to run reminder sweep: %v", err)
		return
	}
	if created > 0 {
		s.logger.Infof("Reminder sweep created %d notifications", created)
	}
}
