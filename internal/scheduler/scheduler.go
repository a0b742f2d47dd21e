// Package scheduler runs the periodic session report on a cron schedule.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"gengar/internal/logging"
)

// Scheduler drives scheduled background work for a session.
type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc
	log        *logging.Logger
	reportFunc func(ctx context.Context) error
}

func New(log *logging.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

// SetReportFunction sets the report generator invoked on each tick.
func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

// Start schedules the report at the given cron spec and starts the cron
// loop. An empty spec or missing report function leaves the scheduler idle.
func (s *Scheduler) Start(spec string) error {
	if spec == "" || s.reportFunc == nil {
		s.log.Warnf("⚠️ session report disabled (no schedule or report function)")
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		s.log.Infof("🕘 generating scheduled session report")
		if err := s.reportFunc(s.ctx); err != nil {
			s.log.Errorf("❌ session report failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Infof("📅 scheduler started, session report at %q (UTC)", spec)
	return nil
}

// Stop halts the cron loop and waits for a running report to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.log.Infof("📅 scheduler stopped")
}

// IsRunning reports whether any job is scheduled.
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
