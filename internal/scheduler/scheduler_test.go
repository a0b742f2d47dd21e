package scheduler

import (
	"context"
	"testing"

	"gengar/internal/logging"
)

func TestStartWithoutReportFunctionStaysIdle(t *testing.T) {
	s := New(logging.NewNop())
	if err := s.Start("0 21 * * *"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.IsRunning() {
		t.Fatalf("scheduler must stay idle without a report function")
	}
	s.Stop()
}

func TestStartWithEmptySpecStaysIdle(t *testing.T) {
	s := New(logging.NewNop())
	s.SetReportFunction(func(ctx context.Context) error { return nil })
	if err := s.Start(""); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.IsRunning() {
		t.Fatalf("scheduler must stay idle with empty spec")
	}
	s.Stop()
}

func TestStartSchedulesJob(t *testing.T) {
	s := New(logging.NewNop())
	s.SetReportFunction(func(ctx context.Context) error { return nil })
	if err := s.Start("0 21 * * *"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !s.IsRunning() {
		t.Fatalf("job not scheduled")
	}
	s.Stop()
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := New(logging.NewNop())
	s.SetReportFunction(func(ctx context.Context) error { return nil })
	if err := s.Start("not a cron spec"); err == nil {
		t.Fatalf("want error for invalid cron spec")
	}
	s.Stop()
}
