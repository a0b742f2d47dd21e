package session

import (
	"testing"
	"time"
)

func TestStartStopRunning(t *testing.T) {
	s := New()
	if s.Running() {
		t.Fatalf("new session must not be running")
	}
	s.Start()
	if !s.Running() {
		t.Fatalf("session not running after Start")
	}
	s.Stop()
	if s.Running() {
		t.Fatalf("session still running after Stop")
	}
}

func TestSnapshotBeforeStart(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	if snap.Started {
		t.Fatalf("snapshot reports started before Start")
	}
	if snap.Uptime != 0 || snap.Count != 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestAppendAndElapsed(t *testing.T) {
	base := time.Unix(1000, 0).UTC()
	clock := base
	s := New()
	s.now = func() time.Time { return clock }

	s.Start()
	clock = base.Add(5 * time.Second)
	rec := s.Append("hello", "hi")
	if rec.Input != "hello" || rec.Response != "hi" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Elapsed != 5*time.Second {
		t.Fatalf("want elapsed 5s, got %v", rec.Elapsed)
	}
	if rec.Timestamp != clock {
		t.Fatalf("want timestamp %v, got %v", clock, rec.Timestamp)
	}

	hist := s.History()
	if len(hist) != 1 || hist[0] != rec {
		t.Fatalf("history mismatch: %+v", hist)
	}
}

func TestHistoryIsAppendOnlyCopy(t *testing.T) {
	s := New()
	s.Start()
	s.Append("a", "1")
	s.Append("b", "2")

	hist := s.History()
	hist[0].Input = "mutated"
	if s.History()[0].Input != "a" {
		t.Fatalf("internal history mutated via returned slice")
	}
	if len(s.History()) != 2 {
		t.Fatalf("want 2 records, got %d", len(s.History()))
	}
}

func TestSummarize(t *testing.T) {
	base := time.Unix(2000, 0).UTC()
	clock := base
	s := New()
	s.now = func() time.Time { return clock }

	if _, ok := s.Summarize(); ok {
		t.Fatalf("summary before Start must report not ok")
	}

	s.Start()
	s.Append("first", "r1")
	s.Append("second", "r2")
	clock = base.Add(90 * time.Second)

	sum, ok := s.Summarize()
	if !ok {
		t.Fatalf("summary after Start must be ok")
	}
	if sum.SessionID != s.ID() || sum.SessionID == "" {
		t.Fatalf("summary session id mismatch: %q", sum.SessionID)
	}
	if sum.SessionStart != base || sum.SessionEnd != clock {
		t.Fatalf("unexpected bounds: %+v", sum)
	}
	if sum.Duration != "1m30s" {
		t.Fatalf("want duration 1m30s, got %q", sum.Duration)
	}
	if sum.TotalCommands != 2 {
		t.Fatalf("want 2 commands, got %d", sum.TotalCommands)
	}
	if len(sum.Inputs) != 2 || sum.Inputs[0] != "first" || sum.Inputs[1] != "second" {
		t.Fatalf("inputs out of order: %+v", sum.Inputs)
	}
}

func TestUptimeGrows(t *testing.T) {
	base := time.Unix(3000, 0).UTC()
	clock := base
	s := New()
	s.now = func() time.Time { return clock }

	s.Start()
	clock = base.Add(42 * time.Second)
	snap := s.Snapshot()
	if !snap.Started || snap.Uptime != 42*time.Second {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}
