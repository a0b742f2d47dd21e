// Package session tracks the lifetime of one interactive GENGAR session:
// running flag, start time, and the append-only interaction history.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one processed input and its response. Immutable once appended.
type Record struct {
	Input     string
	Response  string
	Timestamp time.Time
	Elapsed   time.Duration
}

// Snapshot is a read-only view used by the status directive and the
// scheduled report.
type Snapshot struct {
	Started   bool
	StartedAt time.Time
	Uptime    time.Duration
	Count     int
}

// Summary is the serializable end-of-session document.
type Summary struct {
	SessionID     string    `json:"session_id"`
	SessionStart  time.Time `json:"session_start"`
	SessionEnd    time.Time `json:"session_end"`
	Duration      string    `json:"duration"`
	TotalCommands int       `json:"total_commands"`
	Inputs        []string  `json:"commands_processed"`
}

// State owns the session bookkeeping. The router is the only writer; the
// mutex exists because the scheduled report reads snapshots from its own
// goroutine.
type State struct {
	mu        sync.RWMutex
	id        string
	running   bool
	startedAt time.Time
	history   []Record

	now func() time.Time
}

func New() *State {
	return &State{id: uuid.NewString(), now: time.Now}
}

func (s *State) ID() string {
	return s.id
}

// Start marks the session running and stamps the start time. Calling it
// again overwrites the start time; the router only calls it once.
func (s *State) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	s.startedAt = s.now()
}

func (s *State) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

func (s *State) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Append records one interaction and returns the stored record. It never
// fails; persistence is the recorder's problem, not the session's.
func (s *State) Append(input, response string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var elapsed time.Duration
	if !s.startedAt.IsZero() {
		elapsed = now.Sub(s.startedAt)
	}
	rec := Record{Input: input, Response: response, Timestamp: now, Elapsed: elapsed}
	s.history = append(s.history, rec)
	return rec
}

func (s *State) History() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.history))
	copy(out, s.history)
	return out
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Started:   !s.startedAt.IsZero(),
		StartedAt: s.startedAt,
		Count:     len(s.history),
	}
	if snap.Started {
		snap.Uptime = s.now().Sub(s.startedAt)
	}
	return snap
}

// Summarize produces the end-of-session document. Returns ok=false when
// the session never started, in which case there is nothing to persist.
func (s *State) Summarize() (Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.startedAt.IsZero() {
		return Summary{}, false
	}
	end := s.now()
	inputs := make([]string, 0, len(s.history))
	for _, r := range s.history {
		inputs = append(inputs, r.Input)
	}
	return Summary{
		SessionID:     s.id,
		SessionStart:  s.startedAt,
		SessionEnd:    end,
		Duration:      end.Sub(s.startedAt).String(),
		TotalCommands: len(s.history),
		Inputs:        inputs,
	}, true
}
