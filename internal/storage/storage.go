package storage

import (
	"time"

	"gengar/internal/session"
)

// Event represents a single processed input and the response GENGAR gave.
// It is intentionally simple to allow future DB implementations.
// Events are expected to be appended in chronological order.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Input     string    `json:"user_input"`
	Response  string    `json:"response"`
	// Source names the dispatch step that produced the response:
	// "directive", "command", "model", or "catalog:<topic>".
	Source   string `json:"source"`
	InDomain bool   `json:"in_domain"`
	Elapsed  string `json:"session_duration"`
}

// Recorder abstracts persistence of interaction events.
// Implementations can be file-based, database, etc.
// LoadInteractions should return events in chronological order.
// AppendInteraction should atomically append a new event.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendInteraction(event Event) error
	LoadInteractions() ([]Event, error)
}

// SummaryWriter persists the end-of-session summary document.
type SummaryWriter interface {
	WriteSummary(s session.Summary) error
}
