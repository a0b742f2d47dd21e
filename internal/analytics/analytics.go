// Package analytics aggregates persisted interaction events into the
// numbers shown by the scheduled report.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gengar/internal/storage"
)

// Stats summarizes a slice of interaction events.
type Stats struct {
	Date              string         `json:"date,omitempty"`
	TotalInteractions int            `json:"total_interactions"`
	InDomain          int            `json:"in_domain"`
	UniqueSessions    int            `json:"unique_sessions"`
	BySource          map[string]int `json:"by_source"`
}

// Summarize aggregates all events.
func Summarize(events []storage.Event) *Stats {
	stats := &Stats{BySource: make(map[string]int)}
	sessions := make(map[string]bool)
	for _, ev := range events {
		if ev.Input == "" {
			continue
		}
		stats.TotalInteractions++
		if ev.InDomain {
			stats.InDomain++
		}
		stats.BySource[ev.Source]++
		sessions[ev.SessionID] = true
	}
	stats.UniqueSessions = len(sessions)
	return stats
}

// SummarizeDay aggregates only the events that fall on targetDate's day.
func SummarizeDay(events []storage.Event, targetDate time.Time) *Stats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var dayEvents []storage.Event
	for _, ev := range events {
		if ev.Timestamp.Before(startOfDay) || !ev.Timestamp.Before(endOfDay) {
			continue
		}
		dayEvents = append(dayEvents, ev)
	}
	stats := Summarize(dayEvents)
	stats.Date = startOfDay.Format("2006-01-02")
	return stats
}

// Format renders stats as the single-line report the scheduler logs.
func (s *Stats) Format() string {
	sources := make([]string, 0, len(s.BySource))
	for src := range s.BySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	parts := make([]string, 0, len(sources))
	for _, src := range sources {
		parts = append(parts, fmt.Sprintf("%s=%d", src, s.BySource[src]))
	}
	label := ""
	if s.Date != "" {
		label = s.Date + ": "
	}
	return fmt.Sprintf("%s%d interactions (%d in-domain) across %d session(s) [%s]",
		label, s.TotalInteractions, s.InDomain, s.UniqueSessions, strings.Join(parts, ", "))
}
