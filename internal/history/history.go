// Package history keeps a bounded, most-recent-first window of generated
// reports. It is the only mutable state shared across uploads.
package history

import (
	"sync"

	"github.com/pratapsingh123om/wqam-dashboard/internal/analyze"
)

// DefaultCapacity mirrors the dashboard's recent-report window.
const DefaultCapacity = 25

// Store is a capped append-front report list, safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	cap     int
	reports []*analyze.Report
}

// New builds a store holding at most capacity reports; non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{cap: capacity}
}

// Add prepends a report, evicting the oldest beyond capacity.
func (s *Store) Add(r *analyze.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append([]*analyze.Report{r}, s.reports...)
	if len(s.reports) > s.cap {
		s.reports = s.reports[:s.cap]
	}
}

// List returns a snapshot, newest first.
func (s *Store) List() []*analyze.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*analyze.Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// Latest returns the newest report, or nil when the store is empty.
func (s *Store) Latest() *analyze.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reports) == 0 {
		return nil
	}
	return s.reports[0]
}

// Len reports the stored count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}
