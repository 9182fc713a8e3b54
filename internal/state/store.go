package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/prlogs/internal/github"
)

// Snapshot represents the latest fetch result available to the UI.
type Snapshot struct {
	Result              github.Result
	HasResult           bool
	Generation          uint64 // bumped on every successful update
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
	Loading             bool
}

// IsOffline returns true when GitHub has been unreachable for multiple fetches.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored result. When err is non-nil the previous result
// is kept but the error is recorded for visibility.
func (s *Store) Update(res *github.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loading = false
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	if res != nil {
		s.snapshot.Result = res.Clone()
		s.snapshot.HasResult = true
	} else {
		s.snapshot.Result = github.Result{}
		s.snapshot.HasResult = false
	}
	s.snapshot.Generation++
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// SetLoading marks a fetch as in flight.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Loading = loading
}

// Generation returns the generation of the stored result without copying it.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Generation
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Result = s.snapshot.Result.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
