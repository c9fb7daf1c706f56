package handler

import (
	"sync"
	"sync/atomic"
	"time"
)

// RunState admits one pipeline run at a time and remembers when the last
// one finished. Each run owns a browser and the corpus has one writer.
type RunState struct {
	running atomic.Bool

	mu      sync.Mutex
	lastRun time.Time
}

// TryStart claims the run slot. It reports false when a run is active.
func (s *RunState) TryStart() bool {
	return s.running.CompareAndSwap(false, true)
}

// Finish releases the run slot.
func (s *RunState) Finish() {
	s.mu.Lock()
	s.lastRun = time.Now()
	s.mu.Unlock()
	s.running.Store(false)
}

// Running reports whether a run is active.
func (s *RunState) Running() bool {
	return s.running.Load()
}

// LastRun returns when the last run finished, or the zero time.
func (s *RunState) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}
