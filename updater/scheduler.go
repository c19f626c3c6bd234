package updater

import (
	"sync"
	"time"

	"github.com/emberwallet/ember/common"
)

// Scheduler drives the recurring automatic update check. The first check
// after Start runs after a short delay so a fresh install hears about
// updates quickly; every later check runs at the steady interval.
//
// Each slot is a one-shot timer that re-arms after the check completes, so
// a slow check can never overlap the next one. Checks are skipped, but the
// timer still re-arms, while the daemon is offline or the user has turned
// automatic checks off.
type Scheduler struct {
	mu      sync.Mutex
	timer   *time.Timer
	running bool
	enabled bool

	firstDelay time.Duration
	interval   time.Duration

	check   func()
	offline func() bool
	logger  common.Logger
}

// NewScheduler creates a scheduler. check runs on the scheduler's own
// goroutine at each slot; offline reports whether connectivity is absent.
func NewScheduler(check func(), offline func() bool, logger common.Logger) *Scheduler {
	return &Scheduler{
		firstDelay: common.UpdateCheckFirstDelay,
		interval:   common.UpdateCheckInterval,
		enabled:    true,
		check:      check,
		offline:    offline,
		logger:     logger,
	}
}

// Start arms the first-run timer. Calling Start on a running scheduler is
// a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.timer = time.AfterFunc(s.firstDelay, s.tick)
	s.logger.Debug("Update scheduler started, first check in %v", s.firstDelay)
}

// Stop cancels any pending slot. Safe to call repeatedly.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.logger.Debug("Update scheduler stopped")
}

// SetEnabled toggles whether slots actually run the check. The timer keeps
// cycling either way, so re-enabling needs no re-arm.
func (s *Scheduler) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	run := s.enabled && !s.offline()
	s.mu.Unlock()

	if run {
		s.check()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.timer = time.AfterFunc(s.interval, s.tick)
}
