// Debounced autosave. Any edit (re)starts a fixed-delay timer; only the
// most recent trigger within the window results in one full save. A new
// edit supersedes a previously scheduled save; an in-flight save is never
// cancelled.
package session

import (
	"time"

	"go.uber.org/zap"
)

// scheduleAutosaveLocked (re)arms the autosave timer. Caller holds s.mu.
func (s *Session) scheduleAutosaveLocked() {
	if s.closed {
		return
	}
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.saveTimer = nil
		if err := s.saveAllLocked(); err != nil {
			s.log.Error("autosave failed", zap.Error(err))
		}
	})
}

// SaveNow bypasses the debounce: a pending timer is cancelled and the full
// snapshot written immediately. Used by the explicit Save action, whose
// caller surfaces a confirmation on success.
func (s *Session) SaveNow() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	return s.saveAllLocked()
}

// AutosavePending reports whether a debounced save is scheduled.
func (s *Session) AutosavePending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveTimer != nil
}
