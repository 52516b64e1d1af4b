package auth

import (
	"sync"
	"time"
)

// Escalating lock durations: 3 failures, then 4, then 5 or more.
const (
	firstLock  = 5 * time.Minute
	secondLock = 15 * time.Minute
	thirdLock  = 60 * time.Minute
)

// Throttle tracks failed login attempts per username and imposes timed
// lockouts. Implementations must be safe for concurrent use.
type Throttle interface {
	RecordFailure(username string)
	RecordSuccess(username string)
	IsLocked(username string) (bool, time.Time)
}

type attemptState struct {
	failures  int
	lockUntil time.Time
}

// MemoryThrottle keeps throttle state in process memory. It is only suitable
// for single-instance deployments: state is lost on restart and not shared
// across replicas.
type MemoryThrottle struct {
	mu       sync.Mutex
	attempts map[string]*attemptState
	now      func() time.Time
}

func NewMemoryThrottle() *MemoryThrottle {
	return &MemoryThrottle{
		attempts: make(map[string]*attemptState),
		now:      time.Now,
	}
}

// RecordFailure bumps the failure counter and, from the third failure on,
// sets a lock. Each new lock replaces any prior one.
func (t *MemoryThrottle) RecordFailure(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.attempts[username]
	if st == nil {
		st = &attemptState{}
		t.attempts[username] = st
	}
	st.failures++

	switch {
	case st.failures >= 5:
		st.lockUntil = t.now().Add(thirdLock)
	case st.failures == 4:
		st.lockUntil = t.now().Add(secondLock)
	case st.failures == 3:
		st.lockUntil = t.now().Add(firstLock)
	}
}

// RecordSuccess returns the username to a clean state: zero failures, no lock.
func (t *MemoryThrottle) RecordSuccess(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, username)
}

// IsLocked reports whether the username is currently locked and until when.
// An expired lock counts as unlocked, but the failure counter survives until
// RecordSuccess clears it, so the next failure escalates.
func (t *MemoryThrottle) IsLocked(username string) (bool, time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.attempts[username]
	if st == nil || st.lockUntil.IsZero() {
		return false, time.Time{}
	}
	if !st.lockUntil.After(t.now()) {
		return false, time.Time{}
	}
	return true, st.lockUntil
}
