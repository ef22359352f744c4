package security

import (
	"sync"
	"time"
)

// AttemptStore counts failed login attempts per key within a fixed window.
// The store is injected so it can be swapped for a shared backend; the
// default keeps counters in process memory.
type AttemptStore interface {
	// Record adds one failed attempt and returns the count inside the
	// current window.
	Record(key string) int
	// Count returns the attempts inside the current window without
	// recording one.
	Count(key string) int
	// Reset clears the counter, called after a successful login.
	Reset(key string)
}

// LoginLimiter rejects login attempts for a key once the failure count
// reaches the limit within the window.
type LoginLimiter struct {
	store AttemptStore
	limit int
}

func NewLoginLimiter(store AttemptStore, limit int) *LoginLimiter {
	return &LoginLimiter{store: store, limit: limit}
}

// Blocked reports whether the key has exhausted its attempts.
func (l *LoginLimiter) Blocked(key string) bool {
	return l.store.Count(key) >= l.limit
}

// Fail records a failed attempt and reports whether the key is now blocked.
func (l *LoginLimiter) Fail(key string) bool {
	return l.store.Record(key) >= l.limit
}

// Succeed clears the key's counter.
func (l *LoginLimiter) Succeed(key string) {
	l.store.Reset(key)
}

type windowEntry struct {
	count       int
	windowStart time.Time
}

// memoryAttemptStore is the in-process AttemptStore. Entries reset lazily
// when their window has elapsed.
type memoryAttemptStore struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]*windowEntry
	now     func() time.Time
}

func NewMemoryAttemptStore(window time.Duration) AttemptStore {
	return &memoryAttemptStore{
		window:  window,
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

func (s *memoryAttemptStore) Record(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.current(key)
	if e == nil {
		e = &windowEntry{windowStart: s.now()}
		s.entries[key] = e
	}
	e.count++
	return e.count
}

func (s *memoryAttemptStore) Count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e := s.current(key); e != nil {
		return e.count
	}
	return 0
}

func (s *memoryAttemptStore) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// current returns the live entry for key, discarding it when the window has
// expired. Callers must hold the mutex.
func (s *memoryAttemptStore) current(key string) *windowEntry {
	e, ok := s.entries[key]
	if !ok {
		return nil
	}
	if s.now().Sub(e.windowStart) >= s.window {
		delete(s.entries, key)
		return nil
	}
	return e
}
