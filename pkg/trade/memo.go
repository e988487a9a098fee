package trade

import (
	"sync"
	"time"
)

// Memo caches the most recent valid trade per currency pair, papering over
// transient gaps in the upstream route finder. It is caller-owned and passed
// into the recompute explicitly; both the staleness window and the capacity
// bound are part of its construction, never process-wide state.
type Memo struct {
	mu      sync.Mutex
	maxSize int
	maxAge  time.Duration
	entries map[string]memoEntry
	now     func() time.Time
}

type memoEntry struct {
	spec    *Spec
	savedAt time.Time
}

// NewMemo creates a memo holding at most maxSize pairs, each valid for
// maxAge. Non-positive maxSize disables the capacity bound; non-positive
// maxAge disables expiry.
func NewMemo(maxSize int, maxAge time.Duration) *Memo {
	return &Memo{
		maxSize: maxSize,
		maxAge:  maxAge,
		entries: make(map[string]memoEntry),
		now:     time.Now,
	}
}

// Put records spec as the last valid trade for its pair.
func (m *Memo) Put(spec *Spec) {
	if m == nil || spec == nil {
		return
	}
	key := spec.PairKey()
	if key == "/" || key == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.maxSize > 0 && len(m.entries) >= m.maxSize {
		if _, exists := m.entries[key]; !exists {
			m.evictOldestLocked()
		}
	}
	m.entries[key] = memoEntry{spec: spec, savedAt: now}
}

// Get returns the last valid trade for the pair, or false if none is cached
// or the cached one has gone stale.
func (m *Memo) Get(inSymbol, outSymbol string) (*Spec, bool) {
	if m == nil {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := inSymbol + "/" + outSymbol
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.maxAge > 0 && m.now().Sub(e.savedAt) > m.maxAge {
		delete(m.entries, key)
		return nil, false
	}
	return e.spec, true
}

// Len reports how many pairs are cached, expired entries included until the
// next Get touches them.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memo) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for k, e := range m.entries {
		if oldestKey == "" || e.savedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.savedAt
		}
	}
	if oldestKey != "" {
		delete(m.entries, oldestKey)
	}
}
