package otp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type memoryEntry struct {
	code      string
	expiresAt time.Time // zero means no expiry
}

// MemoryStore is a process-local Store guarded by a mutex
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store. A ttl of zero keeps challenges
// until they are consumed or replaced.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the time source used for expiry
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// Put stores code for email, replacing any previous challenge
func (s *MemoryStore) Put(_ context.Context, email, code string) error {
	entry := memoryEntry{code: code}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[NormalizeEmail(email)] = entry
	s.mu.Unlock()
	return nil
}

// Consume deletes the challenge for email if it matches code
func (s *MemoryStore) Consume(_ context.Context, email, code string) (bool, error) {
	key := NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if entry.expired(s.now()) {
		delete(s.entries, key)
		return false, nil
	}
	if entry.code != code {
		return false, nil
	}

	delete(s.entries, key)
	return true, nil
}

// Sweep removes challenges that expired before now and returns how many were removed
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.entries {
		if entry.expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of outstanding challenges
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartSweeper schedules Sweep on a cron schedule such as "@every 1m".
// The caller stops the returned scheduler on shutdown.
func (s *MemoryStore) StartSweeper(schedule string, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if removed := s.Sweep(s.now()); removed > 0 {
			logger.Debug("swept expired otp challenges", zap.Int("removed", removed))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	c.Start()
	return c, nil
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
