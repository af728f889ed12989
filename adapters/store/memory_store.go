package store

import (
	"context"
	"sync"
	"time"

	"github.com/defai/walletgate/ports"
)

// MemoryStore is an in-memory implementation of the consumption ledger
type MemoryStore struct {
	consumed map[string]time.Time
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() ports.Store {
	return &MemoryStore{
		consumed: make(map[string]time.Time),
	}
}

// Consume marks a key as consumed until its TTL elapses
func (s *MemoryStore) Consume(ctx context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiryTime := time.Now().Add(ttl)
	s.consumed[key] = expiryTime

	// Start a cleanup goroutine
	go func() {
		time.Sleep(ttl)

		s.mu.Lock()
		defer s.mu.Unlock()

		// Only delete if the expiry time hasn't changed
		if storedExpiry, exists := s.consumed[key]; exists && !storedExpiry.After(expiryTime) {
			delete(s.consumed, key)
		}
	}()

	return nil
}

// IsConsumed checks whether a key is marked consumed
func (s *MemoryStore) IsConsumed(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiryTime, exists := s.consumed[key]
	if !exists {
		return false, nil
	}

	// An expired entry no longer counts as consumed
	if time.Now().After(expiryTime) {
		return false, nil
	}

	return true, nil
}
