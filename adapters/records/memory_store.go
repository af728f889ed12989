package records

import (
	"context"
	"sync"

	"github.com/defai/walletgate/core"
	"github.com/defai/walletgate/ports"
)

// MemoryStore is an in-memory implementation of the vault record store
type MemoryStore struct {
	vaults []core.Vault
	mu     sync.RWMutex
}

// NewMemoryStore creates a new in-memory vault store
func NewMemoryStore() ports.VaultStore {
	return &MemoryStore{}
}

// Insert adds a vault record
func (s *MemoryStore) Insert(ctx context.Context, vault core.Vault) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vaults = append(s.vaults, vault)
	return nil
}

// List returns all vault records
func (s *MemoryStore) List(ctx context.Context) ([]core.Vault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Vault, len(s.vaults))
	copy(out, s.vaults)
	return out, nil
}

// ListByChain returns vault records for one chain
func (s *MemoryStore) ListByChain(ctx context.Context, chain string) ([]core.Vault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.Vault
	for _, v := range s.vaults {
		if v.Chain == chain {
			out = append(out, v)
		}
	}
	return out, nil
}
