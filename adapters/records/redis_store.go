package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/defai/walletgate/core"
	"github.com/defai/walletgate/ports"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps vault records in a Redis hash keyed by vault address.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a new Redis vault store
func NewRedisStore(client *redis.Client) ports.VaultStore {
	return &RedisStore{
		client: client,
		key:    "walletgate:vaults",
	}
}

// Insert adds a vault record
func (s *RedisStore) Insert(ctx context.Context, vault core.Vault) error {
	payload, err := json.Marshal(vault)
	if err != nil {
		return fmt.Errorf("failed to marshal vault: %w", err)
	}

	if err := s.client.HSet(ctx, s.key, vault.Address, payload).Err(); err != nil {
		return fmt.Errorf("failed to insert vault: %w", err)
	}

	return nil
}

// List returns all vault records
func (s *RedisStore) List(ctx context.Context) ([]core.Vault, error) {
	rows, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list vaults: %w", err)
	}

	vaults := make([]core.Vault, 0, len(rows))
	for _, raw := range rows {
		var v core.Vault
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal vault record: %w", err)
		}
		vaults = append(vaults, v)
	}

	return vaults, nil
}

// ListByChain returns vault records for one chain
func (s *RedisStore) ListByChain(ctx context.Context, chain string) ([]core.Vault, error) {
	vaults, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []core.Vault
	for _, v := range vaults {
		if v.Chain == chain {
			out = append(out, v)
		}
	}
	return out, nil
}
