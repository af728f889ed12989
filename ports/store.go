package ports

import (
	"context"
	"time"
)

// Store is a single-use consumption ledger. It backs both nonce replay
// prevention (a nonce that went through verification can never be accepted
// again) and refresh-token revocation.
type Store interface {
	Consume(ctx context.Context, key string, ttl time.Duration) error
	IsConsumed(ctx context.Context, key string) (bool, error)
}
