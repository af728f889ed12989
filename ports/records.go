package ports

import (
	"context"

	"github.com/defai/walletgate/core"
)

// VaultStore is the flat record store for vault metadata.
type VaultStore interface {
	Insert(ctx context.Context, vault core.Vault) error
	List(ctx context.Context) ([]core.Vault, error)
	ListByChain(ctx context.Context, chain string) ([]core.Vault, error)
}
