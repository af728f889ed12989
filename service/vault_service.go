package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/defai/walletgate/chains"
	"github.com/defai/walletgate/core"
	"github.com/defai/walletgate/ports"
	"github.com/ethereum/go-ethereum/common"
)

// VaultService manages vault metadata records.
type VaultService struct {
	store ports.VaultStore
}

// NewVaultService creates a new vault service
func NewVaultService(store ports.VaultStore) *VaultService {
	return &VaultService{store: store}
}

// Register validates and inserts a vault record.
func (s *VaultService) Register(ctx context.Context, vault core.Vault) error {
	if !common.IsHexAddress(vault.Address) {
		return core.ErrInvalidAddress
	}
	if _, ok := chains.Get(chains.ChainName(vault.Chain)); !ok {
		return fmt.Errorf("unknown chain %q", vault.Chain)
	}
	if strings.TrimSpace(vault.Name) == "" || strings.TrimSpace(vault.Symbol) == "" {
		return fmt.Errorf("vault name and symbol are required")
	}

	// Store addresses checksummed so lookups are canonical.
	vault.Address = common.HexToAddress(vault.Address).Hex()

	if err := s.store.Insert(ctx, vault); err != nil {
		return fmt.Errorf("failed to insert vault: %w", err)
	}

	return nil
}

// List returns all vault records, optionally filtered by chain.
func (s *VaultService) List(ctx context.Context, chain string) ([]core.Vault, error) {
	if chain == "" {
		return s.store.List(ctx)
	}
	return s.store.ListByChain(ctx, chain)
}
