package ports

import (
	"context"

	"github.com/defai/walletgate/core"
)

// IdentityProvider is the wallet-identity agent that turns a challenge into
// a signed auth payload. Calls are stateless: after any failure the caller
// re-invokes with a freshly issued nonce.
//
// WalletAuth may block arbitrarily long waiting for user approval, so callers
// that need a bound should pass a context with a deadline. Failures map to
// core.ErrUserRejected, core.ErrProviderUnavailable or core.ErrChallengeTimeout.
type IdentityProvider interface {
	// Available reports whether the agent is installed and reachable.
	Available(ctx context.Context) bool

	// WalletAuth asks the agent to sign the challenge.
	WalletAuth(ctx context.Context, req core.ChallengeRequest) (*core.SignedAuthPayload, error)
}
