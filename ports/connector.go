package ports

import (
	"context"

	"github.com/defai/walletgate/core"
)

// InjectedConnector abstracts the browser-injected wallet. It reports
// connection state asynchronously; the reconciler decides whether that
// state is trusted.
type InjectedConnector interface {
	// Connect opens the wallet's connect flow and returns the account once
	// the wallet confirms, or an error if the user aborts.
	Connect(ctx context.Context) (*core.Account, error)

	// Disconnect tears down the wallet connection.
	Disconnect(ctx context.Context) error

	// Connected reports whether the underlying connection is still live.
	Connected(ctx context.Context) bool
}
