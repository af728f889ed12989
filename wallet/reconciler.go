// Package wallet holds the client-side session core: the reconciler that
// merges the two connection sources into one wallet session, and the
// controller that drives the connect flows.
package wallet

import (
	"context"
	"log/slog"
	"sync"

	"github.com/defai/walletgate/core"
	"github.com/defai/walletgate/ports"
)

// State is the reconciler's observable position in the connect lifecycle.
type State string

const (
	StateDisconnected      State = "disconnected"
	StatePendingInjected   State = "pending_injected"
	StateConnectedInjected State = "connected_injected"
	StatePendingVerified   State = "pending_verified"
	StateConnectedVerified State = "connected_verified"
)

// Reconciler merges the injected-wallet connector and the verified-identity
// flow into a single coherent wallet session. Exactly one connector can be
// authoritative; the first explicit success wins and stays authoritative
// until an explicit disconnect or the underlying connector dropping.
//
// Connector state is only trusted after a user-initiated attempt in this
// session. A connector reporting "connected" out of the blue (for example a
// silent reconnect from persisted browser state) is ignored.
type Reconciler struct {
	connector ports.InjectedConnector
	logger    *slog.Logger

	mu              sync.Mutex
	pendingInjected bool
	pendingVerified bool
	session         core.WalletSession
}

// NewReconciler creates a reconciler starting in the disconnected state.
func NewReconciler(connector ports.InjectedConnector, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		connector: connector,
		logger:    logger,
	}
}

// Session returns a copy of the unified wallet session.
func (r *Reconciler) Session() core.WalletSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// State reports the current lifecycle state. With both flows pending at
// once the verified flow is reported, but either success can still win.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.session.Connector == core.ConnectorInjected:
		return StateConnectedInjected
	case r.session.Connector == core.ConnectorVerified:
		return StateConnectedVerified
	case r.pendingVerified:
		return StatePendingVerified
	case r.pendingInjected:
		return StatePendingInjected
	default:
		return StateDisconnected
	}
}

// BeginInjectedConnect records a user-initiated injected-wallet attempt.
func (r *Reconciler) BeginInjectedConnect() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session.IsConnected {
		return core.ErrConnectInProgress
	}
	if r.pendingInjected {
		return core.ErrConnectInProgress
	}

	r.pendingInjected = true
	return nil
}

// BeginVerifiedConnect records a user-initiated verified-identity attempt.
func (r *Reconciler) BeginVerifiedConnect() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session.IsConnected {
		return core.ErrConnectInProgress
	}
	if r.pendingVerified {
		return core.ErrConnectInProgress
	}

	r.pendingVerified = true
	return nil
}

// InjectedConnected handles the injected connector confirming a connection.
// Without a pending user attempt, or with another connector already
// authoritative, the event is logged and dropped.
func (r *Reconciler) InjectedConnected(account core.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.pendingInjected {
		r.logger.Warn("ignoring unsolicited injected connect", "address", account.Address)
		return
	}
	r.pendingInjected = false

	if r.session.IsConnected {
		r.logger.Warn("reconciliation conflict: injected connect while already connected",
			"active", r.session.Connector, "ignored_address", account.Address)
		return
	}

	r.session = core.WalletSession{
		IsConnected: true,
		Address:     account.Address,
		Balance:     FormatBalance(account.BalanceWei, account.Decimals, account.Symbol),
		Connector:   core.ConnectorInjected,
	}
}

// VerifiedConnected handles a successful server-side signature verification.
// The address arrives from the verification response and is never re-derived
// from the injected connector.
func (r *Reconciler) VerifiedConnected(address string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.pendingVerified {
		r.logger.Warn("ignoring unsolicited verified connect", "address", address)
		return
	}
	r.pendingVerified = false

	if r.session.IsConnected {
		r.logger.Warn("reconciliation conflict: verified connect while already connected",
			"active", r.session.Connector, "ignored_address", address)
		return
	}

	r.session = core.WalletSession{
		IsConnected: true,
		Address:     address,
		Connector:   core.ConnectorVerified,
	}
}

// InjectedAttemptFailed clears a pending injected attempt that ended in
// failure or abandonment.
func (r *Reconciler) InjectedAttemptFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingInjected = false
}

// VerifiedAttemptFailed clears a pending verified attempt that ended in
// failure or abandonment.
func (r *Reconciler) VerifiedAttemptFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingVerified = false
}

// InjectedDropped handles the injected connector silently losing its
// connection. Only resets the session when that connector was authoritative.
func (r *Reconciler) InjectedDropped() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session.Connector != core.ConnectorInjected {
		return
	}

	r.logger.Info("injected connector dropped, resetting session", "address", r.session.Address)
	r.reset()
}

// Disconnect tears down the session on explicit user request. For the
// injected connector this also disconnects the underlying wallet; for the
// verified connector there is nothing to revoke remotely, the reset is
// purely local.
func (r *Reconciler) Disconnect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.session.Connector == core.ConnectorInjected && r.connector != nil {
		err = r.connector.Disconnect(ctx)
	}

	r.reset()
	return err
}

// reset clears the session and any pending attempts. Stale in-flight
// responses arriving afterwards find no pending attempt and are ignored.
func (r *Reconciler) reset() {
	r.pendingInjected = false
	r.pendingVerified = false
	r.session = core.WalletSession{}
}
