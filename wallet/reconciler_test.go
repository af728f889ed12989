package wallet

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/defai/walletgate/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnector struct {
	account       *core.Account
	connectErr    error
	connected     bool
	disconnects   int
	disconnectErr error
}

func (f *fakeConnector) Connect(ctx context.Context) (*core.Account, error) {
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	f.connected = true
	return f.account, nil
}

func (f *fakeConnector) Disconnect(ctx context.Context) error {
	f.disconnects++
	f.connected = false
	return f.disconnectErr
}

func (f *fakeConnector) Connected(ctx context.Context) bool { return f.connected }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAccount() core.Account {
	return core.Account{
		Address:    "0xAbC0000000000000000000000000000000000123",
		BalanceWei: "1234567890000000000",
		Symbol:     "ETH",
		Decimals:   18,
	}
}

func TestInjectedConnectFlow(t *testing.T) {
	r := NewReconciler(&fakeConnector{}, discardLogger())
	assert.Equal(t, StateDisconnected, r.State())

	require.NoError(t, r.BeginInjectedConnect())
	assert.Equal(t, StatePendingInjected, r.State())

	r.InjectedConnected(testAccount())
	assert.Equal(t, StateConnectedInjected, r.State())

	session := r.Session()
	assert.True(t, session.IsConnected)
	assert.Equal(t, "0xAbC0000000000000000000000000000000000123", session.Address)
	assert.Equal(t, "1.2346 ETH", session.Balance)
	assert.Equal(t, core.ConnectorInjected, session.Connector)
}

func TestUnsolicitedInjectedConnectIgnored(t *testing.T) {
	r := NewReconciler(&fakeConnector{}, discardLogger())

	// Connector claims connected with no user-initiated attempt, e.g. a
	// silent reconnect from earlier browser state.
	r.InjectedConnected(testAccount())

	assert.Equal(t, StateDisconnected, r.State())
	assert.False(t, r.Session().IsConnected)
}

func TestVerifiedConnectFlow(t *testing.T) {
	r := NewReconciler(&fakeConnector{}, discardLogger())

	require.NoError(t, r.BeginVerifiedConnect())
	assert.Equal(t, StatePendingVerified, r.State())

	r.VerifiedConnected("0xAbC0000000000000000000000000000000000123")
	assert.Equal(t, StateConnectedVerified, r.State())

	session := r.Session()
	assert.True(t, session.IsConnected)
	assert.Equal(t, core.ConnectorVerified, session.Connector)
	assert.Empty(t, session.Balance)
}

func TestVerifiedWinsConflictIgnored(t *testing.T) {
	r := NewReconciler(&fakeConnector{}, discardLogger())

	require.NoError(t, r.BeginInjectedConnect())
	r.InjectedConnected(testAccount())

	// A late verified success for a different address must not steal the
	// session.
	require.Error(t, r.BeginVerifiedConnect())
	r.VerifiedConnected("0xB000000000000000000000000000000000000000")

	session := r.Session()
	assert.Equal(t, core.ConnectorInjected, session.Connector)
	assert.Equal(t, "0xAbC0000000000000000000000000000000000123", session.Address)
}

func TestConcurrentAttemptsFirstSuccessWins(t *testing.T) {
	r := NewReconciler(&fakeConnector{}, discardLogger())

	require.NoError(t, r.BeginInjectedConnect())
	require.NoError(t, r.BeginVerifiedConnect())

	// Verified resolves first.
	r.VerifiedConnected("0xB000000000000000000000000000000000000000")
	assert.Equal(t, StateConnectedVerified, r.State())

	// Injected resolves later; its success is dropped, not merged.
	r.InjectedConnected(testAccount())
	session := r.Session()
	assert.Equal(t, core.ConnectorVerified, session.Connector)
	assert.Equal(t, "0xB000000000000000000000000000000000000000", session.Address)
}

func TestInjectedDropResetsSession(t *testing.T) {
	r := NewReconciler(&fakeConnector{}, discardLogger())

	require.NoError(t, r.BeginInjectedConnect())
	r.InjectedConnected(testAccount())

	r.InjectedDropped()

	assert.Equal(t, StateDisconnected, r.State())
	session := r.Session()
	assert.False(t, session.IsConnected)
	assert.Empty(t, session.Address)
	assert.Empty(t, session.Balance)
	assert.Equal(t, core.ConnectorNone, session.Connector)
}

func TestInjectedDropIgnoredWhenVerifiedActive(t *testing.T) {
	r := NewReconciler(&fakeConnector{}, discardLogger())

	require.NoError(t, r.BeginVerifiedConnect())
	r.VerifiedConnected("0xB000000000000000000000000000000000000000")

	r.InjectedDropped()

	assert.Equal(t, StateConnectedVerified, r.State())
}

func TestDisconnectInjectedCallsConnector(t *testing.T) {
	conn := &fakeConnector{}
	r := NewReconciler(conn, discardLogger())

	require.NoError(t, r.BeginInjectedConnect())
	r.InjectedConnected(testAccount())

	require.NoError(t, r.Disconnect(context.Background()))
	assert.Equal(t, 1, conn.disconnects)
	assert.Equal(t, StateDisconnected, r.State())
}

func TestDisconnectVerifiedIsLocalOnly(t *testing.T) {
	conn := &fakeConnector{}
	r := NewReconciler(conn, discardLogger())

	require.NoError(t, r.BeginVerifiedConnect())
	r.VerifiedConnected("0xB000000000000000000000000000000000000000")

	require.NoError(t, r.Disconnect(context.Background()))
	// No network call of any kind for the verified path.
	assert.Equal(t, 0, conn.disconnects)

	session := r.Session()
	assert.False(t, session.IsConnected)
	assert.Empty(t, session.Address)
	assert.Equal(t, core.ConnectorNone, session.Connector)
}

func TestStaleSuccessAfterDisconnectIgnored(t *testing.T) {
	r := NewReconciler(&fakeConnector{}, discardLogger())

	require.NoError(t, r.BeginVerifiedConnect())
	require.NoError(t, r.Disconnect(context.Background()))

	// The in-flight response lands after the user abandoned the attempt.
	r.VerifiedConnected("0xB000000000000000000000000000000000000000")
	assert.Equal(t, StateDisconnected, r.State())
}

func TestReconnectRequiresExplicitDisconnect(t *testing.T) {
	r := NewReconciler(&fakeConnector{}, discardLogger())

	require.NoError(t, r.BeginInjectedConnect())
	r.InjectedConnected(testAccount())

	assert.ErrorIs(t, r.BeginInjectedConnect(), core.ErrConnectInProgress)
	assert.ErrorIs(t, r.BeginVerifiedConnect(), core.ErrConnectInProgress)

	require.NoError(t, r.Disconnect(context.Background()))
	assert.NoError(t, r.BeginVerifiedConnect())
}

func TestFormatBalance(t *testing.T) {
	assert.Equal(t, "1.2346 ETH", FormatBalance("1234567890000000000", 18, "ETH"))
	assert.Equal(t, "0.0000 USDC", FormatBalance("1", 6, "USDC"))
	assert.Equal(t, "", FormatBalance("", 18, "ETH"))
	assert.Equal(t, "", FormatBalance("not-a-number", 18, "ETH"))
}
