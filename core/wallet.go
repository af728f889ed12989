package core

// ConnectorKind identifies which connection source currently backs the
// unified wallet session.
type ConnectorKind string

const (
	ConnectorNone     ConnectorKind = ""
	ConnectorInjected ConnectorKind = "injected"
	ConnectorVerified ConnectorKind = "verified"
)

// WalletSession is the unified client-side view of the connected wallet.
// At most one connector is authoritative at a time.
type WalletSession struct {
	IsConnected bool
	Address     string
	Balance     string // display-formatted, empty when unknown
	Connector   ConnectorKind
}

// Account is what the injected-wallet connector reports for a live connection.
type Account struct {
	Address string
	// Balance in the chain's smallest unit, as a decimal string. Empty when
	// the connector has not fetched it yet.
	BalanceWei string
	Symbol     string
	Decimals   int32
}
