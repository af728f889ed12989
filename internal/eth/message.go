package eth

import (
	"fmt"
	"strings"
	"time"
)

// Message is the structured sign-in message the wallet agent signs.
// Rendering follows the EIP-4361 layout; optional lines are omitted when
// their field is zero.
type Message struct {
	Domain         string
	Address        string
	Statement      string
	URI            string
	Version        string
	ChainID        int64
	Nonce          string
	IssuedAt       time.Time
	ExpirationTime time.Time
	NotBefore      time.Time
}

// String renders the canonical message text. The nonce must be alphanumeric;
// callers enforce that at issuance so the rendered text is unambiguous.
func (m Message) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s wants you to sign in with your Ethereum account:\n%s\n", m.Domain, m.Address)

	if m.Statement != "" {
		fmt.Fprintf(&b, "\n%s\n", m.Statement)
	}

	fmt.Fprintf(&b, "\nURI: %s", m.URI)
	fmt.Fprintf(&b, "\nVersion: %s", m.Version)
	fmt.Fprintf(&b, "\nChain ID: %d", m.ChainID)
	fmt.Fprintf(&b, "\nNonce: %s", m.Nonce)

	if !m.IssuedAt.IsZero() {
		fmt.Fprintf(&b, "\nIssued At: %s", m.IssuedAt.UTC().Format(time.RFC3339))
	}
	if !m.ExpirationTime.IsZero() {
		fmt.Fprintf(&b, "\nExpiration Time: %s", m.ExpirationTime.UTC().Format(time.RFC3339))
	}
	if !m.NotBefore.IsZero() {
		fmt.Fprintf(&b, "\nNot Before: %s", m.NotBefore.UTC().Format(time.RFC3339))
	}

	return b.String()
}
