package core

import "time"

// Statement is the human-readable purpose line included in every
// wallet-auth challenge and echoed back in the signed payload.
const Statement = "Connect to DEFAI - AI-Powered Vaults"

const (
	// ChallengeValidity is how far into the future a signed payload may expire.
	ChallengeValidity = 7 * 24 * time.Hour

	// ChallengeBackdate tolerates clock skew between the server and the
	// wallet agent by accepting payloads valid from this long in the past.
	ChallengeBackdate = 24 * time.Hour
)

// ChallengeRequest carries the fields the wallet-identity agent signs over.
type ChallengeRequest struct {
	Nonce          string    `json:"nonce"`
	RequestID      string    `json:"request_id"`
	Statement      string    `json:"statement"`
	ExpirationTime time.Time `json:"expiration_time"`
	NotBefore      time.Time `json:"not_before"`
}

// SignedAuthPayload is the wallet agent's response to a challenge.
// It is consumed exactly once by signature verification.
type SignedAuthPayload struct {
	Statement      string    `json:"statement"`
	Nonce          string    `json:"nonce"`
	Address        string    `json:"address"`
	ExpirationTime time.Time `json:"expirationTime"`
	NotBefore      time.Time `json:"notBeforeTime"`
	Signature      string    `json:"signature"`
}

// Session represents an authenticated user session
type Session struct {
	ID            string    // Unique session identifier
	Address       string    // Verified wallet address of the user
	IssuedAt      time.Time // When the session was created
	RefreshExpiry time.Time // When the refresh capability expires
	AccessExpiry  time.Time // When the access capability expires
	RefreshID     string    // Unique identifier for the refresh token
}
