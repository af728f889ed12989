package core

import "errors"

var (
	// Nonce issuance and signature verification.
	ErrNonceGeneration    = errors.New("nonce generation failed")
	ErrNonceMismatch      = errors.New("nonce does not match the issued nonce")
	ErrNonceConsumed      = errors.New("nonce has already been consumed")
	ErrPayloadExpired     = errors.New("signed payload has expired")
	ErrPayloadNotYetValid = errors.New("signed payload is not yet valid")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrInvalidAddress     = errors.New("invalid ethereum address")

	// Identity-provider failures, typed so the UI can tell them apart.
	ErrUserRejected        = errors.New("user rejected the wallet auth request")
	ErrProviderUnavailable = errors.New("wallet-identity agent is not available")
	ErrChallengeTimeout    = errors.New("wallet auth request timed out")

	// Session tokens.
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenInvalidated = errors.New("token has been invalidated")
	ErrInvalidToken     = errors.New("invalid token")

	// Wallet session reconciliation.
	ErrConnectInProgress = errors.New("a connect attempt is already in flight")
	ErrNotConnected      = errors.New("no wallet is connected")
)
