package wallet

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/defai/walletgate/core"
	"github.com/defai/walletgate/ports"
	"github.com/google/uuid"
)

// Path identifies which connect flow the user picked.
type Path string

const (
	PathInjected Path = "injected"
	PathVerified Path = "verified"
)

// Controller orchestrates the connect modal: it forwards the user's choice
// to the matching flow and relays terminal success or failure back to the
// reconciler. Its only state is whether an attempt is in flight and which
// path it took.
type Controller struct {
	reconciler *Reconciler
	connector  ports.InjectedConnector
	provider   ports.IdentityProvider
	auth       *AuthClient
	logger     *slog.Logger

	mu       sync.Mutex
	inFlight bool
	path     Path
}

// NewController creates a connect controller.
func NewController(
	reconciler *Reconciler,
	connector ports.InjectedConnector,
	provider ports.IdentityProvider,
	auth *AuthClient,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		reconciler: reconciler,
		connector:  connector,
		provider:   provider,
		auth:       auth,
		logger:     logger,
	}
}

// InFlight reports whether a connect attempt is currently running.
func (c *Controller) InFlight() (bool, Path) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight, c.path
}

func (c *Controller) begin(path Path) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return core.ErrConnectInProgress
	}
	c.inFlight = true
	c.path = path
	return nil
}

func (c *Controller) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	c.path = ""
}

// ConnectInjected runs the injected-wallet flow to completion.
func (c *Controller) ConnectInjected(ctx context.Context) error {
	if err := c.begin(PathInjected); err != nil {
		return err
	}
	defer c.finish()

	if err := c.reconciler.BeginInjectedConnect(); err != nil {
		return err
	}

	account, err := c.connector.Connect(ctx)
	if err != nil {
		c.reconciler.InjectedAttemptFailed()
		return err
	}

	c.reconciler.InjectedConnected(*account)
	return nil
}

// ConnectVerified runs the full verified-identity handshake: fresh nonce,
// wallet-agent signature, server-side verification. The nonce flows
// unmodified from issuance through to verification; any failure leaves the
// reconciler disconnected and the flow safe to re-run with a new nonce.
func (c *Controller) ConnectVerified(ctx context.Context) error {
	if err := c.begin(PathVerified); err != nil {
		return err
	}
	defer c.finish()

	if !c.provider.Available(ctx) {
		return core.ErrProviderUnavailable
	}

	if err := c.reconciler.BeginVerifiedConnect(); err != nil {
		return err
	}

	nonce, err := c.auth.FetchNonce(ctx)
	if err != nil {
		c.reconciler.VerifiedAttemptFailed()
		return err
	}

	now := time.Now()
	payload, err := c.provider.WalletAuth(ctx, core.ChallengeRequest{
		Nonce:          nonce,
		RequestID:      uuid.New().String(),
		Statement:      core.Statement,
		ExpirationTime: now.Add(core.ChallengeValidity),
		NotBefore:      now.Add(-core.ChallengeBackdate),
	})
	if err != nil {
		c.reconciler.VerifiedAttemptFailed()
		return err
	}

	result, err := c.auth.VerifySignature(ctx, payload, nonce)
	if err != nil {
		c.reconciler.VerifiedAttemptFailed()
		return err
	}
	if !result.IsValid {
		c.reconciler.VerifiedAttemptFailed()
		return core.ErrInvalidSignature
	}

	c.reconciler.VerifiedConnected(result.Address)
	return nil
}

// Disconnect tears down the active session.
func (c *Controller) Disconnect(ctx context.Context) error {
	return c.reconciler.Disconnect(ctx)
}

// FailureMessage maps a connect-flow error to the user-facing message shown
// in the modal. Each typed failure gets its own actionable text instead of
// a generic error.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrProviderUnavailable):
		return "World App is not installed. Install it to connect with your verified identity."
	case errors.Is(err, core.ErrUserRejected):
		return "Connection request was rejected in your wallet."
	case errors.Is(err, core.ErrChallengeTimeout):
		return "The wallet did not respond in time. Please try again."
	case errors.Is(err, core.ErrInvalidSignature),
		errors.Is(err, core.ErrNonceMismatch),
		errors.Is(err, core.ErrNonceConsumed),
		errors.Is(err, core.ErrPayloadExpired),
		errors.Is(err, core.ErrPayloadNotYetValid):
		return "Verification failed, please try again."
	case errors.Is(err, core.ErrConnectInProgress):
		return "A connection attempt is already in progress."
	default:
		return "Could not connect the wallet. Please try again."
	}
}
