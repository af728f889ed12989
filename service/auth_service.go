package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/defai/walletgate/core"
	"github.com/defai/walletgate/internal/eth"
	"github.com/defai/walletgate/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// SIWEConfig pins the fields of the canonical sign-in message that are not
// part of the signed payload itself.
type SIWEConfig struct {
	Domain  string
	URI     string
	Version string
	ChainID int64
}

// LoginResult is the outcome of a successful signature verification.
type LoginResult struct {
	Address      string
	AccessToken  string
	RefreshToken string
}

// AuthService handles nonce issuance and signature verification
type AuthService struct {
	tokenizer ports.Tokenizer
	store     ports.Store
	eventPub  ports.EventPublisher
	siwe      SIWEConfig
	logger    *slog.Logger

	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tokenizer ports.Tokenizer,
	store ports.Store,
	eventPub ports.EventPublisher,
	siwe SIWEConfig,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		tokenizer:  tokenizer,
		store:      store,
		eventPub:   eventPub,
		siwe:       siwe,
		logger:     logger,
		accessTTL:  5 * time.Minute,
		refreshTTL: 5 * 24 * time.Hour, // 5 days
	}
}

// IssueNonce generates a fresh single-use nonce: 32 lowercase hex characters,
// no separators, so the signed statement stays strictly alphanumeric.
// Issuing supersedes any earlier nonce for the same client; the transport
// layer overwrites the nonce cookie with the returned value.
func (s *AuthService) IssueNonce() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		// Secure randomness is not negotiable here. Surface the failure
		// instead of degrading to a guessable source.
		return "", fmt.Errorf("%w: %v", core.ErrNonceGeneration, err)
	}

	return strings.ReplaceAll(id.String(), "-", ""), nil
}

// VerifySignature validates a signed auth payload against the nonce the
// server issued (read from the tamper-resistant cookie, never from the
// request body). The issued nonce is consumed exactly once, whatever the
// verdict, so neither a success nor a failure can be replayed.
func (s *AuthService) VerifySignature(ctx context.Context, payload *core.SignedAuthPayload, issuedNonce string) (*LoginResult, error) {
	if issuedNonce == "" {
		return nil, core.ErrNonceMismatch
	}

	consumed, err := s.store.IsConsumed(ctx, issuedNonce)
	if err != nil {
		return nil, fmt.Errorf("failed to check nonce consumption: %w", err)
	}
	if consumed {
		return nil, core.ErrNonceConsumed
	}

	// Consume before any further checks so no verdict, pass or fail, can be
	// probed twice with the same nonce.
	if err := s.store.Consume(ctx, issuedNonce, core.ChallengeValidity+core.ChallengeBackdate); err != nil {
		return nil, fmt.Errorf("failed to consume nonce: %w", err)
	}

	// Nonce binding first: a validly-signed but stale payload must not pass.
	if payload.Nonce != issuedNonce {
		return nil, core.ErrNonceMismatch
	}

	now := time.Now()
	if !payload.NotBefore.IsZero() && now.Before(payload.NotBefore) {
		return nil, core.ErrPayloadNotYetValid
	}
	if payload.ExpirationTime.IsZero() || !now.Before(payload.ExpirationTime) {
		return nil, core.ErrPayloadExpired
	}

	if !common.IsHexAddress(payload.Address) {
		return nil, core.ErrInvalidAddress
	}
	claimed := common.HexToAddress(payload.Address)

	text := s.challengeMessage(payload).String()
	ok, err := eth.VerifyTextSignature(text, payload.Signature, claimed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidSignature, err)
	}
	if !ok {
		return nil, core.ErrInvalidSignature
	}

	return s.createSession(ctx, claimed.Hex())
}

// challengeMessage reconstructs the canonical message the wallet agent
// signed, from the payload fields plus the pinned SIWE configuration.
func (s *AuthService) challengeMessage(payload *core.SignedAuthPayload) eth.Message {
	return eth.Message{
		Domain:         s.siwe.Domain,
		Address:        payload.Address,
		Statement:      payload.Statement,
		URI:            s.siwe.URI,
		Version:        s.siwe.Version,
		ChainID:        s.siwe.ChainID,
		Nonce:          payload.Nonce,
		ExpirationTime: payload.ExpirationTime,
		NotBefore:      payload.NotBefore,
	}
}

// createSession mints access and refresh tokens for a verified address.
func (s *AuthService) createSession(ctx context.Context, address string) (*LoginResult, error) {
	now := time.Now()
	refreshID := uuid.New().String()

	session := &core.Session{
		ID:            uuid.New().String(),
		Address:       address,
		IssuedAt:      now,
		RefreshExpiry: now.Add(s.refreshTTL),
		AccessExpiry:  now.Add(s.accessTTL),
		RefreshID:     refreshID,
	}

	accessToken, err := s.tokenizer.SessionToAccessToken(session)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err := s.tokenizer.SessionToRefreshToken(session)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	// A failed event publish must not fail the login; the session exists
	// either way.
	if err := s.eventPub.PublishLogin(ctx, address, refreshID); err != nil {
		s.logger.Warn("failed to publish login event", "address", address, "error", err)
	}

	return &LoginResult{
		Address:      address,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh rotates the refresh token and issues new access and refresh tokens
func (s *AuthService) Refresh(ctx context.Context, refreshTokenStr string) (string, string, error) {
	session, err := s.tokenizer.RefreshTokenToSession(refreshTokenStr)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", err)
	}

	if time.Now().After(session.RefreshExpiry) {
		return "", "", core.ErrTokenExpired
	}

	invalidated, err := s.store.IsConsumed(ctx, session.RefreshID)
	if err != nil {
		return "", "", fmt.Errorf("failed to check token invalidation: %w", err)
	}
	if invalidated {
		return "", "", core.ErrTokenInvalidated
	}

	// Revoke the old refresh token for the remainder of its lifetime.
	remaining := time.Until(session.RefreshExpiry)
	if err := s.store.Consume(ctx, session.RefreshID, remaining); err != nil {
		return "", "", fmt.Errorf("failed to invalidate old token: %w", err)
	}

	result, err := s.createSession(ctx, session.Address)
	if err != nil {
		return "", "", err
	}

	return result.AccessToken, result.RefreshToken, nil
}

// Logout invalidates a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshTokenStr string) error {
	session, err := s.tokenizer.RefreshTokenToSession(refreshTokenStr)
	if err != nil {
		return fmt.Errorf("invalid refresh token: %w", err)
	}

	// Even an expired token gets an invalidation record, with a floor TTL
	// so slightly skewed clocks cannot resurrect it.
	remaining := time.Until(session.RefreshExpiry)
	if remaining <= 0 {
		remaining = time.Hour
	}

	if err := s.store.Consume(ctx, session.RefreshID, remaining); err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}

	if err := s.eventPub.PublishLogout(ctx, session.Address, session.RefreshID); err != nil {
		s.logger.Warn("failed to publish logout event", "address", session.Address, "error", err)
	}

	return nil
}

// ValidateAccessToken parses an access token and checks it against the
// revocation ledger.
func (s *AuthService) ValidateAccessToken(ctx context.Context, accessToken string) (*core.Session, error) {
	session, err := s.tokenizer.AccessTokenToSession(accessToken)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	if time.Now().After(session.AccessExpiry) {
		return nil, core.ErrTokenExpired
	}

	// Revoking a refresh token takes its access tokens down with it.
	if session.RefreshID != "" {
		invalidated, err := s.store.IsConsumed(ctx, session.RefreshID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token invalidation: %w", err)
		}
		if invalidated {
			return nil, core.ErrTokenInvalidated
		}
	}

	return session, nil
}
