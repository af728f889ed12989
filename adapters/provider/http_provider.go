package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/defai/walletgate/core"
	"github.com/defai/walletgate/ports"
)

// HTTPProvider talks to a locally running wallet-identity agent over HTTP.
// The agent exposes a health probe and a wallet-auth command; the auth call
// blocks until the user approves or rejects the request in the agent.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a provider against the agent at baseURL.
func NewHTTPProvider(baseURL string) ports.IdentityProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client: &http.Client{
			// The auth command waits on the user; the probe is the only call
			// that gets a short client-side bound, via its request context.
			Timeout: 0,
		},
	}
}

// Available reports whether the agent answers its health probe.
func (p *HTTPProvider) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// walletAuthResponse is the agent's wire format for an auth result.
type walletAuthResponse struct {
	Status  string                 `json:"status"`
	Payload core.SignedAuthPayload `json:"payload"`
}

// WalletAuth asks the agent to sign the challenge.
func (p *HTTPProvider) WalletAuth(ctx context.Context, challenge core.ChallengeRequest) (*core.SignedAuthPayload, error) {
	body, err := json.Marshal(challenge)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal challenge: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/wallet-auth", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, core.ErrChallengeTimeout
		}
		return nil, core.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent returned status %d: %w", resp.StatusCode, core.ErrProviderUnavailable)
	}

	var result walletAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode agent response: %w", err)
	}

	switch result.Status {
	case "success":
		return &result.Payload, nil
	case "user_rejected":
		return nil, core.ErrUserRejected
	case "timeout":
		return nil, core.ErrChallengeTimeout
	default:
		return nil, fmt.Errorf("wallet auth failed with status %q", result.Status)
	}
}
