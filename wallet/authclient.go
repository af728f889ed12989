package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/defai/walletgate/core"
)

// AuthClient talks to the walletgate auth endpoints. It keeps a cookie jar
// so the server-set nonce cookie rides along with the verification call;
// the client never generates or rewrites the nonce itself.
type AuthClient struct {
	baseURL string
	client  *http.Client
}

// NewAuthClient creates a client against the gateway at baseURL.
func NewAuthClient(baseURL string) (*AuthClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &AuthClient{
		baseURL: baseURL,
		client:  &http.Client{Jar: jar},
	}, nil
}

// NewAuthClientWithHTTP creates a client using the given http.Client, adding
// a cookie jar if it lacks one.
func NewAuthClientWithHTTP(baseURL string, client *http.Client) (*AuthClient, error) {
	if client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		client.Jar = jar
	}

	return &AuthClient{baseURL: baseURL, client: client}, nil
}

// FetchNonce requests a fresh nonce. The matching cookie lands in the jar.
func (c *AuthClient) FetchNonce(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/nonce", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build nonce request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch nonce: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nonce endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		Nonce string `json:"nonce"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode nonce response: %w", err)
	}

	return body.Nonce, nil
}

// VerifyResult is the server's verdict on a signed payload.
type VerifyResult struct {
	IsValid      bool   `json:"isValid"`
	Address      string `json:"address"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// VerifySignature posts the signed payload for server-side verification.
// The server compares against its cookie-held nonce; the nonce in the body
// only matters for matching, never as the source of truth.
func (c *AuthClient) VerifySignature(ctx context.Context, payload *core.SignedAuthPayload, nonce string) (*VerifyResult, error) {
	reqBody, err := json.Marshal(map[string]any{
		"payload": payload,
		"nonce":   nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify-signature", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verification endpoint returned status %d", resp.StatusCode)
	}

	var result VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode verification response: %w", err)
	}

	return &result, nil
}
