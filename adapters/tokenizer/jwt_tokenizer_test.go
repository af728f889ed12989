package tokenizer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/defai/walletgate/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenizer(t *testing.T) *JWTTokenizer {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return &JWTTokenizer{signKey: key}
}

func testSession() *core.Session {
	now := time.Now()
	return &core.Session{
		ID:            "session-1",
		Address:       "0xAbC0000000000000000000000000000000000123",
		IssuedAt:      now,
		AccessExpiry:  now.Add(5 * time.Minute),
		RefreshExpiry: now.Add(5 * 24 * time.Hour),
		RefreshID:     "refresh-1",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tk := newTokenizer(t)
	session := testSession()

	tokenStr, err := tk.SessionToAccessToken(session)
	require.NoError(t, err)

	parsed, err := tk.AccessTokenToSession(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, session.Address, parsed.Address)
	assert.Equal(t, session.RefreshID, parsed.RefreshID)
	assert.Equal(t, session.ID, parsed.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tk := newTokenizer(t)
	session := testSession()

	tokenStr, err := tk.SessionToRefreshToken(session)
	require.NoError(t, err)

	parsed, err := tk.RefreshTokenToSession(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, session.Address, parsed.Address)
	assert.Equal(t, session.RefreshID, parsed.RefreshID)
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	tk := newTokenizer(t)

	tokenStr, err := tk.SessionToAccessToken(testSession())
	require.NoError(t, err)

	_, err = tk.RefreshTokenToSession(tokenStr)
	assert.Error(t, err)
}

func TestTokenFromOtherKeyRejected(t *testing.T) {
	tokenStr, err := newTokenizer(t).SessionToAccessToken(testSession())
	require.NoError(t, err)

	_, err = newTokenizer(t).AccessTokenToSession(tokenStr)
	assert.Error(t, err)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	tk := newTokenizer(t)
	session := testSession()
	session.AccessExpiry = time.Now().Add(-time.Minute)

	tokenStr, err := tk.SessionToAccessToken(session)
	require.NoError(t, err)

	_, err = tk.AccessTokenToSession(tokenStr)
	assert.Error(t, err)
}
