package eth

import (
	"crypto/ecdsa"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage(nonce string) Message {
	return Message{
		Domain:         "vaults.defai.app",
		Address:        "0x0000000000000000000000000000000000000001",
		Statement:      "Connect to DEFAI - AI-Powered Vaults",
		URI:            "https://vaults.defai.app",
		Version:        "1",
		ChainID:        1,
		Nonce:          nonce,
		ExpirationTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		NotBefore:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMessageString(t *testing.T) {
	text := testMessage("ab12cd34").String()

	assert.Contains(t, text, "vaults.defai.app wants you to sign in with your Ethereum account:\n0x0000000000000000000000000000000000000001\n")
	assert.Contains(t, text, "\nConnect to DEFAI - AI-Powered Vaults\n")
	assert.Contains(t, text, "\nNonce: ab12cd34")
	assert.Contains(t, text, "\nExpiration Time: 2025-06-01T00:00:00Z")
	assert.Contains(t, text, "\nNot Before: 2025-05-01T00:00:00Z")
	// No Issued At line when the field is zero.
	assert.NotContains(t, text, "Issued At:")
}

func TestSignAndRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	msg := testMessage("ab12cd34")
	m := msg
	m.Address = addr.Hex()
	text := m.String()

	sigHex, err := SignText(text, key)
	require.NoError(t, err)

	ok, err := VerifyTextSignature(text, sigHex, addr)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsWrongSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	text := testMessage("ab12cd34").String()

	sigHex, err := SignText(text, key)
	require.NoError(t, err)

	ok, err := VerifyTextSignature(text, sigHex, crypto.PubkeyToAddress(other.PublicKey))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	sigHex, err := SignText(testMessage("ab12cd34").String(), key)
	require.NoError(t, err)

	ok, err := VerifyTextSignature(testMessage("ffffffff").String(), sigHex, addr)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	_, err := VerifyTextSignature("hello", "0x1234", crypto.PubkeyToAddress(mustKey(t).PublicKey))
	assert.Error(t, err)
}

func mustKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}
