package eth

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the expected length of an EIP-191 signature (r || s || v).
const SignatureLength = 65

// TextHash hashes a message per EIP-191 personal_sign:
// keccak256("\x19Ethereum Signed Message:\n" + len(msg) + msg).
func TextHash(text string) []byte {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(text), text)
	return crypto.Keccak256([]byte(prefixed))
}

// Recover returns the address that produced the given personal_sign
// signature over text. Accepts both V in {0,1} and the Ethereum
// convention {27,28}.
func Recover(text string, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", SignatureLength, len(sig))
	}

	// SigToPub expects V in {0,1}
	adjusted := make([]byte, SignatureLength)
	copy(adjusted, sig)
	if adjusted[64] >= 27 {
		adjusted[64] -= 27
	}

	pub, err := crypto.SigToPub(TextHash(text), adjusted)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// VerifyTextSignature checks that sigHex is a valid personal_sign signature
// over text by expected.
func VerifyTextSignature(text, sigHex string, expected common.Address) (bool, error) {
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return false, fmt.Errorf("failed to decode signature: %w", err)
	}

	recovered, err := Recover(text, sig)
	if err != nil {
		return false, err
	}

	return recovered == expected, nil
}

// SignText produces a personal_sign signature over text with V adjusted to
// the Ethereum convention (27/28).
func SignText(text string, key *ecdsa.PrivateKey) (string, error) {
	sig, err := crypto.Sign(TextHash(text), key)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}

	if sig[64] < 27 {
		sig[64] += 27
	}

	return hexutil.Encode(sig), nil
}
