package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByID(t *testing.T) {
	name, cfg, ok := GetByID(545)
	require.True(t, ok)
	assert.Equal(t, FlowTestnet, name)
	assert.Equal(t, int64(545), cfg.ChainID)

	_, _, ok = GetByID(999999)
	assert.False(t, ok)
}

func TestTokenAddress(t *testing.T) {
	addr, ok := TokenAddress(FlowTestnet, MockUSDC)
	require.True(t, ok)
	assert.Equal(t, "0xAF28B48E48317109F885FEc05751f5422d850857", addr.Hex())

	_, ok = TokenAddress(Mainnet, MockUSDC)
	assert.False(t, ok)

	_, ok = TokenAddress("nosuchchain", MockUSDC)
	assert.False(t, ok)
}

func TestAvailableTokens(t *testing.T) {
	assert.Len(t, AvailableTokens(FlowTestnet), 3)
	assert.Empty(t, AvailableTokens(Sepolia))
}

func TestTokenConfig(t *testing.T) {
	cfg, ok := Token(MockUSDC)
	require.True(t, ok)
	assert.Equal(t, int32(6), cfg.Decimals)

	feed, ok := PriceFeedID(cfg.PriceID)
	require.True(t, ok)
	assert.NotEmpty(t, feed)
}
