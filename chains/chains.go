// Package chains holds the static contract configuration for every
// supported network: chain ids, deployed token/vault/factory addresses,
// token decimals and price-feed ids.
package chains

import "github.com/ethereum/go-ethereum/common"

type ChainName string

const (
	Localhost        ChainName = "localhost"
	Sepolia          ChainName = "sepolia"
	Mainnet          ChainName = "mainnet"
	Arbitrum         ChainName = "arbitrum"
	ArbitrumSepolia  ChainName = "arbitrumSepolia"
	BaseSepolia      ChainName = "baseSepolia"
	FlowTestnet      ChainName = "flowTestnet"
	RootstockTestnet ChainName = "rootstockTestnet"
)

type TokenName string

const (
	MockUSDC TokenName = "MockUSDC"
	MockWBTC TokenName = "MockWBTC"
	MockWETH TokenName = "MockWETH"
)

type VaultName string

const (
	MultiTokenVault VaultName = "MultiTokenVault"
	SingleVault     VaultName = "Vault"
)

type PriceID string

const (
	BTCUSD PriceID = "BTC_USD"
	ETHUSD PriceID = "ETH_USD"
	USDCUSD PriceID = "USDC_USD"
)

// Config describes one chain's deployed contracts.
type Config struct {
	ChainID   int64
	Tokens    map[TokenName]common.Address
	Vaults    map[VaultName]common.Address
	Factories map[string]common.Address
}

// TokenConfig carries per-token display and pricing metadata.
type TokenConfig struct {
	Decimals int32
	PriceID  PriceID
}

// DefaultAgent is the managing agent address shared by all vaults.
var DefaultAgent = common.HexToAddress("0xb70649baF7A93EEB95E3946b3A82F8F312477d2b")

var configs = map[ChainName]Config{
	Localhost: {ChainID: 31337},
	Sepolia:   {ChainID: 11155111},
	Mainnet:   {ChainID: 1},
	Arbitrum:  {ChainID: 42161},
	ArbitrumSepolia: {ChainID: 421614},
	BaseSepolia:     {ChainID: 84532},
	FlowTestnet: {
		ChainID: 545,
		Tokens: map[TokenName]common.Address{
			MockUSDC: common.HexToAddress("0xAF28B48E48317109F885FEc05751f5422d850857"),
			MockWBTC: common.HexToAddress("0x8fDE7A649c782c96e7f4D9D88490a7C5031F51a9"),
			MockWETH: common.HexToAddress("0xF3B66dEF94Ab0C8D485e36845f068aFB48959A04"),
		},
		Vaults: map[VaultName]common.Address{
			MultiTokenVault: common.HexToAddress("0x7C65F77a4EbEa3D56368A73A12234bB4384ACB28"),
		},
		Factories: map[string]common.Address{
			"VaultFactory": common.HexToAddress("0xc527C7a159263b3DfEde1b793C38734F45f7860d"),
		},
	},
	RootstockTestnet: {
		ChainID: 31,
		Tokens: map[TokenName]common.Address{
			MockUSDC: common.HexToAddress("0xAF28B48E48317109F885FEc05751f5422d850857"),
		},
		Vaults: map[VaultName]common.Address{
			SingleVault: common.HexToAddress("0x8fDE7A649c782c96e7f4D9D88490a7C5031F51a9"),
		},
		Factories: map[string]common.Address{
			"VaultFactory": common.HexToAddress("0x4f0798F0c3eb261D50b66e6b0f79Aa09803c900D"),
		},
	},
}

var priceIDs = map[PriceID]string{
	BTCUSD:  "0xe62df6c8b4a85fe1a67db44dc12de5db330f7ac66b72dc658afedf0f4a415b43",
	ETHUSD:  "0xff61491a931112ddf1bd8147cd1b641375f79f5825126d665480874634fd0ace",
	USDCUSD: "0xeaa020c61cc479712813461ce153894a96a6c00b21ed0cfc2798d1f9a9e9c94a",
}

var tokenConfigs = map[TokenName]TokenConfig{
	MockUSDC: {Decimals: 6, PriceID: USDCUSD},
	MockWBTC: {Decimals: 8, PriceID: BTCUSD},
	MockWETH: {Decimals: 18, PriceID: ETHUSD},
}

// Get returns the configuration for a chain name.
func Get(name ChainName) (Config, bool) {
	cfg, ok := configs[name]
	return cfg, ok
}

// GetByID returns the chain name and configuration for a chain id.
func GetByID(chainID int64) (ChainName, Config, bool) {
	for name, cfg := range configs {
		if cfg.ChainID == chainID {
			return name, cfg, true
		}
	}
	return "", Config{}, false
}

// TokenAddress returns a token's deployed address on a chain.
func TokenAddress(name ChainName, token TokenName) (common.Address, bool) {
	cfg, ok := configs[name]
	if !ok {
		return common.Address{}, false
	}
	addr, ok := cfg.Tokens[token]
	return addr, ok
}

// VaultAddress returns a vault's deployed address on a chain.
func VaultAddress(name ChainName, vault VaultName) (common.Address, bool) {
	cfg, ok := configs[name]
	if !ok {
		return common.Address{}, false
	}
	addr, ok := cfg.Vaults[vault]
	return addr, ok
}

// AvailableTokens lists the tokens deployed on a chain.
func AvailableTokens(name ChainName) []TokenName {
	cfg, ok := configs[name]
	if !ok {
		return nil
	}
	tokens := make([]TokenName, 0, len(cfg.Tokens))
	for t := range cfg.Tokens {
		tokens = append(tokens, t)
	}
	return tokens
}

// Token returns per-token metadata.
func Token(token TokenName) (TokenConfig, bool) {
	cfg, ok := tokenConfigs[token]
	return cfg, ok
}

// PriceFeedID returns the Pyth price feed id for a pair.
func PriceFeedID(id PriceID) (string, bool) {
	feed, ok := priceIDs[id]
	return feed, ok
}
