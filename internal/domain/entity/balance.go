package entity

import "math/big"

// NativePlaceholderAddress is the pseudo contract address some indexers use
// for the chain's native asset inside ERC-20 listings. Entries carrying it
// are filtered out of token balance results.
const NativePlaceholderAddress = "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"

// TokenInfo is a token registry entry: static metadata for a known fungible
// token, used for exact symbol/decimals resolution and price lookups.
type TokenInfo struct {
	ChainID     ChainID `yaml:"chainId" json:"chainId"`
	Address     string  `yaml:"address" json:"address"`
	Symbol      string  `yaml:"symbol" json:"symbol"`
	Name        string  `yaml:"name" json:"name"`
	Decimals    uint8   `yaml:"decimals" json:"decimals"`
	CoinGeckoID string  `yaml:"coinGeckoId,omitempty" json:"coinGeckoId,omitempty"`
	// PriceUSD pins a fixed price (e.g. stablecoins). When set it wins over
	// every other resolution path and the oracle is not consulted.
	PriceUSD float64 `yaml:"priceUsd,omitempty" json:"priceUsd,omitempty"`
}

// TokenBalance is one wallet's holding of one fungible token, converted to
// human-readable units.
type TokenBalance struct {
	WalletAddress string   `json:"walletAddress"`
	Address       string   `json:"address"`
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name,omitempty"`
	Decimals      uint8    `json:"decimals"`
	RawAmount     *big.Int `json:"-"`
	Amount        float64  `json:"amount"`
	Price         float64  `json:"price"`
	// Priced reports whether Price came from a successful resolution.
	// Price == 0 with Priced == false means "unpriced", not "worthless".
	Priced bool `json:"priced"`
}

// ValueUSD returns the holding's valuation; zero when the token is unpriced.
func (b TokenBalance) ValueUSD() float64 {
	return b.Amount * b.Price
}

// DelegationBalance is the total amount a wallet has delegated to validators
// on a staking-enabled chain, in native decimal units.
type DelegationBalance struct {
	WalletAddress string  `json:"walletAddress"`
	Chain         ChainID `json:"chain"`
	Amount        float64 `json:"amount"`
}
