package entity

// ChainID identifies a supported network. The set is closed: adapters are
// constructed from configuration for exactly these identifiers.
type ChainID string

const (
	ChainEthereum  ChainID = "ethereum"
	ChainPolygon   ChainID = "polygon"
	ChainKlaytn    ChainID = "klaytn"
	ChainSolana    ChainID = "solana"
	ChainCosmosHub ChainID = "cosmos-hub"
	ChainOsmosis   ChainID = "osmosis"
)

// ChainCurrency describes a chain's native asset.
type ChainCurrency struct {
	Symbol       string `yaml:"symbol"`
	Decimals     uint8  `yaml:"decimals"`
	CoinGeckoID  string `yaml:"coinGeckoId,omitempty"`
	MinimalDenom string `yaml:"minimalDenom,omitempty"` // tendermint-based chains only
}
