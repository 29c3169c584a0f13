package entity

// AssetValuation is one line of the per-token breakdown: a single asset
// held by a single wallet on a single network.
type AssetValuation struct {
	WalletAddress string  `json:"walletAddress"`
	Chain         ChainID `json:"chain"`
	// TokenAddress is empty for the chain's native asset and for delegations.
	TokenAddress string  `json:"tokenAddress,omitempty"`
	Symbol       string  `json:"symbol"`
	Amount       float64 `json:"amount"`
	Price        float64 `json:"price"`
	Priced       bool    `json:"priced"`
	ValueUSD     float64 `json:"valueUsd"`
	Delegated    bool    `json:"delegated,omitempty"`
}

// SkippedUnit records a (wallet, network, source) leg whose data could not be
// fetched. Its contribution to the total is zero, which is an undercount, not
// a statement that the holding is zero.
type SkippedUnit struct {
	WalletAddress string  `json:"walletAddress"`
	Chain         ChainID `json:"chain,omitempty"`
	Source        string  `json:"source"`
	Reason        string  `json:"reason"`
}

// AggregatedValuation is the pipeline's output. It is recomputed on every
// request and never cached.
type AggregatedValuation struct {
	TotalValueUSD float64          `json:"totalValueUsd"`
	Assets        []AssetValuation `json:"assets"`
	Skipped       []SkippedUnit    `json:"skipped,omitempty"`
}

// Add appends an asset line and grows the running total.
func (v *AggregatedValuation) Add(a AssetValuation) {
	v.Assets = append(v.Assets, a)
	v.TotalValueUSD += a.ValueUSD
}

// Skip records a degraded leg.
func (v *AggregatedValuation) Skip(s SkippedUnit) {
	v.Skipped = append(v.Skipped, s)
}
