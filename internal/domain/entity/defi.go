package entity

// DeFiProtocol identifies an integrated protocol.
type DeFiProtocol string

// DeFiPositionType identifies the kind of position within a protocol.
type DeFiPositionType string

const (
	ProtocolKokonutSwap DeFiProtocol = "kokonutswap"

	PositionKokonutSwapLP DeFiPositionType = "kokonutswap-lp"
)

// AmountValue pairs a position's token amount with its USD valuation.
type AmountValue struct {
	Amount float64 `json:"amount"`
	Value  float64 `json:"value"`
}

// UnstakeEntry describes an in-progress unstake cooldown.
type UnstakeEntry struct {
	Claimable AmountValue `json:"claimable"`
	Pending   AmountValue `json:"pending"`
}

// DeFiPosition is a normalized LP/staking record for one wallet and pool.
//
// Tokens is the pool's constituent token sequence in pool order; entries the
// token registry could not resolve are nil rather than dropped, so consumers
// must tolerate holes.
type DeFiPosition struct {
	Protocol    DeFiProtocol       `json:"protocol"`
	Type        DeFiPositionType   `json:"type"`
	PoolAddress string             `json:"poolAddress"`
	PoolSymbol  string             `json:"poolSymbol,omitempty"`
	Tokens      []*TokenInfo       `json:"tokens"`
	Wallet      AmountValue        `json:"wallet"`
	Staked      AmountValue        `json:"staked"`
	Rewards     map[string]float64 `json:"rewards,omitempty"`
	Unstake     *UnstakeEntry      `json:"unstake,omitempty"`
}
