package port

import (
	"context"

	"portfolio_aggregator/internal/domain/entity"
)

// ChainClient is the capability every chain adapter provides: native-asset
// metadata, a USD quote for it, and the native balance of a wallet in
// human-readable decimal units.
//
// NativeBalance must not fail for a genuinely zero balance; it fails with a
// NetworkError when the endpoint is unreachable or the response is malformed,
// which the pipeline treats as "balance unknown".
type ChainClient interface {
	ID() entity.ChainID
	Currency() entity.ChainCurrency
	CurrencyPrice(ctx context.Context, vsCurrency string) (float64, error)
	NativeBalance(ctx context.Context, address string) (float64, error)
}

// TokenBalanceFetcher is implemented by adapters whose chain has an indexer
// for fungible-token holdings. Entries that cannot be priced are still
// returned with Price 0 and Priced false.
type TokenBalanceFetcher interface {
	TokenBalances(ctx context.Context, address string) ([]entity.TokenBalance, error)
}

// DelegationFetcher is implemented by adapters for staking-enabled chains.
// It returns the total delegated amount in native decimal units.
type DelegationFetcher interface {
	Delegations(ctx context.Context, address string) (float64, error)
}

// Bech32Chain is implemented by cosmos-sdk-family adapters. The pipeline
// re-encodes the wallet's decoded address with this prefix before any call.
type Bech32Chain interface {
	Bech32Prefix() string
}

// ChainRegistry resolves the adapter for a network identifier.
type ChainRegistry interface {
	Client(id entity.ChainID) (ChainClient, bool)
}
