package port

import (
	"context"

	"portfolio_aggregator/internal/domain/entity"
)

// Aggregator reduces a set of registered wallets into a USD valuation.
//
// Both operations apply the same partial-failure policy: a failed
// (wallet, network) leg contributes zero and is reported in the result's
// Skipped list instead of aborting unrelated legs.
type Aggregator interface {
	// Aggregate returns the total plus the per-asset breakdown.
	Aggregate(ctx context.Context, wallets []entity.Wallet) (entity.AggregatedValuation, error)

	// TotalValue returns only the scalar total. It is the legacy bulk entry
	// point and is defined as the sum of Aggregate's asset lines.
	TotalValue(ctx context.Context, wallets []entity.Wallet) (float64, error)
}
