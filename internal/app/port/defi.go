package port

import (
	"context"

	"portfolio_aggregator/internal/domain/entity"
)

// ProtocolAdapter normalizes one DeFi integration's pool/farm data into
// DeFiPosition records for a wallet.
type ProtocolAdapter interface {
	Protocol() entity.DeFiProtocol
	Positions(ctx context.Context, walletAddress string) ([]entity.DeFiPosition, error)
}
