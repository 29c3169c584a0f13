package port

import "portfolio_aggregator/internal/domain/entity"

// TokenRegistry looks up static metadata for known tokens. Lookups are by
// lowercased contract address.
type TokenRegistry interface {
	TokenByAddress(chain entity.ChainID, address string) (entity.TokenInfo, bool)
	TokensByChain(chain entity.ChainID) []entity.TokenInfo
}
