package port

import "portfolio_aggregator/internal/domain/entity"

// WalletProvider supplies the user-registered wallets. Wallets are created
// and edited elsewhere; the pipeline only reads them.
type WalletProvider interface {
	Wallets() ([]entity.Wallet, error)
	WalletByAddress(address string) (entity.Wallet, bool)
}
