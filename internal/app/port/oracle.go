package port

import "context"

// PriceOracle quotes a fiat price for an external asset identifier.
type PriceOracle interface {
	// Price returns the price of the asset identified by id in vsCurrency.
	// It fails with a NetworkError when the quote provider cannot be reached
	// or returns a malformed body; it does not invent zero prices.
	Price(ctx context.Context, id string, vsCurrency string) (float64, error)
}
