// Package evm implements the chain adapter for EVM-compatible networks.
package evm

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/pkg/utils"
)

// Chain adapts a single EVM network to the port.ChainClient capability.
type Chain struct {
	id             entity.ChainID
	currency       entity.ChainCurrency
	client         *ethclient.Client
	rpcCallTimeout time.Duration
	oracle         port.PriceOracle
	logger         port.Logger
}

// New dials the network's RPC endpoint, falling back through fallbackURLs in
// order when the primary is unreachable.
func New(
	id entity.ChainID,
	currency entity.ChainCurrency,
	rpcURL string,
	fallbackURLs []string,
	connectionTimeout time.Duration,
	rpcCallTimeout time.Duration,
	oracle port.PriceOracle,
	logger port.Logger,
) (*Chain, error) {
	rpcURLs := append([]string{rpcURL}, fallbackURLs...)
	var lastErr error

	for _, u := range rpcURLs {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		client, err := ethclient.DialContext(ctx, u)
		cancel()
		if err == nil {
			return &Chain{
				id:             id,
				currency:       currency,
				client:         client,
				rpcCallTimeout: rpcCallTimeout,
				oracle:         oracle,
				logger:         logger,
			}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", u, err)
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", id, lastErr)
}

// ID implements port.ChainClient.
func (c *Chain) ID() entity.ChainID {
	return c.id
}

// Currency implements port.ChainClient.
func (c *Chain) Currency() entity.ChainCurrency {
	return c.currency
}

// CurrencyPrice implements port.ChainClient.
func (c *Chain) CurrencyPrice(ctx context.Context, vsCurrency string) (float64, error) {
	return c.oracle.Price(ctx, c.currency.CoinGeckoID, vsCurrency)
}

// NativeBalance implements port.ChainClient. A zero balance is a valid
// result; an unreachable endpoint is a NetworkError.
func (c *Chain) NativeBalance(ctx context.Context, address string) (float64, error) {
	if !common.IsHexAddress(address) {
		return 0, entity.NewFormatError(address, "not a hex address")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	raw, err := c.client.BalanceAt(callCtx, common.HexToAddress(address), nil)
	if err != nil {
		return 0, entity.NewNetworkError(string(c.id)+" rpc", err)
	}
	return utils.AmountFromRaw(raw, c.currency.Decimals), nil
}

// RawClient exposes the underlying RPC client for adapters layered on top of
// the EVM transport (contract calls).
func (c *Chain) RawClient() *ethclient.Client {
	return c.client
}

// RPCCallTimeout returns the per-call deadline this adapter was built with.
func (c *Chain) RPCCallTimeout() time.Duration {
	return c.rpcCallTimeout
}
