// Package solana implements the chain adapter for Solana over JSON-RPC.
package solana

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/mr-tron/base58"
	"github.com/valyala/fasthttp"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/infrastructure/httpclient"
)

const pubkeyLen = 32

// Chain adapts Solana to the port.ChainClient capability.
type Chain struct {
	currency  entity.ChainCurrency
	endpoint  string
	http      *fasthttp.Client
	timeout   time.Duration
	oracle    port.PriceOracle
	requestID atomic.Uint64
}

// New creates a Solana adapter for the given RPC endpoint.
func New(currency entity.ChainCurrency, endpoint string, timeout time.Duration, oracle port.PriceOracle) *Chain {
	return &Chain{
		currency: currency,
		endpoint: endpoint,
		http:     &fasthttp.Client{},
		timeout:  timeout,
		oracle:   oracle,
	}
}

// ID implements port.ChainClient.
func (c *Chain) ID() entity.ChainID {
	return entity.ChainSolana
}

// Currency implements port.ChainClient.
func (c *Chain) Currency() entity.ChainCurrency {
	return c.currency
}

// CurrencyPrice implements port.ChainClient.
func (c *Chain) CurrencyPrice(ctx context.Context, vsCurrency string) (float64, error) {
	return c.oracle.Price(ctx, c.currency.CoinGeckoID, vsCurrency)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type getBalanceResponse struct {
	Result struct {
		Value uint64 `json:"value"`
	} `json:"result"`
	Error *rpcError `json:"error,omitempty"`
}

// NativeBalance implements port.ChainClient. The address must be a 32-byte
// base58 public key.
func (c *Chain) NativeBalance(ctx context.Context, address string) (float64, error) {
	decoded, err := base58.Decode(address)
	if err != nil {
		return 0, entity.NewFormatError(address, err.Error())
	}
	if len(decoded) != pubkeyLen {
		return 0, entity.NewFormatError(address, "public key must decode to 32 bytes")
	}

	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  "getBalance",
		Params:  []any{address},
	}
	var resp getBalanceResponse
	if err := httpclient.PostJSON(ctx, c.http, c.endpoint, req, c.timeout, &resp); err != nil {
		return 0, err
	}
	if resp.Error != nil {
		return 0, entity.NewNetworkError(c.endpoint, fmt.Errorf("RPC error %d: %s", resp.Error.Code, resp.Error.Message))
	}

	return float64(resp.Result.Value) / math.Pow10(int(c.currency.Decimals)), nil
}
