// Package kokonutswap normalizes the KokonutSwap LP/farm integration into
// DeFiPosition records.
package kokonutswap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/infrastructure/httpclient"
)

// Client calls the KokonutSwap REST API. Nothing is cached: pool and farm
// data is always fetched live.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a KokonutSwap API client.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		http:    &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("KokonutSwapClient"),
	}
}

// PoolList fetches the live pool list.
func (c *Client) PoolList(ctx context.Context) ([]Pool, error) {
	requestURL := c.baseURL + "/pools"
	var decoded poolListResponse
	if err := httpclient.GetJSON(ctx, c.http, requestURL, nil, c.timeout, &decoded); err != nil {
		return nil, err
	}
	c.logger.Debug("Fetched pool list", zap.Int("pools", len(decoded.Pools)))
	return decoded.Pools, nil
}

// FarmPools fetches every farm record with the wallet's staking position
// attached where one exists.
func (c *Client) FarmPools(ctx context.Context, walletAddress string) ([]FarmPool, error) {
	requestURL := fmt.Sprintf("%s/farm/pools?address=%s", c.baseURL, strings.ToLower(walletAddress))
	var decoded farmPoolsResponse
	if err := httpclient.GetJSON(ctx, c.http, requestURL, nil, c.timeout, &decoded); err != nil {
		return nil, err
	}
	return decoded.FarmPools, nil
}

// UserLPBalances fetches the wallet's raw LP token balances keyed by LP token
// address.
func (c *Client) UserLPBalances(ctx context.Context, walletAddress string) (map[string]string, error) {
	requestURL := fmt.Sprintf("%s/balances?address=%s", c.baseURL, strings.ToLower(walletAddress))
	var decoded userBalancesResponse
	if err := httpclient.GetJSON(ctx, c.http, requestURL, nil, c.timeout, &decoded); err != nil {
		return nil, err
	}
	return decoded.Balances, nil
}
