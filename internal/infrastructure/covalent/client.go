// Package covalent implements the client for the Covalent token indexer.
package covalent

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/infrastructure/httpclient"
	"portfolio_aggregator/internal/pkg/keypool"
)

// ItemTypeNFT marks non-fungible entries in a balances response.
const ItemTypeNFT = "nft"

// TokenItem is one holding in a Covalent balances_v2 response.
type TokenItem struct {
	ContractDecimals     uint8  `json:"contract_decimals"`
	ContractName         string `json:"contract_name"`
	ContractTickerSymbol string `json:"contract_ticker_symbol"`
	ContractAddress      string `json:"contract_address"`
	Type                 string `json:"type"`
	Balance              string `json:"balance"`
}

type balancesResponse struct {
	Data struct {
		Address string      `json:"address"`
		ChainID int64       `json:"chain_id"`
		Items   []TokenItem `json:"items"`
	} `json:"data"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message"`
}

// Client calls the Covalent REST API. Requests authenticate with Basic auth
// using a key drawn from the injected rotation pool.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	keys    *keypool.Pool
	logger  *zap.Logger
}

// NewClient creates a Covalent client over the given key pool.
func NewClient(baseURL string, timeout time.Duration, keys *keypool.Pool, logger *zap.Logger) *Client {
	return &Client{
		http:    &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		keys:    keys,
		logger:  logger.Named("CovalentClient"),
	}
}

// TokenBalances fetches every fungible and non-fungible holding the indexer
// knows for the address on the given chain. Callers filter by Type.
func (c *Client) TokenBalances(ctx context.Context, chainID int64, address string) ([]TokenItem, error) {
	requestURL := fmt.Sprintf("%s/v1/%d/address/%s/balances_v2/", c.baseURL, chainID, address)
	headers := map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(c.keys.Next())),
		"Content-Type":  "application/json",
	}

	c.logger.Debug("Requesting token balances",
		zap.Int64("chainID", chainID),
		zap.String("address", address))

	var decoded balancesResponse
	if err := httpclient.GetJSON(ctx, c.http, requestURL, headers, c.timeout, &decoded); err != nil {
		return nil, err
	}
	if decoded.Error {
		return nil, entity.NewNetworkError(requestURL, fmt.Errorf("indexer error: %s", decoded.ErrorMessage))
	}
	return decoded.Data.Items, nil
}
