// Package tendermint implements the chain adapter for cosmos-sdk chains via
// their LCD REST endpoints. One adapter instance serves one network; the
// caller supplies addresses already re-encoded with the network's bech32
// prefix.
package tendermint

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/infrastructure/httpclient"
)

// DelegationsAPI selects which staking endpoint shape the chain's LCD serves.
type DelegationsAPI string

const (
	// DelegationsAPILegacy is the pre-SDK-0.40 shape:
	// GET /staking/delegators/{addr}/delegations -> {"result": [...]}
	DelegationsAPILegacy DelegationsAPI = "legacy"
	// DelegationsAPIV1Beta1 is the modern shape:
	// GET /cosmos/staking/v1beta1/delegations/{addr} -> {"delegation_responses": [...]}
	DelegationsAPIV1Beta1 DelegationsAPI = "v1beta1"
)

// Chain adapts one cosmos-sdk network.
type Chain struct {
	id             entity.ChainID
	currency       entity.ChainCurrency
	prefix         string
	baseURL        string
	delegationsAPI DelegationsAPI
	http           *fasthttp.Client
	timeout        time.Duration
	oracle         port.PriceOracle
	logger         port.Logger
}

// New creates an adapter for one cosmos-sdk network's LCD endpoint.
func New(
	id entity.ChainID,
	currency entity.ChainCurrency,
	prefix string,
	baseURL string,
	delegationsAPI DelegationsAPI,
	timeout time.Duration,
	oracle port.PriceOracle,
	logger port.Logger,
) *Chain {
	if delegationsAPI == "" {
		delegationsAPI = DelegationsAPIV1Beta1
	}
	return &Chain{
		id:             id,
		currency:       currency,
		prefix:         prefix,
		baseURL:        strings.TrimRight(baseURL, "/"),
		delegationsAPI: delegationsAPI,
		http:           &fasthttp.Client{},
		timeout:        timeout,
		oracle:         oracle,
		logger:         logger,
	}
}

// ID implements port.ChainClient.
func (c *Chain) ID() entity.ChainID {
	return c.id
}

// Currency implements port.ChainClient.
func (c *Chain) Currency() entity.ChainCurrency {
	return c.currency
}

// Bech32Prefix implements port.Bech32Chain.
func (c *Chain) Bech32Prefix() string {
	return c.prefix
}

// CurrencyPrice implements port.ChainClient.
func (c *Chain) CurrencyPrice(ctx context.Context, vsCurrency string) (float64, error) {
	return c.oracle.Price(ctx, c.currency.CoinGeckoID, vsCurrency)
}

type coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type balancesResponse struct {
	Balances []coin `json:"balances"`
}

// NativeBalance implements port.ChainClient. An address holding no coin of
// the minimal denom has a balance of zero; that is not an error.
func (c *Chain) NativeBalance(ctx context.Context, address string) (float64, error) {
	requestURL := fmt.Sprintf("%s/cosmos/bank/v1beta1/balances/%s", c.baseURL, address)

	var decoded balancesResponse
	if err := httpclient.GetJSON(ctx, c.http, requestURL, nil, c.timeout, &decoded); err != nil {
		return 0, err
	}

	for _, b := range decoded.Balances {
		if b.Denom != c.currency.MinimalDenom {
			continue
		}
		amount, err := c.fromMinimalDenom(b.Amount)
		if err != nil {
			return 0, entity.NewNetworkError(requestURL, err)
		}
		return amount, nil
	}
	return 0, nil
}

type delegationRecord struct {
	Balance coin `json:"balance"`
}

type legacyDelegationsResponse struct {
	Result []delegationRecord `json:"result"`
}

type v1beta1DelegationsResponse struct {
	DelegationResponses []delegationRecord `json:"delegation_responses"`
}

// Delegations implements port.DelegationFetcher: the sum of every delegation
// record for the address, in native decimal units.
func (c *Chain) Delegations(ctx context.Context, address string) (float64, error) {
	var (
		requestURL string
		records    []delegationRecord
	)
	switch c.delegationsAPI {
	case DelegationsAPILegacy:
		requestURL = fmt.Sprintf("%s/staking/delegators/%s/delegations", c.baseURL, address)
		var decoded legacyDelegationsResponse
		if err := httpclient.GetJSON(ctx, c.http, requestURL, nil, c.timeout, &decoded); err != nil {
			return 0, err
		}
		records = decoded.Result
	default:
		requestURL = fmt.Sprintf("%s/cosmos/staking/v1beta1/delegations/%s", c.baseURL, address)
		var decoded v1beta1DelegationsResponse
		if err := httpclient.GetJSON(ctx, c.http, requestURL, nil, c.timeout, &decoded); err != nil {
			return 0, err
		}
		records = decoded.DelegationResponses
	}

	total := decimal.Zero
	for _, rec := range records {
		amount, err := decimal.NewFromString(rec.Balance.Amount)
		if err != nil {
			return 0, entity.NewNetworkError(requestURL, fmt.Errorf("number-like amount %q: %w", rec.Balance.Amount, err))
		}
		total = total.Add(amount)
	}
	value, _ := total.Float64()
	return value / math.Pow10(int(c.currency.Decimals)), nil
}

func (c *Chain) fromMinimalDenom(amount string) (float64, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("number-like amount %q: %w", amount, err)
	}
	value, _ := parsed.Float64()
	return value / math.Pow10(int(c.currency.Decimals)), nil
}
