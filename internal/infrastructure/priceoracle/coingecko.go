// Package priceoracle implements the CoinGecko price quote client.
package priceoracle

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/infrastructure/httpclient"
	"portfolio_aggregator/internal/pkg/utils"
	"portfolio_aggregator/pkg/metrics"
)

const maxIDsPerRequest = 50

// Client fetches fiat prices from the CoinGecko simple-price endpoint.
// Quotes are cached with a TTL so one aggregation run does not hammer the
// provider with one call per wallet, and calls are rate limited.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	cache   *gocache.Cache
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a CoinGecko client. ratePerSecond bounds outbound calls;
// cacheTTL controls how long a fetched quote stays fresh.
func NewClient(baseURL string, timeout time.Duration, cacheTTL time.Duration, ratePerSecond float64, logger *zap.Logger) *Client {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	return &Client{
		http:    &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		logger:  logger.Named("CoinGeckoClient"),
	}
}

// Price implements port.PriceOracle.
func (c *Client) Price(ctx context.Context, id string, vsCurrency string) (float64, error) {
	if id == "" {
		return 0, &entity.ResolutionError{Subject: "empty price oracle identifier"}
	}
	key := cacheKey(id, vsCurrency)
	if cached, ok := c.cache.Get(key); ok {
		metrics.OracleLookups.WithLabelValues("hit").Inc()
		return cached.(float64), nil
	}
	metrics.OracleLookups.WithLabelValues("miss").Inc()

	prices, err := c.fetch(ctx, []string{id}, vsCurrency)
	if err != nil {
		metrics.OracleLookups.WithLabelValues("error").Inc()
		return 0, err
	}
	price, ok := prices[id]
	if !ok {
		metrics.OracleLookups.WithLabelValues("error").Inc()
		return 0, entity.NewNetworkError(c.baseURL, fmt.Errorf("quote for %q missing from response", id))
	}
	return price, nil
}

// Prefetch warms the cache for a set of identifiers in batched calls. Fetch
// failures are logged and skipped; a cold cache entry only costs a later
// on-demand lookup.
func (c *Client) Prefetch(ctx context.Context, ids []string, vsCurrency string) {
	for _, batch := range utils.BatchStrings(ids, maxIDsPerRequest) {
		if _, err := c.fetch(ctx, batch, vsCurrency); err != nil {
			c.logger.Warn("Price prefetch batch failed",
				zap.Strings("ids", batch),
				zap.Error(err))
		}
	}
}

// fetch queries the provider and caches every quote it returns.
// Response shape: { ["<id>"]: { ["<currency>"]: <number> } }.
func (c *Client) fetch(ctx context.Context, ids []string, vsCurrency string) (map[string]float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	requestURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL, url.QueryEscape(strings.Join(ids, ",")), url.QueryEscape(vsCurrency))
	c.logger.Debug("Requesting quotes", zap.String("url", requestURL))

	var decoded map[string]map[string]float64
	if err := httpclient.GetJSON(ctx, c.http, requestURL, nil, c.timeout, &decoded); err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(decoded))
	for id, quotes := range decoded {
		price, ok := quotes[vsCurrency]
		if !ok {
			continue
		}
		prices[id] = price
		c.cache.SetDefault(cacheKey(id, vsCurrency), price)
	}
	return prices, nil
}

func cacheKey(id, vsCurrency string) string {
	return id + "/" + vsCurrency
}
