package evm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_aggregator/internal/domain/entity"
)

type nopOracle struct{}

func (nopOracle) Price(context.Context, string, string) (float64, error) { return 2000, nil }

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

var ethCurrency = entity.ChainCurrency{Symbol: "ETH", Decimals: 18, CoinGeckoID: "ethereum"}

// HTTP transports dial lazily, so New succeeds without a live endpoint and
// the first balance call surfaces the connection failure.
func newTestChain(t *testing.T) *Chain {
	t.Helper()
	chain, err := New(entity.ChainEthereum, ethCurrency, "http://127.0.0.1:1", nil,
		time.Second, 200*time.Millisecond, nopOracle{}, nopLogger{})
	require.NoError(t, err)
	return chain
}

func TestNativeBalanceRejectsMalformedAddress(t *testing.T) {
	chain := newTestChain(t)

	_, err := chain.NativeBalance(context.Background(), "not-an-address")
	require.Error(t, err)
	assert.True(t, entity.IsFormatError(err))

	_, err = chain.NativeBalance(context.Background(), "0x1234") // too short
	require.Error(t, err)
	assert.True(t, entity.IsFormatError(err))
}

func TestNativeBalanceUnreachableEndpoint(t *testing.T) {
	chain := newTestChain(t)

	_, err := chain.NativeBalance(context.Background(), "0x7777777141f111cf9f0308a63dbd9d0cad3010c4")
	require.Error(t, err)
	assert.True(t, entity.IsNetworkError(err))
}

func TestCurrencyPriceDelegatesToOracle(t *testing.T) {
	chain := newTestChain(t)

	price, err := chain.CurrencyPrice(context.Background(), "usd")
	require.NoError(t, err)
	assert.InDelta(t, 2000.0, price, 1e-9)
	assert.Equal(t, entity.ChainEthereum, chain.ID())
	assert.Equal(t, ethCurrency, chain.Currency())
}
