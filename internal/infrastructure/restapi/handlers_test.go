package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type stubAggregator struct {
	lastWallets []entity.Wallet
	result      entity.AggregatedValuation
	err         error
}

func (s *stubAggregator) Aggregate(_ context.Context, wallets []entity.Wallet) (entity.AggregatedValuation, error) {
	s.lastWallets = wallets
	return s.result, s.err
}

func (s *stubAggregator) TotalValue(ctx context.Context, wallets []entity.Wallet) (float64, error) {
	v, err := s.Aggregate(ctx, wallets)
	return v.TotalValueUSD, err
}

type stubWallets struct {
	wallets []entity.Wallet
}

func (s *stubWallets) Wallets() ([]entity.Wallet, error) { return s.wallets, nil }

func (s *stubWallets) WalletByAddress(address string) (entity.Wallet, bool) {
	for _, w := range s.wallets {
		if w.Address == address {
			return w, true
		}
	}
	return entity.Wallet{}, false
}

type stubProtocol struct {
	positions []entity.DeFiPosition
	err       error
}

func (s *stubProtocol) Protocol() entity.DeFiProtocol { return entity.ProtocolKokonutSwap }

func (s *stubProtocol) Positions(context.Context, string) ([]entity.DeFiPosition, error) {
	return s.positions, s.err
}

const evmWallet = "0x7777777141f111cf9f0308a63dbd9d0cad3010c4"

func newTestRouter(aggregator *stubAggregator, protocol *stubProtocol) *gin.Engine {
	gin.SetMode(gin.TestMode)
	wallets := &stubWallets{wallets: []entity.Wallet{{
		Address:  evmWallet,
		Kind:     entity.WalletKindEVM,
		Networks: []entity.ChainID{entity.ChainEthereum, entity.ChainKlaytn},
	}}}
	valuationHandler := NewValuationHandler(aggregator, wallets, nopLogger{})
	defiHandler := NewDeFiHandler(nopLogger{}, protocol)
	return SetupRouter(valuationHandler, defiHandler, zap.NewNop())
}

func doRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetValuation(t *testing.T) {
	aggregator := &stubAggregator{result: entity.AggregatedValuation{
		TotalValueUSD: 7500,
		Assets:        []entity.AssetValuation{{Symbol: "ETH", ValueUSD: 7500}},
	}}
	router := newTestRouter(aggregator, &stubProtocol{})

	w := doRequest(router, "/api/v1/valuation")
	require.Equal(t, http.StatusOK, w.Code)

	var resp APIValuationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 7500.0, resp.Data.TotalValueUSD, 1e-9)
	assert.Len(t, aggregator.lastWallets, 1)
}

func TestGetWalletBalancesUnknownWallet(t *testing.T) {
	router := newTestRouter(&stubAggregator{}, &stubProtocol{})
	w := doRequest(router, "/api/v1/wallets/0xdeadbeef/balances")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetWalletBalancesNetworksFilter(t *testing.T) {
	aggregator := &stubAggregator{}
	router := newTestRouter(aggregator, &stubProtocol{})

	w := doRequest(router, "/api/v1/wallets/"+evmWallet+"/balances?networks=klaytn")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, aggregator.lastWallets, 1)
	assert.Equal(t, []entity.ChainID{entity.ChainKlaytn}, aggregator.lastWallets[0].Networks)
}

func TestGetWalletBalancesRejectsUnconfiguredNetwork(t *testing.T) {
	router := newTestRouter(&stubAggregator{}, &stubProtocol{})
	w := doRequest(router, "/api/v1/wallets/"+evmWallet+"/balances?networks=solana")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDeFiPositions(t *testing.T) {
	protocol := &stubProtocol{positions: []entity.DeFiPosition{{
		Protocol:   entity.ProtocolKokonutSwap,
		PoolSymbol: "KSD+USDC",
	}}}
	router := newTestRouter(&stubAggregator{}, protocol)

	w := doRequest(router, "/api/v1/defi/kokonutswap/"+evmWallet)
	require.Equal(t, http.StatusOK, w.Code)

	var resp APIDeFiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "KSD+USDC", resp.Data[0].PoolSymbol)
}

func TestGetDeFiPositionsUnknownProtocol(t *testing.T) {
	router := newTestRouter(&stubAggregator{}, &stubProtocol{})
	w := doRequest(router, "/api/v1/defi/uniswap/"+evmWallet)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDeFiPositionsUpstreamFailure(t *testing.T) {
	protocol := &stubProtocol{err: entity.NewNetworkError("kokonut", errors.New("down"))}
	router := newTestRouter(&stubAggregator{}, protocol)

	w := doRequest(router, "/api/v1/defi/kokonutswap/"+evmWallet)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&stubAggregator{}, &stubProtocol{})
	w := doRequest(router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}
