// Package service contains the application's use cases.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/pkg/address"
	"portfolio_aggregator/internal/pkg/settle"
	"portfolio_aggregator/pkg/metrics"
)

// AggregatorService walks every (wallet, network) pair, fetches balances from
// the chain adapters and folds the results into one valuation. A failing leg
// contributes zero and is recorded in Skipped; it never aborts the run.
type AggregatorService struct {
	chains      port.ChainRegistry
	vsCurrency  string
	maxInFlight int64
	unitTimeout time.Duration
	logger      port.Logger
}

// NewAggregatorService wires the pipeline.
func NewAggregatorService(
	chains port.ChainRegistry,
	vsCurrency string,
	maxConcurrentRequests int,
	unitTimeout time.Duration,
	logger port.Logger,
) *AggregatorService {
	return &AggregatorService{
		chains:      chains,
		vsCurrency:  vsCurrency,
		maxInFlight: int64(maxConcurrentRequests),
		unitTimeout: unitTimeout,
		logger:      logger,
	}
}

// unit is one (wallet, network) pair with the address already rewritten into
// the network's own format.
type unit struct {
	walletAddress   string
	chain           entity.ChainID
	resolvedAddress string
	client          port.ChainClient
}

type unitResult struct {
	assets  []entity.AssetValuation
	skipped []entity.SkippedUnit
}

// Aggregate fetches and values the holdings of every given wallet. The
// result's Skipped list names each leg that degraded to zero.
func (s *AggregatorService) Aggregate(ctx context.Context, wallets []entity.Wallet) (entity.AggregatedValuation, error) {
	startedAt := time.Now()

	units, valuation := s.buildUnits(wallets)
	results := settle.All(ctx, s.maxInFlight, units, s.fetchUnit)
	for i, res := range results {
		if res.Err != nil {
			s.recordSkip(&valuation, entity.SkippedUnit{
				WalletAddress: units[i].walletAddress,
				Chain:         units[i].chain,
				Source:        "unit",
				Reason:        res.Err.Error(),
			})
			continue
		}
		for _, asset := range res.Value.assets {
			valuation.Add(asset)
		}
		for _, skipped := range res.Value.skipped {
			s.recordSkip(&valuation, skipped)
		}
	}

	metrics.AggregationRuns.Inc()
	metrics.AggregationDuration.Observe(time.Since(startedAt).Seconds())
	s.logger.Info("aggregation run finished",
		"wallets", len(wallets),
		"units", len(units),
		"assets", len(valuation.Assets),
		"skipped", len(valuation.Skipped),
		"durationMs", time.Since(startedAt).Milliseconds(),
	)
	return valuation, nil
}

// TotalValue returns only the folded USD total.
func (s *AggregatorService) TotalValue(ctx context.Context, wallets []entity.Wallet) (float64, error) {
	valuation, err := s.Aggregate(ctx, wallets)
	if err != nil {
		return 0, err
	}
	return valuation.TotalValueUSD, nil
}

// buildUnits expands wallets into per-network units. A cosmos-sdk wallet is
// decoded once; an undecodable address skips the whole wallet instead of
// faking zero balances on every network.
func (s *AggregatorService) buildUnits(wallets []entity.Wallet) ([]unit, entity.AggregatedValuation) {
	var valuation entity.AggregatedValuation
	var units []unit
	for _, wallet := range wallets {
		var decoded address.Decoded
		if wallet.Kind == entity.WalletKindCosmosSDK {
			var err error
			decoded, err = address.FromBech32(wallet.Address)
			if err != nil {
				s.recordSkip(&valuation, entity.SkippedUnit{
					WalletAddress: wallet.Address,
					Source:        "address",
					Reason:        err.Error(),
				})
				continue
			}
		}

		for _, chainID := range wallet.Networks {
			client, ok := s.chains.Client(chainID)
			if !ok {
				s.recordSkip(&valuation, entity.SkippedUnit{
					WalletAddress: wallet.Address,
					Chain:         chainID,
					Source:        "registry",
					Reason:        fmt.Sprintf("no adapter registered for network %q", chainID),
				})
				continue
			}

			resolved := wallet.Address
			if wallet.Kind == entity.WalletKindCosmosSDK {
				bech32Chain, ok := client.(port.Bech32Chain)
				if !ok {
					s.recordSkip(&valuation, entity.SkippedUnit{
						WalletAddress: wallet.Address,
						Chain:         chainID,
						Source:        "registry",
						Reason:        fmt.Sprintf("adapter for %q does not accept bech32 addresses", chainID),
					})
					continue
				}
				encoded, err := decoded.ToBech32(bech32Chain.Bech32Prefix())
				if err != nil {
					s.recordSkip(&valuation, entity.SkippedUnit{
						WalletAddress: wallet.Address,
						Chain:         chainID,
						Source:        "address",
						Reason:        err.Error(),
					})
					continue
				}
				resolved = encoded
			}

			units = append(units, unit{
				walletAddress:   wallet.Address,
				chain:           chainID,
				resolvedAddress: resolved,
				client:          client,
			})
		}
	}
	return units, valuation
}

// fetchUnit gathers the native, token and delegation legs of one unit
// concurrently. It never returns an error; each failing leg becomes a
// skip record instead.
func (s *AggregatorService) fetchUnit(ctx context.Context, u unit) (unitResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.unitTimeout)
	defer cancel()

	var (
		nativeAmount, price, delegated    float64
		nativeErr, priceErr, delegatedErr error
		tokens                            []entity.TokenBalance
		tokensErr                         error
	)

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { nativeAmount, nativeErr = u.client.NativeBalance(ctx, u.resolvedAddress) })
	run(func() { price, priceErr = u.client.CurrencyPrice(ctx, s.vsCurrency) })
	tokenFetcher, hasTokens := u.client.(port.TokenBalanceFetcher)
	if hasTokens {
		run(func() { tokens, tokensErr = tokenFetcher.TokenBalances(ctx, u.resolvedAddress) })
	}
	delegationFetcher, hasDelegations := u.client.(port.DelegationFetcher)
	if hasDelegations {
		run(func() { delegated, delegatedErr = delegationFetcher.Delegations(ctx, u.resolvedAddress) })
	}
	wg.Wait()

	currency := u.client.Currency()
	priced := priceErr == nil
	if priceErr != nil {
		price = 0
		s.logger.Warn("native currency price unavailable",
			"chain", u.chain, "symbol", currency.Symbol, "error", priceErr)
	}

	var result unitResult
	if nativeErr != nil {
		result.skipped = append(result.skipped, entity.SkippedUnit{
			WalletAddress: u.walletAddress,
			Chain:         u.chain,
			Source:        "native",
			Reason:        nativeErr.Error(),
		})
	} else if nativeAmount > 0 {
		result.assets = append(result.assets, entity.AssetValuation{
			WalletAddress: u.walletAddress,
			Chain:         u.chain,
			Symbol:        currency.Symbol,
			Amount:        nativeAmount,
			Price:         price,
			Priced:        priced,
			ValueUSD:      nativeAmount * price,
		})
	}

	if hasTokens {
		if tokensErr != nil {
			result.skipped = append(result.skipped, entity.SkippedUnit{
				WalletAddress: u.walletAddress,
				Chain:         u.chain,
				Source:        "tokens",
				Reason:        tokensErr.Error(),
			})
		} else {
			for _, token := range tokens {
				result.assets = append(result.assets, entity.AssetValuation{
					WalletAddress: u.walletAddress,
					Chain:         u.chain,
					TokenAddress:  token.Address,
					Symbol:        token.Symbol,
					Amount:        token.Amount,
					Price:         token.Price,
					Priced:        token.Priced,
					ValueUSD:      token.ValueUSD(),
				})
			}
		}
	}

	if hasDelegations {
		if delegatedErr != nil {
			result.skipped = append(result.skipped, entity.SkippedUnit{
				WalletAddress: u.walletAddress,
				Chain:         u.chain,
				Source:        "delegations",
				Reason:        delegatedErr.Error(),
			})
		} else if delegated > 0 {
			result.assets = append(result.assets, entity.AssetValuation{
				WalletAddress: u.walletAddress,
				Chain:         u.chain,
				Symbol:        currency.Symbol,
				Amount:        delegated,
				Price:         price,
				Priced:        priced,
				ValueUSD:      delegated * price,
				Delegated:     true,
			})
		}
	}

	return result, nil
}

func (s *AggregatorService) recordSkip(v *entity.AggregatedValuation, skipped entity.SkippedUnit) {
	v.Skip(skipped)
	metrics.SourceFailures.WithLabelValues(skipped.Source).Inc()
	s.logger.Warn("source degraded to zero contribution",
		"wallet", skipped.WalletAddress,
		"chain", skipped.Chain,
		"source", skipped.Source,
		"reason", skipped.Reason,
	)
}
