// Package klaytn implements the chain adapter for the Klaytn network: native
// balance over the EVM transport plus fungible-token holdings from the
// Covalent indexer.
package klaytn

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/infrastructure/chain/evm"
	"portfolio_aggregator/internal/infrastructure/covalent"
	"portfolio_aggregator/internal/pkg/utils"
)

// CovalentChainID is Klaytn's chain id on the Covalent indexer.
const CovalentChainID int64 = 8217

const (
	// scnrKlayLPAddress is the SCNR/KLAY liquidity pool used to derive a
	// SCNR price from its reserve ratio when no oracle id exists for it.
	scnrKlayLPAddress = "0xe1783a85616ad7dbd2b326255d38c568c77ffa26"
	scnrSymbol        = "SCNR"
	scnrReserveScale  = 25 // SCNR reserves are expressed with 25 decimals
)

// Minimal pair ABI: just enough to read reserves.
const lpABI = `[{"inputs":[],"name":"getReserves","outputs":[{"internalType":"uint112","name":"_reserve0","type":"uint112"},{"internalType":"uint112","name":"_reserve1","type":"uint112"},{"internalType":"uint32","name":"_blockTimestampLast","type":"uint32"}],"stateMutability":"view","type":"function"}]`

var (
	parsedLPABI abi.ABI
	parseLPOnce sync.Once
)

func initLPABI() {
	parseLPOnce.Do(func() {
		var err error
		parsedLPABI, err = abi.JSON(strings.NewReader(lpABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse LP ABI: %v", err))
		}
	})
}

// Indexer is the slice of the Covalent client the adapter needs.
type Indexer interface {
	TokenBalances(ctx context.Context, chainID int64, address string) ([]covalent.TokenItem, error)
}

// Chain adapts Klaytn. It reuses the EVM transport for native balances and
// contract reads and layers token indexing on top.
type Chain struct {
	*evm.Chain
	indexer    Indexer
	registry   port.TokenRegistry
	oracle     port.PriceOracle
	vsCurrency string
	logger     port.Logger
}

// New wraps an already-dialed EVM adapter for Klaytn. Token prices quote in
// vsCurrency, the same quote currency the rest of the pipeline uses.
func New(base *evm.Chain, indexer Indexer, registry port.TokenRegistry, oracle port.PriceOracle, vsCurrency string, logger port.Logger) *Chain {
	initLPABI()
	return &Chain{
		Chain:      base,
		indexer:    indexer,
		registry:   registry,
		oracle:     oracle,
		vsCurrency: vsCurrency,
		logger:     logger,
	}
}

// TokenBalances implements port.TokenBalanceFetcher. NFT entries and the
// native-asset placeholder are dropped; tokens whose price cannot be resolved
// are returned unpriced rather than omitted.
func (c *Chain) TokenBalances(ctx context.Context, address string) ([]entity.TokenBalance, error) {
	items, err := c.indexer.TokenBalances(ctx, CovalentChainID, address)
	if err != nil {
		return nil, err
	}

	balances := make([]entity.TokenBalance, 0, len(items))
	for _, item := range items {
		if item.Type == covalent.ItemTypeNFT {
			continue
		}
		if strings.EqualFold(item.ContractAddress, entity.NativePlaceholderAddress) {
			continue
		}

		raw, ok := new(big.Int).SetString(item.Balance, 10)
		if !ok {
			c.logger.Warn("Skipping token with unparseable balance",
				"address", item.ContractAddress, "balance", item.Balance)
			continue
		}
		if raw.Sign() <= 0 {
			continue
		}

		balance := entity.TokenBalance{
			WalletAddress: address,
			Address:       item.ContractAddress,
			Symbol:        item.ContractTickerSymbol,
			Name:          item.ContractName,
			Decimals:      item.ContractDecimals,
			RawAmount:     raw,
			Amount:        utils.AmountFromRaw(raw, item.ContractDecimals),
		}

		info, known := c.registry.TokenByAddress(entity.ChainKlaytn, strings.ToLower(item.ContractAddress))
		if known {
			if info.Symbol != "" {
				balance.Symbol = info.Symbol
			}
			if info.Name != "" {
				balance.Name = info.Name
			}
		}

		balance.Price, balance.Priced = c.resolvePrice(ctx, balance.Symbol, info, known)
		balances = append(balances, balance)
	}
	return balances, nil
}

// resolvePrice walks the resolution chain: registry fixed price, then oracle
// by registry id, then the pool-derived SCNR price. Every failure degrades to
// unpriced; the amount is still meaningful even when the value is not.
func (c *Chain) resolvePrice(ctx context.Context, symbol string, info entity.TokenInfo, known bool) (float64, bool) {
	if known && info.PriceUSD > 0 {
		return info.PriceUSD, true
	}
	if known && info.CoinGeckoID != "" {
		price, err := c.oracle.Price(ctx, info.CoinGeckoID, c.vsCurrency)
		if err != nil {
			c.logger.Warn("Oracle lookup failed for token, leaving unpriced",
				"symbol", symbol, "coinGeckoId", info.CoinGeckoID, "error", err)
			return 0, false
		}
		return price, true
	}
	if symbol == scnrSymbol {
		price, err := c.scnrPrice(ctx)
		if err != nil {
			c.logger.Warn("Pool-derived price failed for SCNR, leaving unpriced", "error", err)
			return 0, false
		}
		return price, true
	}
	return 0, false
}

// scnrPrice derives a SCNR quote from the SCNR/KLAY pool's reserve ratio and
// the KLAY price in the configured quote currency.
func (c *Chain) scnrPrice(ctx context.Context) (float64, error) {
	reserveSCNR, reserveKLAY, err := c.stakedReserves(ctx)
	if err != nil {
		return 0, err
	}
	klayPrice, err := c.CurrencyPrice(ctx, c.vsCurrency)
	if err != nil {
		return 0, err
	}

	amountSCNR := utils.AmountFromRaw(reserveSCNR, scnrReserveScale)
	amountKLAY := utils.AmountFromRaw(reserveKLAY, c.Currency().Decimals)
	if amountSCNR == 0 {
		return 0, &entity.ResolutionError{Subject: "SCNR/KLAY pool has no SCNR reserves"}
	}
	return amountKLAY / amountSCNR * klayPrice, nil
}

func (c *Chain) stakedReserves(ctx context.Context) (*big.Int, *big.Int, error) {
	callData, err := parsedLPABI.Pack("getReserves")
	if err != nil {
		return nil, nil, fmt.Errorf("pack getReserves: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.RPCCallTimeout())
	defer cancel()

	lpAddress := common.HexToAddress(scnrKlayLPAddress)
	output, err := c.RawClient().CallContract(callCtx, ethereum.CallMsg{
		To:   &lpAddress,
		Data: callData,
	}, nil)
	if err != nil {
		return nil, nil, entity.NewNetworkError(scnrKlayLPAddress, err)
	}

	unpacked, err := parsedLPABI.Unpack("getReserves", output)
	if err != nil || len(unpacked) < 2 {
		return nil, nil, entity.NewNetworkError(scnrKlayLPAddress, fmt.Errorf("decode getReserves output: %v", err))
	}
	reserve0, ok0 := unpacked[0].(*big.Int)
	reserve1, ok1 := unpacked[1].(*big.Int)
	if !ok0 || !ok1 {
		return nil, nil, entity.NewNetworkError(scnrKlayLPAddress, fmt.Errorf("unexpected getReserves output types"))
	}
	return reserve0, reserve1, nil
}
