package kokonutswap

import (
	"context"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/pkg/utils"
)

// KSDAddress is the protocol's single reward token. KokonutSwap only reports
// one claimable reward denomination.
const KSDAddress = "0x4fa62f1f404188ce860c8f0041d6ac3765a72e67"

const lpTokenDecimals = 18

// Adapter resolves a wallet's KokonutSwap LP positions.
type Adapter struct {
	client   *Client
	registry port.TokenRegistry
	logger   port.Logger
}

// NewAdapter creates the KokonutSwap protocol adapter.
func NewAdapter(client *Client, registry port.TokenRegistry, logger port.Logger) *Adapter {
	return &Adapter{client: client, registry: registry, logger: logger}
}

// Protocol implements port.ProtocolAdapter.
func (a *Adapter) Protocol() entity.DeFiProtocol {
	return entity.ProtocolKokonutSwap
}

// Positions implements port.ProtocolAdapter: every pool whose LP token the
// wallet holds or stakes, normalized into DeFiPosition records.
func (a *Adapter) Positions(ctx context.Context, walletAddress string) ([]entity.DeFiPosition, error) {
	pools, err := a.client.PoolList(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := a.client.UserLPBalances(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	farms, err := a.client.FarmPools(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	rawByLPToken := make(map[string]string, len(balances))
	for addr, raw := range balances {
		rawByLPToken[strings.ToLower(addr)] = raw
	}

	var positions []entity.DeFiPosition
	for _, pool := range pools {
		raw, held := rawByLPToken[strings.ToLower(pool.LPTokenAddress)]
		staked := stakedFarmUser(farms, pool.Address)
		if !held && staked == nil {
			continue
		}
		positions = append(positions, a.Position(walletAddress, raw, pool, pools, staked))
	}
	return positions, nil
}

// Position resolves one pool into a normalized DeFiPosition. rawLPBalance is
// the wallet's unstaked LP balance in the token's smallest unit; user is the
// wallet's farm record for this pool, nil when nothing is staked.
func (a *Adapter) Position(walletAddress, rawLPBalance string, pool Pool, allPools []Pool, user *FarmUser) entity.DeFiPosition {
	lpStaked := 0.0
	lpStakedValue := 0.0
	claimable := 0.0
	if user != nil {
		lpStaked = parseNumberLike(user.StakedAmount)
		lpStakedValue = parseNumberLike(user.StakedValue)
		claimable = parseNumberLike(user.ClaimableReward)
	}

	lpPrice := parseNumberLike(pool.LPTokenRealPrice)
	if lpPrice == 0 && lpStaked > 0 {
		lpPrice = guardNaN(lpStakedValue / lpStaked)
	}

	lpInWallet := 0.0
	if raw, ok := new(big.Int).SetString(rawLPBalance, 10); ok {
		lpInWallet = utils.AmountFromRaw(raw, lpTokenDecimals)
	}
	walletValue := guardNaN(lpInWallet * lpPrice)

	return entity.DeFiPosition{
		Protocol:    entity.ProtocolKokonutSwap,
		Type:        entity.PositionKokonutSwapLP,
		PoolAddress: pool.LPTokenAddress,
		PoolSymbol:  pool.Symbol,
		Tokens:      a.resolveTokens(pool, allPools),
		Wallet: entity.AmountValue{
			Amount: lpInWallet,
			Value:  walletValue,
		},
		Staked: entity.AmountValue{
			Amount: lpStaked,
			Value:  guardNaN(lpStakedValue),
		},
		Rewards: map[string]float64{
			KSDAddress: claimable,
		},
		Unstake: nil,
	}
}

// stakedFarmUser finds the wallet's farm record for a pool. Absence means
// nothing staked, not an error.
func stakedFarmUser(farms []FarmPool, poolAddress string) *FarmUser {
	for _, farm := range farms {
		if strings.EqualFold(farm.PoolAddress, poolAddress) {
			return farm.User
		}
	}
	return nil
}

// resolveTokens maps the pool's constituent coins to registry metadata.
// A coin that is itself another pool's LP token expands to that pool's
// constituents. Unresolvable coins stay as nil holes.
func (a *Adapter) resolveTokens(pool Pool, allPools []Pool) []*entity.TokenInfo {
	var tokens []*entity.TokenInfo
	for _, coinAddr := range pool.Coins {
		addr := strings.ToLower(coinAddr)
		if info, ok := a.registry.TokenByAddress(entity.ChainKlaytn, addr); ok {
			tokens = append(tokens, &info)
			continue
		}

		nested := findPoolByLPToken(allPools, addr)
		if nested == nil {
			tokens = append(tokens, nil)
			continue
		}
		for _, nestedCoin := range nested.Coins {
			if info, ok := a.registry.TokenByAddress(entity.ChainKlaytn, strings.ToLower(nestedCoin)); ok {
				tokens = append(tokens, &info)
			} else {
				tokens = append(tokens, nil)
			}
		}
	}
	return tokens
}

func findPoolByLPToken(pools []Pool, lpTokenAddress string) *Pool {
	for i := range pools {
		if strings.EqualFold(pools[i].LPTokenAddress, lpTokenAddress) {
			return &pools[i]
		}
	}
	return nil
}

// parseNumberLike mirrors the provider contract: number-like strings, with
// absent or malformed values treated as zero.
func parseNumberLike(s string) float64 {
	if s == "" {
		return 0
	}
	parsed, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	value, _ := parsed.Float64()
	return guardNaN(value)
}

func guardNaN(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
