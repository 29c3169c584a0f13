package kokonutswap

// Pool is one entry of the pool-list endpoint. Number-like fields arrive as
// strings already formatted with decimals applied; the shapes are
// provider-owned and treated as unstable.
type Pool struct {
	Address          string   `json:"address"`
	Symbol           string   `json:"symbol"`
	PoolType         string   `json:"poolType"`
	LPTokenAddress   string   `json:"lpTokenAddress"`
	Coins            []string `json:"coins"`
	CoinsUnderlying  []string `json:"coinsUnderlying"`
	Deprecated       bool     `json:"deprecated"`
	TVL              string   `json:"tvl"`
	LPTokenRealPrice string   `json:"lpTokenRealPrice"`
	LPTokenSupply    string   `json:"lpTokenTotalSupply"`
}

// FarmUser is the caller's position inside a farm record.
type FarmUser struct {
	StakedAmount    string `json:"stakedAmount"`
	StakedValue     string `json:"stakedValue"`
	ClaimableReward string `json:"claimableReward"`
}

// FarmPool is one entry of the farm-pools endpoint.
type FarmPool struct {
	PoolAddress              string    `json:"poolAddress"`
	StakingPoolAddress       string    `json:"stakingPoolAddress"`
	LPTokenAddress           string    `json:"lpTokenAddress"`
	StakingRewardCoinAddress string    `json:"stakingRewardCoinAddress"`
	User                     *FarmUser `json:"user"`
	Deprecated               bool      `json:"deprecated"`
}

type poolListResponse struct {
	Pools []Pool `json:"pools"`
}

type farmPoolsResponse struct {
	FarmPools []FarmPool `json:"farmPools"`
}

type userBalancesResponse struct {
	// Balances maps LP token address to the wallet's raw LP balance.
	Balances map[string]string `json:"balances"`
}
