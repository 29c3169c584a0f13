package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletValidate(t *testing.T) {
	valid := Wallet{
		Address:  "0x7777777141f111cf9f0308a63dbd9d0cad3010c4",
		Kind:     WalletKindEVM,
		Networks: []ChainID{ChainEthereum, ChainKlaytn},
	}
	require.NoError(t, valid.Validate())

	empty := valid
	empty.Address = ""
	assert.Error(t, empty.Validate())

	unknownKind := valid
	unknownKind.Kind = "bitcoin"
	assert.Error(t, unknownKind.Validate())

	noNetworks := valid
	noNetworks.Networks = nil
	assert.Error(t, noNetworks.Validate())

	duplicate := valid
	duplicate.Networks = []ChainID{ChainEthereum, ChainEthereum}
	assert.Error(t, duplicate.Validate())

	crossKind := valid
	crossKind.Networks = []ChainID{ChainEthereum, ChainSolana}
	assert.Error(t, crossKind.Validate())
}

func TestSupportedNetworks(t *testing.T) {
	assert.ElementsMatch(t,
		[]ChainID{ChainEthereum, ChainPolygon, ChainKlaytn},
		SupportedNetworks(WalletKindEVM))
	assert.ElementsMatch(t, []ChainID{ChainSolana}, SupportedNetworks(WalletKindSolana))
	assert.ElementsMatch(t,
		[]ChainID{ChainCosmosHub, ChainOsmosis},
		SupportedNetworks(WalletKindCosmosSDK))
	assert.Empty(t, SupportedNetworks("bitcoin"))
}

func TestAggregatedValuationAdd(t *testing.T) {
	var v AggregatedValuation
	v.Add(AssetValuation{Symbol: "ETH", Amount: 2, Price: 2000, Priced: true, ValueUSD: 4000})
	v.Add(AssetValuation{Symbol: "KLAY", Amount: 100, Price: 0, Priced: false, ValueUSD: 0})
	v.Skip(SkippedUnit{Source: "tokens", Reason: "indexer down"})

	assert.InDelta(t, 4000.0, v.TotalValueUSD, 1e-9)
	assert.Len(t, v.Assets, 2)
	assert.Len(t, v.Skipped, 1)
}
