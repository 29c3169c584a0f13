package tokenregistry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_aggregator/internal/domain/entity"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadReadsEveryYAMLFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "klaytn.yaml", `
tokens:
  - chainId: "klaytn"
    address: "0xAAAA000000000000000000000000000000000001"
    symbol: "SCNR"
    name: "Swapscanner"
    decimals: 25
`)
	writeFile(t, dir, "stable.yaml", `
tokens:
  - chainId: "klaytn"
    address: "0xaaaa000000000000000000000000000000000002"
    symbol: "KSD"
    decimals: 18
    priceUsd: 1.0
`)
	writeFile(t, dir, "notes.txt", "ignored")

	registry, err := Load(dir)
	require.NoError(t, err)

	// Lookup is case-insensitive on the contract address.
	scnr, ok := registry.TokenByAddress(entity.ChainKlaytn, "0xaaaa000000000000000000000000000000000001")
	require.True(t, ok)
	assert.Equal(t, "SCNR", scnr.Symbol)
	assert.Equal(t, uint8(25), scnr.Decimals)

	ksd, ok := registry.TokenByAddress(entity.ChainKlaytn, "0xAAAA000000000000000000000000000000000002")
	require.True(t, ok)
	assert.InDelta(t, 1.0, ksd.PriceUSD, 1e-12)

	_, ok = registry.TokenByAddress(entity.ChainEthereum, "0xaaaa000000000000000000000000000000000001")
	assert.False(t, ok)

	assert.Len(t, registry.TokensByChain(entity.ChainKlaytn), 2)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "tokens: [not: closed")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestCoinGeckoIDsDeduplicates(t *testing.T) {
	registry := NewFromTokens([]entity.TokenInfo{
		{ChainID: entity.ChainKlaytn, Address: "0x1", CoinGeckoID: "tether"},
		{ChainID: entity.ChainEthereum, Address: "0x2", CoinGeckoID: "tether"},
		{ChainID: entity.ChainEthereum, Address: "0x3", CoinGeckoID: "usd-coin"},
		{ChainID: entity.ChainEthereum, Address: "0x4"},
	})

	assert.ElementsMatch(t, []string{"tether", "usd-coin"}, registry.CoinGeckoIDs())
}
