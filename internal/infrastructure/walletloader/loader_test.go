package walletloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_aggregator/internal/domain/entity"
)

func writeWallets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesAndValidates(t *testing.T) {
	path := writeWallets(t, `
wallets:
  - address: "0x7777777141F111cF9F0308a63dbd9d0CaD3010C4"
    kind: "evm"
    networks: ["ethereum", "klaytn"]
  - address: "cosmos1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"
    kind: "cosmos-sdk"
    networks: ["cosmos-hub", "osmosis"]
`)

	loader, err := Load(path)
	require.NoError(t, err)

	wallets, err := loader.Wallets()
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, entity.WalletKindEVM, wallets[0].Kind)
	assert.Equal(t, []entity.ChainID{entity.ChainEthereum, entity.ChainKlaytn}, wallets[0].Networks)

	// Lookup ignores EVM checksum casing.
	found, ok := loader.WalletByAddress("0x7777777141f111cf9f0308a63dbd9d0cad3010c4")
	require.True(t, ok)
	assert.Equal(t, "0x7777777141F111cF9F0308a63dbd9d0CaD3010C4", found.Address)

	_, ok = loader.WalletByAddress("0xunknown")
	assert.False(t, ok)
}

func TestLoadRejectsInvalidWallet(t *testing.T) {
	path := writeWallets(t, `
wallets:
  - address: "0x7777777141f111cf9f0308a63dbd9d0cad3010c4"
    kind: "evm"
    networks: ["solana"]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported by kind")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestWalletsReturnsCopy(t *testing.T) {
	path := writeWallets(t, `
wallets:
  - address: "0x7777777141f111cf9f0308a63dbd9d0cad3010c4"
    kind: "evm"
    networks: ["ethereum"]
`)
	loader, err := Load(path)
	require.NoError(t, err)

	first, _ := loader.Wallets()
	first[0].Address = "mutated"

	second, _ := loader.Wallets()
	assert.Equal(t, "0x7777777141f111cf9f0308a63dbd9d0cad3010c4", second[0].Address)
}
