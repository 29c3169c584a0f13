package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: "9090"
chains:
  - id: "ethereum"
    kind: "evm"
    rpcURL: "https://eth.example.com"
    currency:
      symbol: "ETH"
      decimals: 18
      coinGeckoId: "ethereum"
`))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.CoinGecko.BaseURL)
	assert.Equal(t, "usd", cfg.CoinGecko.VsCurrency)
	assert.Equal(t, 10, cfg.Performance.MaxConcurrentRequests)
	assert.Equal(t, 20, cfg.Performance.UnitTimeoutSeconds)
	assert.Equal(t, "data/wallets.yaml", cfg.Files.Wallets)
	assert.Equal(t, "data/tokens", cfg.Files.TokensDir)

	require.Len(t, cfg.Chains, 1)
	assert.Equal(t, "ethereum", cfg.Chains[0].ID)
	assert.Equal(t, uint8(18), cfg.Chains[0].Currency.Decimals)
}

func TestLoadEnvironmentOverridesCovalentKeys(t *testing.T) {
	t.Setenv("COVALENT_API_KEYS", "env-key-1, env-key-2 ,")

	cfg, err := Load(writeConfig(t, `
covalent:
  apiKeys: ["file-key"]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"env-key-1", "env-key-2"}, cfg.Covalent.APIKeys)
}

func TestLoadKeepsFileKeysWithoutEnv(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
covalent:
  apiKeys: ["file-key"]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"file-key"}, cfg.Covalent.APIKeys)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(os.TempDir(), "does-not-exist-config.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [broken"))
	assert.Error(t, err)
}
