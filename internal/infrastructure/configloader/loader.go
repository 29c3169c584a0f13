// Package configloader reads the top-level service configuration from YAML.
package configloader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio_aggregator/internal/pkg/utils"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CoinGeckoConfig holds price oracle settings.
type CoinGeckoConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	ClientTimeoutSeconds int     `yaml:"clientTimeoutSeconds"`
	VsCurrency           string  `yaml:"vsCurrency"`
	CacheTTLMinutes      int     `yaml:"cacheTTLMinutes"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
}

// CovalentConfig holds token indexer settings. API keys may also come from
// the COVALENT_API_KEYS environment variable (comma-separated); the
// environment takes precedence over the file.
type CovalentConfig struct {
	BaseURL              string   `yaml:"baseURL"`
	ClientTimeoutSeconds int      `yaml:"clientTimeoutSeconds"`
	APIKeys              []string `yaml:"apiKeys"`
}

// KokonutSwapConfig holds the protocol API settings.
type KokonutSwapConfig struct {
	BaseURL              string `yaml:"baseURL"`
	ClientTimeoutSeconds int    `yaml:"clientTimeoutSeconds"`
}

// PerformanceConfig holds fan-out limits and per-call timeouts.
type PerformanceConfig struct {
	MaxConcurrentRequests    int `yaml:"max_concurrent_requests"`
	UnitTimeoutSeconds       int `yaml:"unit_timeout_seconds"`
	ConnectionTimeoutSeconds int `yaml:"connection_timeout_seconds"`
	RPCCallTimeoutSeconds    int `yaml:"rpc_call_timeout_seconds"`
}

// FilesConfig points to the local data files.
type FilesConfig struct {
	Wallets   string `yaml:"wallets"`
	TokensDir string `yaml:"tokensDir"`
}

// ChainConfig describes one supported network.
type ChainConfig struct {
	ID              string              `yaml:"id"`
	Kind            string              `yaml:"kind"` // evm, solana or cosmos-sdk
	RPCURL          string              `yaml:"rpcURL"`
	FallbackRPCURLs []string            `yaml:"fallbackRPCURLs"`
	LCDURL          string              `yaml:"lcdURL"`
	Bech32Prefix    string              `yaml:"bech32Prefix"`
	DelegationsAPI  string              `yaml:"delegationsAPI"` // legacy or v1beta1
	Currency        ChainCurrencyConfig `yaml:"currency"`
}

// ChainCurrencyConfig describes a network's native currency.
type ChainCurrencyConfig struct {
	Symbol       string `yaml:"symbol"`
	Decimals     uint8  `yaml:"decimals"`
	CoinGeckoID  string `yaml:"coinGeckoId"`
	MinimalDenom string `yaml:"minimalDenom"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	CoinGecko   CoinGeckoConfig   `yaml:"coingecko"`
	Covalent    CovalentConfig    `yaml:"covalent"`
	KokonutSwap KokonutSwapConfig `yaml:"kokonutswap"`
	Performance PerformanceConfig `yaml:"performance"`
	Files       FilesConfig       `yaml:"files"`
	Chains      []ChainConfig     `yaml:"chains"`
}

// Load reads the YAML configuration file from the given path and unmarshals
// it, then fills in defaults for anything left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.CoinGecko.ClientTimeoutSeconds <= 0 {
		cfg.CoinGecko.ClientTimeoutSeconds = 10
	}
	if cfg.CoinGecko.VsCurrency == "" {
		cfg.CoinGecko.VsCurrency = "usd"
	}
	if cfg.CoinGecko.CacheTTLMinutes <= 0 {
		cfg.CoinGecko.CacheTTLMinutes = 1
	}
	if cfg.CoinGecko.RequestsPerSecond <= 0 {
		cfg.CoinGecko.RequestsPerSecond = 5
	}

	if cfg.Covalent.BaseURL == "" {
		cfg.Covalent.BaseURL = "https://api.covalenthq.com"
	}
	if cfg.Covalent.ClientTimeoutSeconds <= 0 {
		cfg.Covalent.ClientTimeoutSeconds = 15
	}
	if env := utils.GetEnv("COVALENT_API_KEYS", ""); env != "" {
		var keys []string
		for _, key := range strings.Split(env, ",") {
			if trimmed := strings.TrimSpace(key); trimmed != "" {
				keys = append(keys, trimmed)
			}
		}
		cfg.Covalent.APIKeys = keys
	}

	if cfg.KokonutSwap.BaseURL == "" {
		cfg.KokonutSwap.BaseURL = "https://prod.kokonut-api.com"
	}
	if cfg.KokonutSwap.ClientTimeoutSeconds <= 0 {
		cfg.KokonutSwap.ClientTimeoutSeconds = 10
	}

	if cfg.Performance.MaxConcurrentRequests <= 0 {
		cfg.Performance.MaxConcurrentRequests = 10
	}
	if cfg.Performance.UnitTimeoutSeconds <= 0 {
		cfg.Performance.UnitTimeoutSeconds = 20
	}
	if cfg.Performance.ConnectionTimeoutSeconds <= 0 {
		cfg.Performance.ConnectionTimeoutSeconds = 10
	}
	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
	}

	if cfg.Files.Wallets == "" {
		cfg.Files.Wallets = "data/wallets.yaml"
	}
	if cfg.Files.TokensDir == "" {
		cfg.Files.TokensDir = "data/tokens"
	}

	return &cfg, nil
}
