// Package tokenregistry loads and serves the local registry of known tokens.
package tokenregistry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio_aggregator/internal/domain/entity"
)

type tokenFile struct {
	Tokens []entity.TokenInfo `yaml:"tokens"`
}

// Registry is an in-memory token registry keyed by chain and lowercased
// contract address. Immutable after load.
type Registry struct {
	byChain map[entity.ChainID]map[string]entity.TokenInfo
}

// Load reads every *.yaml file in dir. Each file holds a `tokens` list; the
// file name does not matter.
func Load(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read token registry dir %s: %w", dir, err)
	}

	registry := &Registry{byChain: make(map[entity.ChainID]map[string]entity.TokenInfo)}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
		}
		var parsed tokenFile
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to unmarshal token file %s: %w", path, err)
		}
		for _, token := range parsed.Tokens {
			registry.add(token)
		}
	}
	return registry, nil
}

// NewFromTokens builds a registry directly from a token list.
func NewFromTokens(tokens []entity.TokenInfo) *Registry {
	registry := &Registry{byChain: make(map[entity.ChainID]map[string]entity.TokenInfo)}
	for _, token := range tokens {
		registry.add(token)
	}
	return registry
}

func (r *Registry) add(token entity.TokenInfo) {
	chainTokens, ok := r.byChain[token.ChainID]
	if !ok {
		chainTokens = make(map[string]entity.TokenInfo)
		r.byChain[token.ChainID] = chainTokens
	}
	chainTokens[strings.ToLower(token.Address)] = token
}

// TokenByAddress implements port.TokenRegistry.
func (r *Registry) TokenByAddress(chain entity.ChainID, address string) (entity.TokenInfo, bool) {
	token, ok := r.byChain[chain][strings.ToLower(address)]
	return token, ok
}

// TokensByChain implements port.TokenRegistry.
func (r *Registry) TokensByChain(chain entity.ChainID) []entity.TokenInfo {
	chainTokens := r.byChain[chain]
	tokens := make([]entity.TokenInfo, 0, len(chainTokens))
	for _, token := range chainTokens {
		tokens = append(tokens, token)
	}
	return tokens
}

// CoinGeckoIDs returns every distinct oracle identifier in the registry,
// used to warm the price cache at startup.
func (r *Registry) CoinGeckoIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, chainTokens := range r.byChain {
		for _, token := range chainTokens {
			if token.CoinGeckoID == "" {
				continue
			}
			if _, dup := seen[token.CoinGeckoID]; dup {
				continue
			}
			seen[token.CoinGeckoID] = struct{}{}
			ids = append(ids, token.CoinGeckoID)
		}
	}
	return ids
}
