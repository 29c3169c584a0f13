// Package walletloader reads the registered wallet list from a YAML file.
package walletloader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio_aggregator/internal/domain/entity"
)

type walletFile struct {
	Wallets []walletEntry `yaml:"wallets"`
}

type walletEntry struct {
	Address  string   `yaml:"address"`
	Kind     string   `yaml:"kind"`
	Networks []string `yaml:"networks"`
}

// Loader serves wallets parsed once at startup.
type Loader struct {
	wallets   []entity.Wallet
	byAddress map[string]entity.Wallet
}

// Load reads and validates the wallet file. A wallet that fails validation
// aborts the load; a broken registry should be fixed, not silently trimmed.
func Load(path string) (*Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet file %s: %w", path, err)
	}
	var parsed walletFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet file %s: %w", path, err)
	}

	loader := &Loader{byAddress: make(map[string]entity.Wallet, len(parsed.Wallets))}
	for i, raw := range parsed.Wallets {
		wallet := entity.Wallet{
			Address: raw.Address,
			Kind:    entity.WalletKind(raw.Kind),
		}
		for _, network := range raw.Networks {
			wallet.Networks = append(wallet.Networks, entity.ChainID(network))
		}
		if err := wallet.Validate(); err != nil {
			return nil, fmt.Errorf("wallet #%d (%s): %w", i, raw.Address, err)
		}
		loader.wallets = append(loader.wallets, wallet)
		loader.byAddress[strings.ToLower(wallet.Address)] = wallet
	}
	return loader, nil
}

// Wallets implements port.WalletProvider.
func (l *Loader) Wallets() ([]entity.Wallet, error) {
	out := make([]entity.Wallet, len(l.wallets))
	copy(out, l.wallets)
	return out, nil
}

// WalletByAddress implements port.WalletProvider. Lookup is case-insensitive
// so EVM checksum casing does not matter.
func (l *Loader) WalletByAddress(address string) (entity.Wallet, bool) {
	wallet, ok := l.byAddress[strings.ToLower(address)]
	return wallet, ok
}
