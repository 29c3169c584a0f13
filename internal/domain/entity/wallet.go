package entity

import "fmt"

// WalletKind groups networks by address family.
type WalletKind string

const (
	// WalletKindEVM covers chains sharing the 0x hex address format.
	WalletKindEVM WalletKind = "evm"
	// WalletKindSolana covers base58 ed25519 addresses.
	WalletKindSolana WalletKind = "solana"
	// WalletKindCosmosSDK covers bech32 addresses where one key maps to
	// multiple prefixed encodings.
	WalletKindCosmosSDK WalletKind = "cosmos-sdk"
)

// networksByKind is the closed set of networks each wallet kind may target.
var networksByKind = map[WalletKind][]ChainID{
	WalletKindEVM:       {ChainEthereum, ChainPolygon, ChainKlaytn},
	WalletKindSolana:    {ChainSolana},
	WalletKindCosmosSDK: {ChainCosmosHub, ChainOsmosis},
}

// SupportedNetworks returns the networks a wallet kind may be checked on.
func SupportedNetworks(kind WalletKind) []ChainID {
	return networksByKind[kind]
}

// Wallet is a user-registered address plus the set of networks it is checked
// against. Wallets are read-only to the aggregation pipeline.
type Wallet struct {
	Address  string     `yaml:"address" json:"address"`
	Kind     WalletKind `yaml:"kind" json:"kind"`
	Networks []ChainID  `yaml:"networks" json:"networks"`
}

// Validate checks that the wallet targets a non-empty, duplicate-free set of
// networks supported by its kind.
func (w Wallet) Validate() error {
	if w.Address == "" {
		return fmt.Errorf("wallet address is empty")
	}
	supported, ok := networksByKind[w.Kind]
	if !ok {
		return fmt.Errorf("wallet %s: unknown kind %q", w.Address, w.Kind)
	}
	if len(w.Networks) == 0 {
		return fmt.Errorf("wallet %s: networks must not be empty", w.Address)
	}
	supportedSet := make(map[ChainID]struct{}, len(supported))
	for _, id := range supported {
		supportedSet[id] = struct{}{}
	}
	seen := make(map[ChainID]struct{}, len(w.Networks))
	for _, id := range w.Networks {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("wallet %s: duplicate network %q", w.Address, id)
		}
		seen[id] = struct{}{}
		if _, ok := supportedSet[id]; !ok {
			return fmt.Errorf("wallet %s: network %q is not supported by kind %q", w.Address, id, w.Kind)
		}
	}
	return nil
}
