// Package chain assembles the per-network adapters behind a single lookup.
package chain

import (
	"fmt"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
)

// Registry maps network identifiers to their adapters. Populated once at
// startup, read-only afterwards.
type Registry struct {
	clients map[entity.ChainID]port.ChainClient
}

// NewRegistry builds a registry from the given adapters. Duplicate network
// identifiers are a wiring bug and fail loudly.
func NewRegistry(clients ...port.ChainClient) (*Registry, error) {
	registry := &Registry{clients: make(map[entity.ChainID]port.ChainClient, len(clients))}
	for _, client := range clients {
		if _, dup := registry.clients[client.ID()]; dup {
			return nil, fmt.Errorf("duplicate chain adapter for network %q", client.ID())
		}
		registry.clients[client.ID()] = client
	}
	return registry, nil
}

// Client implements port.ChainRegistry.
func (r *Registry) Client(id entity.ChainID) (port.ChainClient, bool) {
	client, ok := r.clients[id]
	return client, ok
}
