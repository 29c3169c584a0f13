// Package keypool rotates a fixed set of API keys to spread requests across
// provider rate limits.
package keypool

import (
	"errors"
	"sync/atomic"
)

// ErrEmpty is returned when the pool was built with no keys.
var ErrEmpty = errors.New("keypool: no keys configured")

// Pool hands out keys round-robin. Safe for concurrent use.
type Pool struct {
	keys []string
	next atomic.Uint64
}

// New builds a pool over the given keys.
func New(keys []string) (*Pool, error) {
	if len(keys) == 0 {
		return nil, ErrEmpty
	}
	copied := make([]string, len(keys))
	copy(copied, keys)
	return &Pool{keys: copied}, nil
}

// Next returns the next key in rotation.
func (p *Pool) Next() string {
	n := p.next.Add(1) - 1
	return p.keys[n%uint64(len(p.keys))]
}

// Size returns the number of keys in the pool.
func (p *Pool) Size() int {
	return len(p.keys)
}
