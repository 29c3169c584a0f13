package keypool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNextRotates(t *testing.T) {
	pool, err := New([]string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, 3, pool.Size())

	got := []string{pool.Next(), pool.Next(), pool.Next(), pool.Next()}
	assert.Equal(t, []string{"a", "b", "c", "a"}, got)
}

func TestNextIsUniformUnderConcurrency(t *testing.T) {
	pool, err := New([]string{"a", "b"})
	require.NoError(t, err)

	const callsPerKey = 100
	var mu sync.Mutex
	counts := make(map[string]int)

	var wg sync.WaitGroup
	for i := 0; i < 2*callsPerKey; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := pool.Next()
			mu.Lock()
			counts[key]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, callsPerKey, counts["a"])
	assert.Equal(t, callsPerKey, counts["b"])
}
