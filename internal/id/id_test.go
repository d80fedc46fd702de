package id

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_UniqueAndOrdered(t *testing.T) {
	const n = 1000
	seen := make(map[string]bool, n)
	var prev string
	for i := 0; i < n; i++ {
		got := New()
		assert.Len(t, got, 26)
		assert.False(t, seen[got], "duplicate ID %s", got)
		seen[got] = true
		if prev != "" {
			assert.Greater(t, got, prev, "IDs must sort in generation order")
		}
		prev = got
	}
}

func TestNew_ConcurrentUnique(t *testing.T) {
	const workers, perWorker = 8, 200

	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				got := New()
				mu.Lock()
				assert.False(t, seen[got])
				seen[got] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}
