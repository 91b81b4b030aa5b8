package cases

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNumberGenerator_Format(t *testing.T) {
	g := NewNumberGenerator()
	n := g.Next()
	require.True(t, strings.HasPrefix(n, "CASE-"))
}

func TestNumberGenerator_UniqueWithFrozenClock(t *testing.T) {
	frozen := time.UnixMilli(1756700000000)
	g := &NumberGenerator{now: func() time.Time { return frozen }}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := g.Next()
		require.False(t, seen[n], "duplicate %s", n)
		seen[n] = true
	}
	require.Equal(t, "CASE-1756700000000", g.Next()[:len("CASE-1756700000000")])
}

func TestNumberGenerator_UniqueUnderConcurrency(t *testing.T) {
	g := NewNumberGenerator()

	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := map[string]bool{}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, g.Next())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, n := range local {
				require.False(t, seen[n], "duplicate %s", n)
				seen[n] = true
			}
		}()
	}
	wg.Wait()
	require.Len(t, seen, workers*perWorker)
}
