package wiki_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/wikicrawl/internal/wiki"
)

func TestVisitedSetClaim(t *testing.T) {
	t.Parallel()

	visited := wiki.NewVisitedSet()

	assert.True(t, visited.Claim("https://example.org/wiki/Go"))
	assert.False(t, visited.Claim("https://example.org/wiki/Go"))
	assert.True(t, visited.Claim("https://example.org/wiki/Rust"))
	assert.Equal(t, 2, visited.Len())
}

func TestVisitedSetClaimConcurrent(t *testing.T) {
	t.Parallel()

	const (
		urls       = 20
		goroutines = 16
	)

	visited := wiki.NewVisitedSet()

	var claims atomic.Int64
	var wg sync.WaitGroup

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < urls; i++ {
				if visited.Claim(fmt.Sprintf("https://example.org/wiki/Page_%d", i)) {
					claims.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	// Each URL is claimed by exactly one goroutine.
	assert.Equal(t, int64(urls), claims.Load())
	assert.Equal(t, urls, visited.Len())
}
