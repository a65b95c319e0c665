package checkout

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestGenerate_Format(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := NewGenerator(
		WithClock(func() time.Time { return fixed }),
		WithSuffix(func() string { return "ab12cd34e" }),
	)

	ref := g.Generate("NEXA")
	assert.Equal(t, "NEXA_1700000000000_AB12CD34E", ref)
}

func TestGenerate_DefaultPrefix(t *testing.T) {
	g := NewGenerator()
	ref := g.Generate("")
	assert.True(t, strings.HasPrefix(ref, DefaultReferencePrefix+"_"))
}

func TestGenerate_UppercaseASCII(t *testing.T) {
	g := NewGenerator()
	ref := g.Generate("nexa")
	assert.Equal(t, strings.ToUpper(ref), ref)
	for _, r := range ref {
		assert.True(t, r < 128, "reference must be ASCII-only, got %q", ref)
	}
}

func TestGenerate_SuffixLength(t *testing.T) {
	g := NewGenerator()
	parts := strings.Split(g.Generate("NEXA"), "_")
	require.Len(t, parts, 3)
	assert.GreaterOrEqual(t, len(parts[2]), 6)
}

func TestGenerate_UniqueSequential(t *testing.T) {
	g := NewGenerator()
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		ref := g.Generate("NEXA")
		_, dup := seen[ref]
		require.False(t, dup, "duplicate reference after %d calls: %s", i, ref)
		seen[ref] = struct{}{}
	}
}

func TestGenerate_UniqueConcurrent(t *testing.T) {
	g := NewGenerator()

	var mu sync.Mutex
	seen := make(map[string]struct{}, 4000)

	var eg errgroup.Group
	for w := 0; w < 8; w++ {
		eg.Go(func() error {
			for i := 0; i < 500; i++ {
				ref := g.Generate("NEXA")
				mu.Lock()
				seen[ref] = struct{}{}
				mu.Unlock()
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.Len(t, seen, 4000)
}
