package llm

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/worth-it/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		item string
		want string
		cost float64
	}{
		{item: "Purell disinfecting wipes", cost: 7, want: "purell disinfecting wipes-7"},
		{item: "  MacBook Air M3 ", cost: 1299, want: "macbook air m3-1299"},
		{item: "Coffee", cost: 4.5, want: "coffee-4.5"},
		{item: "Coffee", cost: 4.50, want: "coffee-4.5"},
		{item: "Gum", cost: 0.1, want: "gum-0.1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CacheKey(tt.item, tt.cost))
	}
}

func TestCacheStoreGetSet(t *testing.T) {
	cache := NewCacheStore()

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Set("coffee-4.5", model.SpendDiscretionarySmall)
	got, ok := cache.Get("coffee-4.5")
	require.True(t, ok)
	assert.Equal(t, model.SpendDiscretionarySmall, got)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, DefaultCacheCapacity, stats.Capacity)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)

	assert.True(t, cache.Delete("coffee-4.5"))
	assert.False(t, cache.Delete("coffee-4.5"))
	assert.Equal(t, 0, cache.Len())
}

func TestCacheStoreLRU(t *testing.T) {
	t.Run("101st key evicts the least recently touched", func(t *testing.T) {
		cache := NewCacheStore()
		for i := 0; i < 100; i++ {
			cache.Set(fmt.Sprintf("item-%d", i), model.SpendEssentialDaily)
		}
		require.Equal(t, 100, cache.Len())

		cache.Set("item-100", model.SpendHighValue)

		stats := cache.Stats()
		assert.Equal(t, 100, stats.Size)
		assert.Equal(t, uint64(1), stats.Evictions)
		assert.NotContains(t, stats.Keys, "item-0")
		assert.Contains(t, stats.Keys, "item-1")
		assert.Equal(t, "item-100", stats.Keys[0])
	})

	t.Run("reading promotes an entry", func(t *testing.T) {
		cache := NewCacheStore(WithCapacity(3))
		cache.Set("a", model.SpendEssentialDaily)
		cache.Set("b", model.SpendEssentialDaily)
		cache.Set("c", model.SpendEssentialDaily)

		_, ok := cache.Get("a")
		require.True(t, ok)

		cache.Set("d", model.SpendEssentialDaily)

		assert.Equal(t, []string{"d", "a", "c"}, cache.Stats().Keys)
	})

	t.Run("overwriting does not evict", func(t *testing.T) {
		cache := NewCacheStore(WithCapacity(2))
		cache.Set("a", model.SpendEssentialDaily)
		cache.Set("b", model.SpendEssentialDaily)
		cache.Set("a", model.SpendHighValue)

		got, ok := cache.Get("a")
		require.True(t, ok)
		assert.Equal(t, model.SpendHighValue, got)
		assert.Equal(t, 2, cache.Len())
		assert.Zero(t, cache.Stats().Evictions)
	})
}

func TestCacheStoreTTL(t *testing.T) {
	clock := newFakeClock()
	cache := NewCacheStore(WithClock(clock.Now))

	cache.Set("old", model.SpendEssentialDaily)
	clock.Advance(20 * time.Minute)
	cache.Set("young", model.SpendEssentialDaily)

	clock.Advance(10 * time.Minute)
	_, ok := cache.Get("old")
	assert.True(t, ok, "exactly 30 minutes old is still live")

	clock.Advance(time.Second)
	stats := cache.Stats()
	assert.Equal(t, []string{"young"}, stats.Keys)
	assert.Equal(t, uint64(1), stats.Expired)

	_, ok = cache.Get("old")
	assert.False(t, ok)

	t.Run("reads do not extend the TTL", func(t *testing.T) {
		clock.Advance(19 * time.Minute)
		_, ok := cache.Get("young")
		require.True(t, ok)

		clock.Advance(time.Minute)
		_, ok = cache.Get("young")
		assert.False(t, ok)
	})

	t.Run("writes purge expired entries", func(t *testing.T) {
		cache := NewCacheStore(WithClock(clock.Now), WithTTL(time.Minute))
		cache.Set("a", model.SpendEssentialDaily)
		clock.Advance(2 * time.Minute)
		cache.Set("b", model.SpendEssentialDaily)

		assert.Equal(t, []string{"b"}, cache.Stats().Keys)
	})
}

func TestCacheStoreReset(t *testing.T) {
	cache := NewCacheStore()
	cache.Set("a", model.SpendEssentialDaily)
	cache.Get("a")
	cache.Get("b")

	cache.Reset()

	stats := cache.Stats()
	assert.Zero(t, stats.Size)
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
	assert.Empty(t, stats.Keys)
}

func TestCacheStoreConcurrentAccess(t *testing.T) {
	cache := NewCacheStore(WithCapacity(10))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k-%d", (g*7+i)%25)
				cache.Set(key, model.SpendEssentialDaily)
				cache.Get(key)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 10)
}
