package llm

import (
	"container/list"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/worth-it/internal/metrics"
	"github.com/Veraticus/worth-it/internal/model"
)

// Cache defaults.
const (
	DefaultCacheCapacity = 100
	DefaultCacheTTL      = 30 * time.Minute
)

// cacheEntry is one cached classification.
type cacheEntry struct {
	storedAt  time.Time
	expiresAt time.Time
	key       string
	category  model.SpendCategory
}

// CacheStats is a point-in-time view of the cache.
type CacheStats struct {
	Keys      []string `json:"keys"`
	Size      int      `json:"size"`
	Capacity  int      `json:"capacity"`
	Hits      uint64   `json:"hits"`
	Misses    uint64   `json:"misses"`
	Evictions uint64   `json:"evictions"`
	Expired   uint64   `json:"expired"`
}

// CacheStore is an LRU cache with a fixed TTL per entry. Expired entries are
// purged on every read and write. A read marks the entry most recently used
// without extending its TTL. All methods are safe for concurrent use.
type CacheStore struct {
	entries   map[string]*list.Element
	order     *list.List
	now       func() time.Time
	capacity  int
	ttl       time.Duration
	hits      uint64
	misses    uint64
	evictions uint64
	expired   uint64
	mu        sync.Mutex
}

// CacheOption configures a CacheStore.
type CacheOption func(*CacheStore)

// WithCapacity sets the maximum number of entries.
func WithCapacity(n int) CacheOption {
	return func(c *CacheStore) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithTTL sets how long an entry lives after it is stored.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CacheStore) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *CacheStore) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCacheStore creates an empty cache with capacity 100 and a 30 minute TTL
// unless overridden.
func NewCacheStore(opts ...CacheOption) *CacheStore {
	c := &CacheStore{
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
		capacity: DefaultCacheCapacity,
		ttl:      DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CacheKey builds the cache key: the trimmed, lowercased item name, a dash,
// and the cost in its shortest decimal form.
func CacheKey(itemName string, cost float64) string {
	return strings.ToLower(strings.TrimSpace(itemName)) + "-" + strconv.FormatFloat(cost, 'f', -1, 64)
}

// Get returns the cached category and promotes the entry to most recently used.
func (c *CacheStore) Get(key string) (model.SpendCategory, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpired()

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		metrics.CacheLookups.WithLabelValues(metrics.ResultMiss).Inc()
		return "", false
	}

	c.order.MoveToFront(elem)
	c.hits++
	metrics.CacheLookups.WithLabelValues(metrics.ResultHit).Inc()
	return elem.Value.(*cacheEntry).category, true
}

// Set stores a category, evicting the least recently used entry when full.
// Storing an existing key refreshes its TTL.
func (c *CacheStore) Set(key string, category model.SpendCategory) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpired()

	now := c.now()
	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.category = category
		entry.storedAt = now
		entry.expiresAt = now.Add(c.ttl)
		c.order.MoveToFront(elem)
		return
	}

	for c.order.Len() >= c.capacity {
		c.removeElement(c.order.Back())
		c.evictions++
		metrics.CacheEvictions.WithLabelValues(metrics.EvictCapacity).Inc()
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{
		key:       key,
		category:  category,
		storedAt:  now,
		expiresAt: now.Add(c.ttl),
	})
	metrics.CacheEntries.Set(float64(c.order.Len()))
}

// Delete removes a key, reporting whether it was present.
func (c *CacheStore) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeElement(elem)
	return true
}

// Len returns the number of live entries.
func (c *CacheStore) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpired()
	return c.order.Len()
}

// Stats purges expired entries and reports the cache contents, most recent first.
func (c *CacheStore) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpired()

	keys := make([]string, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(*cacheEntry).key)
	}

	return CacheStats{
		Keys:      keys,
		Size:      len(keys),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Expired:   c.expired,
	}
}

// Reset drops every entry and zeroes the counters.
func (c *CacheStore) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.hits, c.misses, c.evictions, c.expired = 0, 0, 0, 0
	metrics.CacheEntries.Set(0)
}

// purgeExpired must be called with mu held.
func (c *CacheStore) purgeExpired() {
	now := c.now()
	for e := c.order.Back(); e != nil; {
		prev := e.Prev()
		if now.After(e.Value.(*cacheEntry).expiresAt) {
			c.removeElement(e)
			c.expired++
			metrics.CacheEvictions.WithLabelValues(metrics.EvictExpired).Inc()
		}
		e = prev
	}
}

// removeElement must be called with mu held.
func (c *CacheStore) removeElement(e *list.Element) {
	entry := c.order.Remove(e).(*cacheEntry)
	delete(c.entries, entry.key)
	metrics.CacheEntries.Set(float64(c.order.Len()))
}
