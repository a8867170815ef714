package careervalue

import (
	"sync"
	"time"
)

// DefaultCacheTTL is how long a computed value is reused across runs
const DefaultCacheTTL = 7 * 24 * time.Hour

// Cache remembers computed career values by profile path. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	Values   map[string]int       `json:"values"`    // profile path → AV sum
	CachedAt map[string]time.Time `json:"cached_at"` // profile path → cache time
	TTL      time.Duration        `json:"-"`
}

// NewCache creates an empty cache with the given TTL
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		Values:   make(map[string]int),
		CachedAt: make(map[string]time.Time),
		TTL:      ttl,
	}
}

// Get returns the cached value for path if present and not expired
func (c *Cache) Get(path string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	av, exists := c.Values[path]
	if !exists {
		return 0, false
	}

	cachedTime, hasTime := c.CachedAt[path]
	if !hasTime || time.Since(cachedTime) > c.TTL {
		delete(c.Values, path)
		delete(c.CachedAt, path)
		return 0, false
	}

	return av, true
}

// Set stores a computed value
func (c *Cache) Set(path string, av int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Values == nil {
		c.Values = make(map[string]int)
	}
	if c.CachedAt == nil {
		c.CachedAt = make(map[string]time.Time)
	}
	c.Values[path] = av
	c.CachedAt[path] = time.Now()
}

// CleanExpired removes expired entries and returns how many were removed
func (c *Cache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := time.Now()
	for path, cachedTime := range c.CachedAt {
		if now.Sub(cachedTime) > c.TTL {
			delete(c.Values, path)
			delete(c.CachedAt, path)
			removed++
		}
	}
	for path := range c.Values {
		if _, ok := c.CachedAt[path]; !ok {
			delete(c.Values, path)
			removed++
		}
	}
	return removed
}

// Size returns the number of cached entries
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Values)
}
