package token

import (
	"slices"
	"sync"
	"time"

	"github.com/dtroode/counterparty-client/internal/model"
)

// Cache is a fixed-size map of raw token to decoded claims. When full, the
// oldest inserted entry is evicted. Entries whose expiry has passed are
// dropped on lookup.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[string]model.Claims
	order    []string
	now      func() time.Time
}

// NewCache creates a cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]model.Claims, capacity),
		order:    make([]string, 0, capacity),
		now:      time.Now,
	}
}

// Get returns the cached claims for token.
func (c *Cache) Get(token string) (model.Claims, bool) {
	c.mu.RLock()
	claims, ok := c.entries[token]
	c.mu.RUnlock()

	if !ok {
		return model.Claims{}, false
	}

	if claims.HasExpiry() && claims.IsExpired(c.now()) {
		c.Remove(token)
		return model.Claims{}, false
	}

	return claims, true
}

// Put stores claims for token, evicting the oldest entry if the cache is full.
func (c *Cache) Put(token string, claims model.Claims) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[token]; ok {
		c.entries[token] = claims
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[token] = claims
	c.order = append(c.order, token)
}

func (c *Cache) Remove(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[token]; !ok {
		return
	}
	delete(c.entries, token)
	if i := slices.Index(c.order, token); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.order = c.order[:0]
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
