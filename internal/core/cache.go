package core

import (
	"sync"
	"time"
)

type calcEntry struct {
	calc      PremiumCalculation
	expiresAt time.Time
}

// CalcCache memoizes assembled premium calculations by request
// fingerprint. Writes are last-writer-wins: two goroutines assembling the
// same fingerprint concurrently will both compute and both store.
type CalcCache struct {
	mu      sync.RWMutex
	entries map[string]calcEntry
	ttl     time.Duration // 0 means entries never expire
	clock   func() time.Time
}

func NewCalcCache(ttl time.Duration) *CalcCache {
	return &CalcCache{
		entries: make(map[string]calcEntry),
		ttl:     ttl,
		clock:   time.Now,
	}
}

func (c *CalcCache) Get(key string) (PremiumCalculation, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return PremiumCalculation{}, false
	}
	if !e.expiresAt.IsZero() && c.clock().After(e.expiresAt) {
		return PremiumCalculation{}, false
	}
	return e.calc, true
}

func (c *CalcCache) Set(key string, calc PremiumCalculation) {
	e := calcEntry{calc: calc}
	if c.ttl > 0 {
		e.expiresAt = c.clock().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Sweep drops expired entries and reports how many were removed.
func (c *CalcCache) Sweep() int {
	now := c.clock()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *CalcCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// quoteCache caches persisted quotes by id. Quotes are immutable once
// written, so entries are never invalidated.
type quoteCache struct {
	mu     sync.RWMutex
	quotes map[string]Quote
}

func newQuoteCache() *quoteCache {
	return &quoteCache{quotes: make(map[string]Quote)}
}

func (c *quoteCache) get(id string) (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.quotes[id]
	return q, ok
}

func (c *quoteCache) put(q Quote) {
	c.mu.Lock()
	c.quotes[q.ID] = q
	c.mu.Unlock()
}
