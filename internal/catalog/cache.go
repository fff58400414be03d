package catalog

import (
	"context"
	"sync"
	"time"
)

const (
	defaultCacheTTL    = 30 * time.Minute
	defaultPurgePeriod = 5 * time.Minute
)

// PageCache keeps the most recently fetched listing page per session so
// add-to-cart and the product modal can resolve products without another API
// round trip. Each new listing fetch replaces the previous snapshot, so a
// product outside the last viewed page cannot be resolved here; cart lines
// are snapshotted at add time, so only modal reopen is affected.
type PageCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]pageEntry
}

type pageEntry struct {
	products []Product
	expires  time.Time
}

// NewPageCache builds a cache with the default TTL.
func NewPageCache() *PageCache {
	return &PageCache{ttl: defaultCacheTTL, entries: map[string]pageEntry{}}
}

// SetTTL overrides the snapshot lifetime (primarily for tests).
func (c *PageCache) SetTTL(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	c.mu.Lock()
	c.ttl = d
	c.mu.Unlock()
}

// Put replaces the snapshot for the session.
func (c *PageCache) Put(sessionID string, products []Product) {
	if c == nil || sessionID == "" {
		return
	}
	snap := make([]Product, len(products))
	copy(snap, products)
	c.mu.Lock()
	c.entries[sessionID] = pageEntry{products: snap, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Find resolves a product by id from the session snapshot. An expired
// snapshot is evicted on the spot.
func (c *PageCache) Find(sessionID string, productID int64) (Product, bool) {
	if c == nil || sessionID == "" {
		return Product{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[sessionID]
	c.mu.RUnlock()
	if !ok {
		return Product{}, false
	}
	if time.Now().After(entry.expires) {
		c.mu.Lock()
		// Re-check under the write lock; Put may have refreshed it.
		if cur, ok := c.entries[sessionID]; ok && time.Now().After(cur.expires) {
			delete(c.entries, sessionID)
		}
		c.mu.Unlock()
		return Product{}, false
	}
	for _, p := range entry.products {
		if p.ID == productID {
			return p, true
		}
	}
	return Product{}, false
}

// Purge drops expired snapshots.
func (c *PageCache) Purge() {
	if c == nil {
		return
	}
	now := time.Now()
	c.mu.Lock()
	for id, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, id)
		}
	}
	c.mu.Unlock()
}

// PurgeEvery runs Purge on a fixed period until ctx is done. Sessions that
// stop browsing would otherwise pin their last snapshot forever.
func (c *PageCache) PurgeEvery(ctx context.Context, period time.Duration) {
	if period <= 0 {
		period = defaultPurgePeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Purge()
		}
	}
}

func (c *PageCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
