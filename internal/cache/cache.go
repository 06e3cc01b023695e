// Package cache implements the relay's single process-wide, short-lived
// result cache (spec.md §4.8): TTL-governed, safe for concurrent access,
// with no persistence. It is backed by hashicorp/golang-lru's expirable
// variant, which evicts on TTL the same way the spec's "lazily evicted,
// absent after TTL" semantics require; the size bound is set generously
// high so eviction is TTL-driven in practice, not LRU-driven.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/metrics"
)

// Default TTLs per spec.md §3 invariant 6 and §4.5-§4.7.
const (
	GasPriceTTL   = time.Hour
	FeeHistoryTTL = time.Hour
	BalanceTTL    = time.Hour
	CodeTTL       = time.Hour
)

// maxEntries bounds memory use without acting as the real eviction
// policy; the cache's working set (gasPrice, feeHistory, and one entry
// per probed account/contract key) is expected to stay well under this.
const maxEntries = 8192

// Cache is a generic TTL cache keyed by structured strings (spec.md §3:
// "gasPrice", "feeHistory", "getBalance.<addr>.<tag>", ...). Every key
// this relay uses shares the same one-hour TTL (spec.md invariant 6),
// so a single cache instance with one configured TTL suffices.
type Cache struct {
	store *lru.LRU[string, any]
}

// New creates a Cache whose entries expire ttl after being Set.
func New(defaultTTL time.Duration) *Cache {
	return &Cache{store: lru.NewLRU[string, any](maxEntries, nil, defaultTTL)}
}

// Get returns the cached value for key and whether it was present (and
// not yet expired).
func (c *Cache) Get(key string) (any, bool) {
	value, ok := c.store.Get(key)
	if ok {
		metrics.CacheHits.Inc()
	} else {
		metrics.CacheMisses.Inc()
	}
	return value, ok
}

// Set stores value under key using the cache's default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Add(key, value)
}

// Remove evicts key immediately. No relay handler calls it, so cached
// negative results stay until their TTL expires.
func (c *Cache) Remove(key string) {
	c.store.Remove(key)
}

// Len reports the number of live (non-expired) entries.
func (c *Cache) Len() int {
	return c.store.Len()
}
