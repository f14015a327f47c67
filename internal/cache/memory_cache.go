// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// cacheItem represents an item in the memory cache
type cacheItem struct {
	value      []byte
	expiration time.Time
}

// MemoryCache implements Cache interface using in-memory storage
type MemoryCache struct {
	items         map[string]*cacheItem
	mutex         sync.RWMutex
	maxMemory     int64
	currentMemory int64
	hits          int64
	misses        int64
	evictions     int64
	cleanupTicker *time.Ticker
	cleanupDone   chan bool
	closed        bool
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(config *CacheConfig) *MemoryCache {
	if config == nil {
		config = DefaultCacheConfig()
	}

	cache := &MemoryCache{
		items:       make(map[string]*cacheItem),
		maxMemory:   config.MaxMemory,
		cleanupDone: make(chan bool),
	}

	interval := config.CleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	cache.cleanupTicker = time.NewTicker(interval)
	go cache.startCleanup()

	return cache
}

// Get retrieves a value from cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mutex.RLock()
	item, exists := c.items[key]
	closed := c.closed
	c.mutex.RUnlock()

	if closed {
		return nil, ErrCacheDisabled
	}

	if !exists {
		atomic.AddInt64(&c.misses, 1)
		return nil, ErrKeyNotFound
	}

	if time.Now().After(item.expiration) {
		atomic.AddInt64(&c.misses, 1)
		c.mutex.Lock()
		if current, ok := c.items[key]; ok && current == item {
			delete(c.items, key)
			c.currentMemory -= itemSize(key, item)
		}
		c.mutex.Unlock()
		return nil, ErrKeyNotFound
	}

	atomic.AddInt64(&c.hits, 1)
	// Return a copy so the caller cannot mutate the cached bytes.
	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

// Set stores a value in cache with expiration
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheDisabled
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	newItem := &cacheItem{
		value:      valueCopy,
		expiration: time.Now().Add(ttl),
	}

	if oldItem, ok := c.items[key]; ok {
		c.currentMemory -= itemSize(key, oldItem)
	}
	c.currentMemory += itemSize(key, newItem)
	c.items[key] = newItem

	c.evictIfNeeded()
	return nil
}

// Delete removes a value from cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if item, exists := c.items[key]; exists {
		delete(c.items, key)
		c.currentMemory -= itemSize(key, item)
	}
	return nil
}

// Exists checks if a key exists in cache
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.closed {
		return false, ErrCacheDisabled
	}

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) {
		return false, nil
	}
	return true, nil
}

// Close stops the cleanup goroutine and releases the stored items
func (c *MemoryCache) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.cleanupTicker.Stop()
	close(c.cleanupDone)
	c.items = make(map[string]*cacheItem)
	c.currentMemory = 0
	return nil
}

// Stats returns cache statistics
func (c *MemoryCache) Stats() CacheStats {
	c.mutex.RLock()
	keys := int64(len(c.items))
	memory := c.currentMemory
	c.mutex.RUnlock()

	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)

	var ratio float64
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}

	return CacheStats{
		Hits:        hits,
		Misses:      misses,
		HitRatio:    ratio,
		Keys:        keys,
		MemoryUsage: memory,
		Evictions:   atomic.LoadInt64(&c.evictions),
	}
}

// evictIfNeeded drops the soonest-expiring items until memory usage is
// back under the limit. Caller must hold the write lock.
func (c *MemoryCache) evictIfNeeded() {
	if c.maxMemory <= 0 {
		return
	}

	for c.currentMemory > c.maxMemory && len(c.items) > 0 {
		var victimKey string
		var victim *cacheItem
		for key, item := range c.items {
			if victim == nil || item.expiration.Before(victim.expiration) {
				victimKey = key
				victim = item
			}
		}
		delete(c.items, victimKey)
		c.currentMemory -= itemSize(victimKey, victim)
		atomic.AddInt64(&c.evictions, 1)
	}
}

// startCleanup periodically removes expired items
func (c *MemoryCache) startCleanup() {
	for {
		select {
		case <-c.cleanupTicker.C:
			c.removeExpired()
		case <-c.cleanupDone:
			return
		}
	}
}

// removeExpired deletes all items whose expiration has passed
func (c *MemoryCache) removeExpired() {
	now := time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
			c.currentMemory -= itemSize(key, item)
		}
	}
}

func itemSize(key string, item *cacheItem) int64 {
	if item == nil {
		return 0
	}
	return int64(len(key) + len(item.value))
}
