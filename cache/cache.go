package cache

import (
	"context"
	"sync"
	"time"

	"weather-assistant/datasource"
	"weather-assistant/models"
)

// CachedSource wraps a PayloadSource and adds caching functionality
type CachedSource struct {
	source         datasource.PayloadSource
	cache          map[string]cacheEntry
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
}

// cacheEntry represents a cached payload with its timestamp
type cacheEntry struct {
	Data      models.WeatherPayload
	Timestamp time.Time
}

// NewCachedSource creates a new cached wrapper around a payload source
func NewCachedSource(source datasource.PayloadSource, cacheDuration time.Duration) *CachedSource {
	return &CachedSource{
		source:        source,
		cache:         make(map[string]cacheEntry),
		cacheDuration: cacheDuration,
	}
}

// Name returns the name of the underlying source with [Cached] suffix
func (c *CachedSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchPayload fetches weather data, using cache when available
func (c *CachedSource) FetchPayload(ctx context.Context, location string) (models.WeatherPayload, error) {
	// First check if we have this data in the cache
	c.mutex.RLock()
	entry, found := c.cache[location]
	c.mutex.RUnlock()

	// If found and not expired, return the cached data
	if found && time.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()
		return entry.Data, nil
	}

	// Cache miss or expired, fetch fresh data
	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	data, err := c.source.FetchPayload(ctx, location)
	if err != nil {
		return models.WeatherPayload{}, err
	}

	// Store in cache
	c.mutex.Lock()
	c.cache[location] = cacheEntry{
		Data:      data,
		Timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return data, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedSource) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedSource implements the PayloadSource interface
var _ datasource.PayloadSource = (*CachedSource)(nil)
