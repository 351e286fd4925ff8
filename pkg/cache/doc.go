// Package cache provides the caching layers of the Spotify catalog client.
//
// The package has two tiers:
//
// - Memory: a bounded, per-client, in-memory cache with FIFO eviction. It is the
// read-through cache consulted before every request.
// - Store: an optional Redis-backed tier for entries that should survive the
// process or be visible to other client instances.
//
// # Basic Usage
//
//	// Create a cache with room for 10 entries
//	mem := cache.NewMemory[string](cache.DefaultCapacity)
//
//	key := cache.ArtistKey("0C0XlULifJtAgn6ZNCW2eu")
//	mem.Put(key.String(), "The Killers")
//
//	if name, ok := mem.Get(key.String()); ok {
//		// Cache hit
//	}
//
// # Eviction
//
// When a new key is inserted into a full Memory cache, the entry inserted
// earliest is removed first. Overwriting a resident key does not count against
// capacity and keeps its position. Reads never reorder entries.
//
// # Redis Store
//
//	store := cache.NewStore(redisClient)
//
//	entry := &cache.Entry{
//		Kind:     "artist",
//		Data:     data,
//		CachedAt: time.Now(),
//		Expires:  cache.ExpiresFromHeader(resp.Header, time.Hour),
//	}
//	if err := store.Set(ctx, key, entry); err != nil {
//		return err
//	}
//
//	entry, err := store.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// Fetch from Spotify
//	}
//
// # Metrics
//
//   - spotify_cache_hits_total{layer} - Cache hits (memory, redis)
//   - spotify_cache_misses_total{layer} - Cache misses (memory, redis)
//   - spotify_cache_evictions_total{layer} - Entries evicted from a Memory cache
//   - spotify_cache_entries{cache} - Entries resident in a Memory cache
//   - spotify_cache_errors_total{operation} - Store operation errors
package cache
