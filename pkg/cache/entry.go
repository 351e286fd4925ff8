package cache

import (
	"time"
)

// Entry is a serialized catalog result held by a Store.
type Entry struct {
	// Kind names the result variant encoded in Data (e.g., "artist", "album_page")
	Kind string `json:"kind"`

	// Data is the JSON encoding of the result
	Data []byte `json:"data"`

	// CachedAt is when the entry was written
	CachedAt time.Time `json:"cached_at"`

	// Expires is when the entry becomes stale
	Expires time.Time `json:"expires"`
}

// IsExpired returns true if the entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
