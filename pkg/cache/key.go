package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// KeyPrefix is the namespace every cache key starts with.
const KeyPrefix = "spotify"

// Key identifies a cached catalog resource.
type Key struct {
	// Endpoint is the resource path below the API version (e.g., "artists/{id}/albums")
	Endpoint string

	// Query holds the query parameters that change the resource representation
	// (e.g., market, limit)
	Query url.Values
}

// ArtistKey is the key of a single-artist lookup. Batch responses populate the
// cache under the same key for every artist they contain.
func ArtistKey(id string) Key {
	return Key{Endpoint: "artists/" + id}
}

// String generates a deterministic key string.
// Format: spotify:endpoint:query1=val1:query2=val2
//
// Example:
//
//	spotify:artists/0C0XlULifJtAgn6ZNCW2eu/top-tracks:market=US
func (k Key) String() string {
	parts := []string{KeyPrefix}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	if len(k.Query) > 0 {
		names := make([]string, 0, len(k.Query))
		for name := range k.Query {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, strings.Join(k.Query[name], ",")))
		}
	}

	return strings.Join(parts, ":")
}
