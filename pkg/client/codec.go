package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sternrassler/spotify-catalog-client/pkg/cache"
)

// encodeEntry serializes a cache-eligible result for the Redis store.
func encodeEntry(r Result, expires time.Time) (*cache.Entry, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", r.Kind(), err)
	}

	return &cache.Entry{
		Kind:     r.Kind().String(),
		Data:     data,
		CachedAt: time.Now(),
		Expires:  expires,
	}, nil
}

// decodeEntry restores a result written by encodeEntry.
func decodeEntry(entry *cache.Entry) (Result, error) {
	var (
		result Result
		err    error
	)

	switch entry.Kind {
	case ResultSingleArtist.String():
		var r SingleArtist
		err = json.Unmarshal(entry.Data, &r)
		result = r
	case ResultAlbumPage.String():
		var r AlbumPage
		err = json.Unmarshal(entry.Data, &r)
		result = r
	case ResultTrackList.String():
		var r TrackList
		err = json.Unmarshal(entry.Data, &r)
		result = r
	case ResultRelatedArtistList.String():
		var r RelatedArtistList
		err = json.Unmarshal(entry.Data, &r)
		result = r
	default:
		return nil, fmt.Errorf("%w: unexpected kind %q", cache.ErrInvalidEntry, entry.Kind)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", cache.ErrInvalidEntry, err)
	}
	return result, nil
}
