package client

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Sternrassler/spotify-catalog-client/pkg/cache"
)

// Mode is the fetch intent of a request.
type Mode int

const (
	// ModeNone means no request is configured.
	ModeNone Mode = iota
	ModeArtist
	ModeArtists
	ModeAlbums
	ModeTopTracks
	ModeRelatedArtists
)

// String returns the metric and log label of the mode.
func (m Mode) String() string {
	switch m {
	case ModeArtist:
		return "artist"
	case ModeArtists:
		return "artists"
	case ModeAlbums:
		return "albums"
	case ModeTopTracks:
		return "top_tracks"
	case ModeRelatedArtists:
		return "related_artists"
	default:
		return "none"
	}
}

// MaxBatchIDs is the largest number of ids Spotify accepts in one
// several-artists request.
const MaxBatchIDs = 50

// MaxPageLimit is the largest album page size Spotify accepts.
const MaxPageLimit = 50

// Request is one configured catalog lookup. The variants are ArtistRequest,
// ArtistsRequest, AlbumsRequest, TopTracksRequest and RelatedArtistsRequest.
// Each carries its own parameters.
type Request interface {
	// Mode reports the fetch intent.
	Mode() Mode

	// Path is the resource path below /v1/artists (e.g., "/{id}/albums").
	Path() string

	// Query holds the query parameters. It is built fresh on every call.
	Query() url.Values

	// CacheKey is the read-through cache key. ok is false for requests that
	// are never served from the cache.
	CacheKey() (key cache.Key, ok bool)

	// Validate reports caller errors before anything is sent.
	Validate() error

	request()
}

// ArtistRequest looks up a single artist.
type ArtistRequest struct {
	ID string
}

// Mode implements Request.
func (r ArtistRequest) Mode() Mode { return ModeArtist }

// Path implements Request.
func (r ArtistRequest) Path() string { return "/" + r.ID }

// Query implements Request.
func (r ArtistRequest) Query() url.Values { return url.Values{} }

// CacheKey implements Request.
func (r ArtistRequest) CacheKey() (cache.Key, bool) { return cache.ArtistKey(r.ID), true }

// Validate implements Request.
func (r ArtistRequest) Validate() error { return validateID(r.ID) }

func (ArtistRequest) request() {}

// ArtistsRequest looks up several artists in one call. Results are never read
// from the cache, but every returned artist is cached as a single-artist entry.
type ArtistsRequest struct {
	IDs []string
}

// Mode implements Request.
func (r ArtistsRequest) Mode() Mode { return ModeArtists }

// Path implements Request.
func (r ArtistsRequest) Path() string { return "" }

// Query implements Request.
func (r ArtistsRequest) Query() url.Values {
	return url.Values{"ids": []string{strings.Join(r.IDs, ",")}}
}

// CacheKey implements Request.
func (r ArtistsRequest) CacheKey() (cache.Key, bool) { return cache.Key{}, false }

// Validate implements Request.
func (r ArtistsRequest) Validate() error {
	if len(r.IDs) == 0 {
		return fmt.Errorf("at least one artist id is required")
	}
	if len(r.IDs) > MaxBatchIDs {
		return fmt.Errorf("at most %d artist ids per request, got %d", MaxBatchIDs, len(r.IDs))
	}
	for _, id := range r.IDs {
		if err := validateID(id); err != nil {
			return err
		}
		if strings.Contains(id, ",") {
			return fmt.Errorf("artist id %q contains a comma", id)
		}
	}
	return nil
}

func (ArtistsRequest) request() {}

// AlbumsOptions are the optional album listing parameters. Unset fields are
// left out of the query.
type AlbumsOptions struct {
	// IncludeGroups filters by release type (album, single, appears_on, compilation)
	IncludeGroups []string

	// Market is an ISO 3166-1 alpha-2 country code
	Market string

	// Limit is the page size (1-50)
	Limit *int

	// Offset is the index of the first album to return
	Offset *int
}

// AlbumsRequest lists an artist's albums. Continuation pages are followed and
// merged into one page.
type AlbumsRequest struct {
	ID      string
	Options AlbumsOptions
}

// Mode implements Request.
func (r AlbumsRequest) Mode() Mode { return ModeAlbums }

// Path implements Request.
func (r AlbumsRequest) Path() string { return "/" + r.ID + "/albums" }

// Query implements Request.
func (r AlbumsRequest) Query() url.Values {
	q := url.Values{}
	if len(r.Options.IncludeGroups) > 0 {
		q.Set("include_groups", strings.Join(r.Options.IncludeGroups, ","))
	}
	if r.Options.Market != "" {
		q.Set("market", r.Options.Market)
	}
	if r.Options.Limit != nil {
		q.Set("limit", strconv.Itoa(*r.Options.Limit))
	}
	if r.Options.Offset != nil {
		q.Set("offset", strconv.Itoa(*r.Options.Offset))
	}
	return q
}

// CacheKey implements Request.
func (r AlbumsRequest) CacheKey() (cache.Key, bool) {
	return cache.Key{Endpoint: "artists/" + r.ID + "/albums", Query: r.Query()}, true
}

// Validate implements Request.
func (r AlbumsRequest) Validate() error {
	if err := validateID(r.ID); err != nil {
		return err
	}
	if l := r.Options.Limit; l != nil && (*l < 1 || *l > MaxPageLimit) {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxPageLimit, *l)
	}
	if o := r.Options.Offset; o != nil && *o < 0 {
		return fmt.Errorf("offset must not be negative, got %d", *o)
	}
	return nil
}

func (AlbumsRequest) request() {}

// TopTracksRequest lists an artist's top tracks in a market. Market is required.
type TopTracksRequest struct {
	ID     string
	Market string
}

// Mode implements Request.
func (r TopTracksRequest) Mode() Mode { return ModeTopTracks }

// Path implements Request.
func (r TopTracksRequest) Path() string { return "/" + r.ID + "/top-tracks" }

// Query implements Request.
func (r TopTracksRequest) Query() url.Values {
	return url.Values{"market": []string{r.Market}}
}

// CacheKey implements Request.
func (r TopTracksRequest) CacheKey() (cache.Key, bool) {
	return cache.Key{Endpoint: "artists/" + r.ID + "/top-tracks", Query: r.Query()}, true
}

// Validate implements Request.
func (r TopTracksRequest) Validate() error {
	if err := validateID(r.ID); err != nil {
		return err
	}
	if strings.TrimSpace(r.Market) == "" {
		return fmt.Errorf("market is required for top tracks")
	}
	return nil
}

func (TopTracksRequest) request() {}

// RelatedArtistsRequest lists artists similar to an artist.
type RelatedArtistsRequest struct {
	ID string
}

// Mode implements Request.
func (r RelatedArtistsRequest) Mode() Mode { return ModeRelatedArtists }

// Path implements Request.
func (r RelatedArtistsRequest) Path() string { return "/" + r.ID + "/related-artists" }

// Query implements Request.
func (r RelatedArtistsRequest) Query() url.Values { return url.Values{} }

// CacheKey implements Request.
func (r RelatedArtistsRequest) CacheKey() (cache.Key, bool) {
	return cache.Key{Endpoint: "artists/" + r.ID + "/related-artists"}, true
}

// Validate implements Request.
func (r RelatedArtistsRequest) Validate() error { return validateID(r.ID) }

func (RelatedArtistsRequest) request() {}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("artist id is required")
	}
	if strings.ContainsAny(id, "/?#") {
		return fmt.Errorf("artist id %q contains reserved characters", id)
	}
	return nil
}
