// Package catalog defines the Spotify Web API catalog objects returned by the
// artist endpoints. Field names and optionality follow the upstream JSON.
package catalog

// ExternalURLs holds known external URLs for an object.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Followers describes the follower count of an artist.
type Followers struct {
	Href  *string `json:"href"`
	Total int     `json:"total"`
}

// Image is a cover art or profile image reference.
type Image struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

// Restrictions is present when content is restricted in a market.
type Restrictions struct {
	Reason string `json:"reason"`
}

// ExternalIDs holds known external identifiers for a track.
type ExternalIDs struct {
	ISRC string  `json:"isrc"`
	EAN  *string `json:"ean,omitempty"`
	UPC  *string `json:"upc,omitempty"`
}

// LinkedFrom is set on relinked tracks and points at the originally requested track.
type LinkedFrom struct {
	ExternalURLs ExternalURLs `json:"external_urls"`
	Href         string       `json:"href"`
	ID           string       `json:"id"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

// Artist is a full artist object. Simplified artist objects embedded in albums
// and tracks decode into the same type with the optional fields left empty.
type Artist struct {
	ExternalURLs ExternalURLs `json:"external_urls"`
	Followers    *Followers   `json:"followers,omitempty"`
	Genres       []string     `json:"genres,omitempty"`
	Href         string       `json:"href"`
	ID           string       `json:"id"`
	Images       []Image      `json:"images,omitempty"`
	Name         string       `json:"name"`
	Popularity   *int         `json:"popularity,omitempty"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

// Artists is the envelope of GET /artists?ids= and GET /artists/{id}/related-artists.
// Unknown ids come back as null entries.
type Artists struct {
	Artists []*Artist `json:"artists"`
}

// AlbumItem is a simplified album as listed by GET /artists/{id}/albums.
type AlbumItem struct {
	AlbumType            string        `json:"album_type"`
	TotalTracks          int           `json:"total_tracks"`
	AvailableMarkets     []string      `json:"available_markets"`
	ExternalURLs         ExternalURLs  `json:"external_urls"`
	Href                 string        `json:"href"`
	ID                   string        `json:"id"`
	Images               []Image       `json:"images"`
	Name                 string        `json:"name"`
	ReleaseDate          string        `json:"release_date"`
	ReleaseDatePrecision string        `json:"release_date_precision"`
	Restrictions         *Restrictions `json:"restrictions,omitempty"`
	Type                 string        `json:"type"`
	URI                  string        `json:"uri"`
	Artists              []Artist      `json:"artists"`
	AlbumGroup           string        `json:"album_group,omitempty"`
}

// AlbumPage is one page of an artist's albums. Next is the continuation link,
// nil on the last page.
type AlbumPage struct {
	Href     string      `json:"href"`
	Limit    int         `json:"limit"`
	Next     *string     `json:"next"`
	Offset   int         `json:"offset"`
	Previous *string     `json:"previous"`
	Total    int         `json:"total"`
	Items    []AlbumItem `json:"items"`
}

// Album is the simplified album embedded in a track.
type Album struct {
	AlbumType            string        `json:"album_type"`
	TotalTracks          int           `json:"total_tracks"`
	AvailableMarkets     []string      `json:"available_markets,omitempty"`
	ExternalURLs         ExternalURLs  `json:"external_urls"`
	Href                 string        `json:"href"`
	ID                   string        `json:"id"`
	Images               []Image       `json:"images"`
	Name                 string        `json:"name"`
	ReleaseDate          string        `json:"release_date"`
	ReleaseDatePrecision string        `json:"release_date_precision"`
	Restrictions         *Restrictions `json:"restrictions,omitempty"`
	Type                 string        `json:"type"`
	URI                  string        `json:"uri"`
	Artists              []Artist      `json:"artists"`
}

// Track is a full track object.
type Track struct {
	Album            Album         `json:"album"`
	Artists          []Artist      `json:"artists"`
	AvailableMarkets []string      `json:"available_markets,omitempty"`
	DiscNumber       int           `json:"disc_number"`
	DurationMS       int           `json:"duration_ms"`
	Explicit         bool          `json:"explicit"`
	ExternalIDs      ExternalIDs   `json:"external_ids"`
	ExternalURLs     ExternalURLs  `json:"external_urls"`
	Href             string        `json:"href"`
	ID               string        `json:"id"`
	IsPlayable       bool          `json:"is_playable"`
	LinkedFrom       *LinkedFrom   `json:"linked_from,omitempty"`
	Restrictions     *Restrictions `json:"restrictions,omitempty"`
	Name             string        `json:"name"`
	Popularity       int           `json:"popularity"`
	PreviewURL       *string       `json:"preview_url"`
	TrackNumber      int           `json:"track_number"`
	Type             string        `json:"type"`
	URI              string        `json:"uri"`
	IsLocal          bool          `json:"is_local"`
}

// TopTracks is the envelope of GET /artists/{id}/top-tracks.
type TopTracks struct {
	Tracks []Track `json:"tracks"`
}
