package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/Sternrassler/spotify-catalog-client/pkg/catalog"
)

// Artist returns a full artist object.
func Artist(id, name string, popularity int) catalog.Artist {
	return catalog.Artist{
		ExternalURLs: catalog.ExternalURLs{Spotify: "https://open.spotify.com/artist/" + id},
		Followers:    &catalog.Followers{Total: popularity * 1000},
		Genres:       []string{"rock"},
		Href:         "https://api.spotify.com/v1/artists/" + id,
		ID:           id,
		Name:         name,
		Popularity:   &popularity,
		Type:         "artist",
		URI:          "spotify:artist:" + id,
	}
}

// Album returns a simplified album item.
func Album(id, name string) catalog.AlbumItem {
	return catalog.AlbumItem{
		AlbumType:            "album",
		TotalTracks:          10,
		AvailableMarkets:     []string{"US", "DE"},
		Href:                 "https://api.spotify.com/v1/albums/" + id,
		ID:                   id,
		Name:                 name,
		ReleaseDate:          "2004-06-07",
		ReleaseDatePrecision: "day",
		Type:                 "album",
		URI:                  "spotify:album:" + id,
		AlbumGroup:           "album",
	}
}

// Track returns a full track object.
func Track(id, name string, popularity int) catalog.Track {
	return catalog.Track{
		Album:       catalog.Album{ID: "album-" + id, Name: "Album of " + name, Type: "album"},
		DurationMS:  180000,
		ExternalIDs: catalog.ExternalIDs{ISRC: "USUM7" + id},
		Href:        "https://api.spotify.com/v1/tracks/" + id,
		ID:          id,
		IsPlayable:  true,
		Name:        name,
		Popularity:  popularity,
		TrackNumber: 1,
		Type:        "track",
		URI:         "spotify:track:" + id,
	}
}

// AlbumPage returns one page of albums with the given continuation link.
func AlbumPage(href string, offset, total int, next *string, items ...catalog.AlbumItem) catalog.AlbumPage {
	return catalog.AlbumPage{
		Href:   href,
		Limit:  len(items),
		Next:   next,
		Offset: offset,
		Total:  total,
		Items:  append([]catalog.AlbumItem{}, items...),
	}
}

// JSON encodes v and panics on failure.
func JSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal fixture: %v", err))
	}
	return string(data)
}

// ArtistJSON returns the body of GET /v1/artists/{id}.
func ArtistJSON(id, name string, popularity int) string {
	return JSON(Artist(id, name, popularity))
}

// ArtistsJSON returns the body of GET /v1/artists?ids=. A nil entry encodes as
// null, as Spotify does for unknown ids.
func ArtistsJSON(artists ...*catalog.Artist) string {
	return JSON(catalog.Artists{Artists: append([]*catalog.Artist{}, artists...)})
}

// RelatedArtistsJSON returns the body of GET /v1/artists/{id}/related-artists.
func RelatedArtistsJSON(artists ...catalog.Artist) string {
	ptrs := make([]*catalog.Artist, len(artists))
	for i := range artists {
		ptrs[i] = &artists[i]
	}
	return JSON(catalog.Artists{Artists: ptrs})
}

// TopTracksJSON returns the body of GET /v1/artists/{id}/top-tracks.
func TopTracksJSON(tracks ...catalog.Track) string {
	return JSON(catalog.TopTracks{Tracks: append([]catalog.Track{}, tracks...)})
}
