package client

import (
	"github.com/Sternrassler/spotify-catalog-client/pkg/catalog"
)

// ResultKind names a Result variant.
type ResultKind int

const (
	ResultEmpty ResultKind = iota
	ResultSingleArtist
	ResultArtistList
	ResultAlbumPage
	ResultTrackList
	ResultRelatedArtistList
)

// String returns the label of the variant, also used as the stored entry kind.
func (k ResultKind) String() string {
	switch k {
	case ResultSingleArtist:
		return "single_artist"
	case ResultArtistList:
		return "artist_list"
	case ResultAlbumPage:
		return "album_page"
	case ResultTrackList:
		return "track_list"
	case ResultRelatedArtistList:
		return "related_artist_list"
	default:
		return "empty"
	}
}

// Result is the outcome of a successful Execute. The variants are
// SingleArtist, ArtistList, AlbumPage, TrackList, RelatedArtistList and Empty.
type Result interface {
	Kind() ResultKind
	clone() Result
}

// SingleArtist is the result of an ArtistRequest.
type SingleArtist struct {
	Artist catalog.Artist `json:"artist"`
}

// ArtistList is the result of an ArtistsRequest. Unknown ids yield nil entries
// in request order.
type ArtistList struct {
	Artists []*catalog.Artist `json:"artists"`
}

// AlbumPage is the result of an AlbumsRequest, with continuation pages merged.
type AlbumPage struct {
	Page catalog.AlbumPage `json:"page"`
}

// TrackList is the result of a TopTracksRequest.
type TrackList struct {
	Tracks []catalog.Track `json:"tracks"`
}

// RelatedArtistList is the result of a RelatedArtistsRequest.
type RelatedArtistList struct {
	Artists []catalog.Artist `json:"artists"`
}

// Empty is returned alongside every error and for responses without content.
type Empty struct{}

func (SingleArtist) Kind() ResultKind      { return ResultSingleArtist }
func (ArtistList) Kind() ResultKind        { return ResultArtistList }
func (AlbumPage) Kind() ResultKind         { return ResultAlbumPage }
func (TrackList) Kind() ResultKind         { return ResultTrackList }
func (RelatedArtistList) Kind() ResultKind { return ResultRelatedArtistList }
func (Empty) Kind() ResultKind             { return ResultEmpty }

func (r SingleArtist) clone() Result {
	return SingleArtist{Artist: r.Artist.Clone()}
}

func (r ArtistList) clone() Result {
	if r.Artists == nil {
		return ArtistList{}
	}
	out := make([]*catalog.Artist, len(r.Artists))
	for i, a := range r.Artists {
		if a == nil {
			continue
		}
		c := a.Clone()
		out[i] = &c
	}
	return ArtistList{Artists: out}
}

func (r AlbumPage) clone() Result {
	return AlbumPage{Page: r.Page.Clone()}
}

func (r TrackList) clone() Result {
	return TrackList{Tracks: catalog.CloneTracks(r.Tracks)}
}

func (r RelatedArtistList) clone() Result {
	return RelatedArtistList{Artists: catalog.CloneArtists(r.Artists)}
}

func (Empty) clone() Result { return Empty{} }

// cloneResult deep-copies r. It is the copy function of the memory cache.
func cloneResult(r Result) Result {
	if r == nil {
		return nil
	}
	return r.clone()
}

// Name returns the artist name.
func (r SingleArtist) Name() string { return r.Artist.Name }

// ID returns the artist id.
func (r SingleArtist) ID() string { return r.Artist.ID }

// Popularity returns the artist popularity, 0 when Spotify omitted it.
func (r SingleArtist) Popularity() int {
	if r.Artist.Popularity == nil {
		return 0
	}
	return *r.Artist.Popularity
}

// Names returns the names of the artists, albums or tracks in r, in order.
// Null batch entries are skipped. Empty yields nil.
func Names(r Result) []string {
	var names []string
	switch v := r.(type) {
	case SingleArtist:
		names = append(names, v.Artist.Name)
	case ArtistList:
		for _, a := range v.Artists {
			if a != nil {
				names = append(names, a.Name)
			}
		}
	case AlbumPage:
		for _, item := range v.Page.Items {
			names = append(names, item.Name)
		}
	case TrackList:
		for _, t := range v.Tracks {
			names = append(names, t.Name)
		}
	case RelatedArtistList:
		for _, a := range v.Artists {
			names = append(names, a.Name)
		}
	}
	return names
}

// IDs returns the Spotify ids of the artists, albums or tracks in r, in order.
func IDs(r Result) []string {
	var ids []string
	switch v := r.(type) {
	case SingleArtist:
		ids = append(ids, v.Artist.ID)
	case ArtistList:
		for _, a := range v.Artists {
			if a != nil {
				ids = append(ids, a.ID)
			}
		}
	case AlbumPage:
		for _, item := range v.Page.Items {
			ids = append(ids, item.ID)
		}
	case TrackList:
		for _, t := range v.Tracks {
			ids = append(ids, t.ID)
		}
	case RelatedArtistList:
		for _, a := range v.Artists {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Popularities returns the popularity of each artist or track in r. Albums
// carry no popularity, so AlbumPage yields nil.
func Popularities(r Result) []int {
	var out []int
	switch v := r.(type) {
	case SingleArtist:
		out = append(out, v.Popularity())
	case ArtistList:
		for _, a := range v.Artists {
			if a != nil {
				out = append(out, SingleArtist{Artist: *a}.Popularity())
			}
		}
	case TrackList:
		for _, t := range v.Tracks {
			out = append(out, t.Popularity)
		}
	case RelatedArtistList:
		for _, a := range v.Artists {
			out = append(out, SingleArtist{Artist: a}.Popularity())
		}
	}
	return out
}
