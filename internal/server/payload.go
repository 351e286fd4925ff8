package server

import (
	"github.com/Sternrassler/spotify-catalog-client/pkg/catalog"
	"github.com/Sternrassler/spotify-catalog-client/pkg/client"
)

// Payload renders a result in the shape Spotify returns for the same
// endpoint. ok is false for Empty.
func Payload(result client.Result) (body any, ok bool) {
	switch r := result.(type) {
	case client.SingleArtist:
		return r.Artist, true
	case client.ArtistList:
		return catalog.Artists{Artists: r.Artists}, true
	case client.AlbumPage:
		return r.Page, true
	case client.TrackList:
		return catalog.TopTracks{Tracks: r.Tracks}, true
	case client.RelatedArtistList:
		return relatedArtists{Artists: r.Artists}, true
	default:
		return nil, false
	}
}

type relatedArtists struct {
	Artists []catalog.Artist `json:"artists"`
}
