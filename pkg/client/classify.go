package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Sternrassler/spotify-catalog-client/pkg/catalog"
	"github.com/Sternrassler/spotify-catalog-client/pkg/pagination"
)

// classify turns a response into the result variant of req's mode.
// Album pages with a continuation link are followed before returning.
func (c *Client) classify(ctx context.Context, req Request, resp *Response) (Result, error) {
	mode := req.Mode()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.logger.Warn().
			Str("mode", mode.String()).
			Str("path", req.Path()).
			Int("status_code", resp.StatusCode).
			Msg("Spotify resource not found")
		return nil, &Error{Kind: KindNotFound, Mode: mode, StatusCode: resp.StatusCode}

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Warn().
			Str("mode", mode.String()).
			Str("path", req.Path()).
			Int("status_code", resp.StatusCode).
			Msg("Spotify request error")
		return nil, &Error{Kind: KindTransport, Mode: mode, StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	case resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0:
		return Empty{}, nil
	}

	switch req.(type) {
	case ArtistRequest:
		var artist catalog.Artist
		if err := c.decode(mode, resp.Body, &artist); err != nil {
			return nil, err
		}
		return SingleArtist{Artist: artist}, nil

	case ArtistsRequest:
		var envelope catalog.Artists
		if err := c.decode(mode, resp.Body, &envelope); err != nil {
			return nil, err
		}
		return ArtistList{Artists: envelope.Artists}, nil

	case AlbumsRequest:
		var page catalog.AlbumPage
		if err := c.decode(mode, resp.Body, &page); err != nil {
			return nil, err
		}
		if page.Next != nil && *page.Next != "" {
			merged, err := pagination.Follow(ctx, c, page, c.config.Pagination)
			if err != nil {
				return nil, &Error{Kind: KindTransport, Mode: mode, Message: "follow album pages", Err: err}
			}
			page = merged
		}
		return AlbumPage{Page: page}, nil

	case TopTracksRequest:
		var top catalog.TopTracks
		if err := c.decode(mode, resp.Body, &top); err != nil {
			return nil, err
		}
		return TrackList{Tracks: top.Tracks}, nil

	case RelatedArtistsRequest:
		var envelope catalog.Artists
		if err := c.decode(mode, resp.Body, &envelope); err != nil {
			return nil, err
		}
		artists := make([]catalog.Artist, 0, len(envelope.Artists))
		for _, a := range envelope.Artists {
			if a != nil {
				artists = append(artists, *a)
			}
		}
		return RelatedArtistList{Artists: artists}, nil

	default:
		return nil, &Error{Kind: KindInvalidArguments, Mode: mode, Message: "unsupported request"}
	}
}

// requiredMembers lists the top-level members a body must carry, non-null, to
// count as the shape of a mode.
var requiredMembers = map[Mode][]string{
	ModeArtist:         {"external_urls", "href", "id", "name", "type", "uri"},
	ModeArtists:        {"artists"},
	ModeAlbums:         {"href", "limit", "offset", "total", "items"},
	ModeTopTracks:      {"tracks"},
	ModeRelatedArtists: {"artists"},
}

// decode unmarshals body into v after checking it has the shape of mode.
// The decoder diagnostic is logged, never returned.
func (c *Client) decode(mode Mode, body []byte, v any) error {
	err := checkShape(mode, body)
	if err == nil {
		err = json.Unmarshal(body, v)
	}
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("mode", mode.String()).
			Int("body_bytes", len(body)).
			Msg("Response body does not match expected shape")
		return &Error{Kind: KindTransport, Mode: mode, Message: "unexpected response body"}
	}
	return nil
}

func checkShape(mode Mode, body []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return err
	}
	if members == nil {
		return fmt.Errorf("body is null")
	}
	for _, name := range requiredMembers[mode] {
		raw, ok := members[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("missing member %q", name)
		}
	}
	return nil
}
