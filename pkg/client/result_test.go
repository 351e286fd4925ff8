package client

import (
	"reflect"
	"testing"

	"github.com/Sternrassler/spotify-catalog-client/internal/testutil"
	"github.com/Sternrassler/spotify-catalog-client/pkg/catalog"
)

func TestResultAccessors(t *testing.T) {
	killers := testutil.Artist("k", "The Killers", 80)
	strokes := testutil.Artist("s", "The Strokes", 75)
	noPopularity := catalog.Artist{ID: "n", Name: "Unknown"}

	tests := []struct {
		name      string
		result    Result
		wantNames []string
		wantIDs   []string
		wantPop   []int
	}{
		{
			name:      "single artist",
			result:    SingleArtist{Artist: killers},
			wantNames: []string{"The Killers"},
			wantIDs:   []string{"k"},
			wantPop:   []int{80},
		},
		{
			name:      "artist list skips null entries",
			result:    ArtistList{Artists: []*catalog.Artist{&killers, nil, &noPopularity}},
			wantNames: []string{"The Killers", "Unknown"},
			wantIDs:   []string{"k", "n"},
			wantPop:   []int{80, 0},
		},
		{
			name:      "album page",
			result:    AlbumPage{Page: testutil.AlbumPage("p", 0, 2, nil, testutil.Album("a1", "Hot Fuss"), testutil.Album("a2", "Sam's Town"))},
			wantNames: []string{"Hot Fuss", "Sam's Town"},
			wantIDs:   []string{"a1", "a2"},
			wantPop:   nil,
		},
		{
			name:      "track list",
			result:    TrackList{Tracks: []catalog.Track{testutil.Track("t1", "Mr. Brightside", 90)}},
			wantNames: []string{"Mr. Brightside"},
			wantIDs:   []string{"t1"},
			wantPop:   []int{90},
		},
		{
			name:      "related artists",
			result:    RelatedArtistList{Artists: []catalog.Artist{strokes}},
			wantNames: []string{"The Strokes"},
			wantIDs:   []string{"s"},
			wantPop:   []int{75},
		},
		{
			name:   "empty",
			result: Empty{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Names(tt.result); !reflect.DeepEqual(got, tt.wantNames) {
				t.Errorf("Names() = %v, want %v", got, tt.wantNames)
			}
			if got := IDs(tt.result); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("IDs() = %v, want %v", got, tt.wantIDs)
			}
			if got := Popularities(tt.result); !reflect.DeepEqual(got, tt.wantPop) {
				t.Errorf("Popularities() = %v, want %v", got, tt.wantPop)
			}
		})
	}
}

func TestAccessors_NilResult(t *testing.T) {
	if Names(nil) != nil || IDs(nil) != nil || Popularities(nil) != nil {
		t.Error("accessors on nil result should return nil")
	}
	if cloneResult(nil) != nil {
		t.Error("cloneResult(nil) should be nil")
	}
}

func TestCloneResult_NoAliasing(t *testing.T) {
	killers := testutil.Artist("k", "The Killers", 80)
	original := ArtistList{Artists: []*catalog.Artist{&killers, nil}}

	copied := cloneResult(original).(ArtistList)
	copied.Artists[0].Name = "changed"

	if original.Artists[0].Name != "The Killers" {
		t.Errorf("clone aliases artist: %q", original.Artists[0].Name)
	}
	if copied.Artists[1] != nil {
		t.Error("null entry should stay nil")
	}

	tracks := TrackList{Tracks: []catalog.Track{testutil.Track("t", "Song", 1)}}
	copiedTracks := cloneResult(tracks).(TrackList)
	copiedTracks.Tracks[0].Artists = append(copiedTracks.Tracks[0].Artists, killers)
	copiedTracks.Tracks[0].Name = "changed"
	if tracks.Tracks[0].Name != "Song" {
		t.Errorf("clone aliases track: %q", tracks.Tracks[0].Name)
	}
}

func TestResultKind_String(t *testing.T) {
	tests := map[ResultKind]string{
		ResultEmpty:             "empty",
		ResultSingleArtist:      "single_artist",
		ResultArtistList:        "artist_list",
		ResultAlbumPage:         "album_page",
		ResultTrackList:         "track_list",
		ResultRelatedArtistList: "related_artist_list",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}
