package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/Sternrassler/spotify-catalog-client/internal/server"
	"github.com/Sternrassler/spotify-catalog-client/internal/server/mocks"
	"github.com/Sternrassler/spotify-catalog-client/internal/testutil"
	"github.com/Sternrassler/spotify-catalog-client/pkg/catalog"
	"github.com/Sternrassler/spotify-catalog-client/pkg/client"
)

func newHandler(t *testing.T, svc server.Catalog, ready server.ReadyCheck) *server.CatalogHandler {
	t.Helper()
	return server.NewCatalogHandler(otel.Tracer("test"), zerolog.Nop(), svc, ready)
}

func newContext(target string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, target, nil)
	ctx.Params = params
	return ctx, recorder
}

func TestCatalogHandler_ArtistStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	artist := testutil.Artist("abc", "The Killers", 80)

	tests := []struct {
		name           string
		serviceResult  client.Result
		serviceErr     error
		expectedStatus int
		expectedBody   map[string]string
	}{
		{
			name:           "not found",
			serviceErr:     &client.Error{Kind: client.KindNotFound, Mode: client.ModeArtist, StatusCode: 404},
			expectedStatus: http.StatusNotFound,
			expectedBody:   map[string]string{"error": "not found"},
		},
		{
			name:           "invalid arguments",
			serviceErr:     &client.Error{Kind: client.KindInvalidArguments, Mode: client.ModeArtist, Message: "artist id is required"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]string{"error": "artist id is required"},
		},
		{
			name:           "transport error",
			serviceErr:     &client.Error{Kind: client.KindTransport, Mode: client.ModeArtist, StatusCode: 500},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   map[string]string{"error": "spotify client error"},
		},
		{
			name:           "unexpected error",
			serviceErr:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]string{"error": "internal server error"},
		},
		{
			name:           "empty result",
			serviceResult:  client.Empty{},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "success",
			serviceResult:  client.SingleArtist{Artist: artist},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, recorder := newContext("/v1/artists/abc", gin.Params{{Key: "id", Value: "abc"}})

			mockCatalog := &mocks.MockCatalog{}
			t.Cleanup(func() {
				mockCatalog.AssertExpectations(t)
			})

			if tt.serviceErr != nil {
				mockCatalog.On("Do", mock.Anything, client.ArtistRequest{ID: "abc"}).
					Return(client.Empty{}, tt.serviceErr).
					Once()
			} else {
				mockCatalog.On("Do", mock.Anything, client.ArtistRequest{ID: "abc"}).
					Return(tt.serviceResult, nil).
					Once()
			}

			newHandler(t, mockCatalog, nil).Artist(ctx)

			assert.Equal(t, tt.expectedStatus, recorder.Code)

			switch tt.expectedStatus {
			case http.StatusNoContent:
				assert.Empty(t, recorder.Body.Bytes())
			case http.StatusOK:
				var payload catalog.Artist
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
				assert.Equal(t, artist, payload)
			default:
				var payload map[string]string
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
				assert.Equal(t, tt.expectedBody, payload)
			}
		})
	}
}

func TestCatalogHandler_Artists(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing ids", func(t *testing.T) {
		ctx, recorder := newContext("/v1/artists", nil)
		mockCatalog := &mocks.MockCatalog{}

		newHandler(t, mockCatalog, nil).Artists(ctx)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCatalog.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})

	t.Run("unknown ids are null", func(t *testing.T) {
		ctx, recorder := newContext("/v1/artists?ids=a,zzz", nil)
		first := testutil.Artist("a", "Alpha", 10)

		mockCatalog := &mocks.MockCatalog{}
		mockCatalog.On("Do", mock.Anything, client.ArtistsRequest{IDs: []string{"a", "zzz"}}).
			Return(client.ArtistList{Artists: []*catalog.Artist{&first, nil}}, nil).
			Once()

		newHandler(t, mockCatalog, nil).Artists(ctx)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var payload catalog.Artists
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		require.Len(t, payload.Artists, 2)
		assert.Equal(t, "Alpha", payload.Artists[0].Name)
		assert.Nil(t, payload.Artists[1])
		mockCatalog.AssertExpectations(t)
	})
}

func TestCatalogHandler_Albums(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("options from query", func(t *testing.T) {
		ctx, recorder := newContext(
			"/v1/artists/abc/albums?include_groups=album,single&market=US&limit=5&offset=10",
			gin.Params{{Key: "id", Value: "abc"}},
		)

		limit, offset := 5, 10
		want := client.AlbumsRequest{
			ID: "abc",
			Options: client.AlbumsOptions{
				IncludeGroups: []string{"album", "single"},
				Market:        "US",
				Limit:         &limit,
				Offset:        &offset,
			},
		}
		page := testutil.AlbumPage("https://api.spotify.com/v1/artists/abc/albums", 10, 1, nil,
			testutil.Album("alb1", "Hot Fuss"))

		mockCatalog := &mocks.MockCatalog{}
		mockCatalog.On("Do", mock.Anything, want).
			Return(client.AlbumPage{Page: page}, nil).
			Once()

		newHandler(t, mockCatalog, nil).Albums(ctx)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var payload catalog.AlbumPage
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		assert.Equal(t, 1, payload.Total)
		require.Len(t, payload.Items, 1)
		assert.Equal(t, "Hot Fuss", payload.Items[0].Name)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("non-numeric limit", func(t *testing.T) {
		ctx, recorder := newContext("/v1/artists/abc/albums?limit=many", gin.Params{{Key: "id", Value: "abc"}})
		mockCatalog := &mocks.MockCatalog{}

		newHandler(t, mockCatalog, nil).Albums(ctx)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.JSONEq(t, `{"error":"limit must be an integer"}`, recorder.Body.String())
		mockCatalog.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})
}

func TestCatalogHandler_TopTracksAndRelated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockCatalog := &mocks.MockCatalog{}
	mockCatalog.On("Do", mock.Anything, client.TopTracksRequest{ID: "abc", Market: "US"}).
		Return(client.TrackList{Tracks: []catalog.Track{testutil.Track("t1", "Mr. Brightside", 90)}}, nil).
		Once()
	mockCatalog.On("Do", mock.Anything, client.RelatedArtistsRequest{ID: "abc"}).
		Return(client.RelatedArtistList{Artists: []catalog.Artist{testutil.Artist("r1", "Related", 50)}}, nil).
		Once()
	t.Cleanup(func() {
		mockCatalog.AssertExpectations(t)
	})

	h := newHandler(t, mockCatalog, nil)
	params := gin.Params{{Key: "id", Value: "abc"}}

	ctx, recorder := newContext("/v1/artists/abc/top-tracks?market=US", params)
	h.TopTracks(ctx)
	assert.Equal(t, http.StatusOK, recorder.Code)
	var tracks catalog.TopTracks
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &tracks))
	require.Len(t, tracks.Tracks, 1)
	assert.Equal(t, "Mr. Brightside", tracks.Tracks[0].Name)

	ctx, recorder = newContext("/v1/artists/abc/related-artists", params)
	h.RelatedArtists(ctx)
	assert.Equal(t, http.StatusOK, recorder.Code)
	var related struct {
		Artists []catalog.Artist `json:"artists"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &related))
	require.Len(t, related.Artists, 1)
	assert.Equal(t, "Related", related.Artists[0].Name)
}

func TestCatalogHandler_HealthAndReady(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx, recorder := newContext("/health", nil)
	newHandler(t, &mocks.MockCatalog{}, nil).Health(ctx)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())

	ctx, recorder = newContext("/ready", nil)
	newHandler(t, &mocks.MockCatalog{}, func(context.Context) error { return nil }).Ready(ctx)
	assert.Equal(t, http.StatusOK, recorder.Code)

	ctx, recorder = newContext("/ready", nil)
	newHandler(t, &mocks.MockCatalog{}, func(context.Context) error { return errors.New("redis down") }).Ready(ctx)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestCatalogHandler_CoalescesConcurrentRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	release := make(chan time.Time)
	mockCatalog := &mocks.MockCatalog{}
	mockCatalog.On("Do", mock.Anything, client.ArtistRequest{ID: "abc"}).
		WaitUntil(release).
		Return(client.SingleArtist{Artist: testutil.Artist("abc", "The Killers", 80)}, nil).
		Once()

	h := newHandler(t, mockCatalog, nil)

	const callers = 3
	recorders := make([]*httptest.ResponseRecorder, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		ctx, recorder := newContext("/v1/artists/abc", gin.Params{{Key: "id", Value: "abc"}})
		recorders[i] = recorder
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Artist(ctx)
		}()
	}

	// Let every caller join the in-flight request before it completes.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, recorder := range recorders {
		assert.Equal(t, http.StatusOK, recorder.Code, "caller %d", i)
		assert.Contains(t, recorder.Body.String(), "The Killers", "caller %d", i)
	}
	mockCatalog.AssertNumberOfCalls(t, "Do", 1)
}

// blockingCatalog holds every call until release closes and honors ctx.
type blockingCatalog struct {
	release chan struct{}
	mu      sync.Mutex
	calls   int
}

func (b *blockingCatalog) Do(ctx context.Context, req client.Request) (client.Result, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()

	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, &client.Error{Kind: client.KindTransport, Mode: req.Mode(), Err: ctx.Err()}
	}
	return client.SingleArtist{Artist: testutil.Artist("abc", "The Killers", 80)}, nil
}

func TestCatalogHandler_FirstCallerCancelDoesNotFailOthers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &blockingCatalog{release: make(chan struct{})}
	h := newHandler(t, svc, nil)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leader, leaderRecorder := newContext("/v1/artists/abc", gin.Params{{Key: "id", Value: "abc"}})
	leader.Request = leader.Request.WithContext(leaderCtx)
	follower, followerRecorder := newContext("/v1/artists/abc", gin.Params{{Key: "id", Value: "abc"}})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.Artist(leader)
	}()
	time.Sleep(50 * time.Millisecond)
	go func() {
		defer wg.Done()
		h.Artist(follower)
	}()
	time.Sleep(50 * time.Millisecond)

	cancelLeader()
	time.Sleep(50 * time.Millisecond)
	close(svc.release)
	wg.Wait()

	assert.Equal(t, http.StatusGatewayTimeout, leaderRecorder.Code)
	assert.Equal(t, http.StatusOK, followerRecorder.Code)
	assert.Contains(t, followerRecorder.Body.String(), "The Killers")
	assert.Equal(t, 1, svc.calls)
}

func TestCatalogHandler_SharedTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &blockingCatalog{release: make(chan struct{})}
	defer close(svc.release)
	h := server.NewCatalogHandler(otel.Tracer("test"), zerolog.Nop(), svc, nil,
		server.WithSharedTimeout(20*time.Millisecond))

	ctx, recorder := newContext("/v1/artists/abc", gin.Params{{Key: "id", Value: "abc"}})
	h.Artist(ctx)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.JSONEq(t, `{"error":"spotify client error"}`, recorder.Body.String())
}
