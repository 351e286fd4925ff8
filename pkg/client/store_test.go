package client

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/spotify-catalog-client/internal/testutil"
	"github.com/Sternrassler/spotify-catalog-client/pkg/cache"
)

// setupTestRedis creates a test Redis client.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	// Flush test DB
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestExecute_StoreSharedAcrossClients(t *testing.T) {
	redisClient := setupTestRedis(t)

	mock := testutil.NewMockSpotify()
	defer mock.Close()
	mock.SetResponse(testutil.ArtistPath(killersID), testutil.NewOKResponse(testutil.ArtistJSON(killersID, "The Killers", 80)))

	withRedis := func(cfg *Config) { cfg.Redis = redisClient }
	first := newTestClient(t, mock, withRedis)
	second := newTestClient(t, mock, withRedis)
	ctx := context.Background()

	if _, err := first.Artist(killersID).Execute(ctx); err != nil {
		t.Fatalf("first client Execute failed: %v", err)
	}

	result, err := second.Artist(killersID).Execute(ctx)
	if err != nil {
		t.Fatalf("second client Execute failed: %v", err)
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("RequestCount = %d, want 1 (second client served from store)", mock.GetRequestCount())
	}
	if got := result.(SingleArtist).Name(); got != "The Killers" {
		t.Errorf("Name() = %q, want The Killers", got)
	}

	// The store hit is promoted into the second client's memory cache
	if _, ok := second.Cached(cache.ArtistKey(killersID)); !ok {
		t.Error("store hit not promoted into memory cache")
	}
}

func TestExecute_StoreReceivesCrossPopulation(t *testing.T) {
	redisClient := setupTestRedis(t)

	mock := testutil.NewMockSpotify()
	defer mock.Close()
	killers := testutil.Artist(killersID, "The Killers", 80)
	mock.SetResponse("/v1/artists", testutil.NewOKResponse(testutil.ArtistsJSON(&killers)))

	c := newTestClient(t, mock, func(cfg *Config) { cfg.Redis = redisClient })
	ctx := context.Background()

	if _, err := c.Artists(killersID).Execute(ctx); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	store := cache.NewStore(redisClient)
	entry, err := store.Get(ctx, cache.ArtistKey(killersID))
	if err != nil {
		t.Fatalf("cross-populated entry missing from store: %v", err)
	}
	if entry.Kind != ResultSingleArtist.String() {
		t.Errorf("entry.Kind = %q, want %q", entry.Kind, ResultSingleArtist.String())
	}
}
