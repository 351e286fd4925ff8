// Package client provides the Spotify catalog client: a request orchestrator
// with a bounded read-through cache, album pagination and typed results.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sternrassler/spotify-catalog-client/pkg/auth"
	"github.com/Sternrassler/spotify-catalog-client/pkg/cache"
	"github.com/Sternrassler/spotify-catalog-client/pkg/catalog"
	"github.com/Sternrassler/spotify-catalog-client/pkg/logging"
	"github.com/Sternrassler/spotify-catalog-client/pkg/pagination"
	"github.com/Sternrassler/spotify-catalog-client/pkg/ratelimit"
)

// DefaultBaseURL is the Spotify Web API origin.
const DefaultBaseURL = "https://api.spotify.com"

const tracerName = "github.com/Sternrassler/spotify-catalog-client/pkg/client"

// Client is the Spotify catalog client.
//
// A Client runs one request at a time: configure it with a builder method,
// then call Execute. It is not safe for concurrent use.
type Client struct {
	pending     Request
	memory      *cache.Memory[Result]
	store       *cache.Store
	transport   Transport
	rateLimiter *ratelimit.Tracker
	baseURL     *url.URL
	token       string
	config      Config
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// Config holds the client configuration.
type Config struct {
	// Tokens supplies the bearer token, fetched once in New (REQUIRED)
	Tokens auth.TokenProvider

	// BaseURL is the API origin (default: DefaultBaseURL)
	BaseURL string

	// Transport sends requests (default: HTTPTransport with Timeout)
	Transport Transport
	Timeout   time.Duration

	// Caching
	CacheCapacity int           // Max resident entries in the per-client cache
	Redis         *redis.Client // Optional shared store behind the memory cache
	StoreTTL      time.Duration // Store TTL when the response has no caching headers

	// Pagination bounds continuation following for albums
	Pagination pagination.Config

	// RateLimiter gates requests after a 429 (default: a new tracker per client)
	RateLimiter *ratelimit.Tracker

	// Observability
	Logger *zerolog.Logger
	Tracer trace.Tracer
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(tokens auth.TokenProvider) Config {
	return Config{
		Tokens:        tokens,
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		CacheCapacity: cache.DefaultCapacity,
		StoreTTL:      cache.DefaultTTL,
		Pagination:    pagination.DefaultConfig(),
	}
}

// New creates a new catalog client and acquires its bearer token.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token provider is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("base url must be absolute (got %q)", cfg.BaseURL)
	}

	if cfg.CacheCapacity < 0 {
		return nil, fmt.Errorf("cache_capacity must be >= 0 (got %d)", cfg.CacheCapacity)
	}
	if cfg.Pagination.MaxPages <= 0 {
		cfg.Pagination.MaxPages = pagination.DefaultConfig().MaxPages
	}
	if cfg.StoreTTL <= 0 {
		cfg.StoreTTL = cache.DefaultTTL
	}

	logger := logging.NewLogger(logging.ComponentClient)
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	if cfg.Pagination.Logger == nil {
		cfg.Pagination.Logger = &logger
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = NewHTTPTransport(cfg.Timeout)
	}

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimiter = ratelimit.NewTracker(logger)
	}

	token, err := cfg.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire token: %w", err)
	}

	c := &Client{
		memory: cache.NewMemory[Result](cfg.CacheCapacity,
			cache.WithCopy(cloneResult),
			cache.WithName[Result]("memory"),
		),
		transport:   transport,
		rateLimiter: rateLimiter,
		baseURL:     baseURL,
		token:       token,
		config:      cfg,
		logger:      logger,
		tracer:      tracer,
	}

	if cfg.Redis != nil {
		c.store = cache.NewStore(cfg.Redis)
	}

	logger.Info().
		Str("base_url", baseURL.String()).
		Int("cache_capacity", c.memory.Capacity()).
		Bool("redis_store", c.store != nil).
		Msg("Spotify client ready")

	return c, nil
}

// Configure replaces the pending request.
func (c *Client) Configure(req Request) *Client {
	c.pending = req
	return c
}

// Artist configures a single-artist lookup.
func (c *Client) Artist(id string) *Client {
	return c.Configure(ArtistRequest{ID: id})
}

// Artists configures a several-artists lookup.
func (c *Client) Artists(ids ...string) *Client {
	return c.Configure(ArtistsRequest{IDs: append([]string(nil), ids...)})
}

// Albums configures an album listing.
func (c *Client) Albums(id string, opts AlbumsOptions) *Client {
	opts.IncludeGroups = append([]string(nil), opts.IncludeGroups...)
	return c.Configure(AlbumsRequest{ID: id, Options: opts})
}

// TopTracks configures a top-tracks lookup. market is required.
func (c *Client) TopTracks(id, market string) *Client {
	return c.Configure(TopTracksRequest{ID: id, Market: market})
}

// RelatedArtists configures a related-artists lookup.
func (c *Client) RelatedArtists(id string) *Client {
	return c.Configure(RelatedArtistsRequest{ID: id})
}

// Pending returns the configured request, or nil.
func (c *Client) Pending() Request {
	return c.pending
}

// Do configures req and executes it.
func (c *Client) Do(ctx context.Context, req Request) (Result, error) {
	return c.Configure(req).Execute(ctx)
}

// Execute runs the pending request and consumes it.
//
// Cached results are returned without a network call. On error the result is
// Empty and the cache is left untouched.
func (c *Client) Execute(ctx context.Context) (Result, error) {
	req := c.pending
	c.pending = nil

	if req == nil {
		return Empty{}, c.fail(ctx, &Error{Kind: KindInvalidArguments, Message: "no request configured"})
	}

	mode := req.Mode()
	ctx, span := c.tracer.Start(ctx, "Client.Execute",
		trace.WithAttributes(attribute.String("spotify.mode", mode.String())))
	defer span.End()

	startTime := time.Now()
	defer func() {
		spotifyRequestDuration.WithLabelValues(mode.String()).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Validate
	if err := req.Validate(); err != nil {
		return Empty{}, c.fail(ctx, &Error{Kind: KindInvalidArguments, Mode: mode, Message: err.Error()})
	}

	// Step 2: Check Cache
	key, cacheable := req.CacheKey()
	if cacheable {
		if result, ok := c.lookup(ctx, key); ok {
			span.SetAttributes(attribute.Bool("spotify.cache_hit", true))
			spotifyRequestsTotal.WithLabelValues(mode.String(), "cache_hit").Inc()
			return result, nil
		}
	}

	// Step 3: Check Rate Limit
	if !c.rateLimiter.Allow() {
		spotifyRequestsTotal.WithLabelValues(mode.String(), "rate_limited").Inc()
		return Empty{}, c.fail(ctx, &Error{Kind: KindTransport, Mode: mode, Message: "rate limited, retry later"})
	}

	// Step 4: Send
	resp, err := c.send(ctx, mode, c.endpoint(req))
	if err != nil {
		return Empty{}, c.fail(ctx, &Error{Kind: KindTransport, Mode: mode, Err: err})
	}

	// Step 5: Classify
	result, err := c.classify(ctx, req, resp)
	if err != nil {
		return Empty{}, c.fail(ctx, err)
	}

	// Step 6: Update Cache
	c.remember(ctx, key, cacheable, result, resp.Header)

	return result, nil
}

// FetchPage fetches one album continuation page. It implements
// pagination.PageFetcher.
func (c *Client) FetchPage(ctx context.Context, link string) (catalog.AlbumPage, error) {
	ctx, span := c.tracer.Start(ctx, "Client.FetchPage")
	defer span.End()

	target, err := c.resolve(link)
	if err != nil {
		return catalog.AlbumPage{}, err
	}

	if !c.rateLimiter.Allow() {
		spotifyRequestsTotal.WithLabelValues(ModeAlbums.String(), "rate_limited").Inc()
		return catalog.AlbumPage{}, fmt.Errorf("rate limited, retry later")
	}

	resp, err := c.send(ctx, ModeAlbums, target)
	if err != nil {
		return catalog.AlbumPage{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().
			Str("link", target).
			Int("status_code", resp.StatusCode).
			Msg("Album page request error")
		return catalog.AlbumPage{}, fmt.Errorf("album page status %d", resp.StatusCode)
	}

	var page catalog.AlbumPage
	if err := c.decode(ModeAlbums, resp.Body, &page); err != nil {
		return catalog.AlbumPage{}, err
	}

	spotifyPagesFetchedTotal.Inc()
	return page, nil
}

// Cached returns a copy of the cached result for key.
func (c *Client) Cached(key cache.Key) (Result, bool) {
	return c.memory.Get(key.String())
}

// CacheLen returns the number of results in the memory cache.
func (c *Client) CacheLen() int {
	return c.memory.Len()
}

// RateLimitState returns a snapshot of the rate limiter state.
func (c *Client) RateLimitState() ratelimit.State {
	return c.rateLimiter.State()
}

// send performs one authorized GET.
func (c *Client) send(ctx context.Context, mode Mode, target string) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("mode", mode.String()).
		Str("url", target).
		Msg("Executing Spotify request")

	resp, err := c.transport.Send(ctx, httpReq)
	if err != nil {
		c.logger.Error().Err(err).Str("mode", mode.String()).Msg("HTTP request failed")
		spotifyRequestsTotal.WithLabelValues(mode.String(), "network_error").Inc()
		return nil, err
	}

	c.rateLimiter.UpdateFromResponse(resp.StatusCode, resp.Header)
	spotifyRequestsTotal.WithLabelValues(mode.String(), strconv.Itoa(resp.StatusCode)).Inc()

	return resp, nil
}

// endpoint builds {BaseURL}/v1/artists{path}?{query}.
func (c *Client) endpoint(req Request) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/v1/artists" + req.Path()
	u.RawQuery = ""
	if q := req.Query(); len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// resolve makes a continuation link absolute against the base URL. Links to
// another origin are refused so the bearer token never leaves the API host.
func (c *Client) resolve(link string) (string, error) {
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse continuation link: %w", err)
	}

	target := c.baseURL.ResolveReference(ref)
	if !strings.EqualFold(target.Scheme, c.baseURL.Scheme) || !strings.EqualFold(target.Host, c.baseURL.Host) {
		c.logger.Warn().
			Str("link", link).
			Str("base_url", c.baseURL.String()).
			Msg("Continuation link points to another origin")
		return "", fmt.Errorf("continuation link %q is not on %s://%s", link, c.baseURL.Scheme, c.baseURL.Host)
	}
	return target.String(), nil
}

// lookup consults the memory cache, then the store.
func (c *Client) lookup(ctx context.Context, key cache.Key) (Result, bool) {
	k := key.String()

	if result, ok := c.memory.Get(k); ok {
		c.logger.Debug().Str("key", k).Msg("Cache hit")
		return result, true
	}

	if c.store == nil {
		c.logger.Debug().Str("key", k).Msg("Cache miss")
		return nil, false
	}

	entry, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Warn().Err(err).Str("key", k).Msg("Store get error")
		}
		c.logger.Debug().Str("key", k).Msg("Cache miss")
		return nil, false
	}

	result, err := decodeEntry(entry)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", k).Msg("Store entry unreadable")
		return nil, false
	}

	c.memory.Put(k, result)
	c.logger.Debug().Str("key", k).Msg("Store hit")
	return cloneResult(result), true
}

// remember writes a successful result into the caches. Batch results are
// split into one single-artist entry per returned artist.
func (c *Client) remember(ctx context.Context, key cache.Key, cacheable bool, result Result, header http.Header) {
	switch r := result.(type) {
	case ArtistList:
		for _, artist := range r.Artists {
			if artist == nil || artist.ID == "" {
				continue
			}
			c.put(ctx, cache.ArtistKey(artist.ID), SingleArtist{Artist: *artist}, header)
		}
	case SingleArtist, AlbumPage, TrackList, RelatedArtistList:
		if cacheable {
			c.put(ctx, key, result, header)
		}
	}
}

func (c *Client) put(ctx context.Context, key cache.Key, result Result, header http.Header) {
	k := key.String()
	c.memory.Put(k, result)
	c.logger.Debug().Str("key", k).Str("kind", result.Kind().String()).Msg("Cached result")

	if c.store == nil {
		return
	}

	entry, err := encodeEntry(result, cache.ExpiresFromHeader(header, c.config.StoreTTL))
	if err != nil {
		c.logger.Warn().Err(err).Str("key", k).Msg("Failed to encode store entry")
		return
	}
	if err := c.store.Set(ctx, key, entry); err != nil {
		c.logger.Warn().Err(err).Str("key", k).Msg("Failed to write store entry")
	}
}

// fail records err on metrics and the active span and returns it.
func (c *Client) fail(ctx context.Context, err error) error {
	kind := KindOf(err)
	spotifyErrorsTotal.WithLabelValues(kind.String()).Inc()

	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, kind.String())

	return err
}
