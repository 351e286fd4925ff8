package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/spotify-catalog-client/pkg/catalog"
)

// Config holds continuation follower configuration
type Config struct {
	// MaxPages caps the number of pages in one merged result, first page included
	MaxPages int
	// Timeout per page fetch (0 = no per-page timeout)
	Timeout time.Duration
	// Logger receives progress and stop reasons (default: global logger)
	Logger *zerolog.Logger
}

// DefaultConfig returns the default follower configuration
func DefaultConfig() Config {
	return Config{
		MaxPages: 20,
		Timeout:  15 * time.Second,
	}
}

// PageFetcher fetches a single album page by its continuation link.
type PageFetcher interface {
	FetchPage(ctx context.Context, link string) (catalog.AlbumPage, error)
}

// PageFetcherFunc adapts a function to PageFetcher.
type PageFetcherFunc func(ctx context.Context, link string) (catalog.AlbumPage, error)

// FetchPage calls f(ctx, link).
func (f PageFetcherFunc) FetchPage(ctx context.Context, link string) (catalog.AlbumPage, error) {
	return f(ctx, link)
}

// Follower drives continuation links one page at a time
type Follower struct {
	fetcher PageFetcher
	config  Config
	logger  zerolog.Logger
}

// NewFollower creates a new follower
func NewFollower(fetcher PageFetcher, config Config) *Follower {
	if config.MaxPages <= 0 {
		config.MaxPages = DefaultConfig().MaxPages
	}
	if config.Timeout < 0 {
		config.Timeout = 0
	}

	logger := log.Logger
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Follower{
		fetcher: fetcher,
		config:  config,
		logger:  logger,
	}
}

// Follow is shorthand for NewFollower(fetcher, config).Follow(ctx, first).
func Follow(ctx context.Context, fetcher PageFetcher, first catalog.AlbumPage, config Config) (catalog.AlbumPage, error) {
	return NewFollower(fetcher, config).Follow(ctx, first)
}

// Follow fetches continuation pages sequentially starting from first.Next and
// merges them into first. It stops when a page carries no link, when MaxPages
// pages have been merged, or when a link repeats. In the last two cases the
// returned page keeps its unresolved Next link.
//
// Any fetch error aborts the loop: the error is returned and pages merged so far
// are discarded.
func (f *Follower) Follow(ctx context.Context, first catalog.AlbumPage) (catalog.AlbumPage, error) {
	start := time.Now()
	merged := first.Clone()
	pages := 1

	visited := make(map[string]bool)
	if first.Href != "" {
		visited[first.Href] = true
	}

	for merged.Next != nil && *merged.Next != "" {
		link := *merged.Next

		if pages >= f.config.MaxPages {
			f.logger.Warn().
				Int("pages", pages).
				Int("max_pages", f.config.MaxPages).
				Str("next", link).
				Msg("Page limit reached, continuation left unresolved")
			break
		}
		if visited[link] {
			f.logger.Warn().
				Str("next", link).
				Int("pages", pages).
				Msg("Continuation link repeats, stopping")
			break
		}
		visited[link] = true

		if err := ctx.Err(); err != nil {
			return catalog.AlbumPage{}, err
		}

		page, err := f.fetch(ctx, link)
		if err != nil {
			f.logger.Warn().
				Err(err).
				Int("page", pages+1).
				Msg("Page fetch failed, discarding merged pages")
			return catalog.AlbumPage{}, fmt.Errorf("fetch page %d: %w", pages+1, err)
		}

		merged = Merge(merged, page)
		pages++
	}

	f.logger.Debug().
		Int("pages", pages).
		Int("items", len(merged.Items)).
		Dur("duration", time.Since(start)).
		Msg("Pagination complete")

	return merged, nil
}

func (f *Follower) fetch(ctx context.Context, link string) (catalog.AlbumPage, error) {
	if f.config.Timeout <= 0 {
		return f.fetcher.FetchPage(ctx, link)
	}

	pageCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()
	return f.fetcher.FetchPage(pageCtx, link)
}
