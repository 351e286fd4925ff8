// Package pagination merges paginated album listings into one logical page.
//
// Spotify returns album listings in pages linked by a "next" URL. Follow walks
// those links one page at a time and Merge folds each page into the result:
//
//	page, err := pagination.Follow(ctx, fetcher, first, pagination.DefaultConfig())
//
// The follower:
//   - Fetches pages sequentially, never recursively
//   - Stops after Config.MaxPages pages (first page included)
//   - Stops if a continuation link repeats
//   - Returns no partial result when a fetch fails
//
// A merged page sums the per-page totals reported by the server and exposes the
// last fetched page's continuation link.
package pagination
