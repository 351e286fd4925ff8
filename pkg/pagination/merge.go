package pagination

import "github.com/Sternrassler/spotify-catalog-client/pkg/catalog"

// Merge appends next to base and returns the combined page.
//
// Items are concatenated in fetch order. Total and Limit are the sums of the
// per-page values as reported by the server. Next is taken from next, so a merged
// page still exposes a continuation link when the server reports more pages.
// Href, Offset and Previous describe the first page. Neither input is modified.
func Merge(base, next catalog.AlbumPage) catalog.AlbumPage {
	merged := base.Clone()

	merged.Items = append(merged.Items, next.Clone().Items...)
	merged.Total = base.Total + next.Total
	merged.Limit = base.Limit + next.Limit
	merged.Next = nil
	if next.Next != nil {
		link := *next.Next
		merged.Next = &link
	}

	return merged
}
