package pagination

import (
	"testing"

	"github.com/Sternrassler/spotify-catalog-client/pkg/catalog"
)

func strPtr(s string) *string { return &s }

func albums(ids ...string) []catalog.AlbumItem {
	items := make([]catalog.AlbumItem, len(ids))
	for i, id := range ids {
		items[i] = catalog.AlbumItem{ID: id, Name: "Album " + id}
	}
	return items
}

func itemIDs(page catalog.AlbumPage) []string {
	ids := make([]string, len(page.Items))
	for i, item := range page.Items {
		ids[i] = item.ID
	}
	return ids
}

func TestMerge_Concatenation(t *testing.T) {
	page1 := catalog.AlbumPage{Items: albums("x"), Total: 1, Next: strPtr("p2")}
	page2 := catalog.AlbumPage{Items: albums("y"), Total: 1, Next: nil}

	got := Merge(page1, page2)

	if ids := itemIDs(got); len(ids) != 2 || ids[0] != "x" || ids[1] != "y" {
		t.Errorf("Items = %v, want [x y]", ids)
	}
	if got.Total != 2 {
		t.Errorf("Total = %d, want 2", got.Total)
	}
	if got.Next != nil {
		t.Errorf("Next = %q, want nil", *got.Next)
	}
}

func TestMerge_KeepsLastNext(t *testing.T) {
	page1 := catalog.AlbumPage{Href: "p1", Offset: 0, Limit: 2, Items: albums("a", "b"), Total: 5, Next: strPtr("p2")}
	page2 := catalog.AlbumPage{Href: "p2", Offset: 2, Limit: 2, Items: albums("c", "d"), Total: 5, Next: strPtr("p3"), Previous: strPtr("p1")}

	got := Merge(page1, page2)

	if got.Next == nil || *got.Next != "p3" {
		t.Errorf("Next = %v, want p3", got.Next)
	}
	if got.Href != "p1" {
		t.Errorf("Href = %q, want p1", got.Href)
	}
	if got.Offset != 0 {
		t.Errorf("Offset = %d, want 0", got.Offset)
	}
	if got.Previous != nil {
		t.Errorf("Previous = %q, want nil", *got.Previous)
	}
	if got.Limit != 4 {
		t.Errorf("Limit = %d, want 4", got.Limit)
	}
	if got.Total != 10 {
		t.Errorf("Total = %d, want 10 (per-page totals summed)", got.Total)
	}
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	page1 := catalog.AlbumPage{Items: albums("a"), Total: 1, Next: strPtr("p2")}
	page2 := catalog.AlbumPage{Items: albums("b"), Total: 1, Next: strPtr("p3")}

	got := Merge(page1, page2)
	if got.Next == nil {
		t.Fatal("Next = nil, want p3")
	}
	got.Items[0].Name = "changed"
	*got.Next = "changed"

	if page1.Items[0].Name != "Album a" {
		t.Errorf("base item aliased: %q", page1.Items[0].Name)
	}
	if len(page1.Items) != 1 {
		t.Errorf("base items grown to %d", len(page1.Items))
	}
	if *page1.Next != "p2" {
		t.Errorf("base Next aliased: %q", *page1.Next)
	}
	if *page2.Next != "p3" {
		t.Errorf("page Next aliased: %q", *page2.Next)
	}
}
