package aggregation

import (
	"fmt"
	"testing"
)

type countingIDs struct {
	n int
}

func (c *countingIDs) NextID() string {
	c.n++
	return fmt.Sprintf("id-%d", c.n)
}

func TestMergeAssignsIdentityAndFeed(t *testing.T) {
	m := NewMerger(&countingIDs{})

	added := m.Merge(nil, []ParsedPost{
		{Title: "First", Link: "https://example.com/1", Description: "one"},
		{Title: "Second", Link: "https://example.com/2", Description: "two"},
	}, "feed-1")

	if len(added) != 2 {
		t.Fatalf("Merge returned %d posts, want 2", len(added))
	}
	if added[0].ID == "" || added[0].ID == added[1].ID {
		t.Fatalf("expected distinct non-empty IDs, got %q and %q", added[0].ID, added[1].ID)
	}
	for _, p := range added {
		if p.FeedID != "feed-1" {
			t.Fatalf("post %q has feed ID %q, want feed-1", p.Link, p.FeedID)
		}
	}
}

func TestMergeSkipsKnownLinks(t *testing.T) {
	m := NewMerger(&countingIDs{})

	existing := []Post{
		{ID: "a", FeedID: "feed-1", Link: "https://example.com/x"},
	}
	added := m.Merge(existing, []ParsedPost{
		{Link: "https://example.com/x"},
		{Link: "https://example.com/y"},
	}, "feed-1")

	if len(added) != 1 {
		t.Fatalf("Merge returned %d posts, want 1", len(added))
	}
	if added[0].Link != "https://example.com/y" {
		t.Fatalf("merged link = %q, want https://example.com/y", added[0].Link)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	m := NewMerger(&countingIDs{})

	fresh := []ParsedPost{
		{Link: "https://example.com/1"},
		{Link: "https://example.com/2"},
	}
	first := m.Merge(nil, fresh, "feed-1")
	if len(first) != 2 {
		t.Fatalf("first merge returned %d posts, want 2", len(first))
	}

	second := m.Merge(first, fresh, "feed-1")
	if len(second) != 0 {
		t.Fatalf("second merge with identical content returned %d posts, want 0", len(second))
	}
}

func TestMergePreservesFreshOrder(t *testing.T) {
	m := NewMerger(&countingIDs{})

	fresh := []ParsedPost{
		{Link: "https://example.com/c"},
		{Link: "https://example.com/a"},
		{Link: "https://example.com/b"},
	}
	added := m.Merge(nil, fresh, "feed-1")

	for i, p := range added {
		if p.Link != fresh[i].Link {
			t.Fatalf("post %d has link %q, want %q", i, p.Link, fresh[i].Link)
		}
	}
}

func TestMergeDeduplicatesWithinFreshList(t *testing.T) {
	m := NewMerger(&countingIDs{})

	added := m.Merge(nil, []ParsedPost{
		{Link: "https://example.com/1", Title: "first copy"},
		{Link: "https://example.com/1", Title: "second copy"},
	}, "feed-1")

	if len(added) != 1 {
		t.Fatalf("Merge returned %d posts, want 1", len(added))
	}
	if added[0].Title != "first copy" {
		t.Fatalf("kept %q, want the first occurrence", added[0].Title)
	}
}
