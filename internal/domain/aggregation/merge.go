package aggregation

// Merger computes which freshly parsed posts are genuinely new for a feed.
type Merger struct {
	IDs IDGenerator
}

// NewMerger constructs a Merger with the given identity source.
func NewMerger(ids IDGenerator) Merger {
	return Merger{IDs: ids}
}

// Merge returns the posts from fresh whose link is not already stored for
// the feed, in the order they appeared in fresh, each with a newly
// allocated identity and the owning feed attached. Existing posts are
// never touched. Merging the same fresh list against the grown existing
// list yields nothing.
func (m Merger) Merge(existing []Post, fresh []ParsedPost, feedID string) []Post {
	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[p.Link] = struct{}{}
	}

	var added []Post
	for _, p := range fresh {
		if _, ok := seen[p.Link]; ok {
			continue
		}
		// A fresh list can repeat a link too.
		seen[p.Link] = struct{}{}
		added = append(added, Post{
			ID:          m.IDs.NextID(),
			FeedID:      feedID,
			Title:       p.Title,
			Link:        p.Link,
			Description: p.Description,
		})
	}
	return added
}
