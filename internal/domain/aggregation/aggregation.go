// Package aggregation defines the core feed aggregation entities.
package aggregation

// Feed is a named remote content source with a stable identity for the
// lifetime of the session. Feeds are created once and never mutated.
type Feed struct {
	ID          string
	Title       string
	Description string
}

// Post is a single entry belonging to a Feed, deduplicated by link.
type Post struct {
	ID          string
	FeedID      string
	Title       string
	Link        string
	Description string
}

// Source pairs a submitted feed URL with the Feed it produced. The
// ordered source list drives polling and the duplicate-submission check.
type Source struct {
	URL    string
	FeedID string
}

// ParsedFeed is the parser's normalized output for one feed document.
type ParsedFeed struct {
	Title       string
	Description string
	Posts       []ParsedPost
}

// ParsedPost is a feed entry before it has been assigned an identity.
type ParsedPost struct {
	Title       string
	Link        string
	Description string
}

// IDGenerator allocates identifiers for feeds and posts.
type IDGenerator interface {
	NextID() string
}
