// Package state holds the shared application state observed by the view.
package state

import (
	"sync"

	"github.com/EgorUlitin/rss-aggregator/internal/domain/aggregation"
)

// SubmissionStatus describes the add-feed form workflow.
type SubmissionStatus string

const (
	Filling SubmissionStatus = "filling"
	Sending SubmissionStatus = "sending"
	Success SubmissionStatus = "success"
	Failed  SubmissionStatus = "error"
)

// PollingStatus describes the background refresh loop. It is a separate
// channel from the submission status so a background failure cannot
// overwrite an in-flight submission's result.
type PollingStatus string

const (
	PollingIdle    PollingStatus = "idle"
	PollingRunning PollingStatus = "polling"
	PollingFailed  PollingStatus = "error"
)

// ErrorCode identifies a failure for user-facing messages.
type ErrorCode string

const (
	ErrorNone          ErrorCode = ""
	ErrorNotAURL       ErrorCode = "notAUrl"
	ErrorAlreadyExists ErrorCode = "alreadyExists"
	ErrorNetwork       ErrorCode = "networkError"
	ErrorParsing       ErrorCode = "parsingError"
)

// EventKind discriminates state change events.
type EventKind int

const (
	// FeedAdded carries a new feed and its initial posts.
	FeedAdded EventKind = iota
	// PostsAdded carries posts appended by a polling cycle.
	PostsAdded
	// SubmissionChanged carries the submission status and error code.
	SubmissionChanged
	// PollingChanged carries the polling status and error code.
	PollingChanged
	// PostShown carries the ID of a post the user opened.
	PostShown
	// ModalClosed signals the modal post was dismissed.
	ModalClosed
)

// Event describes one logical state mutation.
type Event struct {
	Kind       EventKind
	Feed       aggregation.Feed
	Posts      []aggregation.Post
	Submission SubmissionStatus
	Polling    PollingStatus
	Error      ErrorCode
	PostID     string
}

// Observer receives a notification after every state mutation.
// Notifications are delivered while the state lock is held, so observers
// must not call back into the State; record the event and return.
type Observer interface {
	StateChanged(Event)
}

// State is the single mutable data model: feeds, posts, submitted
// sources, the two status channels, and the per-session UI state.
// All access is serialized through its mutex.
type State struct {
	mu            sync.Mutex
	feeds         []aggregation.Feed
	posts         []aggregation.Post
	sources       []aggregation.Source
	submission    SubmissionStatus
	submissionErr ErrorCode
	polling       PollingStatus
	pollingErr    ErrorCode
	shown         map[string]struct{}
	modalID       string
	observers     []Observer
}

// New constructs an empty State in the filling/idle status.
func New() *State {
	return &State{
		submission: Filling,
		polling:    PollingIdle,
		shown:      make(map[string]struct{}),
	}
}

// Subscribe registers an observer for subsequent mutations.
func (s *State) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *State) notify(ev Event) {
	for _, o := range s.observers {
		o.StateChanged(ev)
	}
}

// AddFeed records a successfully loaded feed, its submitted URL, and its
// initial posts as one atomic mutation.
func (s *State) AddFeed(f aggregation.Feed, url string, posts []aggregation.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeds = append(s.feeds, f)
	s.sources = append(s.sources, aggregation.Source{URL: url, FeedID: f.ID})
	s.posts = append(s.posts, posts...)
	s.notify(Event{Kind: FeedAdded, Feed: f, Posts: posts})
}

// AppendPosts records posts discovered by a polling cycle.
func (s *State) AppendPosts(posts []aggregation.Post) {
	if len(posts) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, posts...)
	s.notify(Event{Kind: PostsAdded, Posts: posts})
}

// SetSubmission publishes a submission status transition.
func (s *State) SetSubmission(status SubmissionStatus, code ErrorCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submission = status
	s.submissionErr = code
	s.notify(Event{Kind: SubmissionChanged, Submission: status, Error: code})
}

// SetPolling publishes a polling status transition.
func (s *State) SetPolling(status PollingStatus, code ErrorCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polling = status
	s.pollingErr = code
	s.notify(Event{Kind: PollingChanged, Polling: status, Error: code})
}

// MarkPostShown records that the user opened a post and makes it the
// modal post.
func (s *State) MarkPostShown(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown[postID] = struct{}{}
	s.modalID = postID
	s.notify(Event{Kind: PostShown, PostID: postID})
}

// Submission returns the current submission status and error code.
func (s *State) Submission() (SubmissionStatus, ErrorCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submission, s.submissionErr
}

// Polling returns the current polling status and error code.
func (s *State) Polling() (PollingStatus, ErrorCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polling, s.pollingErr
}

// Feeds returns a copy of all feeds in creation order.
func (s *State) Feeds() []aggregation.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]aggregation.Feed(nil), s.feeds...)
}

// Posts returns a copy of all posts in creation order.
func (s *State) Posts() []aggregation.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]aggregation.Post(nil), s.posts...)
}

// Sources returns a copy of the submitted sources in submission order.
func (s *State) Sources() []aggregation.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]aggregation.Source(nil), s.sources...)
}

// AddedURLs returns the submitted feed URLs in submission order.
func (s *State) AddedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	urls := make([]string, len(s.sources))
	for i, src := range s.sources {
		urls[i] = src.URL
	}
	return urls
}

// FeedByID looks a feed up by its identifier.
func (s *State) FeedByID(id string) (aggregation.Feed, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.feeds {
		if f.ID == id {
			return f, true
		}
	}
	return aggregation.Feed{}, false
}

// PostsByFeed returns the stored posts belonging to one feed.
func (s *State) PostsByFeed(feedID string) []aggregation.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []aggregation.Post
	for _, p := range s.posts {
		if p.FeedID == feedID {
			out = append(out, p)
		}
	}
	return out
}

// PostByID looks a post up by its identifier.
func (s *State) PostByID(id string) (aggregation.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return aggregation.Post{}, false
}

// IsShown reports whether the user has opened the post.
func (s *State) IsShown(postID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.shown[postID]
	return ok
}

// ModalPost returns the post currently presented in the modal, if any.
func (s *State) ModalPost() (aggregation.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modalID == "" {
		return aggregation.Post{}, false
	}
	for _, p := range s.posts {
		if p.ID == s.modalID {
			return p, true
		}
	}
	return aggregation.Post{}, false
}

// CloseModal clears the modal post.
func (s *State) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modalID = ""
	s.notify(Event{Kind: ModalClosed})
}
