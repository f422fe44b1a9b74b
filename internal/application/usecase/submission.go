package usecase

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/EgorUlitin/rss-aggregator/internal/application/state"
	"github.com/EgorUlitin/rss-aggregator/internal/domain/aggregation"
)

// SubmissionService runs the one-shot add-feed flow: validate, fetch,
// create the feed with its initial posts, and publish the outcome on the
// submission status channel.
type SubmissionService struct {
	Fetcher FeedFetcher
	State   *state.State
	IDs     aggregation.IDGenerator
	Log     *log.Logger
}

// NewSubmissionService constructs a SubmissionService.
func NewSubmissionService(fetcher FeedFetcher, st *state.State, ids aggregation.IDGenerator, logger *log.Logger) SubmissionService {
	return SubmissionService{
		Fetcher: fetcher,
		State:   st,
		IDs:     ids,
		Log:     logger,
	}
}

// Submit adds a new feed from its URL. Every failure degrades to an
// error status on the state; the returned error carries the same cause
// for callers that want it.
func (s SubmissionService) Submit(ctx context.Context, rawURL string) error {
	url := strings.TrimSpace(rawURL)

	if err := ValidateURL(url, s.State.AddedURLs()); err != nil {
		s.State.SetSubmission(state.Failed, errorCode(err))
		return err
	}

	s.State.SetSubmission(state.Sending, state.ErrorNone)

	parsed, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger().Warn("feed load failed", "url", url, "err", err)
		s.State.SetSubmission(state.Failed, errorCode(err))
		return err
	}

	f := aggregation.Feed{
		ID:          s.IDs.NextID(),
		Title:       parsed.Title,
		Description: parsed.Description,
	}
	posts := aggregation.NewMerger(s.IDs).Merge(nil, parsed.Posts, f.ID)

	s.State.AddFeed(f, url, posts)
	s.State.SetSubmission(state.Success, state.ErrorNone)
	s.logger().Info("feed added", "url", url, "title", f.Title, "posts", len(posts))
	return nil
}

func (s SubmissionService) logger() *log.Logger {
	if s.Log != nil {
		return s.Log
	}
	return log.Default()
}
