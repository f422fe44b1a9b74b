// Package usecase contains application-level services.
package usecase

import (
	"context"
	"errors"

	"github.com/EgorUlitin/rss-aggregator/internal/application/state"
	"github.com/EgorUlitin/rss-aggregator/internal/domain/aggregation"
)

// Service failure sentinels. Callers pick user-facing messages with
// errors.Is; implementations wrap them with detail.
var (
	// ErrNotAURL rejects an empty or syntactically invalid URL.
	ErrNotAURL = errors.New("not a valid url")
	// ErrAlreadyExists rejects a URL that was already submitted.
	ErrAlreadyExists = errors.New("feed already added")
	// ErrNetwork marks a transport or proxy failure.
	ErrNetwork = errors.New("network failure")
	// ErrNotAFeed marks contents that are not a recognizable feed.
	ErrNotAFeed = errors.New("contents are not a recognizable feed")
)

// FeedFetcher retrieves and parses one remote feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*aggregation.ParsedFeed, error)
}

// errorCode maps a service error to its user-facing code.
func errorCode(err error) state.ErrorCode {
	switch {
	case errors.Is(err, ErrNotAURL):
		return state.ErrorNotAURL
	case errors.Is(err, ErrAlreadyExists):
		return state.ErrorAlreadyExists
	case errors.Is(err, ErrNotAFeed):
		return state.ErrorParsing
	default:
		return state.ErrorNetwork
	}
}
