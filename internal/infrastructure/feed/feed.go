// Package feed fetches remote feed documents through the CORS-bypass
// proxy and parses them.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/EgorUlitin/rss-aggregator/internal/application/usecase"
	"github.com/EgorUlitin/rss-aggregator/internal/domain/aggregation"
)

const defaultFetchTimeout = 10 * time.Second

// ParserFunc interprets raw feed contents. Exposed for testing.
var ParserFunc = defaultParser

func defaultParser(contents string) (*aggregation.ParsedFeed, error) {
	parsed, err := gofeed.NewParser().ParseString(contents)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrNotAFeed, err)
	}

	out := &aggregation.ParsedFeed{
		Title:       parsed.Title,
		Description: parsed.Description,
		Posts:       make([]aggregation.ParsedPost, len(parsed.Items)),
	}
	for i, item := range parsed.Items {
		out.Posts[i] = aggregation.ParsedPost{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
		}
	}
	return out, nil
}

// proxyEnvelope is the proxy's JSON response body.
type proxyEnvelope struct {
	Status   int    `json:"status"`
	Contents string `json:"contents"`
}

// Fetcher implements usecase.FeedFetcher against the proxy endpoint.
type Fetcher struct {
	proxyHost string
	client    *http.Client
}

// NewFetcher constructs a Fetcher for the given proxy host.
func NewFetcher(proxyHost string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{
		proxyHost: strings.TrimRight(proxyHost, "/"),
		client:    &http.Client{Timeout: timeout},
	}
}

// ProxyURL returns the proxied fetch URL for a target feed URL.
func (f *Fetcher) ProxyURL(target string) string {
	return fmt.Sprintf("%s/get?disableCache=true&url=%s", f.proxyHost, url.QueryEscape(target))
}

// Fetch retrieves the target feed through the proxy and hands the raw
// contents to the parser. Transport failures, non-2xx responses, and a
// non-200 envelope status all surface as usecase.ErrNetwork;
// unparseable contents surface as usecase.ErrNotAFeed.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*aggregation.ParsedFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.ProxyURL(target), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrNetwork, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: proxy returned HTTP %d", usecase.ErrNetwork, resp.StatusCode)
	}

	var envelope proxyEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: bad proxy response: %v", usecase.ErrNetwork, err)
	}
	if envelope.Status != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream returned status %d", usecase.ErrNetwork, envelope.Status)
	}

	return ParserFunc(envelope.Contents)
}
