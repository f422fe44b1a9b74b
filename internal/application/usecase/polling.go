package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/EgorUlitin/rss-aggregator/internal/application/state"
	"github.com/EgorUlitin/rss-aggregator/internal/domain/aggregation"
)

// DefaultPollInterval is the quiet delay between polling cycles.
const DefaultPollInterval = 5000 * time.Millisecond

// Poller re-fetches every known source at a fixed cadence. The next
// cycle is armed only after all per-source operations of the current
// cycle have settled, so at most one batch is ever in flight.
type Poller struct {
	fetcher  FeedFetcher
	state    *state.State
	merger   aggregation.Merger
	interval time.Duration
	log      *log.Logger

	// after is swapped out by tests to step cycles deterministically.
	after func(time.Duration) <-chan time.Time

	stop    chan struct{}
	wg      sync.WaitGroup
	startMu sync.Mutex
	started bool
}

// NewPoller constructs a stopped Poller.
func NewPoller(fetcher FeedFetcher, st *state.State, ids aggregation.IDGenerator, interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Poller{
		fetcher:  fetcher,
		state:    st,
		merger:   aggregation.NewMerger(ids),
		interval: interval,
		log:      logger,
		after:    time.After,
		stop:     make(chan struct{}),
	}
}

// Start arms the polling loop. The first cycle runs one interval after
// Start, matching the cadence of every later rearm.
func (p *Poller) Start() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return
	}
	p.started = true

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for {
			select {
			case <-p.stop:
				return
			case <-p.after(p.interval):
			}
			p.RunCycle(context.Background())
		}
	}()
}

// Stop halts the loop and waits for an in-flight cycle to settle.
func (p *Poller) Stop() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if !p.started {
		return
	}
	close(p.stop)
	p.wg.Wait()
	p.started = false
	p.stop = make(chan struct{})
}

// RunCycle fetches every source once, concurrently, and merges the
// results. It returns only after all per-source operations have settled.
// A single source's failure is absorbed into the polling status and does
// not affect the other sources.
func (p *Poller) RunCycle(ctx context.Context) {
	sources := p.state.Sources()
	if len(sources) == 0 {
		return
	}

	p.state.SetPolling(state.PollingRunning, state.ErrorNone)

	errs := make(chan error, len(sources))
	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src aggregation.Source) {
			defer wg.Done()
			if err := p.pollSource(ctx, src); err != nil {
				p.log.Warn("poll failed", "url", src.URL, "err", err)
				p.state.SetPolling(state.PollingFailed, errorCode(err))
				errs <- err
			}
		}(src)
	}
	wg.Wait()
	close(errs)

	if len(errs) == 0 {
		p.state.SetPolling(state.PollingIdle, state.ErrorNone)
	}
}

// pollSource refreshes one feed. Reads and writes of that feed's posts
// are not interleaved with anyone else's: the submission flow stores a
// feed's posts before its source exists, and each cycle runs one
// goroutine per source.
func (p *Poller) pollSource(ctx context.Context, src aggregation.Source) error {
	parsed, err := p.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return err
	}

	if _, ok := p.state.FeedByID(src.FeedID); !ok {
		return fmt.Errorf("%w: no feed for source %q", ErrNotAFeed, src.URL)
	}

	existing := p.state.PostsByFeed(src.FeedID)
	added := p.merger.Merge(existing, parsed.Posts, src.FeedID)
	if len(added) > 0 {
		p.state.AppendPosts(added)
		p.log.Info("new posts", "url", src.URL, "count", len(added))
	}
	return nil
}
