// Package crawler is the driver that owns Frontier, Visited and Dictionary
// for the lifetime of one run and is the sole authority over which
// Locations are admitted to the frontier.
package crawler

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/lexforge/wdict/internal/config"
	"github.com/lexforge/wdict/internal/dictionary"
	"github.com/lexforge/wdict/internal/extractor"
	"github.com/lexforge/wdict/internal/fetcher"
	"github.com/lexforge/wdict/internal/filterpipe"
	"github.com/lexforge/wdict/internal/frontier"
	"github.com/lexforge/wdict/internal/location"
	"github.com/lexforge/wdict/internal/statestore"
	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/lexforge/wdict/pkg/container"
	"github.com/lexforge/wdict/pkg/limiter"
	"github.com/lexforge/wdict/pkg/retry"
	"github.com/lexforge/wdict/pkg/timeutil"
)

// retrySeed seeds the jitter PRNG used by pkg/retry. Jitter is always 0 in
// this module (retry timing is driven entirely by the configured backoff
// curve), so the draw from this seed is never actually consumed.
const retrySeed int64 = 1

/*
Crawler is the sole admission authority of the crawl (§4.4 EXPANSION,
mirrored from the teacher's Scheduler.SubmitUrlForAdmission doctrine):

  - Only the Crawler imports the frontier package and constructs admission
    candidates.
  - SitePolicy and Visited checks are both evaluated at that single choke
    point (admission.go).
  - No other component may enqueue, reject, or reorder Locations.

Frontier, Visited and Dictionary are mutated only by the goroutine calling
Run: fetches happen concurrently, bounded by the rate limiter and
concurrency gate, but results are drained and applied one at a time back
on the caller's goroutine (§5 EXPANSION).
*/
type Crawler struct {
	cfg    config.Config
	origin location.Location

	frontier *frontier.Frontier
	visited  container.Set[location.Location]
	dict     *dictionary.Dictionary

	remoteFetcher fetcher.Fetcher
	localFetcher  fetcher.Fetcher
	extractor     extractor.Extractor
	pipeline      filterpipe.Pipeline

	rate limiter.RateLimiter
	gate *limiter.ConcurrencyGate

	sink telemetry.Sink

	totalErrors    int
	totalLocations int
}

// New builds a Crawler for a fresh run (StartRemote or StartLocal) and
// seeds the frontier with cfg's start location at depth 0. For
// StartResume, use Resume instead.
func New(cfg config.Config, sink telemetry.Sink) (*Crawler, error) {
	if sink == nil {
		sink = telemetry.NoopSink{}
	}

	origin, err := resolveOrigin(cfg)
	if err != nil {
		return nil, err
	}

	c := newCrawler(cfg, origin, sink)
	c.Seed(origin)
	return c, nil
}

// Resume rebuilds a Crawler from a previously saved StateSnapshot. If
// strict, the snapshot's embedded Config must field-by-field match cfg or
// Resume fails with *ResumeConfigMismatchError; otherwise cfg replaces the
// snapshot's Config and the retained Visited/Frontier continue under it.
func Resume(snap statestore.StateSnapshot, cfg config.Config, strict bool, statePath string, sink telemetry.Sink) (*Crawler, error) {
	if sink == nil {
		sink = telemetry.NoopSink{}
	}

	if strict && !snap.Config.Equal(cfg) {
		return nil, &ResumeConfigMismatchError{Path: statePath}
	}

	origin, err := resolveOrigin(cfg)
	if err != nil {
		return nil, err
	}

	c := newCrawler(cfg, origin, sink)
	c.visited = snap.Visited
	for depth, locs := range snap.Frontier {
		for _, loc := range locs {
			c.frontier.Enqueue(loc, depth)
		}
	}
	for _, loc := range snap.Visited.ToSlice() {
		// Re-seed the frontier's own discovery dedup with every
		// already-visited Location so a resumed run never re-enqueues a
		// Location that was already fetched in a prior run.
		c.frontier.MarkSeen(loc)
	}
	return c, nil
}

func newCrawler(cfg config.Config, origin location.Location, sink telemetry.Sink) *Crawler {
	return &Crawler{
		cfg:           cfg,
		origin:        origin,
		frontier:      frontier.NewFrontier(),
		visited:       container.NewSet[location.Location](),
		dict:          dictionary.NewDictionary(sink),
		remoteFetcher: fetcher.NewHTTPFetcher(sink, cfg.UserAgent(), cfg.Headers()),
		localFetcher:  fetcher.NewLocalFetcher(sink),
		extractor:     extractor.NewExtractor(sink, extractor.Options{IncludeJS: cfg.IncludeJS(), IncludeCSS: cfg.IncludeCSS()}),
		pipeline:      filterpipe.NewPipeline(cfg.Filters()),
		rate:          limiter.NewTokenBucket(cfg.ReqPerSec()),
		gate:          limiter.NewConcurrencyGate(cfg.LimitConcurrent()),
		sink:          sink,
	}
}

func resolveOrigin(cfg config.Config) (location.Location, error) {
	switch cfg.StartKind() {
	case config.StartLocal:
		loc, err := location.NewLocal(cfg.StartPath())
		if err != nil {
			return location.Location{}, &config.UsageError{Cause: config.ErrCauseNoStart, Message: err.Error()}
		}
		return loc, nil
	default:
		u, err := url.Parse(cfg.StartURL())
		if err != nil {
			return location.Location{}, &config.UsageError{Cause: config.ErrCauseNoStart, Message: fmt.Sprintf("invalid --url: %v", err)}
		}
		return location.NewRemote(*u), nil
	}
}

func (c *Crawler) fetcherFor(loc location.Location) fetcher.Fetcher {
	if loc.Kind() == location.KindLocal {
		return c.localFetcher
	}
	return c.remoteFetcher
}

func (c *Crawler) retryParam() retry.RetryParam {
	return retry.NewRetryParam(
		c.cfg.BackoffInitial(),
		0,
		retrySeed,
		c.cfg.MaxAttempts(),
		timeutil.NewBackoffParam(c.cfg.BackoffInitial(), c.cfg.BackoffMultiplier(), c.cfg.BackoffMax()),
	)
}

// Run drives the frontier depth by depth until it is empty or ctx is
// cancelled. Depth d+1 is never drained until every Location queued at d
// has completed (§5): each iteration drains exactly the lowest pending
// depth.
func (c *Crawler) Run(ctx context.Context) telemetry.CrawlStats {
	startTime := time.Now()

	for {
		if ctx.Err() != nil {
			break
		}
		depths := c.frontier.PendingDepths()
		if len(depths) == 0 {
			break
		}
		depth := depths[0]
		locs := c.frontier.Drain(depth)
		c.totalLocations += len(locs)
		c.drainDepth(ctx, depth, locs)
	}

	stats := telemetry.CrawlStats{
		TotalLocations: c.totalLocations,
		TotalWords:     c.dict.Size(),
		TotalErrors:    c.totalErrors,
		DurationMs:     time.Since(startTime).Milliseconds(),
	}
	c.sink.RecordStats(stats)
	return stats
}

// Words returns the accumulated, filtered word set in sorted order.
func (c *Crawler) Words() []string {
	return c.dict.Words()
}

// Flush persists the accumulated Dictionary per cfg's output settings.
func (c *Crawler) Flush() (dictionary.FlushResult, error) {
	mode := dictionary.Overwrite
	if c.cfg.NoWrite() {
		mode = dictionary.NoWrite
	} else if c.cfg.AppendMode() {
		mode = dictionary.Append
	}
	result, err := c.dict.Flush(c.cfg.OutputPath(), mode)
	if err != nil {
		return dictionary.FlushResult{}, err
	}
	return result, nil
}

// Snapshot produces a StateSnapshot reflecting the current Visited set and
// remaining Frontier, suitable for statestore.Save.
func (c *Crawler) Snapshot() statestore.StateSnapshot {
	return statestore.StateSnapshot{
		Config:            c.cfg,
		Visited:           c.visited,
		Frontier:          c.frontier.All(),
		AcceptedWordCount: c.dict.Size(),
	}
}
