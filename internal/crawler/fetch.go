package crawler

import (
	"context"
	"net/url"
	"sync"
	"unicode/utf8"

	"github.com/lexforge/wdict/internal/extractor"
	"github.com/lexforge/wdict/internal/fetcher"
	"github.com/lexforge/wdict/internal/location"
	"github.com/lexforge/wdict/pkg/failure"
)

// fetchOutcome is what a fetch goroutine hands back to the draining
// goroutine. skipped marks a fetch that never started because ctx was
// already cancelled when its turn came — distinct from err, which is a
// per-location failure the fetcher itself reported.
type fetchOutcome struct {
	loc     location.Location
	depth   int
	result  fetcher.FetchResult
	err     failure.ClassifiedError
	skipped bool
}

// drainDepth fetches every Location in locs concurrently, bounded by the
// rate limiter and concurrency gate, then applies every result serially on
// the calling goroutine: Frontier, Visited and Dictionary are never
// touched from a fetch goroutine (§5 EXPANSION).
//
// Visited is marked at fetch start, before any goroutine is even spawned —
// not after the fetch completes — so a failed fetch never makes its
// Location eligible for re-admission within this run (§4.4).
func (c *Crawler) drainDepth(ctx context.Context, depth int, locs []location.Location) {
	for _, loc := range locs {
		c.visited.Add(loc)
	}

	results := make(chan fetchOutcome, len(locs))
	var wg sync.WaitGroup

	for _, loc := range locs {
		if ctx.Err() != nil {
			results <- fetchOutcome{loc: loc, depth: depth, skipped: true}
			continue
		}
		wg.Add(1)
		go func(loc location.Location) {
			defer wg.Done()
			results <- c.fetchOne(ctx, depth, loc)
		}(loc)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for outcome := range results {
		c.handleOutcome(outcome)
	}
}

// fetchOne acquires the admission gates (remote Locations only, per §4.7)
// then fetches. The fetch itself runs against context.Background(), not
// ctx: per §5, an in-flight fetch is always allowed to complete even after
// the run is cancelled, to preserve the visited-set invariant.
func (c *Crawler) fetchOne(ctx context.Context, depth int, loc location.Location) fetchOutcome {
	if loc.Kind() == location.KindRemote {
		release, err := c.gate.Acquire(ctx)
		if err != nil {
			return fetchOutcome{loc: loc, depth: depth, skipped: true}
		}
		defer release()

		if err := c.rate.Acquire(ctx); err != nil {
			return fetchOutcome{loc: loc, depth: depth, skipped: true}
		}
	}

	result, fetchErr := c.fetcherFor(loc).Fetch(context.Background(), depth, loc, c.retryParam())
	return fetchOutcome{loc: loc, depth: depth, result: result, err: fetchErr}
}

// handleOutcome applies one fetch result: per-location errors are counted
// and the crawl continues (§7); a successful directory listing admits its
// children as depth+1 out-links directly, bypassing extraction entirely.
func (c *Crawler) handleOutcome(outcome fetchOutcome) {
	if outcome.skipped {
		return
	}
	if outcome.err != nil {
		c.totalErrors++
		return
	}
	if outcome.result.IsDirListing() {
		c.admitOutLinks(outcome.depth+1, outcome.result.DirEntries())
		return
	}
	c.extractAndAdmit(outcome.depth, outcome.loc, outcome.result)
}

func (c *Crawler) extractAndAdmit(depth int, loc location.Location, result fetcher.FetchResult) {
	kind := extractor.DetectMediaKind(result.ContentType(), loc.Path())

	extraction, err := c.extractor.Extract(sourceURLFor(loc), kind, result.Body())
	if err != nil {
		c.totalErrors++
		return
	}

	for _, word := range extraction.Words {
		c.admitWord(word)
	}

	outLinks := make([]location.Location, 0, len(extraction.OutLinks))
	for _, raw := range extraction.OutLinks {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		outLinks = append(outLinks, location.NewRemote(*u))
	}
	c.admitOutLinks(depth+1, outLinks)
}

// sourceURLFor anchors relative out-link resolution. Remote Locations
// already carry a usable url.URL; a local Location is given a synthetic
// file:// form purely so the extractor's resolveLink has a base to work
// against (local out-links are never actually produced this way — they
// come from LocalFetcher's directory listing — but HTML under a local
// path can still contain relative href/src attributes worth resolving for
// word-extraction purposes).
func sourceURLFor(loc location.Location) url.URL {
	if loc.Kind() == location.KindRemote {
		return loc.URL()
	}
	return url.URL{Scheme: "file", Path: loc.Path()}
}

func (c *Crawler) admitWord(raw string) {
	word, ok := c.pipeline.Apply(raw)
	if !ok {
		return
	}
	length := utf8.RuneCountInString(word)
	if length < c.cfg.MinWordLen() || length > c.cfg.MaxWordLen() {
		return
	}
	c.dict.Insert(word)
}
