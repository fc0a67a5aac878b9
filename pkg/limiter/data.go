// Package limiter provides the two independent admission gates the crawler
// composes at fetch start: a requests-per-second token bucket and a
// max-in-flight concurrency semaphore (spec §4.7). Neither gate ever
// returns an error for an over-budget caller; they only delay the caller
// or respect context cancellation.
package limiter
