package telemetry

import "time"

// Sink is the observability boundary every pipeline component writes
// through. No component may branch on a Sink call's return value (there
// isn't one) or on the ErrorCause it passes in: recording is a side
// effect, never a decision.
type Sink interface {
	RecordFetch(event FetchEvent)
	RecordError(observedAt time.Time, packageName string, action string, cause ErrorCause, errorString string, attrs []Attribute)
	RecordStats(stats CrawlStats)
}

// NoopSink discards everything. Useful as the zero-value Sink for tests
// and for callers that opt out of observability entirely.
type NoopSink struct{}

func (NoopSink) RecordFetch(FetchEvent)                                                  {}
func (NoopSink) RecordError(time.Time, string, string, ErrorCause, string, []Attribute)   {}
func (NoopSink) RecordStats(CrawlStats)                                                  {}
