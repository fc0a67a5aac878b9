package cli

import (
	"time"

	"github.com/lexforge/wdict/internal/telemetry"
)

// verbositySink gates the console Recorder by net verbosity (-v/-q, range
// [-2, +2]): stats are always shown, errors are shown at verbosity >= -1,
// and per-fetch events only at verbosity >= 1. telemetry.Sink itself never
// branches on severity or cause; this filtering lives entirely in the CLI,
// the one place allowed to turn observability into less or more console
// noise.
type verbositySink struct {
	next      telemetry.Sink
	verbosity int
}

func newVerbositySink(next telemetry.Sink, verbosity int) *verbositySink {
	return &verbositySink{next: next, verbosity: verbosity}
}

func (s *verbositySink) RecordFetch(event telemetry.FetchEvent) {
	if s.verbosity >= 1 {
		s.next.RecordFetch(event)
	}
}

func (s *verbositySink) RecordError(observedAt time.Time, packageName, action string, cause telemetry.ErrorCause, errorString string, attrs []telemetry.Attribute) {
	if s.verbosity >= -1 {
		s.next.RecordError(observedAt, packageName, action, cause, errorString, attrs)
	}
}

func (s *verbositySink) RecordStats(stats telemetry.CrawlStats) {
	s.next.RecordStats(stats)
}
