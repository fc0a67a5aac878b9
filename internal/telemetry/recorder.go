package telemetry

/*
Metadata Collected
- Fetch timestamps
- HTTP status codes
- Crawl depth
- Terminal run stats

Logging Goals
- Debuggable crawl behavior
- Post-run auditability
- Failure diagnostics

Allowed
- Primitive values, timestamps, URLs and paths as values (not objects with
  behavior), status codes, durations, identifiers.
*/

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Recorder is the default Sink: a line-oriented structured writer. Each
// record is a single space-separated key=value line, in the logfmt
// tradition the rest of the pack's logging dependencies follow.
type Recorder struct {
	mu  sync.Mutex
	out io.Writer
}

func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

func (r *Recorder) RecordFetch(event FetchEvent) {
	r.writeLine(fmt.Sprintf(
		"event=fetch url=%q status=%d duration=%s content_type=%q retries=%d depth=%d",
		event.FetchURL, event.HTTPStatus, event.Duration, event.ContentType, event.RetryCount, event.CrawlDepth,
	))
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	line := fmt.Sprintf(
		"event=error time=%s package=%q action=%q cause=%d error=%q",
		observedAt.Format(time.RFC3339), packageName, action, cause, errorString,
	)
	for _, a := range attrs {
		line += fmt.Sprintf(" %s=%q", a.Key, a.Value)
	}
	r.writeLine(line)
}

func (r *Recorder) RecordStats(stats CrawlStats) {
	r.writeLine(fmt.Sprintf(
		"event=stats locations=%d words=%d errors=%d duration_ms=%d",
		stats.TotalLocations, stats.TotalWords, stats.TotalErrors, stats.DurationMs,
	))
}

func (r *Recorder) writeLine(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, line)
}
