package telemetry

import "time"

// FetchEvent is a single recorded fetch attempt, terminal or not.
type FetchEvent struct {
	FetchURL    string
	HTTPStatus  int
	Duration    time.Duration
	ContentType string
	RetryCount  int
	CrawlDepth  int
}

// CrawlStats is a terminal, derived summary of a completed run. It is
// computed by the crawler driver after termination, contains only
// aggregate counts and durations, and is recorded exactly once. It must
// not influence scheduling, retries, or crawl termination, and must be
// constructed without reading back recorded events.
type CrawlStats struct {
	TotalLocations int
	TotalWords     int
	TotalErrors    int
	DurationMs     int64
}

/*
ErrorCause is a closed, canonical classification used exclusively for
observability (logging, metrics, reporting).

Rules:
  - ErrorCause is for observability only.
  - It must never be used to derive retry, continuation, or abort decisions.
  - Any use of telemetry.ErrorCause outside logging, metrics, or reporting
    is a design violation.
  - ErrorCause values MUST have stable, package-agnostic semantics.
  - Pipeline packages MAY map their local errors to ErrorCause, but MUST
    NOT invent new meanings.

Non-goals:
  - ErrorCause does not encode severity.
  - ErrorCause does not imply retryability.
  - ErrorCause does not imply crawl termination.

If a failure does not clearly match a defined cause, CauseUnknown MUST be
used.
*/
type ErrorCause int

const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CausePolicyDisallow
	CauseContentInvalid
	CauseStorageFailure
	CauseInvariantViolation
)

type ErrorRecord struct {
	PackageName string
	Action      string
	Cause       ErrorCause
	ErrorString string
	ObservedAt  time.Time
	Attrs       []Attribute
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{Key: key, Value: val}
}

type AttributeKey string

const (
	AttrTime       AttributeKey = "time"
	AttrURL        AttributeKey = "url"
	AttrHost       AttributeKey = "host"
	AttrPath       AttributeKey = "path"
	AttrDepth      AttributeKey = "depth"
	AttrField      AttributeKey = "field"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrWritePath  AttributeKey = "write_path"
)
