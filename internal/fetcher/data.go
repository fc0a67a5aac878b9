package fetcher

import (
	"time"

	"github.com/lexforge/wdict/internal/location"
)

// FetchResult is the fetcher's sole output: raw bytes (or, for a local
// directory, a listing of immediate children instead of content) plus
// enough metadata for the extractor to classify content and for
// telemetry to record the fetch event. The fetcher never parses content.
type FetchResult struct {
	loc         location.Location
	body        []byte
	contentType string
	statusCode  int
	fetchedAt   time.Time
	dirEntries  []location.Location
}

// NewRemoteFetchResult builds a FetchResult for a successful HTTP GET.
func NewRemoteFetchResult(loc location.Location, body []byte, contentType string, statusCode int, fetchedAt time.Time) FetchResult {
	return FetchResult{loc: loc, body: body, contentType: contentType, statusCode: statusCode, fetchedAt: fetchedAt}
}

// NewLocalFileFetchResult builds a FetchResult for a local file read.
func NewLocalFileFetchResult(loc location.Location, body []byte, fetchedAt time.Time) FetchResult {
	return FetchResult{loc: loc, body: body, fetchedAt: fetchedAt}
}

// NewLocalDirFetchResult builds a FetchResult for a local directory: no
// content, just the immediate children as candidate out-links.
func NewLocalDirFetchResult(loc location.Location, entries []location.Location, fetchedAt time.Time) FetchResult {
	return FetchResult{loc: loc, dirEntries: entries, fetchedAt: fetchedAt}
}

func (r FetchResult) Location() location.Location { return r.loc }
func (r FetchResult) Body() []byte                 { return r.body }
func (r FetchResult) ContentType() string          { return r.contentType }
func (r FetchResult) StatusCode() int              { return r.statusCode }
func (r FetchResult) FetchedAt() time.Time         { return r.fetchedAt }

// IsDirListing reports whether this result is a local directory listing
// rather than fetched content.
func (r FetchResult) IsDirListing() bool { return r.dirEntries != nil }

func (r FetchResult) DirEntries() []location.Location {
	out := make([]location.Location, len(r.dirEntries))
	copy(out, r.dirEntries)
	return out
}
