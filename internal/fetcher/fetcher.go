package fetcher

import (
	"context"

	"github.com/lexforge/wdict/internal/location"
	"github.com/lexforge/wdict/pkg/failure"
	"github.com/lexforge/wdict/pkg/retry"
)

// Fetcher is the I/O boundary: it performs the suspension points of the
// crawl (socket read/write, local file read) and returns raw bytes plus
// metadata. It never parses content — that is internal/extractor's job.
type Fetcher interface {
	Fetch(ctx context.Context, crawlDepth int, loc location.Location, retryParam retry.RetryParam) (FetchResult, failure.ClassifiedError)
}
