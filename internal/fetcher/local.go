package fetcher

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/lexforge/wdict/internal/location"
	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/lexforge/wdict/pkg/failure"
	"github.com/lexforge/wdict/pkg/retry"
)

// LocalFetcher reads a file Location, or — if the Location is a
// directory — lists its immediate children as candidate out-links
// instead of returning content. Concurrency gate and rate limiter do not
// apply to local reads (§4.7); retryParam is accepted for interface
// parity with Fetcher but unused: local I/O failures are not transient
// the way a network hiccup is.
type LocalFetcher struct {
	sink telemetry.Sink
}

func NewLocalFetcher(sink telemetry.Sink) *LocalFetcher {
	return &LocalFetcher{sink: sink}
}

func (f *LocalFetcher) Fetch(
	ctx context.Context,
	crawlDepth int,
	loc location.Location,
	_ retry.RetryParam,
) (FetchResult, failure.ClassifiedError) {
	startTime := time.Now()

	info, err := os.Stat(loc.Path())
	if err != nil {
		fsErr := f.classifyStatError(loc.Path(), err)
		f.recordFetchEvent(loc, crawlDepth, startTime)
		f.recordError(loc, fsErr)
		return FetchResult{}, fsErr
	}

	var result FetchResult
	if info.IsDir() {
		result, err = f.readDir(loc)
	} else {
		result, err = f.readFile(loc)
	}
	if err != nil {
		fsErr := &FilesystemError{Message: err.Error(), Path: loc.Path(), Cause: ErrCausePathUnreadable}
		f.recordFetchEvent(loc, crawlDepth, startTime)
		f.recordError(loc, fsErr)
		return FetchResult{}, fsErr
	}

	f.recordFetchEvent(loc, crawlDepth, startTime)
	return result, nil
}

func (f *LocalFetcher) readFile(loc location.Location) (FetchResult, error) {
	body, err := os.ReadFile(loc.Path())
	if err != nil {
		return FetchResult{}, err
	}
	return NewLocalFileFetchResult(loc, body, time.Now()), nil
}

func (f *LocalFetcher) readDir(loc location.Location) (FetchResult, error) {
	entries, err := os.ReadDir(loc.Path())
	if err != nil {
		return FetchResult{}, err
	}
	children := make([]location.Location, 0, len(entries))
	for _, entry := range entries {
		child, err := location.NewLocal(loc.Path() + string(os.PathSeparator) + entry.Name())
		if err != nil {
			continue
		}
		children = append(children, child)
	}
	return NewLocalDirFetchResult(loc, children, time.Now()), nil
}

func (f *LocalFetcher) classifyStatError(path string, err error) *FilesystemError {
	if errors.Is(err, os.ErrNotExist) {
		return &FilesystemError{Message: err.Error(), Path: path, Cause: ErrCauseNotExist}
	}
	return &FilesystemError{Message: err.Error(), Path: path, Cause: ErrCausePathUnreadable}
}

func (f *LocalFetcher) recordFetchEvent(loc location.Location, crawlDepth int, startTime time.Time) {
	f.sink.RecordFetch(telemetry.FetchEvent{
		FetchURL:   loc.String(),
		Duration:   time.Since(startTime),
		CrawlDepth: crawlDepth,
	})
}

func (f *LocalFetcher) recordError(loc location.Location, err *FilesystemError) {
	f.sink.RecordError(time.Now(), "fetcher", "LocalFetcher.Fetch", mapFilesystemErrorToTelemetryCause(err), err.Error(),
		[]telemetry.Attribute{telemetry.NewAttr(telemetry.AttrPath, loc.Path())})
}
