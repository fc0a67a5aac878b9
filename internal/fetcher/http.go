package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lexforge/wdict/internal/location"
	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/lexforge/wdict/pkg/failure"
	"github.com/lexforge/wdict/pkg/retry"
)

/*
Responsibilities

- Perform HTTP GETs with the configured headers and user-agent
- Apply bounded automatic retry for transient failures
- Classify responses into NetworkError causes

HTTPFetcher never parses content; it only returns bytes and metadata —
the Content-Type header is passed straight through for the extractor to
classify, not filtered here.
*/
type HTTPFetcher struct {
	sink       telemetry.Sink
	httpClient *http.Client
	userAgent  string
	headers    map[string]string
}

func NewHTTPFetcher(sink telemetry.Sink, userAgent string, headers map[string]string) *HTTPFetcher {
	return &HTTPFetcher{
		sink:       sink,
		httpClient: &http.Client{},
		userAgent:  userAgent,
		headers:    headers,
	}
}

func (h *HTTPFetcher) Fetch(
	ctx context.Context,
	crawlDepth int,
	loc location.Location,
	retryParam retry.RetryParam,
) (FetchResult, failure.ClassifiedError) {
	startTime := time.Now()

	result := retry.Retry(retryParam, func() (FetchResult, failure.ClassifiedError) {
		return h.performFetch(ctx, loc)
	})

	duration := time.Since(startTime)

	var statusCode int
	var contentType string
	if result.IsSuccess() {
		statusCode = result.Value().StatusCode()
		contentType = result.Value().ContentType()
	}

	h.sink.RecordFetch(telemetry.FetchEvent{
		FetchURL:    loc.String(),
		HTTPStatus:  statusCode,
		Duration:    duration,
		ContentType: contentType,
		RetryCount:  result.Attempts(),
		CrawlDepth:  crawlDepth,
	})

	if result.IsFailure() {
		h.recordError(loc, result.Err())
		return FetchResult{}, result.Err()
	}

	return result.Value(), nil
}

func (h *HTTPFetcher) recordError(loc location.Location, err failure.ClassifiedError) {
	var netErr *NetworkError
	cause := telemetry.CauseUnknown
	if errors.As(err, &netErr) {
		cause = mapNetworkErrorToTelemetryCause(netErr)
	}
	h.sink.RecordError(time.Now(), "fetcher", "HTTPFetcher.Fetch", cause, err.Error(),
		[]telemetry.Attribute{telemetry.NewAttr(telemetry.AttrURL, loc.String())})
}

func (h *HTTPFetcher) performFetch(ctx context.Context, loc location.Location) (FetchResult, failure.ClassifiedError) {
	fetchURL := loc.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL.String(), nil)
	if err != nil {
		return FetchResult{}, &NetworkError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	for key, value := range h.requestHeaders() {
		req.Header.Set(key, value)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return FetchResult{}, &NetworkError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return FetchResult{}, &NetworkError{
			Message:   fmt.Sprintf("server error: %d", resp.StatusCode),
			Retryable: true,
			Cause:     ErrCauseRequest5xx,
		}
	case resp.StatusCode == 429:
		return FetchResult{}, &NetworkError{
			Message:   "rate limited (429)",
			Retryable: true,
			Cause:     ErrCauseRequestTooMany,
		}
	case resp.StatusCode == 403:
		return FetchResult{}, &NetworkError{
			Message:   "access forbidden (403)",
			Retryable: false,
			Cause:     ErrCauseRequestForbidden,
		}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return FetchResult{}, &NetworkError{
			Message:   fmt.Sprintf("client error: %d", resp.StatusCode),
			Retryable: false,
			Cause:     ErrCauseRequestClientError,
		}
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return FetchResult{}, &NetworkError{
			Message:   fmt.Sprintf("redirect error: %d", resp.StatusCode),
			Retryable: false,
			Cause:     ErrCauseRedirectLimitExceeded,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{}, &NetworkError{
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Cause:     ErrCauseReadResponseBodyError,
		}
	}

	return NewRemoteFetchResult(loc, body, resp.Header.Get("Content-Type"), resp.StatusCode, time.Now()), nil
}

// defaultUserAgent is sent when neither --user-agent nor a User-Agent
// header was configured.
const defaultUserAgent = "wdict/1.0"

// requestHeaders layers the configured headers over a browser-like
// default set. h.userAgent is only the --user-agent override (empty when
// it was never given, per config.Config.UserAgent's contract): when set,
// it's applied last so it always wins over a same-named --header entry,
// per §6. When unset, a User-Agent supplied via --header stands as-is;
// if neither was given, defaultUserAgent is used so a request is never
// sent bare.
func (h *HTTPFetcher) requestHeaders() map[string]string {
	out := map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Connection":      "keep-alive",
	}
	for key, value := range h.headers {
		out[key] = value
	}
	// No Accept-Encoding entry: net/http only auto-adds "gzip" and
	// transparently decompresses the response when the caller leaves this
	// header unset. Setting it ourselves (even just to "gzip") would turn
	// that off and hand the extractor raw compressed bytes instead. A
	// caller can still force one via --header if it genuinely wants to
	// handle encoding itself.
	switch {
	case h.userAgent != "":
		out["User-Agent"] = h.userAgent
	case out["User-Agent"] == "":
		out["User-Agent"] = defaultUserAgent
	}
	return out
}
