package fetcher

import (
	"fmt"

	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/lexforge/wdict/pkg/failure"
)

// NetworkErrorCause enumerates the ways an HTTPFetcher GET can fail.
type NetworkErrorCause string

const (
	ErrCauseTimeout               NetworkErrorCause = "timeout"
	ErrCauseNetworkFailure        NetworkErrorCause = "network issues"
	ErrCauseReadResponseBodyError NetworkErrorCause = "failed to read response body"
	ErrCauseRedirectLimitExceeded NetworkErrorCause = "reached redirect limit"
	ErrCauseRequestForbidden      NetworkErrorCause = "forbidden"
	ErrCauseRequestTooMany        NetworkErrorCause = "too many requests"
	ErrCauseRequest5xx            NetworkErrorCause = "5xx"
	ErrCauseRequestClientError    NetworkErrorCause = "4xx"
)

// NetworkError is per-location and, per §7, never fatal on its own: the
// URL stays visited and the crawl continues. retry.Retry decides whether
// to try this same fetch again before it is counted as terminal.
type NetworkError struct {
	Message   string
	Retryable bool
	Cause     NetworkErrorCause
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetcher: network error: %s: %s", e.Cause, e.Message)
}

func (e *NetworkError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *NetworkError) IsRetryable() bool {
	return e.Retryable
}

// mapNetworkErrorToTelemetryCause maps fetcher-local error semantics to
// the canonical telemetry.ErrorCause table. Observational only.
func mapNetworkErrorToTelemetryCause(err *NetworkError) telemetry.ErrorCause {
	switch err.Cause {
	case ErrCauseTimeout, ErrCauseNetworkFailure, ErrCauseReadResponseBodyError:
		return telemetry.CauseNetworkFailure
	case ErrCauseRequestForbidden, ErrCauseRequestTooMany:
		return telemetry.CausePolicyDisallow
	default:
		return telemetry.CauseUnknown
	}
}

// FilesystemErrorCause enumerates the ways a LocalFetcher read can fail.
type FilesystemErrorCause string

const (
	ErrCauseNotExist       FilesystemErrorCause = "path does not exist"
	ErrCausePathUnreadable FilesystemErrorCause = "path unreadable"
)

// FilesystemError is per-path and, per §7, not fatal during the crawl.
type FilesystemError struct {
	Message string
	Path    string
	Cause   FilesystemErrorCause
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("fetcher: filesystem error: %s: %s (%s)", e.Cause, e.Path, e.Message)
}

func (e *FilesystemError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func mapFilesystemErrorToTelemetryCause(*FilesystemError) telemetry.ErrorCause {
	return telemetry.CauseStorageFailure
}
