package dictionary

import (
	"fmt"

	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/lexforge/wdict/pkg/failure"
)

type DictionaryErrorCause string

const (
	ErrCauseReadFailure           DictionaryErrorCause = "failed to read existing dictionary"
	ErrCauseWriteFailure          DictionaryErrorCause = "failed to write dictionary"
	ErrCausePathError             DictionaryErrorCause = "path error"
	ErrCauseHashComputationFailed DictionaryErrorCause = "hash computation failed"
)

type DictionaryError struct {
	Message   string
	Retryable bool
	Cause     DictionaryErrorCause
	Path      string
}

func (e *DictionaryError) Error() string {
	return fmt.Sprintf("dictionary error: %s", e.Cause)
}

func (e *DictionaryError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *DictionaryError) IsRetryable() bool {
	return e.Retryable
}

// mapDictionaryErrorToMetadataCause maps dictionary-local error semantics
// to the canonical telemetry.ErrorCause table. Observational only.
func mapDictionaryErrorToMetadataCause(err *DictionaryError) telemetry.ErrorCause {
	switch err.Cause {
	case ErrCauseReadFailure, ErrCauseWriteFailure, ErrCausePathError:
		return telemetry.CauseStorageFailure
	case ErrCauseHashComputationFailed:
		return telemetry.CauseInvariantViolation
	default:
		return telemetry.CauseUnknown
	}
}
