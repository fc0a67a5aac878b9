package extractor

import (
	"fmt"

	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/lexforge/wdict/pkg/failure"
)

type ExtractionErrorCause string

const (
	ErrCauseNotParseable ExtractionErrorCause = "buffer could not be parsed"
	ErrCauseEmptyBuffer  ExtractionErrorCause = "empty buffer"
)

type ExtractionError struct {
	Message   string
	Retryable bool
	Cause     ExtractionErrorCause
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error: %s", e.Cause)
}

func (e *ExtractionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *ExtractionError) IsRetryable() bool {
	return e.Retryable
}

// mapExtractionErrorToMetadataCause maps extractor-local error semantics to
// the canonical telemetry.ErrorCause table. Observational only; must never
// be used to derive control-flow decisions.
func mapExtractionErrorToMetadataCause(err *ExtractionError) telemetry.ErrorCause {
	switch err.Cause {
	case ErrCauseNotParseable:
		return telemetry.CauseContentInvalid
	case ErrCauseEmptyBuffer:
		return telemetry.CauseContentInvalid
	default:
		return telemetry.CauseUnknown
	}
}
