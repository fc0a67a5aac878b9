package statestore

import (
	"fmt"

	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/lexforge/wdict/pkg/failure"
)

// StateMissing means the state_path given to Load does not exist.
// Resume-only, fatal pre-run: there is nothing to resume from.
type StateMissing struct {
	Path string
}

func (e *StateMissing) Error() string {
	return fmt.Sprintf("statestore: state file missing: %s", e.Path)
}

func (e *StateMissing) Severity() failure.Severity {
	return failure.SeverityFatal
}

// StateMalformed means the state file at Path could not be read or parsed,
// or was missing a required field (returned by Load, fatal pre-run). Save
// also returns it when the snapshot cannot be encoded or written.
type StateMalformed struct {
	Path   string
	Reason string
}

func (e *StateMalformed) Error() string {
	return fmt.Sprintf("statestore: state file malformed (%s): %s", e.Path, e.Reason)
}

func (e *StateMalformed) Severity() failure.Severity {
	return failure.SeverityFatal
}

// mapStateStoreErrorToTelemetryCause maps the two resume-time error
// shapes to the canonical telemetry.ErrorCause table. Observational only.
func mapStateStoreErrorToTelemetryCause(err error) telemetry.ErrorCause {
	switch err.(type) {
	case *StateMissing:
		return telemetry.CauseStorageFailure
	case *StateMalformed:
		return telemetry.CauseContentInvalid
	default:
		return telemetry.CauseUnknown
	}
}
