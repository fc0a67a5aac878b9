package config

import (
	"errors"

	"github.com/lexforge/wdict/pkg/failure"
)

var (
	ErrFileDoesNotExist  = errors.New("config file does not exist")
	ErrReadConfigFail    = errors.New("failed to read config file")
	ErrConfigParsingFail = errors.New("failed to parse config file")
	ErrInvalidConfig     = errors.New("invalid config")
)

// UsageErrorCause enumerates the ways a Configuration can fail validation.
// These are setup-time, pre-run failures (exit code 2 per §6), never a
// per-location crawl error.
type UsageErrorCause string

const (
	ErrCauseNoStart            UsageErrorCause = "no start location given"
	ErrCauseMultipleStarts     UsageErrorCause = "more than one of --url/--theme/--path/--resume given"
	ErrCauseInvalidWordBounds  UsageErrorCause = "min_word_len > max_word_len"
	ErrCauseInvalidRate        UsageErrorCause = "req_per_sec or limit_concurrent must be positive"
	ErrCauseInvalidFilter      UsageErrorCause = "unrecognized filter name"
	ErrCauseInvalidSitePolicy  UsageErrorCause = "unrecognized site policy"
	ErrCauseInvalidHeader      UsageErrorCause = "header missing '=' separator"
	ErrCauseInvalidOutputFlags UsageErrorCause = "--append and --no-write are mutually exclusive"
)

type UsageError struct {
	Message string
	Cause   UsageErrorCause
}

func (e *UsageError) Error() string {
	return "usage error: " + string(e.Cause) + ": " + e.Message
}

// Severity is always Fatal: a Configuration that fails validation never
// reaches the Crawler, so there is nothing to retry.
func (e *UsageError) Severity() failure.Severity {
	return failure.SeverityFatal
}
