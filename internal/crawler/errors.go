package crawler

import "github.com/lexforge/wdict/pkg/failure"

// ResumeConfigMismatchError is returned by Resume when strict mode is
// requested and the supplied Config does not field-by-field match the
// Config embedded in the snapshot being resumed.
type ResumeConfigMismatchError struct {
	Path string
}

func (e *ResumeConfigMismatchError) Error() string {
	return "resume config mismatch: " + e.Path
}

// Severity is always Fatal: a strict-resume mismatch is a setup-time
// failure, never a per-location crawl error.
func (e *ResumeConfigMismatchError) Severity() failure.Severity {
	return failure.SeverityFatal
}
