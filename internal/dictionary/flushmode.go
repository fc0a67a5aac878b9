package dictionary

import "strings"

// FlushMode is a closed tagged variant selecting how Flush persists the
// accumulated word set, matched directly rather than modeled as a
// heterogeneous interface (see internal/filterpipe.FilterKind for the same
// convention).
type FlushMode int

const (
	Overwrite FlushMode = iota
	NoWrite
	Append
)

func ParseFlushMode(s string) (FlushMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overwrite":
		return Overwrite, true
	case "no_write", "no-write":
		return NoWrite, true
	case "append":
		return Append, true
	default:
		return 0, false
	}
}

func (m FlushMode) String() string {
	switch m {
	case NoWrite:
		return "no_write"
	case Append:
		return "append"
	default:
		return "overwrite"
	}
}
