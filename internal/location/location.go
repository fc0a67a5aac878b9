// Package location implements the unified identifier the crawler tracks in
// its frontier and visited set: either a remote URL or a local filesystem
// path. It follows the tagged-variant idiom used throughout this module
// (see internal/filterpipe, internal/policy) rather than an interface
// hierarchy: a Location is a closed, two-member enum switched on by Kind.
package location

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/lexforge/wdict/pkg/urlutil"
)

type Kind int

const (
	KindRemote Kind = iota
	KindLocal
)

func (k Kind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Location is immutable once constructed: NewRemote/NewLocal normalize the
// input and callers only ever read it back through accessors.
type Location struct {
	kind Kind
	u    url.URL
	path string
}

// NewRemote builds a Location from a URL, canonicalizing it so that
// equivalent spellings collapse to one representation.
func NewRemote(u url.URL) Location {
	return Location{kind: KindRemote, u: urlutil.Canonicalize(u)}
}

// NewLocal builds a Location from a filesystem path, resolving it to an
// absolute, cleaned form so that equality is comparison-safe.
func NewLocal(path string) (Location, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Location{}, fmt.Errorf("resolve local path %q: %w", path, err)
	}
	return Location{kind: KindLocal, path: filepath.Clean(abs)}, nil
}

func (l Location) Kind() Kind {
	return l.kind
}

func (l Location) URL() url.URL {
	return l.u
}

func (l Location) Path() string {
	return l.path
}

// String returns the normalized string form used as the Visited-set key and
// as the serialized form in StateSnapshot.
func (l Location) String() string {
	switch l.kind {
	case KindRemote:
		return l.u.String()
	case KindLocal:
		return l.path
	default:
		return ""
	}
}

// Host returns the full host name (without port) of a remote Location, or
// "" for local.
func (l Location) Host() string {
	if l.kind != KindRemote {
		return ""
	}
	return l.u.Hostname()
}

// Equal compares two Locations by their normalized string form.
func (l Location) Equal(other Location) bool {
	return l.kind == other.kind && l.String() == other.String()
}
