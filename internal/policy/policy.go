// Package policy decides whether a Location discovered during a crawl is
// eligible to be fetched, given the Location the crawl started from.
package policy

import (
	"os"
	"strings"

	"github.com/lexforge/wdict/internal/location"
	"golang.org/x/net/publicsuffix"
)

// SitePolicy is a closed tagged variant (see internal/filterpipe for the
// same idiom applied to filters): each member has a fixed eligibility rule,
// switched on directly rather than modeled as an interface hierarchy.
type SitePolicy int

const (
	Same SitePolicy = iota
	Subdomain
	Sibling
	All
)

func ParseSitePolicy(s string) (SitePolicy, bool) {
	switch strings.ToLower(s) {
	case "same":
		return Same, true
	case "subdomain":
		return Subdomain, true
	case "sibling":
		return Sibling, true
	case "all":
		return All, true
	default:
		return 0, false
	}
}

func (p SitePolicy) String() string {
	switch p {
	case Same:
		return "same"
	case Subdomain:
		return "subdomain"
	case Sibling:
		return "sibling"
	case All:
		return "all"
	default:
		return "unknown"
	}
}

// Allows reports whether candidate is eligible given the origin the crawl
// started from and the configured policy.
//
// For a local origin, policy is ignored: a candidate is only eligible if it
// resolves to a path under origin's directory (enforced structurally by the
// frontier/fetcher, which only ever discover paths via directory listing —
// Allows still gives an explicit, checkable answer for local pairs).
func Allows(origin, candidate location.Location, p SitePolicy) bool {
	if origin.Kind() == location.KindLocal || candidate.Kind() == location.KindLocal {
		if origin.Kind() != candidate.Kind() {
			return false
		}
		// A plain HasPrefix would also admit a sibling directory sharing
		// a name prefix (e.g. origin "/root/a" matching candidate
		// "/root/ab"); require either an exact match or a prefix ending
		// right at a path separator.
		originPath := origin.Path()
		candidatePath := candidate.Path()
		return candidatePath == originPath || strings.HasPrefix(candidatePath, originPath+string(os.PathSeparator))
	}

	switch p {
	case All:
		return true
	case Same:
		return origin.Host() == candidate.Host()
	case Subdomain:
		if origin.Host() == candidate.Host() {
			return true
		}
		registrable, err := publicsuffix.EffectiveTLDPlusOne(origin.Host())
		if err != nil {
			registrable = origin.Host()
		}
		return strings.HasSuffix(candidate.Host(), "."+registrable)
	case Sibling:
		originRoot, err1 := publicsuffix.EffectiveTLDPlusOne(origin.Host())
		candidateRoot, err2 := publicsuffix.EffectiveTLDPlusOne(candidate.Host())
		if err1 != nil || err2 != nil {
			return origin.Host() == candidate.Host()
		}
		return originRoot == candidateRoot
	default:
		return false
	}
}
