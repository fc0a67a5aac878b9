package crawler

import (
	"github.com/lexforge/wdict/internal/location"
	"github.com/lexforge/wdict/internal/policy"
)

// Seed admits loc at depth 0, unless it is already visited or SitePolicy
// rejects it against the Crawler's origin. Apart from Resume restoring a
// saved frontier, this and the out-link path in fetch.go are the only
// entry points that reach the frontier; both funnel through admit so there
// is exactly one admission rule.
func (c *Crawler) Seed(loc location.Location) {
	c.admit(loc, 0)
}

// admitOutLinks is the single choke point discovered out-links pass
// through before reaching the frontier: a candidate is enqueued at depth
// only if it is not already visited and SitePolicy allows it relative to
// the Crawler's origin. The only other caller of Frontier.Enqueue is
// Resume, which re-enqueues a saved snapshot's frontier as-is.
func (c *Crawler) admitOutLinks(depth int, candidates []location.Location) {
	if depth > c.cfg.Depth() {
		return
	}
	for _, candidate := range candidates {
		c.admit(candidate, depth)
	}
}

func (c *Crawler) admit(candidate location.Location, depth int) {
	if c.visited.Contains(candidate) {
		return
	}
	if !policy.Allows(c.origin, candidate, c.cfg.SitePolicy()) {
		return
	}
	c.frontier.Enqueue(candidate, depth)
}
