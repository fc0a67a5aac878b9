package policy_test

import (
	"net/url"
	"testing"

	"github.com/lexforge/wdict/internal/location"
	"github.com/lexforge/wdict/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remote(t *testing.T, raw string) location.Location {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return location.NewRemote(*u)
}

func TestSamePolicy(t *testing.T) {
	origin := remote(t, "https://docs.example.com/start")
	same := remote(t, "https://docs.example.com/other")
	sub := remote(t, "https://api.docs.example.com/other")

	assert.True(t, policy.Allows(origin, same, policy.Same))
	assert.False(t, policy.Allows(origin, sub, policy.Same))
}

func TestSubdomainPolicy(t *testing.T) {
	origin := remote(t, "https://docs.example.com/start")
	sub := remote(t, "https://api.docs.example.com/other")
	other := remote(t, "https://example.com/other")

	assert.True(t, policy.Allows(origin, sub, policy.Subdomain))
	assert.False(t, policy.Allows(origin, other, policy.Subdomain))
}

func TestSiblingPolicy(t *testing.T) {
	origin := remote(t, "https://docs.example.com/start")
	sibling := remote(t, "https://blog.example.com/post")
	unrelated := remote(t, "https://other.org/post")

	assert.True(t, policy.Allows(origin, sibling, policy.Sibling))
	assert.False(t, policy.Allows(origin, unrelated, policy.Sibling))
}

func TestAllPolicy(t *testing.T) {
	origin := remote(t, "https://docs.example.com/start")
	anywhere := remote(t, "https://totally-unrelated.org/x")
	assert.True(t, policy.Allows(origin, anywhere, policy.All))
}

func TestLocalIgnoresPolicyVariant(t *testing.T) {
	origin, err := location.NewLocal("/tmp/docs")
	require.NoError(t, err)
	inside, err := location.NewLocal("/tmp/docs/sub/page.txt")
	require.NoError(t, err)
	outside, err := location.NewLocal("/tmp/other")
	require.NoError(t, err)

	assert.True(t, policy.Allows(origin, inside, policy.All))
	assert.False(t, policy.Allows(origin, outside, policy.Same))
}

func TestLocalRejectsSiblingWithSharedPathPrefix(t *testing.T) {
	origin, err := location.NewLocal("/tmp/docs")
	require.NoError(t, err)
	sibling, err := location.NewLocal("/tmp/docs-archive/page.txt")
	require.NoError(t, err)

	assert.False(t, policy.Allows(origin, sibling, policy.All))
}

func TestLocalAllowsExactOriginMatch(t *testing.T) {
	origin, err := location.NewLocal("/tmp/docs")
	require.NoError(t, err)

	assert.True(t, policy.Allows(origin, origin, policy.All))
}

func TestParseSitePolicy(t *testing.T) {
	p, ok := policy.ParseSitePolicy("Subdomain")
	assert.True(t, ok)
	assert.Equal(t, policy.Subdomain, p)

	_, ok = policy.ParseSitePolicy("bogus")
	assert.False(t, ok)
}
