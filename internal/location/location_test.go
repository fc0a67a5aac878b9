package location_test

import (
	"net/url"
	"testing"

	"github.com/lexforge/wdict/internal/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return *u
}

func TestNewRemoteCanonicalizes(t *testing.T) {
	loc := location.NewRemote(mustParse(t, "HTTPS://Example.com/Guide/"))
	assert.Equal(t, location.KindRemote, loc.Kind())
	assert.Equal(t, "https://example.com/Guide", loc.String())
}

func TestNewLocalResolvesAbsolute(t *testing.T) {
	loc, err := location.NewLocal("./testdata")
	require.NoError(t, err)
	assert.Equal(t, location.KindLocal, loc.Kind())
	assert.True(t, len(loc.Path()) > 0)
	assert.Equal(t, byte('/'), loc.Path()[0])
}

func TestLocationEqualByNormalizedForm(t *testing.T) {
	a := location.NewRemote(mustParse(t, "https://example.com/guide"))
	b := location.NewRemote(mustParse(t, "HTTPS://EXAMPLE.COM/guide/"))
	assert.True(t, a.Equal(b))
}

func TestLocationHostOnlyForRemote(t *testing.T) {
	remote := location.NewRemote(mustParse(t, "https://docs.example.com/x"))
	assert.Equal(t, "docs.example.com", remote.Host())

	local, err := location.NewLocal(".")
	require.NoError(t, err)
	assert.Equal(t, "", local.Host())
}
