package config_test

import (
	"encoding/json"
	"testing"

	"github.com/lexforge/wdict/internal/config"
	"github.com/lexforge/wdict/internal/filterpipe"
	"github.com/lexforge/wdict/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequiresAStart(t *testing.T) {
	_, err := config.Default().Build()
	require.Error(t, err)
	var usageErr *config.UsageError
	assert.ErrorAs(t, err, &usageErr)
}

func TestBuildWithURLSucceeds(t *testing.T) {
	cfg, err := config.Default().WithStartURL("https://example.com").Build()
	require.NoError(t, err)
	assert.Equal(t, config.StartRemote, cfg.StartKind())
	assert.Equal(t, "https://example.com", cfg.StartURL())
}

func TestMaxWordLenZeroMeansUnbounded(t *testing.T) {
	cfg, err := config.Default().WithStartURL("https://example.com").WithWordLenBounds(1, 0).Build()
	require.NoError(t, err)
	assert.Greater(t, cfg.MaxWordLen(), 1<<30)
}

func TestMinGreaterThanMaxFailsValidation(t *testing.T) {
	_, err := config.Default().WithStartURL("https://example.com").WithWordLenBounds(10, 5).Build()
	require.Error(t, err)
	var usageErr *config.UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Equal(t, config.ErrCauseInvalidWordBounds, usageErr.Cause)
}

func TestAppendAndNoWriteAreMutuallyExclusive(t *testing.T) {
	_, err := config.Default().WithStartURL("https://example.com").WithAppendMode(true).WithNoWrite(true).Build()
	require.Error(t, err)
}

func TestNonPositiveRateFailsValidation(t *testing.T) {
	_, err := config.Default().WithStartURL("https://example.com").WithReqPerSec(0).Build()
	require.Error(t, err)
}

func TestWithHeaderCanonicalizesAndLastWriteWins(t *testing.T) {
	cfg, err := config.Default().WithStartURL("https://example.com").
		WithHeader("Accept", "a").
		WithHeader("accept", "b").
		Build()
	require.NoError(t, err)
	headers := cfg.Headers()
	assert.Equal(t, map[string]string{"Accept": "b"}, headers)
}

func TestWithHeadersCanonicalizesMixedCaseKeys(t *testing.T) {
	cfg, err := config.Default().WithStartURL("https://example.com").
		WithHeaders(map[string]string{"X-Foo": "1", "x-foo": "2"}).
		Build()
	require.NoError(t, err)
	assert.Len(t, cfg.Headers(), 1)
}

func TestDefaultUserAgentIsUnset(t *testing.T) {
	cfg, err := config.Default().WithStartURL("https://example.com").Build()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.UserAgent())
}

func TestEqualDetectsMismatch(t *testing.T) {
	a, err := config.Default().WithStartURL("https://example.com").WithDepth(2).Build()
	require.NoError(t, err)
	b, err := config.Default().WithStartURL("https://example.com").WithDepth(3).Build()
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
}

func TestToDTORoundTripsThroughFromDTOBytes(t *testing.T) {
	original, err := config.Default().
		WithStartURL("https://example.com").
		WithDepth(4).
		WithFilters([]filterpipe.FilterKind{filterpipe.ToLower, filterpipe.AllNumbers}).
		WithSitePolicy(policy.Subdomain).
		Build()
	require.NoError(t, err)

	encoded, err := json.Marshal(original.ToDTO())
	require.NoError(t, err)

	restored, err := config.FromDTOBytes(encoded)
	require.NoError(t, err)

	assert.True(t, original.Equal(restored))
}

func TestWithConfigFileMissingPathFails(t *testing.T) {
	_, err := config.WithConfigFile("/nonexistent/path/config.json")
	require.Error(t, err)
	require.ErrorIs(t, err, config.ErrFileDoesNotExist)
}
