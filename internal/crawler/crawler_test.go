package crawler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexforge/wdict/internal/config"
	"github.com/lexforge/wdict/internal/crawler"
	"github.com/lexforge/wdict/internal/policy"
	"github.com/lexforge/wdict/internal/statestore"
	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><h1>falcon wing</h1><a href="/child">next</a><a href="http://other.example/page">external</a></body></html>`)
	})
	mux.HandleFunc("/child", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><p>rogue squadron</p></body></html>`)
	})
	return httptest.NewServer(mux)
}

func TestCrawlerFollowsLinksWithinDepth(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	cfg, err := config.Default().
		WithStartURL(server.URL).
		WithDepth(1).
		WithNoWrite(true).
		Build()
	require.NoError(t, err)

	c, err := crawler.New(cfg, telemetry.NoopSink{})
	require.NoError(t, err)

	stats := c.Run(context.Background())
	assert.Equal(t, 2, stats.TotalLocations)
	assert.Equal(t, 2, c.Snapshot().Visited.Size())

	words := collectWords(t, c)
	assert.Contains(t, words, "falcon")
	assert.Contains(t, words, "rogue")
}

func TestCrawlerDepthZeroFetchesSeedOnly(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	cfg, err := config.Default().
		WithStartURL(server.URL).
		WithDepth(0).
		WithNoWrite(true).
		Build()
	require.NoError(t, err)

	c, err := crawler.New(cfg, telemetry.NoopSink{})
	require.NoError(t, err)

	stats := c.Run(context.Background())
	assert.Equal(t, 1, stats.TotalLocations)

	words := collectWords(t, c)
	assert.Contains(t, words, "falcon")
	assert.NotContains(t, words, "rogue")
}

func TestCrawlerSitePolicySameExcludesOtherHost(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	cfg, err := config.Default().
		WithStartURL(server.URL).
		WithDepth(3).
		WithSitePolicy(policy.Same).
		WithNoWrite(true).
		Build()
	require.NoError(t, err)

	c, err := crawler.New(cfg, telemetry.NoopSink{})
	require.NoError(t, err)

	c.Run(context.Background())
	for _, loc := range c.Snapshot().Visited.ToSlice() {
		assert.NotContains(t, loc.String(), "other.example")
	}
}

func TestCrawlerLocalDirectoryCrawl(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(`<html><body>wookiee kashyyyk</body></html>`), 0o644))

	cfg, err := config.Default().
		WithStartPath(dir).
		WithDepth(2).
		WithNoWrite(true).
		Build()
	require.NoError(t, err)

	c, err := crawler.New(cfg, telemetry.NoopSink{})
	require.NoError(t, err)

	c.Run(context.Background())
	words := collectWords(t, c)
	assert.Contains(t, words, "wookiee")
	assert.Contains(t, words, "kashyyyk")
}

func TestSnapshotRoundTripsThroughStateStoreAndResumes(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	cfg, err := config.Default().
		WithStartURL(server.URL).
		WithDepth(1).
		WithNoWrite(true).
		Build()
	require.NoError(t, err)

	c, err := crawler.New(cfg, telemetry.NoopSink{})
	require.NoError(t, err)
	c.Run(context.Background())

	snap := c.Snapshot()
	statePath := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, statestore.Save(statePath, snap, telemetry.NoopSink{}))

	loaded, err := statestore.Load(statePath, telemetry.NoopSink{})
	require.NoError(t, err)

	resumed, err := crawler.Resume(loaded, loaded.Config, true, statePath, telemetry.NoopSink{})
	require.NoError(t, err)
	resumed.Run(context.Background())
	assert.Equal(t, snap.Visited.Size(), resumed.Snapshot().Visited.Size())
}

func TestResumeStrictMismatchFails(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	cfg, err := config.Default().WithStartURL(server.URL).WithNoWrite(true).Build()
	require.NoError(t, err)

	c, err := crawler.New(cfg, telemetry.NoopSink{})
	require.NoError(t, err)
	snap := c.Snapshot()

	other, err := config.Default().WithStartURL(server.URL).WithDepth(9).WithNoWrite(true).Build()
	require.NoError(t, err)

	_, err = crawler.Resume(snap, other, true, "state.json", telemetry.NoopSink{})
	require.Error(t, err)
	var mismatch *crawler.ResumeConfigMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func collectWords(t *testing.T, c *crawler.Crawler) []string {
	t.Helper()
	return c.Words()
}
