package statestore_test

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexforge/wdict/internal/config"
	"github.com/lexforge/wdict/internal/location"
	"github.com/lexforge/wdict/internal/statestore"
	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/lexforge/wdict/pkg/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseURL(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return *u
}

func sampleSnapshot(t *testing.T) statestore.StateSnapshot {
	t.Helper()
	cfg, err := config.Default().WithStartURL("https://example.com").WithDepth(2).Build()
	require.NoError(t, err)

	visited := container.NewSet[location.Location]()
	visited.Add(location.NewRemote(mustParseURL(t, "https://example.com/seed")))

	frontier := map[int][]location.Location{
		1: {location.NewRemote(mustParseURL(t, "https://example.com/child"))},
	}

	return statestore.StateSnapshot{
		Config:            cfg,
		Visited:           visited,
		Frontier:          frontier,
		AcceptedWordCount: 42,
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	original := sampleSnapshot(t)

	require.NoError(t, statestore.Save(path, original, telemetry.NoopSink{}))

	loaded, err := statestore.Load(path, telemetry.NoopSink{})
	require.NoError(t, err)

	assert.True(t, original.Config.Equal(loaded.Config))
	assert.Equal(t, original.AcceptedWordCount, loaded.AcceptedWordCount)
	assert.Equal(t, original.Visited.Size(), loaded.Visited.Size())
	assert.Equal(t, len(original.Frontier[1]), len(loaded.Frontier[1]))
	assert.True(t, original.Frontier[1][0].Equal(loaded.Frontier[1][0]))
}

func TestLoadMissingPathFails(t *testing.T) {
	_, err := statestore.Load(filepath.Join(t.TempDir(), "does-not-exist.json"), telemetry.NoopSink{})
	require.Error(t, err)
	var missing *statestore.StateMissing
	assert.ErrorAs(t, err, &missing)
}

func TestLoadMalformedJSONFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, writeFile(path, []byte("{not json")))

	_, err := statestore.Load(path, telemetry.NoopSink{})
	require.Error(t, err)
	var malformed *statestore.StateMalformed
	assert.ErrorAs(t, err, &malformed)
}

func TestLoadMissingConfigFieldFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, writeFile(path, []byte(`{"visited":[],"frontier":{},"accepted_word_count":0}`)))

	_, err := statestore.Load(path, telemetry.NoopSink{})
	require.Error(t, err)
	var malformed *statestore.StateMalformed
	assert.ErrorAs(t, err, &malformed)
}

func TestLoadPreservesLocalPathEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	cfg, err := config.Default().WithStartPath(t.TempDir()).Build()
	require.NoError(t, err)

	local, err := location.NewLocal(t.TempDir())
	require.NoError(t, err)

	visited := container.NewSet[location.Location]()
	visited.Add(local)

	require.NoError(t, statestore.Save(path, statestore.StateSnapshot{Config: cfg, Visited: visited, Frontier: map[int][]location.Location{}}, telemetry.NoopSink{}))

	loaded, err := statestore.Load(path, telemetry.NoopSink{})
	require.NoError(t, err)
	assert.True(t, loaded.Visited.Contains(local))
}

func writeFile(path string, content []byte) error {
	return os.WriteFile(path, content, 0o644)
}
