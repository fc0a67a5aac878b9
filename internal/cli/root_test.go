package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lexforge/wdict/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><h1>nebula drift</h1></body></html>`)
	})
	return httptest.NewServer(mux)
}

func TestRunArgsNoStartFlagIsUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{"--no-write"}, &stdout, &stderr)
	assert.Equal(t, cli.ExitUsage, code)
	assert.Contains(t, stderr.String(), "usage error")
}

func TestRunArgsMultipleStartFlagsIsUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{"--url", "http://example.com", "--path", "/tmp", "--no-write"}, &stdout, &stderr)
	assert.Equal(t, cli.ExitUsage, code)
}

func TestRunArgsUnrecognizedThemeIsUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{"--theme", "not-a-real-theme", "--no-write"}, &stdout, &stderr)
	assert.Equal(t, cli.ExitUsage, code)
}

func TestRunArgsUnrecognizedFilterIsUsageError(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{"--url", server.URL, "--filter", "not-a-real-filter", "--no-write"}, &stdout, &stderr)
	assert.Equal(t, cli.ExitUsage, code)
}

func TestRunArgsInvalidHeaderIsUsageError(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{"--url", server.URL, "--header", "missing-equals-sign", "--no-write"}, &stdout, &stderr)
	assert.Equal(t, cli.ExitUsage, code)
}

func TestRunArgsHeaderUserAgentUsedWhenFlagOmitted(t *testing.T) {
	var seenUA string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		seenUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>nebula drift</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{
		"--url", server.URL, "--depth", "0", "--no-write",
		"--header", "User-Agent=custom-crawler",
	}, &stdout, &stderr)
	require.Equal(t, cli.ExitSuccess, code, stderr.String())
	assert.Equal(t, "custom-crawler", seenUA)
}

func TestRunArgsSuccessfulCrawlReportsStats(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{"--url", server.URL, "--depth", "0", "--no-write"}, &stdout, &stderr)
	require.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stdout.String(), "locations=1")
}

func TestRunArgsResumeMissingStateIsResumeFailure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{"--resume", filepath.Join(t.TempDir(), "does-not-exist.json")}, &stdout, &stderr)
	assert.Equal(t, cli.ExitResumeFailure, code)
}

func TestRunArgsOutputStateWithoutStateFlagIsUsageError(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{"--url", server.URL, "--depth", "0", "--no-write", "--output-state"}, &stdout, &stderr)
	assert.Equal(t, cli.ExitUsage, code)
}

func TestRunArgsRoundTripsThroughStateAndResumes(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	statePath := filepath.Join(t.TempDir(), "state.json")

	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{
		"--url", server.URL, "--depth", "0", "--no-write",
		"--state", statePath, "--output-state",
	}, &stdout, &stderr)
	require.Equal(t, cli.ExitSuccess, code, stderr.String())
	require.FileExists(t, statePath)

	stdout.Reset()
	stderr.Reset()
	code = cli.RunArgs(context.Background(), []string{"--resume", statePath, "--no-write"}, &stdout, &stderr)
	assert.Equal(t, cli.ExitSuccess, code, stderr.String())
}

func TestRunArgsResumeStrictMismatchIsResumeFailure(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	statePath := filepath.Join(t.TempDir(), "state.json")

	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{
		"--url", server.URL, "--depth", "0", "--no-write",
		"--state", statePath, "--output-state",
	}, &stdout, &stderr)
	require.Equal(t, cli.ExitSuccess, code, stderr.String())

	stdout.Reset()
	stderr.Reset()
	code = cli.RunArgs(context.Background(), []string{"--resume-strict", statePath, "--depth", "9", "--no-write"}, &stdout, &stderr)
	assert.Equal(t, cli.ExitResumeFailure, code)
}

func TestRunArgsResumeStrictWithUnchangedFlagsSucceeds(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	statePath := filepath.Join(t.TempDir(), "state.json")

	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{
		"--url", server.URL, "--depth", "0", "--no-write",
		"--state", statePath, "--output-state",
	}, &stdout, &stderr)
	require.Equal(t, cli.ExitSuccess, code, stderr.String())

	stdout.Reset()
	stderr.Reset()
	code = cli.RunArgs(context.Background(), []string{"--resume-strict", statePath, "--no-write"}, &stdout, &stderr)
	assert.Equal(t, cli.ExitSuccess, code, stderr.String())
}

func TestRunArgsLocalDirectoryWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(`<html><body>quasar pulsar</body></html>`), 0o644))
	outputPath := filepath.Join(t.TempDir(), "wordlist.txt")

	var stdout, stderr bytes.Buffer
	code := cli.RunArgs(context.Background(), []string{"--path", dir, "--output", outputPath}, &stdout, &stderr)
	require.Equal(t, cli.ExitSuccess, code, stderr.String())

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "quasar"))
}
