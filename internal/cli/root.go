// Package cli implements the wdict command: flag parsing, start-location
// resolution (URL, theme, local path, or resume), and driving a single
// internal/crawler.Crawler run to completion.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/lexforge/wdict/internal/config"
	"github.com/lexforge/wdict/internal/crawler"
	"github.com/lexforge/wdict/internal/filterpipe"
	"github.com/lexforge/wdict/internal/policy"
	"github.com/lexforge/wdict/internal/statestore"
	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Exit codes per the external CLI contract.
const (
	ExitSuccess       = 0
	ExitFatal         = 1
	ExitUsage         = 2
	ExitResumeFailure = 3
	ExitIOFailure     = 4
)

// options collects every flag's destination. A fresh *options is built per
// command invocation so tests can construct and run independent commands
// without package-level flag state leaking between them.
type options struct {
	url          string
	theme        string
	path         string
	resume       string
	resumeStrict string

	depth      int
	minWordLen int
	maxWordLen int
	includeJS  bool
	includeCSS bool
	filters    []string
	sitePolicy string

	userAgent string
	headers   []string

	reqPerSec       int
	limitConcurrent int

	output      string
	appendMode  bool
	noWrite     bool
	state       string
	outputState bool

	verbose int
	quiet   int
}

// NewRootCommand builds the wdict cobra.Command. Exposed for cmd/wdict/main.go
// and for tests that want to exercise flag parsing end to end via
// cmd.SetArgs/cmd.Execute.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "wdict",
		Short:         "Crawl a site or local directory tree into a deduplicated wordlist",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	registerFlags(cmd, opts)
	return cmd
}

func registerFlags(cmd *cobra.Command, opts *options) {
	names := themeNames()
	sort.Strings(names)

	f := cmd.Flags()
	f.StringVar(&opts.url, "url", "", "remote seed URL")
	f.StringVar(&opts.theme, "theme", "", fmt.Sprintf("named seed theme (%s)", strings.Join(names, ", ")))
	f.StringVar(&opts.path, "path", "", "local directory to crawl")
	f.StringVar(&opts.resume, "resume", "", "resume from a saved state file")
	f.StringVar(&opts.resumeStrict, "resume-strict", "", "resume from a saved state file, failing if the current flags differ from the saved configuration")

	f.IntVar(&opts.depth, "depth", 3, "maximum link depth to follow (0 = seed only)")
	f.IntVar(&opts.minWordLen, "min-word-len", 1, "minimum accepted word length")
	f.IntVar(&opts.maxWordLen, "max-word-len", 0, "maximum accepted word length (0 = unbounded)")
	f.BoolVar(&opts.includeJS, "include-js", false, "extract words from inline/external JavaScript")
	f.BoolVar(&opts.includeCSS, "include-css", false, "extract words from inline/external CSS")
	f.StringArrayVar(&opts.filters, "filter", nil, "word filter to apply, in order (repeatable)")
	f.StringVar(&opts.sitePolicy, "site-policy", "same", "remote link eligibility: same, subdomain, sibling, all")

	f.StringVar(&opts.userAgent, "user-agent", "", "User-Agent header override")
	f.StringArrayVar(&opts.headers, "header", nil, "extra request header key=value (repeatable)")

	f.IntVar(&opts.reqPerSec, "req-per-sec", 5, "max fetch starts per second")
	f.IntVar(&opts.limitConcurrent, "limit-concurrent", 10, "max in-flight fetches")

	f.StringVar(&opts.output, "output", "wordlist.txt", "output wordlist path")
	f.BoolVar(&opts.appendMode, "append", false, "union with any existing output file instead of overwriting")
	f.BoolVar(&opts.noWrite, "no-write", false, "run the crawl without writing the output file")
	f.StringVar(&opts.state, "state", "", "state snapshot path")
	f.BoolVar(&opts.outputState, "output-state", false, "write a state snapshot on completion")

	f.CountVarP(&opts.verbose, "verbose", "v", "increase logging verbosity (repeatable)")
	f.CountVarP(&opts.quiet, "quiet", "q", "decrease logging verbosity (repeatable)")
}

// Execute runs the wdict command with os.Args[1:] and returns the process
// exit code; cmd/wdict/main.go's entire body is os.Exit(cli.Execute()).
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunArgs(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// RunArgs executes the wdict command for a given argv/context/output pair
// and returns the exit code, without touching process-global state. Split
// out from Execute so tests can drive the full flag-parsing-through-exit-code
// path against an in-process httptest server.
func RunArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(stderr, "wdict:", err)
	return exitCodeFor(err)
}

// exitCodeFor classifies a returned error per §6's exit code table.
func exitCodeFor(err error) int {
	var usageErr *config.UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}

	// Checked before the resume errors: a failed state save wraps a
	// *statestore.StateMalformed, which is still an I/O failure here.
	var ioErr *ioFailureError
	if errors.As(err, &ioErr) {
		return ExitIOFailure
	}

	var mismatch *crawler.ResumeConfigMismatchError
	if errors.As(err, &mismatch) {
		return ExitResumeFailure
	}
	var missing *statestore.StateMissing
	if errors.As(err, &missing) {
		return ExitResumeFailure
	}
	var malformed *statestore.StateMalformed
	if errors.As(err, &malformed) {
		return ExitResumeFailure
	}

	return ExitFatal
}

// ioFailureError marks a finalization-time write failure (output file or
// state snapshot), exit code 4 per §6/§7: these happen after a successful
// crawl and are distinct from a setup-time usage or resume failure.
type ioFailureError struct {
	cause error
}

func (e *ioFailureError) Error() string { return e.cause.Error() }
func (e *ioFailureError) Unwrap() error { return e.cause }

func run(cmd *cobra.Command, opts *options, stdout, stderr io.Writer) error {
	if err := validateStartGroup(opts); err != nil {
		return err
	}

	sink := telemetry.Sink(newVerbositySink(telemetry.NewRecorder(stderr), netVerbosity(opts)))

	statePath, strict, resuming := resumeTarget(opts)

	var (
		cfg  config.Config
		snap statestore.StateSnapshot
		c    *crawler.Crawler
		err  error
	)

	if resuming {
		snap, err = statestore.Load(statePath, sink)
		if err != nil {
			return err
		}
		// cfg here deliberately keeps snap.Config's start location
		// (StartRemote/StartLocal) rather than reclassifying as
		// StartResume: strict comparison and origin resolution both
		// need "what this run's settings would be," not a pointer
		// back to the resume flags themselves (those are threaded
		// separately, below, as statePath/strict).
		cfg, err = overlayConfig(snap.Config, cmd, opts)
		if err != nil {
			return err
		}
		c, err = crawler.Resume(snap, cfg, strict, statePath, sink)
	} else {
		cfg, err = freshConfig(opts)
		if err != nil {
			return err
		}
		c, err = crawler.New(cfg, sink)
	}
	if err != nil {
		return err
	}

	stats := c.Run(cmd.Context())
	fmt.Fprintf(stdout, "locations=%d words=%d errors=%d duration_ms=%d\n",
		stats.TotalLocations, stats.TotalWords, stats.TotalErrors, stats.DurationMs)

	if _, err := c.Flush(); err != nil {
		return &ioFailureError{cause: err}
	}

	if cfg.OutputState() {
		if cfg.StatePath() == "" {
			return &config.UsageError{Cause: config.ErrCauseNoStart, Message: "--output-state requires --state"}
		}
		if err := statestore.Save(cfg.StatePath(), c.Snapshot(), sink); err != nil {
			return &ioFailureError{cause: err}
		}
	}

	return nil
}

// netVerbosity folds repeated -v/-q into the net verbosity level used by
// verbositySink, clamped to [-2, +2] per §6.
func netVerbosity(opts *options) int {
	v := opts.verbose - opts.quiet
	if v > 2 {
		v = 2
	}
	if v < -2 {
		v = -2
	}
	return v
}

// validateStartGroup enforces that exactly one of the five start flags is
// given, per §6's mutually exclusive group.
func validateStartGroup(opts *options) error {
	starts := 0
	for _, set := range []bool{opts.url != "", opts.theme != "", opts.path != "", opts.resume != "", opts.resumeStrict != ""} {
		if set {
			starts++
		}
	}
	if starts == 0 {
		return &config.UsageError{Cause: config.ErrCauseNoStart, Message: "one of --url, --theme, --path, --resume, --resume-strict is required"}
	}
	if starts > 1 {
		return &config.UsageError{Cause: config.ErrCauseMultipleStarts, Message: "--url, --theme, --path, --resume and --resume-strict are mutually exclusive"}
	}
	return nil
}

// resumeTarget reports whether opts selects a resume, and if so which state
// path and strictness to use.
func resumeTarget(opts *options) (statePath string, strict bool, resuming bool) {
	if opts.resumeStrict != "" {
		return opts.resumeStrict, true, true
	}
	if opts.resume != "" {
		return opts.resume, false, true
	}
	return "", false, false
}

// freshConfig builds a Config from opts alone: the --url/--theme/--path
// case, where every flag (given or defaulted) applies directly.
func freshConfig(opts *options) (config.Config, error) {
	builder := config.Default()

	switch {
	case opts.url != "":
		builder = builder.WithStartURL(opts.url)
	case opts.theme != "":
		seedURL, ok := themes[opts.theme]
		if !ok {
			return config.Config{}, &config.UsageError{Cause: config.ErrCauseNoStart, Message: fmt.Sprintf("unrecognized theme %q", opts.theme)}
		}
		builder = builder.WithStartURL(seedURL)
	case opts.path != "":
		builder = builder.WithStartPath(opts.path)
	}

	return applyCommon(builder, nil, opts)
}

// overlayConfig rebuilds base (the Config embedded in a resumed snapshot)
// with only the crawl-policy flags the user actually passed this
// invocation, per cmd's Changed tracking. Start location fields are left
// exactly as base has them: resuming never re-specifies --url/--path, and
// a strict comparison against the original run's Config would otherwise
// spuriously fail the moment this run's start kind differed from Remote or
// Local.
func overlayConfig(base config.Config, cmd *cobra.Command, opts *options) (config.Config, error) {
	cfgCopy := base
	return applyCommon(&cfgCopy, cmd.Flags(), opts)
}

// applyCommon layers every non-start flag from opts onto builder. When
// changed is nil (a fresh run), every flag applies unconditionally — their
// Go zero/default values already match builder's own defaults for anything
// the user didn't pass. When changed is non-nil (a resume overlay), a flag
// only overrides builder's existing (saved) value if the flag was actually
// given on this invocation.
func applyCommon(builder *config.Config, changed *pflag.FlagSet, opts *options) (config.Config, error) {
	is := func(name string) bool { return changed == nil || changed.Changed(name) }

	if is("depth") {
		builder = builder.WithDepth(opts.depth)
	}
	if is("min-word-len") || is("max-word-len") {
		builder = builder.WithWordLenBounds(opts.minWordLen, opts.maxWordLen)
	}
	if is("include-js") {
		builder = builder.WithIncludeJS(opts.includeJS)
	}
	if is("include-css") {
		builder = builder.WithIncludeCSS(opts.includeCSS)
	}
	if is("site-policy") {
		sitePolicy, ok := policy.ParseSitePolicy(opts.sitePolicy)
		if !ok {
			return config.Config{}, &config.UsageError{Cause: config.ErrCauseInvalidSitePolicy, Message: opts.sitePolicy}
		}
		builder = builder.WithSitePolicy(sitePolicy)
	}
	if is("filter") {
		filters := make([]filterpipe.FilterKind, 0, len(opts.filters))
		for _, name := range opts.filters {
			kind, ok := filterpipe.ParseFilterKind(name)
			if !ok {
				return config.Config{}, &config.UsageError{Cause: config.ErrCauseInvalidFilter, Message: name}
			}
			filters = append(filters, kind)
		}
		builder = builder.WithFilters(filters)
	}
	if is("user-agent") && opts.userAgent != "" {
		builder = builder.WithUserAgent(opts.userAgent)
	}
	if is("header") {
		// Headers layer onto whatever builder already carries
		// (last-write-wins per key), matching §6's documented header
		// merge rule rather than discarding a resumed run's saved set.
		// Built into a separate map and assigned via WithHeaders rather
		// than mutated in with WithHeader: builder may be a copy of a
		// saved Config whose headers map it still aliases, and an
		// in-place mutation would corrupt that source's map too.
		merged := builder.Headers()
		for _, raw := range opts.headers {
			key, value, ok := strings.Cut(raw, "=")
			if !ok {
				return config.Config{}, &config.UsageError{Cause: config.ErrCauseInvalidHeader, Message: raw}
			}
			// Canonicalized here, in flag order, rather than left to
			// WithHeaders: two --header flags differing only in case
			// must collapse with the later flag winning, and relying on
			// WithHeaders to canonicalize on its own iteration over
			// merged would make that outcome depend on Go's randomized
			// map iteration order instead.
			merged[http.CanonicalHeaderKey(key)] = value
		}
		builder = builder.WithHeaders(merged)
	}
	if is("req-per-sec") {
		builder = builder.WithReqPerSec(opts.reqPerSec)
	}
	if is("limit-concurrent") {
		builder = builder.WithLimitConcurrent(opts.limitConcurrent)
	}
	if is("output") {
		builder = builder.WithOutputPath(opts.output)
	}
	if is("append") {
		builder = builder.WithAppendMode(opts.appendMode)
	}
	if is("no-write") {
		builder = builder.WithNoWrite(opts.noWrite)
	}
	if is("state") {
		builder = builder.WithStatePath(opts.state)
	}
	if is("output-state") {
		builder = builder.WithOutputState(opts.outputState)
	}
	if changed == nil || changed.Changed("verbose") || changed.Changed("quiet") {
		builder = builder.WithVerbosity(netVerbosity(opts))
	}

	return builder.Build()
}
