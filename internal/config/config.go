// Package config holds the immutable Configuration a Crawler run is born
// with: the start location, crawl bounds, the filter chain, rate limits,
// and output/state destinations.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/lexforge/wdict/internal/filterpipe"
	"github.com/lexforge/wdict/internal/policy"
)

type Config struct {
	//===============
	// Start
	//===============
	startKind    StartKind
	startURL     string
	startPath    string
	resumePath   string
	resumeStrict bool

	//===============
	// Crawl scope
	//===============
	depth       int
	minWordLen  int
	maxWordLen  int // 0 means unbounded (see MaxWordLen)
	includeJS   bool
	includeCSS  bool
	filters     []filterpipe.FilterKind
	sitePolicy  policy.SitePolicy

	//===============
	// Fetch
	//===============
	userAgent string
	headers   map[string]string

	//===============
	// Politeness
	//===============
	reqPerSec       int
	limitConcurrent int
	maxAttempts     int
	backoffInitial  time.Duration
	backoffMultiplier float64
	backoffMax        time.Duration

	//===============
	// Output / state
	//===============
	outputPath  string
	appendMode  bool
	noWrite     bool
	statePath   string
	outputState bool

	//===============
	// Logging
	//===============
	verbosity int
}

// MaxWordLen resolves the unbounded sentinel (0) to math.MaxInt, per the
// "unset means unbounded" resolution.
func (c Config) MaxWordLen() int {
	if c.maxWordLen == 0 {
		return math.MaxInt
	}
	return c.maxWordLen
}

func (c Config) StartKind() StartKind     { return c.startKind }
func (c Config) StartURL() string         { return c.startURL }
func (c Config) StartPath() string        { return c.startPath }
func (c Config) ResumePath() string       { return c.resumePath }
func (c Config) ResumeStrict() bool       { return c.resumeStrict }
func (c Config) Depth() int               { return c.depth }
func (c Config) MinWordLen() int          { return c.minWordLen }
func (c Config) IncludeJS() bool          { return c.includeJS }
func (c Config) IncludeCSS() bool         { return c.includeCSS }
func (c Config) SitePolicy() policy.SitePolicy { return c.sitePolicy }

// UserAgent returns the explicitly configured User-Agent override, or ""
// if none was given (--user-agent was never passed). An empty result is
// not itself sent as a header; the fetcher falls back to a header-supplied
// User-Agent, or its own default, when this is empty.
func (c Config) UserAgent() string        { return c.userAgent }
func (c Config) ReqPerSec() int           { return c.reqPerSec }
func (c Config) LimitConcurrent() int     { return c.limitConcurrent }
func (c Config) MaxAttempts() int         { return c.maxAttempts }
func (c Config) BackoffInitial() time.Duration   { return c.backoffInitial }
func (c Config) BackoffMultiplier() float64      { return c.backoffMultiplier }
func (c Config) BackoffMax() time.Duration       { return c.backoffMax }
func (c Config) OutputPath() string       { return c.outputPath }
func (c Config) AppendMode() bool         { return c.appendMode }
func (c Config) NoWrite() bool            { return c.noWrite }
func (c Config) StatePath() string        { return c.statePath }
func (c Config) OutputState() bool        { return c.outputState }
func (c Config) Verbosity() int           { return c.verbosity }

func (c Config) Filters() []filterpipe.FilterKind {
	out := make([]filterpipe.FilterKind, len(c.filters))
	copy(out, c.filters)
	return out
}

func (c Config) Headers() map[string]string {
	out := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		out[k] = v
	}
	return out
}

// Default returns a builder seeded with every field's default value. The
// caller must set exactly one start location before Build.
func Default() *Config {
	return &Config{
		startKind:         StartRemote,
		depth:             3,
		minWordLen:        1,
		maxWordLen:        0,
		sitePolicy:        policy.Same,
		headers:           map[string]string{},
		reqPerSec:         5,
		limitConcurrent:   10,
		maxAttempts:       10,
		backoffInitial:    100 * time.Millisecond,
		backoffMultiplier: 2.0,
		backoffMax:        10 * time.Second,
		outputPath:        "wordlist.txt",
	}
}

func (c *Config) WithStartURL(rawURL string) *Config {
	c.startKind = StartRemote
	c.startURL = rawURL
	return c
}

func (c *Config) WithStartPath(path string) *Config {
	c.startKind = StartLocal
	c.startPath = path
	return c
}

func (c *Config) WithResume(statePath string, strict bool) *Config {
	c.startKind = StartResume
	c.resumePath = statePath
	c.resumeStrict = strict
	return c
}

func (c *Config) WithDepth(depth int) *Config {
	c.depth = depth
	return c
}

func (c *Config) WithWordLenBounds(min, max int) *Config {
	c.minWordLen = min
	c.maxWordLen = max
	return c
}

func (c *Config) WithIncludeJS(v bool) *Config {
	c.includeJS = v
	return c
}

func (c *Config) WithIncludeCSS(v bool) *Config {
	c.includeCSS = v
	return c
}

func (c *Config) WithFilters(filters []filterpipe.FilterKind) *Config {
	c.filters = filters
	return c
}

func (c *Config) WithSitePolicy(p policy.SitePolicy) *Config {
	c.sitePolicy = p
	return c
}

func (c *Config) WithUserAgent(ua string) *Config {
	c.userAgent = ua
	return c
}

// WithHeader sets a single header, last-write-wins, case-insensitive key:
// the key is canonicalized (http.CanonicalHeaderKey) before being stored,
// so "Accept" and "accept" collapse to the same map entry.
func (c *Config) WithHeader(key, value string) *Config {
	if c.headers == nil {
		c.headers = map[string]string{}
	}
	c.headers[http.CanonicalHeaderKey(key)] = value
	return c
}

// WithHeaders replaces the entire header set. Unlike WithHeader, this
// assigns a fresh map rather than mutating the existing one in place —
// callers that build a Config by copying another (e.g. a resumed run
// layering overrides onto a saved Config) rely on that: a copied Config's
// headers field aliases the original's map, so an in-place mutation would
// silently corrupt the source Config it was copied from. Keys are
// canonicalized the same way WithHeader does; a caller passing an already
// case-deduplicated map (the common case) pays for this with no change in
// outcome.
func (c *Config) WithHeaders(headers map[string]string) *Config {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[http.CanonicalHeaderKey(k)] = v
	}
	c.headers = out
	return c
}

func (c *Config) WithReqPerSec(n int) *Config {
	c.reqPerSec = n
	return c
}

func (c *Config) WithLimitConcurrent(n int) *Config {
	c.limitConcurrent = n
	return c
}

func (c *Config) WithMaxAttempts(n int) *Config {
	c.maxAttempts = n
	return c
}

func (c *Config) WithBackoff(initial time.Duration, multiplier float64, max time.Duration) *Config {
	c.backoffInitial = initial
	c.backoffMultiplier = multiplier
	c.backoffMax = max
	return c
}

func (c *Config) WithOutputPath(path string) *Config {
	c.outputPath = path
	return c
}

func (c *Config) WithAppendMode(v bool) *Config {
	c.appendMode = v
	return c
}

func (c *Config) WithNoWrite(v bool) *Config {
	c.noWrite = v
	return c
}

func (c *Config) WithStatePath(path string) *Config {
	c.statePath = path
	return c
}

func (c *Config) WithOutputState(v bool) *Config {
	c.outputState = v
	return c
}

func (c *Config) WithVerbosity(v int) *Config {
	c.verbosity = v
	return c
}

// Build validates the accumulated fields and returns an immutable
// Configuration, or a *UsageError.
func (c *Config) Build() (Config, error) {
	switch c.startKind {
	case StartRemote:
		if c.startURL == "" {
			return Config{}, &UsageError{Cause: ErrCauseNoStart, Message: "--url requires a value"}
		}
	case StartLocal:
		if c.startPath == "" {
			return Config{}, &UsageError{Cause: ErrCauseNoStart, Message: "--path requires a value"}
		}
	case StartResume:
		if c.resumePath == "" {
			return Config{}, &UsageError{Cause: ErrCauseNoStart, Message: "--resume requires a value"}
		}
	}

	if c.maxWordLen != 0 && c.minWordLen > c.maxWordLen {
		return Config{}, &UsageError{Cause: ErrCauseInvalidWordBounds, Message: fmt.Sprintf("min=%d max=%d", c.minWordLen, c.maxWordLen)}
	}
	if c.reqPerSec <= 0 || c.limitConcurrent <= 0 {
		return Config{}, &UsageError{Cause: ErrCauseInvalidRate, Message: fmt.Sprintf("req_per_sec=%d limit_concurrent=%d", c.reqPerSec, c.limitConcurrent)}
	}
	if c.appendMode && c.noWrite {
		return Config{}, &UsageError{Cause: ErrCauseInvalidOutputFlags, Message: "--append and --no-write both set"}
	}

	return *c, nil
}

// configDTO is the JSON-serializable shape of Config, used both by
// --config file loading and by the StateStore's embedded snapshot config.
type configDTO struct {
	StartKind         StartKind `json:"startKind"`
	StartURL          string    `json:"startUrl,omitempty"`
	StartPath         string    `json:"startPath,omitempty"`
	ResumePath        string    `json:"resumePath,omitempty"`
	ResumeStrict      bool      `json:"resumeStrict,omitempty"`
	Depth             int       `json:"depth"`
	MinWordLen        int       `json:"minWordLen"`
	MaxWordLen        int       `json:"maxWordLen"`
	IncludeJS         bool      `json:"includeJs,omitempty"`
	IncludeCSS        bool      `json:"includeCss,omitempty"`
	Filters           []string  `json:"filters,omitempty"`
	SitePolicy        string    `json:"sitePolicy"`
	UserAgent         string    `json:"userAgent,omitempty"`
	Headers           map[string]string `json:"headers,omitempty"`
	ReqPerSec         int       `json:"reqPerSec"`
	LimitConcurrent   int       `json:"limitConcurrent"`
	MaxAttempts       int       `json:"maxAttempts"`
	BackoffInitial    time.Duration `json:"backoffInitial"`
	BackoffMultiplier float64   `json:"backoffMultiplier"`
	BackoffMax        time.Duration `json:"backoffMax"`
	OutputPath        string    `json:"outputPath"`
	AppendMode        bool      `json:"appendMode,omitempty"`
	NoWrite           bool      `json:"noWrite,omitempty"`
	StatePath         string    `json:"statePath,omitempty"`
	OutputState       bool      `json:"outputState,omitempty"`
	Verbosity         int       `json:"verbosity,omitempty"`
}

// ToDTO converts Config to its JSON-serializable form, used by StateStore.
func (c Config) ToDTO() interface{} {
	filters := make([]string, len(c.filters))
	for i, f := range c.filters {
		filters[i] = f.String()
	}
	return configDTO{
		StartKind: c.startKind, StartURL: c.startURL, StartPath: c.startPath,
		ResumePath: c.resumePath, ResumeStrict: c.resumeStrict,
		Depth: c.depth, MinWordLen: c.minWordLen, MaxWordLen: c.maxWordLen,
		IncludeJS: c.includeJS, IncludeCSS: c.includeCSS, Filters: filters,
		SitePolicy: c.sitePolicy.String(), UserAgent: c.userAgent, Headers: c.Headers(),
		ReqPerSec: c.reqPerSec, LimitConcurrent: c.limitConcurrent, MaxAttempts: c.maxAttempts,
		BackoffInitial: c.backoffInitial, BackoffMultiplier: c.backoffMultiplier, BackoffMax: c.backoffMax,
		OutputPath: c.outputPath, AppendMode: c.appendMode, NoWrite: c.noWrite,
		StatePath: c.statePath, OutputState: c.outputState, Verbosity: c.verbosity,
	}
}

// FromDTOBytes parses a JSON-encoded configDTO (as embedded in a state
// snapshot or loaded from --config) into a validated Config.
func FromDTOBytes(data []byte) (Config, error) {
	var dto configDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	sp, ok := policy.ParseSitePolicy(dto.SitePolicy)
	if !ok {
		sp = policy.Same
	}
	filters := make([]filterpipe.FilterKind, 0, len(dto.Filters))
	for _, name := range dto.Filters {
		if k, ok := filterpipe.ParseFilterKind(name); ok {
			filters = append(filters, k)
		}
	}

	builder := Default().
		WithDepth(dto.Depth).
		WithWordLenBounds(dto.MinWordLen, dto.MaxWordLen).
		WithIncludeJS(dto.IncludeJS).
		WithIncludeCSS(dto.IncludeCSS).
		WithFilters(filters).
		WithSitePolicy(sp).
		WithUserAgent(dto.UserAgent).
		WithReqPerSec(dto.ReqPerSec).
		WithLimitConcurrent(dto.LimitConcurrent).
		WithMaxAttempts(dto.MaxAttempts).
		WithBackoff(dto.BackoffInitial, dto.BackoffMultiplier, dto.BackoffMax).
		WithOutputPath(dto.OutputPath).
		WithAppendMode(dto.AppendMode).
		WithNoWrite(dto.NoWrite).
		WithStatePath(dto.StatePath).
		WithOutputState(dto.OutputState).
		WithVerbosity(dto.Verbosity)

	for k, v := range dto.Headers {
		builder = builder.WithHeader(k, v)
	}

	switch dto.StartKind {
	case StartLocal:
		builder = builder.WithStartPath(dto.StartPath)
	case StartResume:
		builder = builder.WithResume(dto.ResumePath, dto.ResumeStrict)
	default:
		builder = builder.WithStartURL(dto.StartURL)
	}

	return builder.Build()
}

// WithConfigFile loads a Config from a JSON file on disk (the --config
// flag), layering it over Default().
func WithConfigFile(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	return FromDTOBytes(content)
}

// Equal reports whether two Configs are field-by-field identical, used by
// strict resume (§4.4 resume semantics) to detect a config mismatch.
func (c Config) Equal(other Config) bool {
	a, errA := json.Marshal(c.ToDTO())
	b, errB := json.Marshal(other.ToDTO())
	if errA != nil || errB != nil {
		return false
	}
	return string(a) == string(b)
}
