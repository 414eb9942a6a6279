// Package pipeline orchestrates the completion pipeline: fetch help
// text, tokenize, classify, build pass syntax, emit.
package pipeline

import (
	"context"
	"io"

	"github.com/oowekyala/mlir-zsh-plugin/internal/cache"
	"github.com/oowekyala/mlir-zsh-plugin/internal/helptext"
	"github.com/oowekyala/mlir-zsh-plugin/internal/logger"
	"github.com/oowekyala/mlir-zsh-plugin/internal/options"
	"github.com/oowekyala/mlir-zsh-plugin/internal/timing"
	"github.com/oowekyala/mlir-zsh-plugin/internal/trace"
	"github.com/oowekyala/mlir-zsh-plugin/internal/zspec"
)

// State tracks pipeline progress
type State int

// Pipeline states. Only fetching and tokenizing can fail; everything
// downstream is best effort.
const (
	StateIdle State = iota
	StateFetching
	StateTokenizing
	StateClassifying
	StateBuildingPassSyntax
	StateEmitting
	StateDone
	StateFetchFailed
	StateParseFailed
)

// String returns a human readable state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateTokenizing:
		return "tokenizing"
	case StateClassifying:
		return "classifying"
	case StateBuildingPassSyntax:
		return "building-pass-syntax"
	case StateEmitting:
		return "emitting"
	case StateDone:
		return "done"
	case StateFetchFailed:
		return "fetch-failed"
	case StateParseFailed:
		return "parse-failed"
	default:
		return "unknown"
	}
}

// Result is the pipeline output
type Result struct {
	// Payload is the zsh spec payload
	Payload *zspec.Payload
	// Candidates is the shell-agnostic completion set
	Candidates *zspec.CompletionSet
	// FromCache is true when the result was served without running the
	// optimizer's parser stages
	FromCache bool
}

// Engine runs the completion pipeline for one optimizer binary. Each
// invocation builds fresh in-memory structures; the only state shared
// across invocations is the on-disk cache.
type Engine struct {
	// Binary is the resolved optimizer path
	Binary string
	// IncludeHidden also fetches and emits --help-hidden options
	IncludeHidden bool
	// Denylist is merged with the built-in inherited-flag list
	Denylist []string
	// Sections overrides the help-text section table, nil for default
	Sections *options.SectionTable
	// Cache is the payload cache, nil disables caching
	Cache *cache.Cache
	// Log receives stage diagnostics, nil disables logging
	Log *logger.Logger

	state State
}

// State returns the current pipeline state
func (e *Engine) State() State {
	return e.state
}

// Run executes the full pipeline. Fetch failures halt; parse failures
// yield an empty result alongside the error so callers can degrade to
// a no-op completion instead of breaking the shell.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	timer := timing.NewTimer()
	e.state = StateFetching

	mtime := cache.MTimeOf(e.Binary)
	if entry, ok := e.cachedEntry(mtime); ok {
		e.state = StateDone
		e.debug().Str("binary", e.Binary).Msg("serving payload from cache")
		return &Result{Payload: entry.Payload, Candidates: entry.Candidates, FromCache: true}, nil
	}

	endFetch := trace.Region(ctx, "fetch")
	visible, hidden, err := e.fetch(ctx)
	endFetch()
	if err != nil {
		e.state = StateFetchFailed
		return nil, err
	}
	timer.Mark("fetch")

	checksum := cache.Hash(visible + "\x00" + hidden)

	// The binary changed but may print identical help text (rebuild
	// without new options); reuse the parsed payload in that case and
	// only refresh the mtime.
	var result *Result
	if e.Cache != nil {
		if entry, found := e.Cache.Get(e.Binary); found && entry.Checksum == checksum && entry.Payload != nil {
			result = &Result{Payload: entry.Payload, Candidates: entry.Candidates, FromCache: true}
			e.state = StateDone
		}
	}

	if result == nil {
		endParse := trace.Region(ctx, "parse")
		result, err = e.buildFromTexts(visible, hidden, timer)
		endParse()
		if err != nil {
			return result, err
		}
	}

	if e.Cache != nil {
		entry := &cache.Entry{
			Binary:     e.Binary,
			MTime:      mtime,
			Checksum:   checksum,
			Payload:    result.Payload,
			Candidates: result.Candidates,
		}
		if err := e.Cache.Set(entry); err != nil {
			// Cache writes are best effort
			e.debug().Err(err).Msg("failed to persist cache")
		}
	}

	e.debug().Str("binary", e.Binary).Str("timing", timer.Summary()).Msg("pipeline done")
	return result, nil
}

// BuildFromText runs the parser stages on already-captured help text,
// bypassing fetch and cache. The hidden listing may be empty.
func (e *Engine) BuildFromText(visible, hidden string) (*Result, error) {
	e.state = StateTokenizing
	return e.buildFromTexts(visible, hidden, timing.NewTimer())
}

func (e *Engine) fetch(ctx context.Context) (visible, hidden string, err error) {
	fetcher := &helptext.Fetcher{Binary: e.Binary}
	visible, err = fetcher.Fetch(ctx)
	if err != nil {
		return "", "", err
	}

	if e.IncludeHidden {
		fetcher.Hidden = true
		hidden, err = fetcher.Fetch(ctx)
		if err != nil {
			return "", "", err
		}
	}

	return visible, hidden, nil
}

func (e *Engine) buildFromTexts(visible, hidden string, timer *timing.Timer) (*Result, error) {
	e.state = StateTokenizing
	visibleLines, err := helptext.Tokenize(visible)
	if err != nil {
		e.state = StateParseFailed
		e.warn().Str("binary", e.Binary).Err(err).Msg("help text did not match the expected format")
		return EmptyResult(), err
	}

	var hiddenLines []helptext.Line
	if hidden != "" {
		hiddenLines, err = helptext.Tokenize(hidden)
		if err != nil {
			// The hidden listing is a bonus; fall back to the visible one
			e.warn().Str("binary", e.Binary).Err(err).Msg("ignoring unparseable --help-hidden output")
			hiddenLines = nil
		}
	}
	timer.Mark("tokenize")

	e.state = StateClassifying
	denylist := append(options.DefaultDenylist(), e.Denylist...)
	classifier := options.NewClassifier(e.Sections, denylist)

	visibleRecords := classifier.Classify(visibleLines)
	var hiddenRecords []*options.Record
	if hiddenLines != nil {
		hiddenRecords = classifier.Classify(hiddenLines)
	}

	merged := options.Merge(visibleRecords, hiddenRecords)
	filtered := options.Filter(merged, e.IncludeHidden)
	timer.Mark("classify")

	e.state = StateBuildingPassSyntax
	candidates := zspec.BuildCompletionSet(filtered)

	e.state = StateEmitting
	payload := zspec.BuildPayload(filtered)
	timer.Mark("emit")

	e.state = StateDone
	e.debug().
		Int("records", len(filtered)).
		Int("candidates", len(candidates.Candidates)).
		Msg("classified help text")

	return &Result{Payload: payload, Candidates: candidates}, nil
}

// cachedEntry returns a valid cache entry for the binary. A matching
// mtime is enough; checksum validation happens on rebuild.
func (e *Engine) cachedEntry(mtime int64) (*cache.Entry, bool) {
	if e.Cache == nil || mtime == 0 {
		return nil, false
	}
	entry, found := e.Cache.Get(e.Binary)
	if !found || entry.MTime != mtime || entry.Payload == nil {
		return nil, false
	}
	return entry, true
}

// EmptyResult returns a result with no options, the degraded output
// for callers that must not fail the shell.
func EmptyResult() *Result {
	return &Result{
		Payload:    zspec.BuildPayload(nil),
		Candidates: zspec.BuildCompletionSet(nil),
	}
}

func (e *Engine) debug() *logger.Entry {
	return e.log().Debug()
}

func (e *Engine) warn() *logger.Entry {
	return e.log().Warn()
}

func (e *Engine) log() *logger.Logger {
	if e.Log == nil {
		e.Log = logger.New("error", io.Discard)
	}
	return e.Log
}
