// Package cli implements the mlircomp commands. Each command is a
// plain function taking a Params struct so tests can drive them with
// in-memory writers.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/oowekyala/mlir-zsh-plugin/internal/cache"
	"github.com/oowekyala/mlir-zsh-plugin/internal/config"
	"github.com/oowekyala/mlir-zsh-plugin/internal/helptext"
	"github.com/oowekyala/mlir-zsh-plugin/internal/herrors"
	"github.com/oowekyala/mlir-zsh-plugin/internal/logger"
	"github.com/oowekyala/mlir-zsh-plugin/internal/options"
	"github.com/oowekyala/mlir-zsh-plugin/internal/pipeline"
)

// Params carries the flags shared by every command
type Params struct {
	// LogLevel is the stderr log verbosity
	LogLevel string
	// ConfigPath is an explicit config file, empty for the default lookup
	ConfigPath string
	// Command overrides the configured optimizer command
	Command string
	// CachePath overrides the default cache file location
	CachePath string
	// NoCache bypasses the payload cache for this invocation
	NoCache bool
	// Newline emits newline-delimited output instead of NUL-delimited
	Newline bool
	// Output defaults to stdout
	Output io.Writer
}

func (p Params) output() io.Writer {
	if p.Output != nil {
		return p.Output
	}
	return os.Stdout
}

func (p Params) delimiter() string {
	if p.Newline {
		return "\n"
	}
	return "\x00"
}

func (p Params) cachePath() string {
	if p.CachePath != "" {
		return p.CachePath
	}
	return cache.DefaultPath()
}

// env is the shared command environment assembled from config and flags
type env struct {
	cfg        *config.Config
	configPath string
	log        *logger.Logger
	cache      *cache.Cache
}

// setup loads config and opens the cache. Cache open failures degrade
// to running without a cache.
func (p Params) setup() (*env, error) {
	log := logger.New(p.LogLevel, os.Stderr)

	var cfg *config.Config
	var path string
	var err error
	if p.ConfigPath != "" {
		path = p.ConfigPath
		cfg, err = config.Load(path)
	} else {
		cfg, path, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if p.Command != "" {
		cfg.Command = p.Command
	}

	e := &env{cfg: cfg, configPath: path, log: log}
	if cfg.Cache.Enabled && !p.NoCache {
		c, cerr := cache.New(p.cachePath())
		if cerr != nil {
			log.Warn().Str("path", p.cachePath()).Err(cerr).Msg("cache unavailable, running without it")
		} else {
			e.cache = c
		}
	}

	return e, nil
}

// engine assembles the pipeline for the configured optimizer
func (e *env) engine() (*pipeline.Engine, error) {
	binary, err := helptext.ResolveCommand(e.cfg.Command)
	if err != nil {
		return nil, err
	}

	sections := options.DefaultSectionTable()
	if len(e.cfg.Sections) > 0 {
		if err := sections.Merge(e.cfg.Sections); err != nil {
			return nil, herrors.NewConfigError(e.configPath, "invalid sections override", err)
		}
	}

	return &pipeline.Engine{
		Binary:        binary,
		IncludeHidden: e.cfg.IncludeHidden,
		Denylist:      e.cfg.Denylist,
		Sections:      sections,
		Cache:         e.cache,
		Log:           e.log,
	}, nil
}

// emit writes items joined by the configured delimiter. A trailing
// delimiter would produce a spurious empty word on the zsh side, so
// there is none.
func emit(w io.Writer, items []string, delim string) error {
	if len(items) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(items, delim)+"\n")
	return err
}
