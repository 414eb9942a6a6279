// Package helptext fetches and tokenizes the help listing of an
// mlir-opt style optimizer binary.
package helptext

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/oowekyala/mlir-zsh-plugin/internal/herrors"
)

const (
	// DefaultHelpTimeout bounds the help subprocess. The listing of a
	// full mlir-opt build takes a few seconds to print.
	DefaultHelpTimeout = 10 * time.Second
	// MaxHelpOutputSize is the maximum size of captured help text (4MB)
	MaxHelpOutputSize = 4 * 1024 * 1024
)

// Fetcher captures the help listing of one optimizer binary
type Fetcher struct {
	// Binary is the resolved path of the optimizer
	Binary string
	// Hidden asks for --help-hidden instead of --help
	Hidden bool
	// Timeout overrides DefaultHelpTimeout when positive
	Timeout time.Duration
}

// ResolveCommand resolves a command name to an executable path.
// Absolute paths are used as-is if executable, everything else goes
// through PATH lookup.
func ResolveCommand(cmd string) (string, error) {
	if filepath.IsAbs(cmd) {
		info, err := os.Stat(cmd)
		if err == nil && !info.IsDir() && info.Mode()&0111 != 0 {
			return cmd, nil
		}
		return "", herrors.NewNotFoundError(cmd, "unable to locate command '"+cmd+"'")
	}

	resolved, err := exec.LookPath(cmd)
	if err != nil {
		return "", herrors.NewNotFoundError(cmd, "unable to locate command '"+cmd+"'")
	}
	return resolved, nil
}

// HelpFlag returns the flag passed to the optimizer
func (f *Fetcher) HelpFlag() string {
	if f.Hidden {
		return "--help-hidden"
	}
	return "--help"
}

// Fetch runs the optimizer with its help flag and captures stdout.
// A missing binary or nonzero exit is a FetchError; there is no retry
// since help text is deterministic per binary version.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultHelpTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.Binary, f.HelpFlag())
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", herrors.NewFetchError(f.Binary, "help command timed out", err)
		}
		return "", herrors.NewFetchError(f.Binary, "failed to execute '"+f.Binary+" "+f.HelpFlag()+"'", err)
	}

	if len(output) > MaxHelpOutputSize {
		output = output[:MaxHelpOutputSize]
	}

	return string(output), nil
}
