// Package highlight runs the optimizer with its output piped through an
// external syntax highlighter such as "bat -p -l mlir".
package highlight

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/google/shlex"
	"github.com/mattn/go-isatty"

	"github.com/oowekyala/mlir-zsh-plugin/internal/herrors"
)

// Runner executes an optimizer invocation. When a highlighter command is
// configured and stdout is a terminal, the optimizer's stdout is piped
// through it; redirected output stays byte-for-byte what the optimizer
// produced so scripts can consume it.
type Runner struct {
	// Binary is the resolved optimizer path
	Binary string
	// Highlighter is the highlighter command line, empty to disable
	Highlighter string
	// ForceHighlight engages the highlighter even without a terminal
	ForceHighlight bool

	// Stdin, Stdout and Stderr default to the process streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var warnColor = color.New(color.FgYellow)

// Run executes the optimizer with the given arguments. The optimizer's
// exit error is returned as-is so callers can propagate its exit code.
func (r *Runner) Run(ctx context.Context, args []string) error {
	opt := exec.CommandContext(ctx, r.Binary, args...)
	opt.Stdin = r.stdin()
	opt.Stderr = r.stderr()

	hl, err := r.highlighterCmd(ctx)
	if err != nil {
		return err
	}
	if hl == nil {
		opt.Stdout = r.stdout()
		return opt.Run()
	}

	pipe, err := opt.StdoutPipe()
	if err != nil {
		return err
	}
	hl.Stdin = pipe
	hl.Stdout = r.stdout()
	hl.Stderr = r.stderr()

	if err := hl.Start(); err != nil {
		return herrors.NewConfigError("", "highlighter failed to start", err)
	}
	if err := opt.Start(); err != nil {
		_ = hl.Process.Kill()
		_ = hl.Wait()
		return err
	}

	optErr := opt.Wait()
	hlErr := hl.Wait()
	if optErr != nil {
		return optErr
	}
	return hlErr
}

// highlighterCmd builds the highlighter process, or nil for passthrough.
// A highlighter that is configured but not installed degrades to
// passthrough with a warning instead of failing the run.
func (r *Runner) highlighterCmd(ctx context.Context) (*exec.Cmd, error) {
	if r.Highlighter == "" || !r.wantHighlight() {
		return nil, nil
	}

	argv, err := shlex.Split(r.Highlighter)
	if err != nil {
		return nil, herrors.NewConfigError("", "invalid highlighter command", err)
	}
	if len(argv) == 0 {
		return nil, nil
	}

	if _, err := exec.LookPath(argv[0]); err != nil {
		_, _ = warnColor.Fprintf(r.stderr(), "highlighter %s not found, printing raw output\n", argv[0])
		return nil, nil
	}

	return exec.CommandContext(ctx, argv[0], argv[1:]...), nil
}

func (r *Runner) wantHighlight() bool {
	if r.ForceHighlight {
		return true
	}
	f, ok := r.stdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Runner) stdin() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}
	return os.Stdin
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
