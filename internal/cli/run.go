package cli

import (
	"context"

	"github.com/oowekyala/mlir-zsh-plugin/internal/helptext"
	"github.com/oowekyala/mlir-zsh-plugin/internal/highlight"
)

// Run executes the optimizer with the given arguments, piping its
// output through the configured highlighter when stdout is a terminal.
func Run(ctx context.Context, p Params, args []string) error {
	e, err := p.setup()
	if err != nil {
		return err
	}

	binary, err := helptext.ResolveCommand(e.cfg.Command)
	if err != nil {
		return err
	}

	runner := &highlight.Runner{
		Binary:      binary,
		Highlighter: e.cfg.Highlighter,
		Stdout:      p.Output,
	}
	return runner.Run(ctx, args)
}
