package cli

import (
	"fmt"

	"github.com/oowekyala/mlir-zsh-plugin/internal/shell"
)

// Hook prints the eval-able zsh integration code for the configured
// optimizer commands.
func Hook(p Params, helper string) error {
	e, err := p.setup()
	if err != nil {
		return err
	}

	code, err := shell.GenerateHook(shell.PluginParams{
		Helper:   helper,
		Commands: e.cfg.ProgramNames(),
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(p.output(), code)
	return err
}

// Plugin prints the standalone zsh completion plugin, suitable for
// installing as an fpath file.
func Plugin(p Params, helper string) error {
	e, err := p.setup()
	if err != nil {
		return err
	}

	code, err := shell.GeneratePlugin(shell.PluginParams{
		Helper:   helper,
		Commands: e.cfg.ProgramNames(),
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(p.output(), code)
	return err
}
