package cli

import (
	"fmt"

	"github.com/oowekyala/mlir-zsh-plugin/internal/status"
)

// Status prints a human readable overview of config, optimizer and cache
func Status(p Params) error {
	e, err := p.setup()
	if err != nil {
		return err
	}

	data := status.Collect(e.cfg, e.configPath, e.cache)
	_, err = fmt.Fprintln(p.output(), status.Render(data))
	return err
}
