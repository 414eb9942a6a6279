package cli

import (
	"fmt"

	"github.com/oowekyala/mlir-zsh-plugin/internal/config"
	"github.com/oowekyala/mlir-zsh-plugin/internal/herrors"
)

// Validate checks a configuration file against the schema. With an
// empty path the default config file is validated.
func Validate(p Params, path string) error {
	if path == "" {
		path = config.FindConfigFile(config.DefaultDir())
		if path == "" {
			return herrors.NewNotFoundError("config", "no configuration file found")
		}
	}

	result, err := config.ValidateFile(path)
	if err != nil {
		return err
	}

	w := p.output()
	if result.Valid {
		_, err = fmt.Fprintf(w, "✓ %s is valid\n", path)
		return err
	}

	fmt.Fprintf(w, "✗ %s has %d problem(s):\n", path, len(result.Errors))
	for _, verr := range result.Errors {
		fmt.Fprintf(w, "  - %s: %s\n", verr.Field, verr.Message)
	}
	return herrors.NewConfigError(path, "configuration is invalid", nil)
}
