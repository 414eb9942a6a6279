package cli

import (
	"fmt"

	"github.com/oowekyala/mlir-zsh-plugin/internal/helptext"
)

// CleanCache drops cache entries. With all set the whole cache file is
// removed, otherwise only the entry of the configured optimizer.
func CleanCache(p Params, all bool) error {
	e, err := p.setup()
	if err != nil {
		return err
	}
	if e.cache == nil {
		e.log.Info().Msg("cache is disabled, nothing to clean")
		return nil
	}

	if all {
		if err := e.cache.Clear(); err != nil {
			return err
		}
		e.log.Info().Str("path", e.cache.Path()).Msg("cache cleared")
		return nil
	}

	binary, err := helptext.ResolveCommand(e.cfg.Command)
	if err != nil {
		return err
	}
	if err := e.cache.Delete(binary); err != nil {
		return err
	}
	e.log.Info().Str("binary", binary).Msg("cache entry removed")
	return nil
}

// CachePath prints the cache file location
func CachePath(p Params) error {
	_, err := fmt.Fprintln(p.output(), p.cachePath())
	return err
}
