// Package status collects and renders a diagnostic overview of the
// helper: configuration, resolved optimizer and cache contents.
package status

import (
	"os"
	"sort"

	"github.com/oowekyala/mlir-zsh-plugin/internal/cache"
	"github.com/oowekyala/mlir-zsh-plugin/internal/config"
	"github.com/oowekyala/mlir-zsh-plugin/internal/helptext"
	"github.com/oowekyala/mlir-zsh-plugin/pkg/version"
)

// Collect gathers status data. The cache may be nil when caching is
// disabled; a missing optimizer binary leaves BinaryPath empty rather
// than failing, status must always render.
func Collect(cfg *config.Config, configPath string, c *cache.Cache) *Data {
	data := &Data{
		Version:       version.Version,
		ConfigPath:    configPath,
		Command:       cfg.Command,
		Commands:      cfg.ProgramNames(),
		IncludeHidden: cfg.IncludeHidden,
		Highlighter:   cfg.Highlighter,
		CacheEnabled:  cfg.Cache.Enabled,
	}

	if binary, err := helptext.ResolveCommand(cfg.Command); err == nil {
		data.BinaryPath = binary
	}

	if c != nil {
		data.CachePath = c.Path()
		if info, err := os.Stat(c.Path()); err == nil {
			data.CacheFileSize = info.Size()
		}
		data.Entries = collectEntries(c)
	}

	return data
}

func collectEntries(c *cache.Cache) []EntryInfo {
	entries := c.Entries()
	out := make([]EntryInfo, 0, len(entries))
	for _, entry := range entries {
		info := EntryInfo{
			Binary:       entry.Binary,
			LastAccessed: entry.LastAccessed,
		}
		if entry.Payload != nil {
			info.Options = len(entry.Payload.OptionSpecs)
			if entry.Payload.PassOptions != nil {
				info.PassOptions = entry.Payload.PassOptions.Len()
			}
		}
		out = append(out, info)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Binary < out[j].Binary })
	return out
}
