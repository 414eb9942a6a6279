// Package config handles loading and parsing of mlircomp configuration files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/oowekyala/mlir-zsh-plugin/internal/herrors"
)

// SupportedConfigNames contains supported configuration file names
// (in order of preference)
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

//go:embed defaults.yml
var defaultsYAML []byte

// CacheConfig controls the on-disk payload cache
type CacheConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Config is the mlircomp configuration. The completion core receives
// these values as parameters; the file is only read once at startup.
type Config struct {
	// Command is the optimizer binary the plugin wraps
	Command string `koanf:"command"`
	// Commands lists additional program names treated as instances of
	// the optimizer (aliases, renamed builds)
	Commands []string `koanf:"commands"`
	// Denylist names inherited flags dropped from completions, on top
	// of the built-in list
	Denylist []string `koanf:"denylist"`
	// IncludeHidden asks the optimizer for --help-hidden output
	IncludeHidden bool `koanf:"include_hidden"`
	// Highlighter is the external command optimizer output is piped
	// through, e.g. "bat -p -l mlir". Empty disables highlighting.
	Highlighter string `koanf:"highlighter"`
	// Sections overrides the help-text section table (header -> state)
	Sections map[string]string `koanf:"sections"`
	// Cache controls payload caching
	Cache CacheConfig `koanf:"cache"`
}

// DefaultDir returns the configuration directory, honoring XDG_CONFIG_HOME
func DefaultDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "mlircomp")
}

// FindConfigFile returns the first existing config file in dir, or ""
func FindConfigFile(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads the config file at path on top of the built-in defaults.
// An empty path loads defaults only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, herrors.NewConfigError("defaults", "failed to load built-in defaults", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, herrors.NewConfigError(path, "failed to load config file", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, herrors.NewConfigError(path, "failed to decode config", err)
	}

	return &cfg, nil
}

// LoadDefault loads the config from the default directory. Returns the
// config and the path of the file used (empty when running on defaults).
func LoadDefault() (*Config, string, error) {
	path := FindConfigFile(DefaultDir())
	cfg, err := Load(path)
	return cfg, path, err
}

// ProgramNames returns every program name the plugin should wrap, the
// primary command first, without duplicates.
func (c *Config) ProgramNames() []string {
	names := make([]string, 0, len(c.Commands)+1)
	seen := make(map[string]struct{})
	for _, name := range append([]string{c.Command}, c.Commands...) {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// parserFor selects a koanf parser from the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, herrors.NewConfigError(path, fmt.Sprintf("unsupported config format %q", filepath.Ext(path)), nil)
	}
}
