// Package main is the entry point for the mlircomp completion helper.
package main

import (
	"context"
	"fmt"
	"os"

	mcli "github.com/oowekyala/mlir-zsh-plugin/internal/cli"
	"github.com/oowekyala/mlir-zsh-plugin/internal/trace"
	"github.com/oowekyala/mlir-zsh-plugin/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	defer trace.Init()()

	app := buildApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildApp() *cli.Command {
	return &cli.Command{
		Name:                  "mlircomp",
		Usage:                 "Shell completion helper for MLIR optimizer drivers",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("MLIRCOMP_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "cmd",
				Usage:   "Optimizer command to complete for (overrides config)",
				Sources: cli.EnvVars("MLIRCOMP_CMD"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Configuration file path",
				Sources: cli.EnvVars("MLIRCOMP_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "nl",
				Usage: "Newline-delimited output instead of NUL-delimited",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Bypass the payload cache",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "list-options",
				Usage: "Print zsh optspecs for every completable option",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mcli.ListOptions(ctx, params(cmd))
				},
			},
			{
				Name:      "list-pass-options",
				Usage:     "Print the scoped option specs of one pass flag",
				ArgsUsage: "<pass-flag>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mcli.ListPassOptions(ctx, params(cmd), cmd.Args().First())
				},
			},
			{
				Name:  "candidates",
				Usage: "Print shell-agnostic completion candidates",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mcli.Candidates(ctx, params(cmd))
				},
			},
			{
				Name:  "clean-cache",
				Usage: "Remove cached parse results",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "all",
						Aliases: []string{"a"},
						Usage:   "Clear the whole cache instead of the configured command's entry",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mcli.CleanCache(params(cmd), cmd.Bool("all"))
				},
			},
			{
				Name:  "cache-path",
				Usage: "Print the cache file location",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mcli.CachePath(params(cmd))
				},
			},
			{
				Name:  "status",
				Usage: "Show configuration, optimizer and cache status",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mcli.Status(params(cmd))
				},
			},
			{
				Name:  "hook",
				Usage: "Print eval-able zsh integration code",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "shell",
						Value: "zsh",
						Usage: "Target shell (only zsh is supported)",
					},
					&cli.BoolFlag{
						Name:  "plugin",
						Usage: "Print the standalone plugin file instead of the hook wrapper",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					if shell := cmd.String("shell"); shell != "zsh" {
						return fmt.Errorf("unsupported shell %q", shell)
					}
					helper := helperInvocation()
					if cmd.Bool("plugin") {
						return mcli.Plugin(params(cmd), helper)
					}
					return mcli.Hook(params(cmd), helper)
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file against the schema",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mcli.Validate(params(cmd), cmd.Args().First())
				},
			},
			{
				Name:            "run",
				Usage:           "Run the optimizer, piping output through the highlighter",
				ArgsUsage:       "[optimizer-args...]",
				SkipFlagParsing: true,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mcli.Run(ctx, params(cmd), cmd.Args().Slice())
				},
			},
		},
	}
}

func params(cmd *cli.Command) mcli.Params {
	return mcli.Params{
		LogLevel:   cmd.String("log-level"),
		ConfigPath: cmd.String("config"),
		Command:    cmd.String("cmd"),
		Newline:    cmd.Bool("nl"),
		NoCache:    cmd.Bool("no-cache"),
	}
}

// helperInvocation is the command name the generated shell code uses to
// call back into this binary.
func helperInvocation() string {
	if len(os.Args) > 0 && os.Args[0] != "" {
		return os.Args[0]
	}
	return "mlircomp"
}
