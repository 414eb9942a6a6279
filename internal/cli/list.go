package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/oowekyala/mlir-zsh-plugin/internal/herrors"
	"github.com/oowekyala/mlir-zsh-plugin/internal/pipeline"
)

// ListOptions prints one zsh _arguments optspec per completable option,
// NUL-delimited by default so descriptions can contain any printable
// character.
func ListOptions(ctx context.Context, p Params) error {
	result, err := runPipeline(ctx, p)
	if err != nil {
		return err
	}
	return emit(p.output(), result.Payload.OptionSpecs, p.delimiter())
}

// ListPassOptions prints the _values entries scoped to one pass flag.
// The flag may be given with or without its leading dashes.
func ListPassOptions(ctx context.Context, p Params, pass string) error {
	if pass == "" {
		return herrors.NewNotFoundError("", "pass flag required")
	}
	if !strings.HasPrefix(pass, "-") {
		pass = "--" + pass
	}

	result, err := runPipeline(ctx, p)
	if err != nil {
		return err
	}

	// An unknown flag emits nothing so the widget degrades quietly,
	// matching the missing-binary policy in runPipeline.
	values := result.Payload.PassOptionValues(pass)
	return emit(p.output(), values, p.delimiter())
}

// Candidates prints the shell-agnostic completion set, one candidate
// per record as "display<TAB>description<TAB>kind". All three columns
// are always present so consumers can split on tabs even when a
// description is empty.
func Candidates(ctx context.Context, p Params) error {
	result, err := runPipeline(ctx, p)
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(result.Candidates.Candidates))
	for _, cand := range result.Candidates.Candidates {
		lines = append(lines, cand.Display+"\t"+cand.Description+"\t"+string(cand.Kind))
	}
	return emit(p.output(), lines, p.delimiter())
}

// runPipeline degrades quietly on the failures a completion widget
// must survive: a missing optimizer or unparseable help text yields an
// empty result instead of an error, so the widget falls back to
// default completion.
func runPipeline(ctx context.Context, p Params) (*pipeline.Result, error) {
	e, err := p.setup()
	if err != nil {
		return nil, err
	}

	engine, err := e.engine()
	if err != nil {
		var notFound *herrors.NotFoundError
		if errors.As(err, &notFound) {
			e.log.Warn().Str("command", e.cfg.Command).Msg("optimizer not found, emitting nothing")
			return pipeline.EmptyResult(), nil
		}
		return nil, err
	}

	result, err := engine.Run(ctx)
	if err != nil {
		var parseErr *herrors.ParseError
		if errors.As(err, &parseErr) {
			return result, nil
		}
		return nil, err
	}
	return result, nil
}
