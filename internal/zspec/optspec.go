package zspec

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/oowekyala/mlir-zsh-plugin/internal/options"
)

// Payload is what the zsh widget consumes: one _arguments optspec per
// top-level option, plus per pass the _values entries for its scoped
// options. Both keep help-text declaration order so output is
// byte-identical across runs on identical input.
type Payload struct {
	OptionSpecs []string                                 `json:"option_specs"`
	PassOptions *orderedmap.OrderedMap[string, []string] `json:"pass_options"`
}

// BuildPayload serializes records into zsh spec form. The caller is
// expected to have filtered the records already (denylist, hidden,
// inherited); ordering is preserved as given.
func BuildPayload(records []*options.Record) *Payload {
	payload := &Payload{
		OptionSpecs: make([]string, 0, len(records)),
		PassOptions: orderedmap.New[string, []string](),
	}

	for _, rec := range records {
		payload.OptionSpecs = append(payload.OptionSpecs, OptionSpec(rec))

		values := make([]string, 0, len(rec.SubOptions))
		for _, sub := range rec.SubOptions {
			values = append(values, ValueSpec(sub))
		}
		payload.PassOptions.Set(rec.Name, values)
	}

	return payload
}

// PassOptionValues returns the _values entries for one pass flag, or
// nil when the flag is unknown.
func (p *Payload) PassOptionValues(flag string) []string {
	values, _ := p.PassOptions.Get(flag)
	return values
}

// OptionSpec renders one record as a zsh _arguments optspec:
//
//	*--affine-loop-tile=-[Tile affine loop nests]::
//
// Passes and pipelines are repeatable and get a '*' prefix. Options
// with choices or scoped sub-options take an optional =- value so the
// widget can offer the compound syntax.
func OptionSpec(rec *options.Record) string {
	hint, values := hintAndValues(rec.Name, rec.ValueHint, rec.Choices)

	star := ""
	if rec.Category.Repeatable() {
		star = "*"
	}

	sep := ""
	if len(rec.Choices) > 0 || len(rec.SubOptions) > 0 {
		sep = "=-"
	}

	descr := escBrackets(escColons(rec.Description, 1))

	return star + rec.Name + sep + "[" + descr + "]:" + escColons(hint, 1) + ":" + values
}

// ValueSpec renders one pass-scoped option as a zsh _values entry
func ValueSpec(sub *options.PassOption) string {
	if sub.Style == options.StyleFlag {
		return sub.Name + "[" + escColons(sub.Description, 1) + "]"
	}

	hint, values := hintAndValues(sub.Name, sub.ValueHint, sub.Choices)
	return sub.Name + "[" + escColons(sub.Description, 1) + "]:" + escColons(hint, 1) + ":" + values
}

// hintAndValues derives the message hint and the value completion for
// an option. Enumerated choices win over numeric hints.
func hintAndValues(name, valueHint string, choices []options.Choice) (string, string) {
	hint := strings.TrimSuffix(strings.TrimPrefix(valueHint, "<"), ">")
	if hint == "value" {
		// "<value>" is what LLVM prints for every enum; name the option
		// instead so the message is useful
		hint = strings.TrimLeft(name, "-") + " value"
	}

	var values string
	switch {
	case len(choices) > 0:
		hasDescriptions := false
		for _, choice := range choices {
			if strings.TrimSpace(choice.Description) != "" {
				hasDescriptions = true
				break
			}
		}

		if !hasDescriptions {
			plain := make([]string, 0, len(choices))
			for _, choice := range choices {
				plain = append(plain, choice.Value)
			}
			values = "(" + strings.Join(plain, " ") + ")"
		} else {
			entries := make([]string, 0, len(choices))
			for _, choice := range choices {
				entries = append(entries, choice.Value+":"+escChoiceDesc(choice.Description))
			}
			values = "((" + strings.Join(entries, " ") + "))"
		}
	case hint == "number" || hint == "int" || hint == "long":
		values = "_numbers"
	case hint == "uint" || hint == "ulong":
		values = "_numbers -l 0"
	}

	return hint, values
}
