package zspec

import (
	"github.com/oowekyala/mlir-zsh-plugin/internal/options"
)

// ValueKind describes what kind of value a candidate takes
type ValueKind string

// Value kinds
const (
	// ValueNone is a bare flag
	ValueNone ValueKind = "none"
	// ValueFreeText takes an arbitrary value
	ValueFreeText ValueKind = "free-text"
	// ValueEnum is one case of a closed value set
	ValueEnum ValueKind = "enum"
	// ValueCompound is pass-scoped compound syntax (--pass=opt=value)
	ValueCompound ValueKind = "compound"
)

// Candidate is one shell-agnostic completion suggestion
type Candidate struct {
	Display     string    `json:"display"`
	Description string    `json:"description"`
	Kind        ValueKind `json:"kind"`
}

// CompletionSet is the flat, ordered candidate list. Display names are
// unique; ordering follows the help-text declaration order.
type CompletionSet struct {
	Candidates []Candidate `json:"candidates"`
}

// BuildCompletionSet expands filtered records into candidates:
//
//   - enumerated options expand to one candidate per value, sharing the
//     parent description, in declared order
//   - passes with scoped options expand to compound --pass=opt=value
//     candidates next to the bare enable flag; scoped option names
//     never appear as top-level candidates
//   - everything else is a single flag candidate
func BuildCompletionSet(records []*options.Record) *CompletionSet {
	set := &CompletionSet{Candidates: make([]Candidate, 0, len(records))}
	seen := make(map[string]struct{})

	add := func(cand Candidate) {
		if _, dup := seen[cand.Display]; dup {
			return
		}
		seen[cand.Display] = struct{}{}
		set.Candidates = append(set.Candidates, cand)
	}

	for _, rec := range records {
		switch {
		case len(rec.SubOptions) > 0:
			add(Candidate{Display: rec.Name, Description: rec.Description, Kind: ValueNone})
			for _, sub := range rec.SubOptions {
				for _, cand := range compoundCandidates(rec.Name, sub) {
					add(cand)
				}
			}

		case len(rec.Choices) > 0:
			for _, choice := range rec.Choices {
				add(Candidate{
					Display:     rec.Name + "=" + choice.Value,
					Description: rec.Description,
					Kind:        ValueEnum,
				})
			}

		case rec.Style == options.StyleFlag:
			add(Candidate{Display: rec.Name, Description: rec.Description, Kind: ValueNone})

		default:
			add(Candidate{Display: rec.Name, Description: rec.Description, Kind: ValueFreeText})
		}
	}

	return set
}

// compoundCandidates expands one pass-scoped option. Enum choices nest
// inside the compound value position.
func compoundCandidates(passName string, sub *options.PassOption) []Candidate {
	prefix := passName + "=" + sub.Name

	if len(sub.Choices) > 0 {
		cands := make([]Candidate, 0, len(sub.Choices))
		for _, choice := range sub.Choices {
			cands = append(cands, Candidate{
				Display:     prefix + "=" + choice.Value,
				Description: sub.Description,
				Kind:        ValueCompound,
			})
		}
		return cands
	}

	if sub.Style == options.StyleFlag {
		return []Candidate{{Display: prefix, Description: sub.Description, Kind: ValueCompound}}
	}

	hint := sub.ValueHint
	if hint == "" {
		hint = "<value>"
	}
	return []Candidate{{Display: prefix + "=" + hint, Description: sub.Description, Kind: ValueCompound}}
}
