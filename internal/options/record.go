// Package options classifies tokenized help text into structured
// option records, including pass-scoped sub-options.
package options

// Category classifies where an option belongs in the optimizer's help listing
type Category int

// Option categories
const (
	// CategoryGeneric covers framework options like --help and --color
	CategoryGeneric Category = iota
	// CategoryToolOption covers the tool's own --mlir-* options
	CategoryToolOption
	// CategoryPass is a flag that enables one transformation pass
	CategoryPass
	// CategoryPipeline is a flag that enables a pass pipeline
	CategoryPipeline
	// CategoryInherited covers LLVM options inherited by the binary but
	// irrelevant to its own passes; these are filtered out
	CategoryInherited
)

// String returns a human readable category name
func (c Category) String() string {
	switch c {
	case CategoryGeneric:
		return "generic"
	case CategoryToolOption:
		return "tool"
	case CategoryPass:
		return "pass"
	case CategoryPipeline:
		return "pipeline"
	case CategoryInherited:
		return "inherited"
	default:
		return "unknown"
	}
}

// Repeatable reports whether the option may appear several times on a
// command line. Passes and pipelines compose, everything else does not.
func (c Category) Repeatable() bool {
	return c == CategoryPass || c == CategoryPipeline
}

// Style describes how an option takes its value
type Style string

// Option styles
const (
	// StyleFlag takes no value
	StyleFlag Style = "flag"
	// StyleAttached takes its value as --opt=value
	StyleAttached Style = "attached"
	// StyleSeparate takes its value as the next argument
	StyleSeparate Style = "separate"
)

// Choice is one case of an option that has a closed set of values
type Choice struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

// PassOption is a configuration parameter scoped to one pass. It has no
// existence outside its owning Record and is completed with the
// compound --pass=option=value syntax, never as a top-level flag.
type PassOption struct {
	Name        string   `json:"name"`
	Style       Style    `json:"style"`
	Description string   `json:"description"`
	ValueHint   string   `json:"value_hint,omitempty"`
	Choices     []Choice `json:"choices,omitempty"`
}

// Record is one top-level option of the optimizer
type Record struct {
	Name        string        `json:"name"`
	Category    Category      `json:"category"`
	Style       Style         `json:"style"`
	Description string        `json:"description"`
	ValueHint   string        `json:"value_hint,omitempty"`
	Choices     []Choice      `json:"choices,omitempty"`
	SubOptions  []*PassOption `json:"sub_options,omitempty"`
	// Hidden marks options that only appear in --help-hidden output
	Hidden bool `json:"hidden,omitempty"`
}

// richness scores a record for deduplication: a record with enumerated
// choices beats one without, then the longer description wins.
func (r *Record) richness() int {
	score := len(r.Description)
	if len(r.Choices) > 0 {
		score += 1 << 16
	}
	if len(r.SubOptions) > 0 {
		score += 1 << 16
	}
	return score
}
