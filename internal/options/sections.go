package options

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// State is the parser state selected by the current help-text section
type State int

// Parser states
const (
	// StateGeneral is the mixed LLVM/tool option listing; --mlir-*
	// names are tool options, the rest is inherited noise
	StateGeneral State = iota
	// StatePasses is the pass catalog
	StatePasses
	// StatePipelines is the pass pipeline catalog
	StatePipelines
	// StateGeneric is the generic framework option listing
	StateGeneric
)

// ToolOptionPrefix marks the optimizer's own options inside the
// general LLVM section.
const ToolOptionPrefix = "--mlir-"

//go:embed sections.yml
var sectionsYAML []byte

type sectionsFile struct {
	Sections map[string]string `yaml:"sections"`
}

// SectionTable maps section headers to parser states. The
// pass-detection rule is a convention of the wrapped tool, so the
// table is data rather than code and can be overridden from config.
type SectionTable struct {
	byHeader map[string]State
}

// ParseSectionTable builds a table from YAML content
func ParseSectionTable(data []byte) (*SectionTable, error) {
	var file sectionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse section table: %w", err)
	}

	table := &SectionTable{byHeader: make(map[string]State, len(file.Sections))}
	for header, name := range file.Sections {
		state, err := parseState(name)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", header, err)
		}
		table.byHeader[header] = state
	}
	return table, nil
}

// DefaultSectionTable returns the table built from the embedded data.
// The embedded file is validated by tests, a parse failure here is a
// build defect.
func DefaultSectionTable() *SectionTable {
	table, err := ParseSectionTable(sectionsYAML)
	if err != nil {
		panic(err)
	}
	return table
}

// Merge adds header overrides on top of the table. Values are state
// names (generic, general, passes, pipelines); unknown names are
// reported as an error.
func (t *SectionTable) Merge(overrides map[string]string) error {
	for header, name := range overrides {
		state, err := parseState(name)
		if err != nil {
			return fmt.Errorf("section %q: %w", header, err)
		}
		t.byHeader[header] = state
	}
	return nil
}

// StateFor returns the state selected by a section header, or the
// current state when the header is not recognized.
func (t *SectionTable) StateFor(header string, current State) State {
	if state, ok := t.byHeader[header]; ok {
		return state
	}
	return current
}

// Category classifies an option name seen while in this state
func (s State) Category(optName string) Category {
	switch s {
	case StateGeneral:
		if strings.HasPrefix(optName, ToolOptionPrefix) {
			return CategoryToolOption
		}
		return CategoryInherited
	case StatePasses:
		return CategoryPass
	case StatePipelines:
		return CategoryPipeline
	case StateGeneric:
		return CategoryGeneric
	default:
		// Fail open: never drop unclassifiable data
		return CategoryGeneric
	}
}

func parseState(name string) (State, error) {
	switch name {
	case "general":
		return StateGeneral, nil
	case "passes":
		return StatePasses, nil
	case "pipelines":
		return StatePipelines, nil
	case "generic":
		return StateGeneric, nil
	default:
		return StateGeneral, fmt.Errorf("unknown parser state %q", name)
	}
}
