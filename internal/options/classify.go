package options

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/oowekyala/mlir-zsh-plugin/internal/helptext"
)

// descSeparator splits the flag token from the description on an
// option line. LLVM prints it with surrounding spaces.
const descSeparator = " - "

// subOptionExtraIndent is how far pass sub-options are indented past
// their owning pass entry.
const subOptionExtraIndent = 2

// DefaultDenylist lists inherited framework flags that never make
// sense on an optimizer invocation and are dropped outright, wherever
// they appear in the listing.
func DefaultDenylist() []string {
	return []string{
		"--help-list",
		"--help-list-hidden",
		"--print-all-options",
		"--print-options",
		"--opt-bisect-limit",
		"--opt-bisect-print-ir-path",
	}
}

// Classifier turns tokenized help text into option records.
//
// Classification is best effort and fail-open: a record that matches no
// rule is kept as generic rather than dropped, only denylisted names
// and inherited LLVM options are filtered.
type Classifier struct {
	sections *SectionTable
	denylist map[string]struct{}
}

// NewClassifier creates a classifier with the given section table and
// denylist. A nil section table selects the embedded default.
func NewClassifier(sections *SectionTable, denylist []string) *Classifier {
	if sections == nil {
		sections = DefaultSectionTable()
	}
	deny := make(map[string]struct{}, len(denylist))
	for _, name := range denylist {
		deny[name] = struct{}{}
	}
	return &Classifier{sections: sections, denylist: deny}
}

// Denied reports whether a flag name is on the denylist
func (c *Classifier) Denied(name string) bool {
	_, ok := c.denylist[name]
	return ok
}

// Classify walks the tokenized lines and produces option records in
// declaration order. Pass sub-options are attached to their owning
// pass and never surface as independent records.
func (c *Classifier) Classify(lines []helptext.Line) []*Record {
	var (
		records        []*Record
		currentRec     *Record   // last top-level option header seen
		currentChoices *[]Choice // where enum value lines attach
		currentDesc    *string   // where continuation lines attach
	)
	lastOptIndent := -1
	state := StateGeneral

	for _, line := range lines {
		if line.Kind == helptext.LineBlank {
			lastOptIndent = -1
			continue
		}

		// A hard dedent ends the pass pipeline catalog even without a
		// new section header.
		if lastOptIndent >= 0 && line.Indent <= lastOptIndent-4 && state == StatePipelines {
			state = StateGeneral
		}

		switch line.Kind {
		case helptext.LineEnumValue:
			if currentChoices == nil {
				continue
			}
			if choice, ok := parseEnumValue(line.Text); ok {
				*currentChoices = append(*currentChoices, choice)
			}

		case helptext.LineSectionHeader:
			state = c.sections.StateFor(line.Text, state)
			currentRec = nil
			currentChoices = nil
			currentDesc = nil
			lastOptIndent = -1

		case helptext.LineContinuation:
			// Wrapped description text belongs to the nearest preceding
			// option header. Group labels printed at the same level as
			// the options themselves are not description text.
			if currentDesc != nil && lastOptIndent >= 0 && line.Indent > lastOptIndent {
				*currentDesc = helptext.Sanitize(*currentDesc + " " + line.Text)
			}

		case helptext.LineOption:
			optionPart, description, ok := strings.Cut(line.Text, descSeparator)
			if !ok {
				currentRec = nil
				currentChoices = nil
				currentDesc = nil
				continue
			}

			optionPart = strings.TrimSpace(optionPart)
			description = helptext.Sanitize(description)
			if optionPart == "" {
				continue
			}

			decoded := decodeOption(optionPart)
			if decoded.Name == "" {
				continue
			}

			if currentRec != nil && lastOptIndent >= 0 && line.Indent == lastOptIndent+subOptionExtraIndent {
				// Sub-option of the current pass entry
				subName := strings.TrimLeft(decoded.Name, "-")
				if subName == "" {
					continue
				}
				sub := &PassOption{
					Name:        subName,
					Style:       decoded.Style,
					Description: description,
					ValueHint:   decoded.ValueHint,
				}
				currentRec.SubOptions = append(currentRec.SubOptions, sub)
				currentChoices = &sub.Choices
				currentDesc = &sub.Description
				continue
			}

			rec := &Record{
				Name:        decoded.Name,
				Category:    state.Category(decoded.Name),
				Style:       decoded.Style,
				Description: description,
				ValueHint:   decoded.ValueHint,
			}

			// Denylisted names are discarded entirely, but the record
			// still anchors subsequent enum values and sub-options so
			// they do not leak onto the previous option.
			if !c.Denied(rec.Name) {
				records = append(records, rec)
			}
			currentRec = rec
			currentChoices = &rec.Choices
			currentDesc = &rec.Description
			lastOptIndent = line.Indent
		}
	}

	return records
}

// parseEnumValue splits an "=value - description" line
func parseEnumValue(text string) (Choice, bool) {
	valuePart, descPart, _ := strings.Cut(text, "- ")
	value := helptext.Sanitize(strings.TrimLeft(valuePart, "="))
	if value == "" {
		return Choice{}, false
	}
	return Choice{
		Value:       value,
		Description: helptext.Sanitize(descPart),
	}, true
}

// Merge deduplicates records from the --help and --help-hidden
// listings by name. The visible listing decides ordering; for
// collisions the richer record wins (choices populated, then longer
// description). Records only present in the hidden listing are marked
// Hidden.
func Merge(visible, hidden []*Record) []*Record {
	merged := orderedmap.New[string, *Record]()
	for _, rec := range visible {
		if existing, ok := merged.Get(rec.Name); ok {
			if rec.richness() > existing.richness() {
				merged.Set(rec.Name, rec)
			}
			continue
		}
		merged.Set(rec.Name, rec)
	}

	for _, rec := range hidden {
		existing, ok := merged.Get(rec.Name)
		if !ok {
			rec.Hidden = true
			merged.Set(rec.Name, rec)
			continue
		}
		if rec.richness() > existing.richness() {
			// Keep the richer description but the option stays visible
			merged.Set(rec.Name, rec)
		}
	}

	out := make([]*Record, 0, merged.Len())
	for pair := merged.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Filter drops records that must not reach the completion set:
// inherited LLVM options always, hidden options unless requested.
func Filter(records []*Record, includeHidden bool) []*Record {
	out := make([]*Record, 0, len(records))
	for _, rec := range records {
		if rec.Category == CategoryInherited {
			continue
		}
		if rec.Hidden && !includeHidden {
			continue
		}
		out = append(out, rec)
	}
	return out
}
