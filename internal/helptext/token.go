package helptext

import (
	"regexp"
	"strings"

	"github.com/oowekyala/mlir-zsh-plugin/internal/herrors"
)

// LineKind classifies one line of the help listing
type LineKind int

// Line kinds, in rough order of how often they appear
const (
	// LineBlank is an empty or whitespace-only line
	LineBlank LineKind = iota
	// LineOption is a dash-led option header, e.g. "--canonicalize - ..."
	LineOption
	// LineEnumValue is an "=value - description" case of an enumerated option
	LineEnumValue
	// LineSectionHeader introduces a new section, e.g. "Passes:"
	LineSectionHeader
	// LineContinuation is wrapped description text under an option
	LineContinuation
)

// Line is one tokenized line of help text
type Line struct {
	// Raw is the original line including indentation
	Raw string
	// Text is the line with surrounding whitespace stripped
	Text string
	// Indent is the number of leading whitespace characters
	Indent int
	// Kind tags the structural role of the line
	Kind LineKind
}

// optionLinePattern matches the flag token that opens an option header:
// one or two dashes followed by an identifier character.
var optionLinePattern = regexp.MustCompile(`^-{1,2}[A-Za-z0-9]`)

// whitespacePattern collapses runs of whitespace in descriptions
var whitespacePattern = regexp.MustCompile(`\s+`)

// Sanitize collapses internal whitespace and trims a description fragment
func Sanitize(text string) string {
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(text), " ")
}

// Tokenize splits raw help text into tagged line records.
//
// Indentation is recorded but never used to associate a line with an
// option: value hints are printed at a fixed column regardless of the
// description's nesting, so association is by sequential adjacency
// (an enum value or continuation belongs to the nearest preceding
// option header). Returns a ParseError when not a single line matches
// the option-line pattern.
func Tokenize(text string) ([]Line, error) {
	rawLines := strings.Split(text, "\n")
	lines := make([]Line, 0, len(rawLines))
	optionLines := 0

	for _, raw := range rawLines {
		stripped := strings.TrimSpace(raw)
		line := Line{
			Raw:    raw,
			Text:   stripped,
			Indent: indentOf(raw),
		}

		switch {
		case stripped == "":
			line.Kind = LineBlank
		case strings.HasPrefix(stripped, "="):
			line.Kind = LineEnumValue
		case optionLinePattern.MatchString(stripped):
			line.Kind = LineOption
			optionLines++
		case strings.HasSuffix(stripped, ":"):
			line.Kind = LineSectionHeader
		default:
			line.Kind = LineContinuation
		}

		lines = append(lines, line)
	}

	if optionLines == 0 {
		return nil, herrors.NewParseError("no option lines found in help output")
	}

	return lines, nil
}

func indentOf(raw string) int {
	return len(raw) - len(strings.TrimLeft(raw, " \t"))
}
