package options

import (
	"strings"
)

// decodedOption is the result of splitting the flag token of an option
// header into its parts.
type decodedOption struct {
	Name      string
	Style     Style
	ValueHint string
}

// decodeOption splits the part of an option line before the description
// separator. The token shapes it understands:
//
//	--flag                      flag style
//	--opt=<value>               attached, hint from the token tail
//	--opt[=<value>]             attached with optional value
//	--opt <n>                   separate, hint from the next token
func decodeOption(optionPart string) decodedOption {
	tokens := strings.Fields(optionPart)
	if len(tokens) == 0 {
		return decodedOption{Style: StyleFlag}
	}
	token := tokens[0]
	remainder := strings.TrimSpace(optionPart[len(token):])

	decoded := decodedOption{
		Name:  token,
		Style: StyleFlag,
	}

	if eq := strings.Index(token, "="); eq >= 0 {
		decoded.Name = strings.TrimRight(token[:eq], "[")
		decoded.Style = StyleAttached
		tail := strings.TrimRight(token[eq+1:], "]")
		if tail != "" {
			decoded.ValueHint = tail
		} else if strings.HasPrefix(remainder, "<") {
			decoded.ValueHint = strings.Fields(remainder)[0]
		}
	} else if strings.HasPrefix(remainder, "<") {
		decoded.Style = StyleSeparate
		decoded.ValueHint = strings.Fields(remainder)[0]
	}

	decoded.Name = strings.TrimRight(decoded.Name, ",")
	return decoded
}
