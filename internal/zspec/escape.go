// Package zspec serializes classified option records into zsh
// completion specs and a shell-agnostic candidate list.
package zspec

import (
	"strings"
)

// escColons escapes colons, which separate the fields of a zsh optspec.
// Inside nested value groups the escaping doubles.
func escColons(s string, depth int) string {
	return strings.ReplaceAll(s, ":", strings.Repeat(`\`, depth)+":")
}

// choiceDescReplacer escapes characters that terminate a value:description
// entry inside a ((...)) group.
var choiceDescReplacer = strings.NewReplacer(
	" ", `\ `,
	"(", `\(`,
	")", `\)`,
)

// escChoiceDesc escapes a choice description for use in a ((v:desc ...))
// group. Empty descriptions get a placeholder so the group stays well formed.
func escChoiceDesc(desc string) string {
	desc = strings.TrimSpace(desc)
	escaped := escColons(choiceDescReplacer.Replace(desc), 2)
	if escaped == "" {
		return "no description"
	}
	return escaped
}

// escBrackets escapes closing brackets inside an optspec description
func escBrackets(s string) string {
	return strings.ReplaceAll(s, "]", `\]`)
}
