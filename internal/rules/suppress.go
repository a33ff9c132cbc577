package rules

import (
	"strings"

	"sql-lint/internal/parser"
)

// SuppressedLines scans the statement enclosing seg for noqa comments and
// returns the set of source lines on which the given rule is disabled.
// `-- noqa` disables every rule on its line; `-- noqa: A,B` disables the
// named rules only.
func SuppressedLines(seg *parser.Segment, code string) map[int]bool {
	stmt := seg
	for stmt.Parent() != nil && stmt.Kind != parser.KindStatement {
		stmt = stmt.Parent()
	}

	lines := make(map[int]bool)
	for _, c := range stmt.Recursive(parser.KindComment) {
		if suppresses(c.Raw, code) {
			lines[c.Pos.Line] = true
		}
	}
	return lines
}

func suppresses(comment, code string) bool {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, "--") {
		return false
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, "--"))
	if !strings.HasPrefix(text, "noqa") {
		return false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(text, "noqa"))
	if rest == "" {
		return true
	}
	if !strings.HasPrefix(rest, ":") {
		return false
	}
	for _, c := range strings.Split(rest[1:], ",") {
		if strings.EqualFold(strings.TrimSpace(c), code) {
			return true
		}
	}
	return false
}
