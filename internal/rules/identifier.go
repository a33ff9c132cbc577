package rules

import (
	"sql-lint/internal/parser"
)

// IdentifierToken returns the token that names a reference-like segment
// (column_reference or alias_expression): the quoted identifier if present,
// else the last naked identifier of the chain. In a qualified reference like
// a.col_a the leading identifiers are table qualifiers, so the last one is
// the column name. References without either child (positional parameters,
// $1 and friends) have no name and report false.
func IdentifierToken(seg *parser.Segment) (*parser.Segment, bool) {
	if q := seg.Child(parser.KindQuotedIdentifier); q != nil {
		return q, true
	}
	naked := seg.ChildrenOf(parser.KindNakedIdentifier)
	if len(naked) == 0 {
		return nil, false
	}
	return naked[len(naked)-1], true
}

// ExtractIdentifier returns the display identifier of a reference-like
// segment, with quoting delimiters stripped.
func ExtractIdentifier(seg *parser.Segment) (string, bool) {
	tok, ok := IdentifierToken(seg)
	if !ok {
		return "", false
	}
	return StripQuotes(tok.Raw), true
}

// StripQuotes removes a matching pair of identifier quoting delimiters.
func StripQuotes(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	first, last := raw[0], raw[len(raw)-1]
	switch {
	case first == '"' && last == '"',
		first == '\'' && last == '\'',
		first == '`' && last == '`',
		first == '[' && last == ']':
		return raw[1 : len(raw)-1]
	}
	return raw
}

// displayIdentifier is the name a select-list element contributes to the
// query output: the alias name when aliased, else the reference name.
func displayIdentifier(elem *parser.Segment) (string, bool) {
	if alias := elem.Child(parser.KindAliasExpression); alias != nil {
		if ident, ok := ExtractIdentifier(alias); ok {
			return ident, true
		}
	}
	if ref := elem.Child(parser.KindColumnReference); ref != nil {
		return ExtractIdentifier(ref)
	}
	return "", false
}
