package parser

import (
	"fmt"
	"strings"
)

// keywords that terminate or structure the parts of a statement this parser
// understands. Anything else lexed as a word becomes a plain raw token.
var keywords = map[string]struct{}{
	"SELECT": {}, "FROM": {}, "AS": {}, "WHERE": {}, "GROUP": {}, "BY": {},
	"ORDER": {}, "HAVING": {}, "DISTINCT": {}, "ALL": {}, "JOIN": {},
	"LEFT": {}, "RIGHT": {}, "INNER": {}, "OUTER": {}, "FULL": {}, "CROSS": {},
	"ON": {}, "AND": {}, "OR": {}, "NOT": {}, "UNION": {}, "LIMIT": {},
	"OFFSET": {}, "INSERT": {}, "UPDATE": {}, "DELETE": {}, "SET": {},
	"INTO": {}, "VALUES": {}, "CASE": {}, "WHEN": {}, "THEN": {}, "ELSE": {},
	"END": {}, "CAST": {}, "OVER": {}, "PARTITION": {}, "QUALIFY": {},
	"WITH": {}, "USING": {},
}

func isKeyword(text string) bool {
	_, ok := keywords[strings.ToUpper(text)]
	return ok
}

// ParseString parses a SQL document into a lossless concrete syntax tree.
// SELECT statements get full select-clause structure; every other statement
// is kept as a flat token run so the document still round-trips. The parser
// is deliberately lenient: it never rejects input on grammar grounds, since
// lint rules must be able to skip what they do not recognize.
func ParseString(src string) (*Segment, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("empty SQL input")
	}

	toks := lex(src)
	file := &Segment{Kind: KindFile, Pos: Position{Line: 1, Col: 1}}

	i := 0
	for i < len(toks) {
		// Trivia between statements belongs to the file itself.
		for i < len(toks) && toks[i].isTrivia() {
			file.append(leafOf(toks[i]))
			i++
		}
		if i >= len(toks) {
			break
		}
		end := i
		for end < len(toks) && toks[end].kind != tkSemicolon {
			end++
		}
		if end < len(toks) {
			end++ // semicolon closes the statement
		}
		file.append(parseStatement(toks[i:end]))
		i = end
	}

	return file, nil
}

// leafOf maps a lexer token onto a leaf segment.
func leafOf(t token) *Segment {
	var kind Kind
	switch t.kind {
	case tkWhitespace:
		kind = KindWhitespace
	case tkNewline:
		kind = KindNewline
	case tkComment:
		kind = KindComment
	case tkComma:
		kind = KindComma
	case tkDot:
		kind = KindDot
	case tkQuoted:
		kind = KindQuotedIdentifier
	case tkString, tkNumber:
		kind = KindLiteral
	case tkParam:
		kind = KindParameter
	case tkWord:
		if isKeyword(t.text) {
			kind = KindKeyword
		} else {
			kind = KindRaw
		}
	default:
		kind = KindRaw
	}
	return &Segment{Kind: kind, Raw: t.text, Pos: Position{Line: t.line, Col: t.col}}
}

func parseStatement(toks []token) *Segment {
	first := 0
	for first < len(toks) && toks[first].isTrivia() {
		first++
	}
	if first < len(toks) && toks[first].kind == tkWord &&
		strings.EqualFold(toks[first].text, "SELECT") {
		return parseSelect(toks)
	}
	stmt := newNode(KindStatement)
	for _, t := range toks {
		stmt.append(leafOf(t))
	}
	return stmt
}

// parseSelect builds statement > select_clause > select_clause_element
// structure. The select clause runs from the SELECT keyword up to the
// top-level FROM (or end of statement); everything after it stays a flat
// token run on the statement.
func parseSelect(toks []token) *Segment {
	stmt := newNode(KindStatement)
	clause := newNode(KindSelectClause)

	i := 0
	for ; i < len(toks) && toks[i].isTrivia(); i++ {
		stmt.append(leafOf(toks[i]))
	}
	clause.append(leafOf(toks[i])) // SELECT
	i++

	// Optional set quantifier stays directly in the clause.
	for i < len(toks) {
		if toks[i].isTrivia() {
			clause.append(leafOf(toks[i]))
			i++
			continue
		}
		if toks[i].kind == tkWord &&
			(strings.EqualFold(toks[i].text, "DISTINCT") || strings.EqualFold(toks[i].text, "ALL")) {
			clause.append(leafOf(toks[i]))
			i++
			continue
		}
		break
	}

	depth := 0
	var run []token
	flush := func() {
		hasContent := false
		for _, t := range run {
			if !t.isTrivia() {
				hasContent = true
				break
			}
		}
		if !hasContent {
			for _, t := range run {
				clause.append(leafOf(t))
			}
			run = nil
			return
		}
		pre, elem, post := parseElement(run)
		for _, t := range pre {
			clause.append(leafOf(t))
		}
		clause.append(elem)
		for _, t := range post {
			clause.append(leafOf(t))
		}
		run = nil
	}

	for ; i < len(toks); i++ {
		t := toks[i]
		if depth == 0 && t.kind == tkWord && strings.EqualFold(t.text, "FROM") {
			break
		}
		if depth == 0 && t.kind == tkSemicolon {
			break
		}
		switch t.kind {
		case tkLParen:
			depth++
		case tkRParen:
			depth--
		}
		if depth == 0 && t.kind == tkComma {
			flush()
			clause.append(leafOf(t))
			continue
		}
		run = append(run, t)
	}
	flush()
	stmt.append(clause)

	for ; i < len(toks); i++ {
		stmt.append(leafOf(toks[i]))
	}
	return stmt
}

// parseElement splits one select-list run into leading trivia, the
// select_clause_element, and trailing trivia. Leading and trailing trivia
// belong to the clause, not the element.
func parseElement(run []token) (pre []token, elem *Segment, post []token) {
	start, end := 0, len(run)
	for start < end && run[start].isTrivia() {
		start++
	}
	for end > start && run[end-1].isTrivia() {
		end--
	}
	pre, post = run[:start], run[end:]
	core := run[start:end]

	elem = newNode(KindSelectClauseElement)
	if len(core) == 0 {
		return pre, elem, post
	}

	head, alias := splitAlias(core)

	elem.append(parseElementBody(head))

	if alias != nil {
		// Whitespace between the expression and the alias sits directly in
		// the element, so deleting the alias_expression removes "AS name"
		// but not the separator.
		j := 0
		for j < len(alias) && alias[j].isTrivia() {
			elem.append(leafOf(alias[j]))
			j++
		}
		ae := newNode(KindAliasExpression)
		for ; j < len(alias); j++ {
			ae.append(aliasLeaf(alias[j]))
		}
		elem.append(ae)
	}
	return pre, elem, post
}

func aliasLeaf(t token) *Segment {
	if t.kind == tkWord && !isKeyword(t.text) {
		return &Segment{Kind: KindNakedIdentifier, Raw: t.text, Pos: Position{Line: t.line, Col: t.col}}
	}
	return leafOf(t)
}

func isIdentifierToken(t token) bool {
	return t.kind == tkQuoted || (t.kind == tkWord && !isKeyword(t.text))
}

// splitAlias detects a trailing alias on an element run: either
// `expr AS name` or the bare form `expr name`. It returns the expression
// tokens and the alias tokens (separator trivia leading the alias slice), or
// a nil alias when the run has none.
func splitAlias(core []token) (head, alias []token) {
	last := len(core) - 1
	if last < 1 || !isIdentifierToken(core[last]) {
		return core, nil
	}

	// Index of the last non-trivia token before the candidate alias name.
	prev := last - 1
	for prev >= 0 && core[prev].isTrivia() {
		prev--
	}
	if prev < 0 {
		return core, nil
	}

	p := core[prev]
	if p.kind == tkWord && strings.EqualFold(p.text, "AS") {
		cut := prev
		for cut > 0 && core[cut-1].isTrivia() {
			cut--
		}
		if cut == 0 {
			return core, nil // nothing left to alias
		}
		return core[:cut], core[cut:]
	}

	// Bare alias: the name must be separated from the expression by
	// whitespace, and the expression must not end in a dangling dot or
	// operator (that would make the name part of the expression).
	if prev == last-1 {
		return core, nil // no separator
	}
	switch p.kind {
	case tkDot, tkOperator, tkComma, tkLParen:
		return core, nil
	}
	if p.kind == tkWord && isKeyword(p.text) && !strings.EqualFold(p.text, "END") {
		return core, nil
	}
	return core[:prev+1], core[prev+1:]
}

// parseElementBody classifies the expression part of a select-list element.
func parseElementBody(head []token) *Segment {
	if len(head) == 1 {
		switch {
		case head[0].kind == tkOperator && head[0].text == "*":
			return newNode(KindWildcardExpression, leafOf(head[0]))
		case head[0].kind == tkParam:
			// Positional references carry no extractable name but are still
			// reference-shaped, so rules can skip them deliberately.
			return newNode(KindColumnReference, leafOf(head[0]))
		}
	}

	if ref := referenceChain(head); ref != nil {
		return ref
	}

	expr := newNode(KindExpression)
	for _, t := range head {
		expr.append(leafOf(t))
	}
	return expr
}

// referenceChain recognizes `name`, `qual.name`, `a.b.c` and the qualified
// wildcard `t.*`. Returns nil when head is anything else.
func referenceChain(head []token) *Segment {
	wantIdent := true
	for i, t := range head {
		if t.isTrivia() {
			return nil
		}
		if wantIdent {
			if isIdentifierToken(t) {
				wantIdent = false
				continue
			}
			if i == len(head)-1 && i > 0 && t.kind == tkOperator && t.text == "*" {
				wild := newNode(KindWildcardExpression)
				for _, ht := range head {
					wild.append(chainLeaf(ht))
				}
				return wild
			}
			return nil
		}
		if t.kind != tkDot {
			return nil
		}
		wantIdent = true
	}
	if wantIdent {
		return nil // trailing dot
	}
	ref := newNode(KindColumnReference)
	for _, t := range head {
		ref.append(chainLeaf(t))
	}
	return ref
}

func chainLeaf(t token) *Segment {
	if t.kind == tkWord {
		return &Segment{Kind: KindNakedIdentifier, Raw: t.text, Pos: Position{Line: t.line, Col: t.col}}
	}
	return leafOf(t)
}
