package parser

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tkWord tokenKind = iota
	tkQuoted
	tkString
	tkNumber
	tkComma
	tkDot
	tkLParen
	tkRParen
	tkSemicolon
	tkParam
	tkOperator
	tkWhitespace
	tkNewline
	tkComment
)

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

// lex splits src into a lossless token stream: every input character ends up
// in exactly one token, including whitespace and comments.
func lex(src string) []token {
	l := &lexer{src: []rune(src), line: 1, col: 1}
	var toks []token
	for l.pos < len(l.src) {
		toks = append(toks, l.next())
	}
	return toks
}

func (l *lexer) peek(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

// take consumes n runes and returns them, tracking line/col.
func (l *lexer) take(n int) string {
	start := l.pos
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
	return string(l.src[start:l.pos])
}

// takeWhile consumes runes while pred holds.
func (l *lexer) takeWhile(pred func(rune) bool) string {
	n := 0
	for l.pos+n < len(l.src) && pred(l.src[l.pos+n]) {
		n++
	}
	return l.take(n)
}

// takeUntil consumes runes up to and including the terminator sequence, or
// to end of input. Doubled terminators escape when escapeDoubles is set
// (SQL-style '' inside strings, "" inside quoted identifiers).
func (l *lexer) takeUntil(term rune, escapeDoubles bool) string {
	var b strings.Builder
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		b.WriteString(l.take(1))
		if r == term {
			if escapeDoubles && l.peek(0) == term {
				b.WriteString(l.take(1))
				continue
			}
			break
		}
	}
	return b.String()
}

func isWordStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isWordPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *lexer) next() token {
	line, col := l.line, l.col
	r := l.peek(0)

	tok := func(kind tokenKind, text string) token {
		return token{kind: kind, text: text, line: line, col: col}
	}

	switch {
	case r == '\n':
		return tok(tkNewline, l.take(1))
	case r == ' ' || r == '\t' || r == '\r':
		return tok(tkWhitespace, l.takeWhile(func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\r'
		}))
	case r == '-' && l.peek(1) == '-':
		return tok(tkComment, l.takeWhile(func(r rune) bool { return r != '\n' }))
	case r == '/' && l.peek(1) == '*':
		text := l.take(2)
		for l.pos < len(l.src) {
			if l.peek(0) == '*' && l.peek(1) == '/' {
				text += l.take(2)
				break
			}
			text += l.take(1)
		}
		return tok(tkComment, text)
	case r == '"':
		return tok(tkQuoted, l.take(1)+l.takeUntil('"', true))
	case r == '`':
		return tok(tkQuoted, l.take(1)+l.takeUntil('`', false))
	case r == '[':
		return tok(tkQuoted, l.take(1)+l.takeUntil(']', false))
	case r == '\'':
		return tok(tkString, l.take(1)+l.takeUntil('\'', true))
	case isWordStart(r):
		return tok(tkWord, l.takeWhile(isWordPart))
	case unicode.IsDigit(r):
		return tok(tkNumber, l.takeWhile(func(r rune) bool {
			return unicode.IsDigit(r) || r == '.'
		}))
	case r == '$' && unicode.IsDigit(l.peek(1)):
		return tok(tkParam, l.take(1)+l.takeWhile(unicode.IsDigit))
	case r == ':' && isWordStart(l.peek(1)):
		return tok(tkParam, l.take(1)+l.takeWhile(isWordPart))
	case r == '?':
		return tok(tkParam, l.take(1))
	case r == ',':
		return tok(tkComma, l.take(1))
	case r == '.':
		return tok(tkDot, l.take(1))
	case r == '(':
		return tok(tkLParen, l.take(1))
	case r == ')':
		return tok(tkRParen, l.take(1))
	case r == ';':
		return tok(tkSemicolon, l.take(1))
	default:
		return tok(tkOperator, l.take(1))
	}
}

func (t token) isTrivia() bool {
	return t.kind == tkWhitespace || t.kind == tkNewline || t.kind == tkComment
}
