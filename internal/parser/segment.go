package parser

import "strings"

// Position is the 1-based source location of a segment's first character.
type Position struct {
	Line int
	Col  int
}

// Kind tags the grammatical role of a segment.
type Kind string

const (
	KindFile                Kind = "file"
	KindStatement           Kind = "statement"
	KindSelectClause        Kind = "select_clause"
	KindSelectClauseElement Kind = "select_clause_element"
	KindColumnReference     Kind = "column_reference"
	KindAliasExpression     Kind = "alias_expression"
	KindExpression          Kind = "expression"
	KindWildcardExpression  Kind = "wildcard_expression"
	KindNakedIdentifier     Kind = "naked_identifier"
	KindQuotedIdentifier    Kind = "quoted_identifier"
	KindParameter           Kind = "parameter"
	KindKeyword             Kind = "keyword"
	KindWhitespace          Kind = "whitespace"
	KindNewline             Kind = "newline"
	KindComma               Kind = "comma"
	KindComment             Kind = "comment"
	KindLiteral             Kind = "literal"
	KindDot                 Kind = "dot"
	KindRaw                 Kind = "raw"
)

// Segment is one node of the concrete syntax tree. Leaf segments carry the
// raw source text; composite segments carry ordered children. Concatenating
// the Raw of all leaves in document order reproduces the parsed input
// byte-for-byte, which is what makes declarative edits applicable.
type Segment struct {
	Kind     Kind
	Raw      string
	Children []*Segment
	Pos      Position

	parent *Segment
}

// NewToken constructs a fresh leaf segment. Tokens synthesized for fixes get
// a zero position; the host renumbers when the fixed source is re-parsed.
func NewToken(kind Kind, raw string) *Segment {
	return &Segment{Kind: kind, Raw: raw}
}

func newNode(kind Kind, children ...*Segment) *Segment {
	n := &Segment{Kind: kind}
	n.append(children...)
	return n
}

func (s *Segment) append(children ...*Segment) {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = s
		if len(s.Children) == 0 && s.Raw == "" {
			s.Pos = c.Pos
		}
		s.Children = append(s.Children, c)
	}
}

// IsLeaf reports whether the segment is a raw token.
func (s *Segment) IsLeaf() bool { return len(s.Children) == 0 }

// Parent returns the enclosing segment, or nil for the root.
func (s *Segment) Parent() *Segment { return s.parent }

// Child returns the first direct child of the given kind, or nil.
func (s *Segment) Child(kind Kind) *Segment {
	for _, c := range s.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// ChildrenOf returns all direct children of the given kind in order.
func (s *Segment) ChildrenOf(kind Kind) []*Segment {
	var out []*Segment
	for _, c := range s.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Recursive returns every segment of the given kind in the subtree rooted at
// s (including s itself), depth-first in document order.
func (s *Segment) Recursive(kind Kind) []*Segment {
	var out []*Segment
	var walk func(*Segment)
	walk = func(seg *Segment) {
		if seg.Kind == kind {
			out = append(out, seg)
		}
		for _, c := range seg.Children {
			walk(c)
		}
	}
	walk(s)
	return out
}

// Leaves returns the raw tokens of the subtree in document order.
func (s *Segment) Leaves() []*Segment {
	var out []*Segment
	var walk func(*Segment)
	walk = func(seg *Segment) {
		if seg.IsLeaf() {
			out = append(out, seg)
			return
		}
		for _, c := range seg.Children {
			walk(c)
		}
	}
	walk(s)
	return out
}

// Render reconstructs the source text of the subtree.
func (s *Segment) Render() string {
	var b strings.Builder
	for _, leaf := range s.Leaves() {
		b.WriteString(leaf.Raw)
	}
	return b.String()
}

// Clone deep-copies the subtree. The copy is detached from any parent so it
// can be inserted elsewhere as fix material.
func (s *Segment) Clone() *Segment {
	c := &Segment{Kind: s.Kind, Raw: s.Raw, Pos: s.Pos}
	for _, child := range s.Children {
		cc := child.Clone()
		cc.parent = c
		c.Children = append(c.Children, cc)
	}
	return c
}
