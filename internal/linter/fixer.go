package linter

import (
	"strings"

	"sql-lint/internal/model"
	"sql-lint/internal/parser"
)

// ApplyFixes renders the tree back to source text with the given edits
// applied. Inserted tokens are emitted right after the last leaf of their
// target; deleted subtrees are dropped together with the whitespace token
// immediately preceding them, which the alias removal leaves orphaned.
//
// Edits from one lint pass target distinct segments (one fix per column), so
// they can be applied together in a single rendering.
func ApplyFixes(root *parser.Segment, edits []model.Edit) string {
	inserts := make(map[*parser.Segment][]*parser.Segment)
	deleted := make(map[*parser.Segment]bool)

	for _, e := range edits {
		switch e.Op {
		case model.EditInsertAfter:
			inserts[e.Target] = append(inserts[e.Target], e.Insert...)
		case model.EditDelete:
			deleted[e.Target] = true
			if ws := precedingWhitespace(e.Target); ws != nil {
				deleted[ws] = true
			}
		}
	}

	var b strings.Builder
	var render func(*parser.Segment)
	render = func(seg *parser.Segment) {
		if deleted[seg] {
			return
		}
		if seg.IsLeaf() {
			b.WriteString(seg.Raw)
		} else {
			for _, c := range seg.Children {
				render(c)
			}
		}
		for _, ins := range inserts[seg] {
			b.WriteString(ins.Render())
		}
	}
	render(root)
	return b.String()
}

// precedingWhitespace finds the whitespace sibling directly before seg, if
// any.
func precedingWhitespace(seg *parser.Segment) *parser.Segment {
	p := seg.Parent()
	if p == nil {
		return nil
	}
	var prev *parser.Segment
	for _, c := range p.Children {
		if c == seg {
			break
		}
		prev = c
	}
	if prev != nil && prev.Kind == parser.KindWhitespace {
		return prev
	}
	return nil
}

// CollectEdits flattens the fixes of a set of issues.
func CollectEdits(issues []model.Issue) []model.Edit {
	var edits []model.Edit
	for _, issue := range issues {
		edits = append(edits, issue.Fixes...)
	}
	return edits
}
