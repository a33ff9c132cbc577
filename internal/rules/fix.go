package rules

import (
	"sql-lint/internal/model"
	"sql-lint/internal/parser"
)

// AddAlias builds the edit that self-aliases a reference column: a space,
// the AS keyword, a space, and a copy of the identifier token, inserted
// right after the column reference. Inserting after the reference rather
// than after the whole clause element keeps placement correct when the
// element carries trailing tokens.
func AddAlias(ref *parser.Segment, ident *parser.Segment) model.Edit {
	return model.Edit{
		Op:     model.EditInsertAfter,
		Target: ref,
		Insert: []*parser.Segment{
			parser.NewToken(parser.KindWhitespace, " "),
			parser.NewToken(parser.KindKeyword, "AS"),
			parser.NewToken(parser.KindWhitespace, " "),
			ident.Clone(),
		},
	}
}

// RemoveAlias builds the edit that deletes the whole alias expression
// (keyword, internal whitespace and name together). Cleaning up the now
// orphaned separator whitespace is the fixer's job.
func RemoveAlias(alias *parser.Segment) model.Edit {
	return model.Edit{Op: model.EditDelete, Target: alias}
}
