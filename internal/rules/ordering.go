package rules

import (
	"fmt"
	"sort"
	"strings"

	"sql-lint/internal/model"
	"sql-lint/internal/parser"
)

// ColumnOrdering reports select-list columns that are not in canonical
// order. It never fixes: reordering is left to manual review.
//
// Canonical order sorts by category first, then by lowercased identifier:
// business keys (BK prefix) come first, then ID-suffixed columns, then
// everything else, with SourceSystemCode always last.
type ColumnOrdering struct{}

func NewColumnOrdering() *ColumnOrdering { return &ColumnOrdering{} }

func (r *ColumnOrdering) Code() string { return "HNL_A002" }

func (r *ColumnOrdering) Name() string { return "layout.column_order" }

func (r *ColumnOrdering) Kind() parser.Kind { return parser.KindSelectClause }

func (r *ColumnOrdering) Level() model.RiskLevel { return model.RiskLevelSuggestion }

func orderCategory(ident string) int {
	switch {
	case strings.HasPrefix(ident, "BK"):
		return 0
	case strings.HasSuffix(ident, "ID"):
		return 1
	case ident == "BKSourceSystem" || ident == "SourceSystemID":
		return 2
	case ident == "SourceSystemCode":
		return 4
	default:
		return 3
	}
}

type orderEntry struct {
	ident string
	elem  *parser.Segment
}

func (r *ColumnOrdering) Evaluate(ctx *model.RuleContext) ([]model.LintResult, error) {
	if ctx.Segment.Kind != parser.KindSelectClause {
		panic(fmt.Sprintf("ordering rule invoked on %q segment", ctx.Segment.Kind))
	}

	suppressed := SuppressedLines(ctx.Segment, r.Code())

	// Suppressed and unnamed columns are excluded from both the observed and
	// the canonical sequence, so they can never shift a violation onto a
	// neighbor.
	var actual []orderEntry
	for _, elem := range ctx.Segment.ChildrenOf(parser.KindSelectClauseElement) {
		ident, ok := displayIdentifier(elem)
		if !ok || suppressed[elem.Pos.Line] {
			continue
		}
		actual = append(actual, orderEntry{ident: ident, elem: elem})
	}

	canonical := make([]orderEntry, len(actual))
	copy(canonical, actual)
	sort.SliceStable(canonical, func(i, j int) bool {
		ci, cj := orderCategory(canonical[i].ident), orderCategory(canonical[j].ident)
		if ci != cj {
			return ci < cj
		}
		return strings.ToLower(canonical[i].ident) < strings.ToLower(canonical[j].ident)
	})

	// Position-wise diff: a column at the wrong index is a violation even
	// when a duplicate identifier sits at the right one.
	var results []model.LintResult
	for i := range actual {
		if actual[i].elem == canonical[i].elem && actual[i].ident == canonical[i].ident {
			continue
		}
		results = append(results, model.LintResult{
			Anchor: actual[i].elem,
			Description: fmt.Sprintf("Column %q is out of order, expected %q at this position.",
				actual[i].ident, canonical[i].ident),
		})
	}
	return results, nil
}
