package rules

import (
	"fmt"
	"strings"

	"sql-lint/internal/model"
	"sql-lint/internal/parser"
)

// ForbiddenColumns reports select-list columns whose output name is on the
// configured deny list. No fix: removing a column changes query semantics.
type ForbiddenColumns struct {
	names map[string]string // lowercased name -> configured spelling
}

func NewForbiddenColumns(columns []string) *ForbiddenColumns {
	names := make(map[string]string, len(columns))
	for _, c := range columns {
		names[strings.ToLower(c)] = c
	}
	return &ForbiddenColumns{names: names}
}

func (r *ForbiddenColumns) Code() string { return "HNL_A003" }

func (r *ForbiddenColumns) Name() string { return "references.forbidden_columns" }

func (r *ForbiddenColumns) Kind() parser.Kind { return parser.KindSelectClause }

func (r *ForbiddenColumns) Level() model.RiskLevel { return model.RiskLevelFatal }

func (r *ForbiddenColumns) Evaluate(ctx *model.RuleContext) ([]model.LintResult, error) {
	if ctx.Segment.Kind != parser.KindSelectClause {
		panic(fmt.Sprintf("forbidden-columns rule invoked on %q segment", ctx.Segment.Kind))
	}
	if len(r.names) == 0 {
		return nil, nil
	}

	var results []model.LintResult
	for _, elem := range ctx.Segment.ChildrenOf(parser.KindSelectClauseElement) {
		ident, ok := displayIdentifier(elem)
		if !ok {
			continue
		}
		if configured, found := r.names[strings.ToLower(ident)]; found {
			results = append(results, model.LintResult{
				Anchor:      elem,
				Description: fmt.Sprintf("Use of forbidden column %q.", configured),
			})
		}
	}
	return results, nil
}
