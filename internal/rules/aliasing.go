package rules

import (
	"fmt"

	"sql-lint/internal/model"
	"sql-lint/internal/parser"
)

// memoryKeyAliasUsage is where the file-scope alias decision lives in the
// per-file memory.
const memoryKeyAliasUsage = "alias_usage"

// AliasConsistency flags select-list columns whose alias usage deviates from
// the configured policy and synthesizes self-alias or remove-alias fixes.
type AliasConsistency struct {
	policy      model.AliasPolicy
	description string
}

// NewAliasConsistency builds the rule for a configured alias_usage_style.
// Unknown styles are rejected here so a bad configuration never reaches
// evaluation.
func NewAliasConsistency(style string) (*AliasConsistency, error) {
	policy, err := model.ParseAliasPolicy(style)
	if err != nil {
		return nil, fmt.Errorf("aliasing rule: %w", err)
	}
	r := &AliasConsistency{policy: policy}
	switch policy {
	case model.PolicyAlways:
		r.description = "Column should always use an alias."
	case model.PolicyConsistentClause:
		r.description = "Column alias usage should be consistent within the clause."
	case model.PolicyConsistentFile:
		r.description = "Column alias usage should be consistent within the file."
	}
	return r, nil
}

func (r *AliasConsistency) Code() string { return "HNL_A001" }

func (r *AliasConsistency) Name() string { return "aliasing.consistent" }

func (r *AliasConsistency) Kind() parser.Kind { return parser.KindSelectClause }

func (r *AliasConsistency) Level() model.RiskLevel { return model.RiskLevelWarning }

func (r *AliasConsistency) Evaluate(ctx *model.RuleContext) ([]model.LintResult, error) {
	if ctx.Segment.Kind != parser.KindSelectClause {
		panic(fmt.Sprintf("aliasing rule invoked on %q segment", ctx.Segment.Kind))
	}

	// Resolve the active decision. For the file policy the first column of
	// the whole pass decides; the verdict is read back from memory on every
	// later clause visit.
	known := false
	var decision model.AliasDecision
	switch r.policy {
	case model.PolicyAlways:
		decision, known = model.MustHaveAlias, true
	case model.PolicyConsistentFile:
		if d, ok := ctx.Memory[memoryKeyAliasUsage].(model.AliasDecision); ok {
			decision, known = d, true
		}
	}

	var results []model.LintResult
	for _, elem := range ctx.Segment.ChildrenOf(parser.KindSelectClauseElement) {
		ref := elem.Child(parser.KindColumnReference)
		alias := elem.Child(parser.KindAliasExpression)

		// Reference columns without an extractable name ($1 and friends)
		// cannot be aliased safely and are skipped outright.
		var identTok *parser.Segment
		if ref != nil {
			tok, ok := IdentifierToken(ref)
			if !ok {
				continue
			}
			identTok = tok
		}

		hasAlias := alias != nil
		if !known {
			if hasAlias {
				decision = model.MustHaveAlias
			} else {
				decision = model.MustNotHaveAlias
			}
			known = true
			if r.policy == model.PolicyConsistentFile {
				ctx.Memory[memoryKeyAliasUsage] = decision
			}
		}

		if (decision == model.MustHaveAlias) == hasAlias {
			continue
		}

		res := model.LintResult{Anchor: elem, Description: r.description}
		if decision == model.MustHaveAlias {
			// Only reference columns can be self-aliased; for expression
			// columns the intended name is unknowable, so report without a
			// fix.
			if identTok != nil {
				res.Fixes = []model.Edit{AddAlias(ref, identTok)}
			}
		} else {
			res.Fixes = []model.Edit{RemoveAlias(alias)}
		}
		results = append(results, res)
	}
	return results, nil
}
