package linter

import (
	"fmt"

	"sql-lint/internal/model"
	"sql-lint/internal/parser"
	"sql-lint/internal/rules"
)

// Engine owns the registered rules and runs lint passes. One pass covers one
// file: all segments of that file share a single Memory, so file-scoped rule
// state never leaks across files. Engines are safe to share across files as
// long as each file is linted by one goroutine at a time per call.
type Engine struct {
	rules     []model.Rule
	validator *parser.Validator
}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) Register(rule model.Rule) {
	e.rules = append(e.rules, rule)
}

// SetValidator enables tidb-based syntax pre-validation of segments before
// the CST parser sees them.
func (e *Engine) SetValidator(v *parser.Validator) {
	e.validator = v
}

// LintFile runs one lint pass over all SQL segments extracted from a file.
func (e *Engine) LintFile(path string, segments []model.SQLSegment) ([]model.Issue, error) {
	memory := model.Memory{}
	var issues []model.Issue

	for _, seg := range segments {
		if e.validator != nil {
			if err := e.validator.Validate(seg.SQL); err != nil {
				issues = append(issues, model.Issue{
					RuleCode: "SYNTAX",
					Level:    model.RiskLevelWarning,
					Message:  fmt.Sprintf("SQL could not be parsed: %v", err),
					Location: seg.Location,
					SQL:      seg.SQL,
				})
				continue
			}
		}

		root, err := parser.ParseString(seg.SQL)
		if err != nil {
			continue
		}
		found, err := e.lintTree(root, path, seg.Location.Line, memory)
		if err != nil {
			return nil, err
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

// LintSource lints a standalone SQL document and also returns the parsed
// tree, so callers can apply the synthesized fixes against it.
func (e *Engine) LintSource(path, sql string) ([]model.Issue, *parser.Segment, error) {
	root, err := parser.ParseString(sql)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	issues, err := e.lintTree(root, path, 1, model.Memory{})
	if err != nil {
		return nil, nil, err
	}
	return issues, root, nil
}

// lintTree crawls every statement of the parsed document in source order and
// dispatches matching segments to each rule. baseLine shifts reported lines
// when the document was extracted from the middle of a host file.
func (e *Engine) lintTree(root *parser.Segment, path string, baseLine int, memory model.Memory) ([]model.Issue, error) {
	var issues []model.Issue

	statements := root.Recursive(parser.KindStatement)
	for _, stmt := range statements {
		for _, rule := range e.rules {
			suppressed := rules.SuppressedLines(stmt, rule.Code())
			for _, seg := range stmt.Recursive(rule.Kind()) {
				results, err := rule.Evaluate(&model.RuleContext{Segment: seg, Memory: memory})
				if err != nil {
					return nil, fmt.Errorf("rule %s: %w", rule.Code(), err)
				}
				for _, res := range results {
					if res.Anchor != nil && suppressed[res.Anchor.Pos.Line] {
						continue
					}
					issues = append(issues, e.toIssue(rule, res, path, baseLine))
				}
			}
		}
	}
	return issues, nil
}

func (e *Engine) toIssue(rule model.Rule, res model.LintResult, path string, baseLine int) model.Issue {
	issue := model.Issue{
		RuleCode: rule.Code(),
		Level:    rule.Level(),
		Message:  res.Description,
		Fixes:    res.Fixes,
		Location: model.Location{FilePath: path, Line: baseLine, Col: 1},
	}
	if res.Anchor != nil {
		issue.SQL = res.Anchor.Render()
		issue.Location.Line = baseLine + res.Anchor.Pos.Line - 1
		issue.Location.Col = res.Anchor.Pos.Col
	}
	return issue
}
