package model

import "sql-lint/internal/parser"

// Extractor is responsible for pulling SQL segments out of a file.
type Extractor interface {
	// Extract parses the given file content and returns found SQL segments.
	Extract(filePath string, content []byte) ([]SQLSegment, error)
}

// Rule represents a single lint rule evaluated over syntax subtrees.
type Rule interface {
	// Code returns the rule identifier used in reports and noqa
	// suppressions, e.g. "HNL_A001".
	Code() string
	// Name returns a short human-readable rule name.
	Name() string
	// Kind returns the segment kind the crawler dispatches this rule on.
	Kind() parser.Kind
	// Level returns the severity assigned to this rule's findings.
	Level() RiskLevel
	// Evaluate inspects one matched subtree and returns violations.
	// Invoking a rule on a segment of the wrong kind is a crawler bug and
	// panics rather than being reported.
	Evaluate(ctx *RuleContext) ([]LintResult, error)
}

// Reporter defines how to output results.
type Reporter interface {
	Report(issues []Issue) error
}
