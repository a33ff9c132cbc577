package model

import (
	"fmt"

	"sql-lint/internal/parser"
)

// Location represents the physical location of a finding.
type Location struct {
	FilePath string
	Line     int
	Col      int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.FilePath, l.Line, l.Col)
}

// SQLSegment represents an extracted SQL statement or document: either a
// whole .sql file or a string literal pulled out of source code.
type SQLSegment struct {
	SQL      string
	Location Location
	Language string // e.g., "sql", "go", "python"
}

// RiskLevel defines the severity of a finding.
type RiskLevel string

const (
	RiskLevelFatal      RiskLevel = "FATAL"
	RiskLevelWarning    RiskLevel = "WARNING"
	RiskLevelSuggestion RiskLevel = "SUGGESTION"
)

// AliasPolicy selects how the alias-consistency rule decides whether columns
// should carry an alias.
type AliasPolicy string

const (
	// PolicyAlways requires an alias on every column.
	PolicyAlways AliasPolicy = "always"
	// PolicyConsistentClause lets the first column of each clause decide for
	// that clause.
	PolicyConsistentClause AliasPolicy = "consistent_clause"
	// PolicyConsistentFile lets the first column seen anywhere in the file
	// decide for the whole file.
	PolicyConsistentFile AliasPolicy = "consistent_file"
)

// ParseAliasPolicy validates a configured alias_usage_style value. Unknown
// values are a configuration error and are rejected before any file is
// linted.
func ParseAliasPolicy(s string) (AliasPolicy, error) {
	switch AliasPolicy(s) {
	case PolicyAlways, PolicyConsistentClause, PolicyConsistentFile:
		return AliasPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown alias_usage_style %q (want always, consistent_clause or consistent_file)", s)
	}
}

// AliasDecision is the inferred verdict for a scope: every column must have
// an alias, or none may.
type AliasDecision int

const (
	MustHaveAlias AliasDecision = iota
	MustNotHaveAlias
)

// Memory is per-file rule state, threaded through every rule evaluation of
// one lint pass. Each file pass owns its own instance; it is not safe to
// share across concurrently linted files.
type Memory map[string]any

// RuleContext bundles what a rule evaluation may touch: the matched subtree
// and the file-scoped memory.
type RuleContext struct {
	Segment *parser.Segment
	Memory  Memory
}

// EditOp is the closed set of mutations a fix may request. The tree itself
// is never mutated by rules; the fixer interprets these commands.
type EditOp int

const (
	EditInsertAfter EditOp = iota
	EditDelete
)

// Edit is one declarative mutation: insert fresh tokens after Target, or
// delete the Target subtree.
type Edit struct {
	Op     EditOp
	Target *parser.Segment
	Insert []*parser.Segment
}

// LintResult is one violation reported by a rule: an anchor segment, a
// description, and zero or more edits that would fix it.
type LintResult struct {
	Anchor      *parser.Segment
	Description string
	Fixes       []Edit
}

// Issue is a reporter-facing finding with resolved file position.
type Issue struct {
	RuleCode string
	Level    RiskLevel
	Message  string
	Location Location
	SQL      string // offending snippet
	Fixes    []Edit
}

// Fixable reports whether the issue carries an automatic fix.
func (i Issue) Fixable() bool { return len(i.Fixes) > 0 }
