package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sql-lint/internal/model"
	"sql-lint/internal/rules"
)

func aliasEngine(t *testing.T, style string) *Engine {
	t.Helper()
	rule, err := rules.NewAliasConsistency(style)
	require.NoError(t, err)
	e := New()
	e.Register(rule)
	return e
}

func TestEngine_LintSource_AddAliasFixText(t *testing.T) {
	e := aliasEngine(t, "always")

	issues, root, err := e.LintSource("q.sql", "SELECT a.col_a, b FROM t")
	require.NoError(t, err)
	require.Len(t, issues, 2)

	fixed := ApplyFixes(root, CollectEdits(issues))
	assert.Equal(t, "SELECT a.col_a AS col_a, b AS b FROM t", fixed)
}

func TestEngine_LintSource_RemoveAliasFixText(t *testing.T) {
	e := aliasEngine(t, "consistent_file")

	sql := "SELECT a, b AS b FROM t;\nSELECT c AS c FROM u;"
	issues, root, err := e.LintSource("q.sql", sql)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	fixed := ApplyFixes(root, CollectEdits(issues))
	assert.Equal(t, "SELECT a, b FROM t;\nSELECT c FROM u;", fixed)
}

func TestEngine_FixIdempotence(t *testing.T) {
	tests := []struct {
		name  string
		style string
		sql   string
	}{
		{"always adds self-aliases", "always", "SELECT a.col_a, b, c AS c FROM t"},
		{"file policy removes aliases", "consistent_file", "SELECT a, b AS b FROM t;\nSELECT c AS c FROM u;"},
		{"file policy adds aliases", "consistent_file", "SELECT a AS a, b FROM t;\nSELECT c FROM u;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := aliasEngine(t, tt.style)

			issues, root, err := e.LintSource("q.sql", tt.sql)
			require.NoError(t, err)
			require.NotEmpty(t, issues)

			fixed := ApplyFixes(root, CollectEdits(issues))

			again, _, err := e.LintSource("q.sql", fixed)
			require.NoError(t, err)
			assert.Empty(t, again, "fixed source should lint clean, got %v from %q", again, fixed)
		})
	}
}

func TestEngine_ConsistentFileMemorySpansSegments(t *testing.T) {
	e := aliasEngine(t, "consistent_file")

	// Two segments extracted from the same file share one pass: the first
	// segment's first column decides for both.
	segments := []model.SQLSegment{
		{SQL: "SELECT a FROM t", Location: model.Location{FilePath: "app.go", Line: 10}},
		{SQL: "SELECT b AS b FROM u", Location: model.Location{FilePath: "app.go", Line: 20}},
	}
	issues, err := e.LintFile("app.go", segments)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 20, issues[0].Location.Line, "line offset by segment location")

	// Separate files get fresh memory: the same second segment alone is
	// internally consistent.
	issues, err = e.LintFile("other.go", segments[1:])
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngine_NoqaSuppressesReportedIssues(t *testing.T) {
	e := aliasEngine(t, "always")

	issues, _, err := e.LintSource("q.sql", "SELECT a, -- noqa: HNL_A001\n    b FROM t")
	require.NoError(t, err)
	require.Len(t, issues, 1, "only the unsuppressed line reports")
	assert.Equal(t, 2, issues[0].Location.Line)
}

func TestEngine_IssueMetadata(t *testing.T) {
	e := aliasEngine(t, "always")

	issues, _, err := e.LintSource("queries/q.sql", "SELECT x.col FROM x")
	require.NoError(t, err)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, "HNL_A001", issue.RuleCode)
	assert.Equal(t, model.RiskLevelWarning, issue.Level)
	assert.Equal(t, "queries/q.sql", issue.Location.FilePath)
	assert.Equal(t, 1, issue.Location.Line)
	assert.Equal(t, 8, issue.Location.Col)
	assert.Equal(t, "x.col", issue.SQL)
	assert.True(t, issue.Fixable())
}

func TestEngine_OrderingAndAliasingTogether(t *testing.T) {
	e := aliasEngine(t, "always")
	e.Register(rules.NewColumnOrdering())

	issues, _, err := e.LintSource("q.sql", "SELECT SourceSystemCode, BKDate FROM t")
	require.NoError(t, err)

	var codes []string
	for _, issue := range issues {
		codes = append(codes, issue.RuleCode)
	}
	// Two aliasing violations plus two ordering violations.
	assert.ElementsMatch(t, []string{"HNL_A001", "HNL_A001", "HNL_A002", "HNL_A002"}, codes)
}
