package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sql-lint/internal/model"
	"sql-lint/internal/parser"
)

func evalOrdering(t *testing.T, sql string) []model.LintResult {
	t.Helper()
	rule := NewColumnOrdering()
	clause := selectClause(t, sql)
	results, err := rule.Evaluate(&model.RuleContext{Segment: clause, Memory: model.Memory{}})
	require.NoError(t, err)
	return results
}

func TestOrderCategory(t *testing.T) {
	tests := []struct {
		ident string
		want  int
	}{
		{"BKInvoicedDate", 0},
		{"BKSourceSystem", 0}, // BK prefix wins before the exact-match bucket
		{"CustomerID", 1},
		{"SourceSystemID", 1},
		{"AmountInvoiced", 3},
		{"SourceSystemCode", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, orderCategory(tt.ident), "orderCategory(%q)", tt.ident)
	}
}

func TestColumnOrdering_AllPositionsDiffer(t *testing.T) {
	// Canonical order: BKInvoicedDate, BKSourceSystem, AmountInvoiced,
	// InvoicedDate, SourceSystemCode. Every observed position differs.
	sql := "SELECT AmountInvoiced, SourceSystemCode, InvoicedDate, BKSourceSystem, BKInvoicedDate FROM t"
	results := evalOrdering(t, sql)
	require.Len(t, results, 5)

	assert.Contains(t, results[0].Description, `"AmountInvoiced" is out of order`)
	assert.Contains(t, results[0].Description, `expected "BKInvoicedDate"`)
	for _, r := range results {
		assert.Empty(t, r.Fixes, "ordering rule must not fix")
	}
}

func TestColumnOrdering_CanonicalInputClean(t *testing.T) {
	sql := "SELECT BKInvoicedDate, BKSourceSystem, AmountInvoiced, InvoicedDate, SourceSystemCode FROM t"
	assert.Empty(t, evalOrdering(t, sql))
}

func TestColumnOrdering_AliasNameTakesPrecedence(t *testing.T) {
	// The alias is what appears in the output, so ordering compares it, not
	// the underlying reference.
	sql := "SELECT a AS ZZZ, b AS AAA FROM t"
	results := evalOrdering(t, sql)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Description, `"ZZZ" is out of order`)
}

func TestColumnOrdering_SuppressedLineExcluded(t *testing.T) {
	tests := []struct {
		name    string
		comment string
	}{
		{"bare noqa", "-- noqa"},
		{"rule-specific noqa", "-- noqa: HNL_A002"},
		{"rule list", "-- noqa: HNL_A001, HNL_A002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// SourceSystemCode must sort last, but its line is suppressed,
			// so it drops out of both sequences and the rest is canonical.
			sql := "SELECT SourceSystemCode, " + tt.comment + "\n    BKInvoicedDate,\n    AmountInvoiced\nFROM t"
			assert.Empty(t, evalOrdering(t, sql))
		})
	}
}

func TestColumnOrdering_OtherRuleNoqaDoesNotSuppress(t *testing.T) {
	sql := "SELECT SourceSystemCode, -- noqa: HNL_A001\n    BKInvoicedDate,\n    AmountInvoiced\nFROM t"
	results := evalOrdering(t, sql)
	assert.NotEmpty(t, results)
}

func TestColumnOrdering_UnnamedColumnsSkipped(t *testing.T) {
	sql := "SELECT count(*), BKSourceSystem, AmountInvoiced FROM t"
	// count(*) has no display identifier; the named columns are already
	// canonical without it.
	assert.Empty(t, evalOrdering(t, sql))
}

func TestColumnOrdering_TieBreakCaseInsensitive(t *testing.T) {
	sql := "SELECT beta, Alpha FROM t"
	results := evalOrdering(t, sql)
	require.Len(t, results, 2)
	assert.True(t, strings.Contains(results[0].Description, `expected "Alpha"`))
}

func TestColumnOrdering_WrongSegmentPanics(t *testing.T) {
	root, err := parser.ParseString("SELECT a FROM t")
	require.NoError(t, err)
	assert.Panics(t, func() {
		_, _ = NewColumnOrdering().Evaluate(&model.RuleContext{Segment: root, Memory: model.Memory{}})
	})
}
