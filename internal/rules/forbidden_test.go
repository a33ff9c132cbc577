package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sql-lint/internal/model"
)

func TestForbiddenColumns(t *testing.T) {
	rule := NewForbiddenColumns([]string{"ssn", "Password"})

	tests := []struct {
		name string
		sql  string
		want int
	}{
		{"clean clause", "SELECT id, name FROM users", 0},
		{"forbidden reference", "SELECT ssn, name FROM users", 1},
		{"case insensitive match", "SELECT SSN FROM users", 1},
		{"alias output name counts", "SELECT secret AS password FROM users", 1},
		{"qualified reference", "SELECT u.ssn FROM users u", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause := selectClause(t, tt.sql)
			results, err := rule.Evaluate(&model.RuleContext{Segment: clause, Memory: model.Memory{}})
			require.NoError(t, err)
			assert.Len(t, results, tt.want)
			for _, r := range results {
				assert.Empty(t, r.Fixes)
			}
		})
	}
}

func TestForbiddenColumns_EmptyListIsNoop(t *testing.T) {
	rule := NewForbiddenColumns(nil)
	clause := selectClause(t, "SELECT anything FROM t")
	results, err := rule.Evaluate(&model.RuleContext{Segment: clause, Memory: model.Memory{}})
	require.NoError(t, err)
	assert.Empty(t, results)
}
