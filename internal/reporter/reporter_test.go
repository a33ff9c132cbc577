package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sql-lint/internal/model"
)

func sampleIssues() []model.Issue {
	return []model.Issue{
		{
			RuleCode: "HNL_A001",
			Level:    model.RiskLevelWarning,
			Message:  "Column should always use an alias.",
			Location: model.Location{FilePath: "q.sql", Line: 2, Col: 5},
			SQL:      "a.col_a",
			Fixes:    []model.Edit{{Op: model.EditInsertAfter}},
		},
		{
			RuleCode: "HNL_A002",
			Level:    model.RiskLevelSuggestion,
			Message:  `Column "X" is out of order, expected "Y" at this position.`,
			Location: model.Location{FilePath: "q.sql", Line: 3, Col: 5},
			SQL:      "X",
		},
	}
}

func TestConsoleReporter_Report(t *testing.T) {
	var buf bytes.Buffer
	r := &ConsoleReporter{out: &buf}

	if err := r.Report(sampleIssues()); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"q.sql:2:5", "HNL_A001", "a.col_a", "--fix", "2 issues (1 fixable)"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleReporter_NoIssues(t *testing.T) {
	var buf bytes.Buffer
	r := &ConsoleReporter{out: &buf}

	if err := r.Report(nil); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No SQL style issues") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestJSONReporter_Report(t *testing.T) {
	var buf bytes.Buffer
	r := &JSONReporter{out: &buf}

	if err := r.Report(sampleIssues()); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var report jsonReport
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if report.Total != 2 || len(report.Issues) != 2 {
		t.Fatalf("got %d/%d issues, want 2/2", report.Total, len(report.Issues))
	}
	if !report.Issues[0].Fixable || report.Issues[1].Fixable {
		t.Error("fixable flags wrong")
	}
	if report.Issues[0].Rule != "HNL_A001" || report.Issues[0].Line != 2 {
		t.Errorf("first issue = %+v", report.Issues[0])
	}
}

func TestJSONReporter_EmptyIssuesList(t *testing.T) {
	var buf bytes.Buffer
	r := &JSONReporter{out: &buf}

	if err := r.Report(nil); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"issues": []`) {
		t.Errorf("empty run should emit an empty issues array, got: %s", buf.String())
	}
}
