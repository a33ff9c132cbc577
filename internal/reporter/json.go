package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sql-lint/internal/model"
)

// JSONReporter writes machine-readable results, one document per run.
type JSONReporter struct {
	out  io.Writer
	path string
}

// NewJSONReporter writes to the given file, or stdout when path is empty.
func NewJSONReporter(path string) *JSONReporter {
	return &JSONReporter{path: path}
}

type jsonIssue struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Rule    string `json:"rule"`
	Level   string `json:"level"`
	Message string `json:"message"`
	SQL     string `json:"sql,omitempty"`
	Fixable bool   `json:"fixable"`
}

type jsonReport struct {
	Issues []jsonIssue `json:"issues"`
	Total  int         `json:"total"`
}

func (r *JSONReporter) Report(issues []model.Issue) error {
	out := r.out
	if out == nil {
		if r.path != "" {
			f, err := os.Create(r.path)
			if err != nil {
				return fmt.Errorf("create report file: %w", err)
			}
			defer f.Close()
			out = f
		} else {
			out = os.Stdout
		}
	}

	report := jsonReport{Issues: make([]jsonIssue, 0, len(issues)), Total: len(issues)}
	for _, issue := range issues {
		report.Issues = append(report.Issues, jsonIssue{
			File:    issue.Location.FilePath,
			Line:    issue.Location.Line,
			Col:     issue.Location.Col,
			Rule:    issue.RuleCode,
			Level:   string(issue.Level),
			Message: issue.Message,
			SQL:     issue.SQL,
			Fixable: issue.Fixable(),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
