package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"sql-lint/internal/model"
)

type ConsoleReporter struct {
	out io.Writer
}

func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout}
}

func (r *ConsoleReporter) Report(issues []model.Issue) error {
	if len(issues) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✔ No SQL style issues found."))
		return nil
	}

	fixable := 0
	for _, issue := range issues {
		var levelColor *color.Color
		switch issue.Level {
		case model.RiskLevelFatal:
			levelColor = color.New(color.FgRed, color.Bold)
		case model.RiskLevelWarning:
			levelColor = color.New(color.FgYellow, color.Bold)
		case model.RiskLevelSuggestion:
			levelColor = color.New(color.FgBlue, color.Bold)
		default:
			levelColor = color.New(color.FgWhite)
		}

		fmt.Fprintf(r.out, "%s: [%s] %s %s\n",
			issue.Location, levelColor.Sprint(issue.Level), issue.RuleCode, issue.Message)
		if issue.SQL != "" {
			fmt.Fprintf(r.out, "\tCode: %s\n", color.CyanString(truncate(issue.SQL, 80)))
		}
		if issue.Fixable() {
			fixable++
			fmt.Fprintf(r.out, "\t%s\n", color.GreenString("Fix available (run with --fix)"))
		}
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "\n%s found %d issues (%d fixable).\n",
		color.RedString("✘"), len(issues), fixable)
	return nil
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
