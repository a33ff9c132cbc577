package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sql-lint/internal/config"
	"sql-lint/internal/extractor"
	"sql-lint/internal/linter"
	"sql-lint/internal/model"
	"sql-lint/internal/parser"
	"sql-lint/internal/reporter"
	"sql-lint/internal/rules"
	"sql-lint/internal/scanner"
)

var (
	srcPath     string
	configPath  string
	reportFmt   string
	outputFile  string
	excludes    []string
	applyFixes  bool
	concurrency int
)

var rootCmd = &cobra.Command{
	Use:   "sql-lint",
	Short: "A style linter for SQL files and embedded SQL",
	Long: `sql-lint scans .sql files (and SQL string literals in source code),
parses each statement into a syntax tree, and checks SELECT clauses for
style violations: inconsistent column aliasing (auto-fixable), column
ordering, and forbidden column names.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := runLint()
		if err != nil {
			return err
		}
		if count > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&srcPath, "src", "s", ".", "Path to scan for SQL")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: sql-lint.yaml)")
	rootCmd.Flags().StringVarP(&reportFmt, "report", "r", "console", "Report format (console, json)")
	rootCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output file for json reports (default: stdout)")
	rootCmd.Flags().StringSliceVarP(&excludes, "exclude", "e", []string{".git", "vendor", "*_test.go"}, "Glob patterns to exclude from scan")
	rootCmd.Flags().BoolVar(&applyFixes, "fix", false, "Apply available fixes to .sql files")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 10, "Number of files linted in parallel")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// buildEngine assembles the lint engine from configuration.
func buildEngine(cfg *config.Config) (*linter.Engine, error) {
	engine := linter.New()

	if cfg.Rules.Aliasing.Enabled {
		rule, err := rules.NewAliasConsistency(cfg.Rules.Aliasing.AliasUsageStyle)
		if err != nil {
			return nil, err
		}
		engine.Register(rule)
	}
	if cfg.Rules.Ordering.Enabled {
		engine.Register(rules.NewColumnOrdering())
	}
	if len(cfg.Rules.ForbiddenColumns) > 0 {
		engine.Register(rules.NewForbiddenColumns(cfg.Rules.ForbiddenColumns))
	}
	if cfg.ValidateSyntax {
		engine.SetValidator(parser.NewValidator())
	}
	return engine, nil
}

func runLint() (int, error) {
	if _, err := os.Stat(srcPath); os.IsNotExist(err) {
		return 0, fmt.Errorf("source path does not exist: %s", srcPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return 0, err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return 0, err
	}

	mgr := extractor.NewManager()
	mgr.Register("sql", extractor.NewSQLFileExtractor())
	embedded := extractor.NewRegexExtractor()
	for _, ext := range []string{"go", "py", "cpp"} {
		mgr.Register(ext, embedded)
	}

	walker := scanner.NewFileWalker([]string{"sql", "go", "py", "cpp"}, excludes)
	ctx := context.Background()
	paths, errChan := walker.Walk(ctx, srcPath)

	pool := scanner.NewWorkerPool(concurrency, func(path string) ([]model.Issue, error) {
		segments, err := mgr.Extract(path)
		if err != nil {
			return nil, err
		}
		return engine.LintFile(path, segments)
	})
	results := pool.Start(ctx, paths)

	go func() {
		for err := range errChan {
			fmt.Fprintf(os.Stderr, "scan error: %v\n", err)
		}
	}()

	var issues []model.Issue
	var fixTargets []string
	for res := range results {
		if res.Error != nil {
			fmt.Fprintf(os.Stderr, "lint error on %s: %v\n", res.File, res.Error)
			continue
		}
		issues = append(issues, res.Issues...)
		if applyFixes && strings.HasSuffix(res.File, ".sql") && anyFixable(res.Issues) {
			fixTargets = append(fixTargets, res.File)
		}
	}

	// Workers finish in arbitrary order; keep reports deterministic.
	sort.Slice(issues, func(i, j int) bool {
		a, b := issues[i].Location, issues[j].Location
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})

	var rpt model.Reporter
	switch reportFmt {
	case "json":
		rpt = reporter.NewJSONReporter(outputFile)
	default:
		rpt = reporter.NewConsoleReporter()
	}
	if err := rpt.Report(issues); err != nil {
		return 0, fmt.Errorf("reporting failed: %w", err)
	}

	if applyFixes {
		fixed := 0
		for _, path := range fixTargets {
			if err := fixFile(engine, path); err != nil {
				fmt.Fprintf(os.Stderr, "fix error on %s: %v\n", path, err)
				continue
			}
			fixed++
		}
		if fixed > 0 {
			fmt.Printf("Applied fixes to %d files.\n", fixed)
		}
	}

	return len(issues), nil
}

func anyFixable(issues []model.Issue) bool {
	for _, issue := range issues {
		if issue.Fixable() {
			return true
		}
	}
	return false
}

// fixFile re-lints one .sql file against its own parse tree and writes the
// fixed source back in place.
func fixFile(engine *linter.Engine, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	issues, root, err := engine.LintSource(path, string(content))
	if err != nil {
		return err
	}
	edits := linter.CollectEdits(issues)
	if len(edits) == 0 {
		return nil
	}

	fixed := linter.ApplyFixes(root, edits)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(fixed), info.Mode())
}
