package extractor

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"sql-lint/internal/model"
)

// SQLFileExtractor treats the whole file as one SQL document; the parser
// handles statement boundaries and keeps comments between statements.
type SQLFileExtractor struct{}

func NewSQLFileExtractor() *SQLFileExtractor { return &SQLFileExtractor{} }

func (e *SQLFileExtractor) Extract(filePath string, content []byte) ([]model.SQLSegment, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}
	return []model.SQLSegment{{
		SQL:      string(content),
		Location: model.Location{FilePath: filePath, Line: 1, Col: 1},
		Language: "sql",
	}}, nil
}

// RegexExtractor pulls SQL string literals out of source code. Non-greedy
// matching stops at the first closing quote; RE2 has no backreferences, so
// each quote style gets its own pattern.
var (
	doubleQuoteSQL = regexp.MustCompile(`"(?i)(?:SELECT|INSERT|UPDATE|DELETE|WITH)\b.*?"`)
	singleQuoteSQL = regexp.MustCompile(`'(?i)(?:SELECT|INSERT|UPDATE|DELETE|WITH)\b.*?'`)
	backTickSQL    = regexp.MustCompile("`(?i)(?:SELECT|INSERT|UPDATE|DELETE|WITH)\\b.*?`")
)

type RegexExtractor struct{}

func NewRegexExtractor() *RegexExtractor { return &RegexExtractor{} }

func (e *RegexExtractor) Extract(filePath string, content []byte) ([]model.SQLSegment, error) {
	var segments []model.SQLSegment

	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		for _, re := range []*regexp.Regexp{doubleQuoteSQL, singleQuoteSQL, backTickSQL} {
			for _, match := range re.FindAllString(line, -1) {
				if len(match) < 2 {
					continue
				}
				segments = append(segments, model.SQLSegment{
					SQL: match[1 : len(match)-1],
					Location: model.Location{
						FilePath: filePath,
						Line:     lineNo,
						Col:      1,
					},
					Language: "embedded",
				})
			}
		}
	}
	return segments, scanner.Err()
}

// Manager selects the appropriate extractor based on file extension.
type Manager struct {
	extractors map[string]model.Extractor
	fallback   model.Extractor
}

func NewManager() *Manager {
	return &Manager{
		extractors: make(map[string]model.Extractor),
		fallback:   NewRegexExtractor(),
	}
}

func (m *Manager) Register(ext string, extr model.Extractor) {
	m.extractors[strings.ToLower(ext)] = extr
}

func (m *Manager) Extract(filePath string) ([]model.SQLSegment, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	if extr, ok := m.extractors[ext]; ok {
		return extr.Extract(filePath, content)
	}
	return m.fallback.Extract(filePath, content)
}
