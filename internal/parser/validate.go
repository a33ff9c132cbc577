package parser

import (
	"fmt"

	tidb "github.com/pingcap/tidb/parser"
	_ "github.com/pingcap/tidb/parser/test_driver"
)

// Validator pre-checks SQL text with a real grammar before the lenient CST
// parser sees it. Useful for statements pulled out of source code by the
// regex extractor, where a match is not guaranteed to be SQL at all.
type Validator struct {
	p *tidb.Parser
}

func NewValidator() *Validator {
	return &Validator{p: tidb.New()}
}

// Validate returns an error when sql does not parse as at least one
// statement. Extracted fragments often lack a trailing semicolon; the parser
// accepts EOF termination, so none is added.
func (v *Validator) Validate(sql string) error {
	stmts, _, err := v.p.Parse(sql, "", "")
	if err != nil {
		return err
	}
	if len(stmts) == 0 {
		return fmt.Errorf("no valid SQL statement found")
	}
	return nil
}
