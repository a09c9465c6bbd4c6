// Package layout implements the Layout rule family: whitespace,
// indentation, blank-line structure, and end-keyword alignment.
package layout

import (
	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// TrailingWhitespaceRule flags spaces or tabs at the end of a line.
type TrailingWhitespaceRule struct {
	checker.BaseRule
}

// NewTrailingWhitespaceRule constructs the rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: checker.NewBaseRule(
			ruleid.LayoutTrailingWhitespace,
			"Checks for trailing whitespace at the end of a line.",
			config.SeverityConvention,
			true,
		),
	}
}

// CheckLine implements checker.LineRule.
func (r *TrailingWhitespaceRule) CheckLine(ctx *checker.RuleContext, lineNo int, line rbast.Line) {
	start, end := checker.TrailingWhitespaceRange(ctx.File, lineNo)
	if start < 0 {
		return
	}
	diag := checker.NewDiagnosticAt(r.ID(), start, end, "Trailing whitespace detected.").
		WithSeverity(ctx.Severity).
		WithEdits(r.ID(), false, fix.TextEdit{StartOffset: start, EndOffset: end, NewText: ""}).
		Build()
	ctx.AddDiagnostic(diag.Rule, diag.Start, diag.End, diag.Message, diag.Severity, diag.Fix)
}

// CheckEOF implements checker.LineRule.
func (r *TrailingWhitespaceRule) CheckEOF(ctx *checker.RuleContext) {}

func init() {
	checker.DefaultRegistry.RegisterLine(NewTrailingWhitespaceRule())
}
