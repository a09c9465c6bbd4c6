package layout

import (
	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// LeadingEmptyLinesRule flags blank lines at the very start of a file.
type LeadingEmptyLinesRule struct {
	checker.BaseRule
}

// NewLeadingEmptyLinesRule constructs the rule.
func NewLeadingEmptyLinesRule() *LeadingEmptyLinesRule {
	return &LeadingEmptyLinesRule{
		BaseRule: checker.NewBaseRule(
			ruleid.LayoutLeadingEmptyLines,
			"Checks for leading blank lines at the beginning of a file.",
			config.SeverityConvention,
			true,
		),
	}
}

// CheckLine implements checker.LineRule.
func (r *LeadingEmptyLinesRule) CheckLine(ctx *checker.RuleContext, lineNo int, line rbast.Line) {}

// CheckEOF implements checker.LineRule.
func (r *LeadingEmptyLinesRule) CheckEOF(ctx *checker.RuleContext) {
	f := ctx.File
	n := 0
	for n < f.LineCount() && checker.IsBlankLine(f, n+1) {
		n++
	}
	if n == 0 {
		return
	}
	start := f.Lines[0].StartOffset
	end := f.Lines[n-1].EndOffset
	fx := &fix.Fix{Rule: r.ID(), Edits: []fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: ""}}}
	ctx.AddIssue(r.ID(), start, end, "Unnecessary blank line(s) at the beginning of the file.", fx)
}

func init() {
	checker.DefaultRegistry.RegisterLine(NewLeadingEmptyLinesRule())
}
