package layout

import (
	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// EmptyLinesRule flags runs of more than one consecutive blank line
// anywhere in the body of the file (the Max option, default 1, bounds how
// many consecutive blank lines are tolerated).
type EmptyLinesRule struct {
	checker.BaseRule
}

// NewEmptyLinesRule constructs the rule.
func NewEmptyLinesRule() *EmptyLinesRule {
	return &EmptyLinesRule{
		BaseRule: checker.NewBaseRule(
			ruleid.LayoutEmptyLines,
			"Checks for consecutive blank lines in excess of the configured maximum.",
			config.SeverityConvention,
			true,
		),
	}
}

// CheckLine implements checker.LineRule.
func (r *EmptyLinesRule) CheckLine(ctx *checker.RuleContext, lineNo int, line rbast.Line) {}

// CheckEOF implements checker.LineRule.
func (r *EmptyLinesRule) CheckEOF(ctx *checker.RuleContext) {
	f := ctx.File
	maxConsecutive := ctx.OptionInt("Max", 1)
	if maxConsecutive < 1 {
		maxConsecutive = 1
	}

	runStart := 0
	for i := 1; i <= f.LineCount(); i++ {
		if checker.IsBlankLine(f, i) {
			if runStart == 0 {
				runStart = i
			}
			continue
		}
		r.flagRun(ctx, f, runStart, i-1, maxConsecutive)
		runStart = 0
	}
	r.flagRun(ctx, f, runStart, f.LineCount(), maxConsecutive)
}

func (r *EmptyLinesRule) flagRun(ctx *checker.RuleContext, f *rbast.FileSnapshot, first, last, maxConsecutive int) {
	if first == 0 {
		return
	}
	count := last - first + 1
	if count <= maxConsecutive {
		return
	}

	extraFirst := first + maxConsecutive
	start := f.Lines[extraFirst-1].StartOffset
	end := f.Lines[last-1].EndOffset
	fx := &fix.Fix{Rule: r.ID(), Edits: []fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: ""}}}
	ctx.AddIssue(r.ID(), start, end, "Extra blank line detected.", fx)
}

func init() {
	checker.DefaultRegistry.RegisterLine(NewEmptyLinesRule())
}
