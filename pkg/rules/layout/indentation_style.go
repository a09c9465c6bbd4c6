package layout

import (
	"strings"

	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// IndentationStyleRule enforces a single indentation character (spaces by
// default; EnforcedStyle: "tabs" switches the polarity) across every
// indented line.
type IndentationStyleRule struct {
	checker.BaseRule
}

// NewIndentationStyleRule constructs the rule.
func NewIndentationStyleRule() *IndentationStyleRule {
	return &IndentationStyleRule{
		BaseRule: checker.NewBaseRule(
			ruleid.LayoutIndentationStyle,
			"Checks for tabs or spaces used for indentation, consistently with EnforcedStyle.",
			config.SeverityConvention,
			true,
		),
	}
}

// CheckLine implements checker.LineRule.
func (r *IndentationStyleRule) CheckLine(ctx *checker.RuleContext, lineNo int, line rbast.Line) {
	indent := checker.IndentOf(ctx.File, lineNo)
	if len(indent) == 0 {
		return
	}

	style := ctx.OptionString("EnforcedStyle", "spaces")
	wantTabs := style == "tabs"

	var offender byte
	if wantTabs {
		offender = ' '
	} else {
		offender = '\t'
	}

	if !strings.Contains(string(indent), string(offender)) {
		return
	}

	start := line.Info.StartOffset
	end := start + len(indent)

	var replacement string
	if wantTabs {
		replacement = strings.Repeat("\t", len(indent))
	} else {
		width := ctx.OptionInt("Width", 2)
		replacement = strings.Repeat(" ", len(indent)*width)
	}

	msg := "Tab detected in indentation."
	if wantTabs {
		msg = "Space detected in indentation."
	}

	fx := &fix.Fix{Rule: r.ID(), Edits: []fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: replacement}}}
	ctx.AddIssue(r.ID(), start, end, msg, fx)
}

// CheckEOF implements checker.LineRule.
func (r *IndentationStyleRule) CheckEOF(ctx *checker.RuleContext) {}

func init() {
	checker.DefaultRegistry.RegisterLine(NewIndentationStyleRule())
}
