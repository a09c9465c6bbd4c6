package layout

import (
	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// TrailingEmptyLinesRule enforces exactly one trailing newline at EOF: no
// blank lines before it, and never a missing final newline.
type TrailingEmptyLinesRule struct {
	checker.BaseRule
}

// NewTrailingEmptyLinesRule constructs the rule.
func NewTrailingEmptyLinesRule() *TrailingEmptyLinesRule {
	return &TrailingEmptyLinesRule{
		BaseRule: checker.NewBaseRule(
			ruleid.LayoutTrailingEmptyLines,
			"Checks for trailing blank lines and final newline at the end of a file.",
			config.SeverityConvention,
			true,
		),
	}
}

// CheckLine implements checker.LineRule.
func (r *TrailingEmptyLinesRule) CheckLine(ctx *checker.RuleContext, lineNo int, line rbast.Line) {}

// CheckEOF implements checker.LineRule.
func (r *TrailingEmptyLinesRule) CheckEOF(ctx *checker.RuleContext) {
	content := ctx.File.Content
	n := len(content)
	if n == 0 {
		return
	}

	if content[n-1] != '\n' {
		f := &fix.Fix{Rule: r.ID(), Edits: []fix.TextEdit{{StartOffset: n, EndOffset: n, NewText: "\n"}}}
		ctx.AddIssue(r.ID(), n, n, "Final newline missing.", f)
		return
	}

	// Count the run of blank lines immediately preceding EOF.
	end := n
	trimStart := end - 1
	blankStart := end
	for trimStart >= 0 {
		lineStart := trimStart
		for lineStart > 0 && content[lineStart-1] != '\n' {
			lineStart--
		}
		if isBlankRun(content[lineStart:trimStart]) {
			blankStart = lineStart
			trimStart = lineStart - 1
			continue
		}
		break
	}

	// blankStart marks where the trailing blank-line run begins; if it
	// begins before the end of the content, at least one blank line
	// precedes EOF.
	if blankStart < n {
		f := &fix.Fix{Rule: r.ID(), Edits: []fix.TextEdit{{StartOffset: blankStart, EndOffset: n, NewText: ""}}}
		ctx.AddIssue(r.ID(), blankStart, n, "Extra blank line(s) at the end of the file.", f)
	}
}

func isBlankRun(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}

func init() {
	checker.DefaultRegistry.RegisterLine(NewTrailingEmptyLinesRule())
}
