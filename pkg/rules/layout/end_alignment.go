package layout

import (
	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// checkEndAlignment compares the column of a construct's opening keyword to
// the column of its closing "end" and records an offense (with a fix that
// re-indents the "end" line) when they differ. Shared by EndAlignment,
// DefEndAlignment, and BeginEndAlignment, which differ only in which node
// kinds and RuleID they apply to.
func checkEndAlignment(ctx *checker.RuleContext, rule ruleid.RuleID, node *rbast.Node) {
	if node.Attrs == nil || node.Attrs.Style == rbast.StyleModifier || node.Attrs.EndOffset < 0 {
		return
	}

	f := ctx.File
	keywordLine, keywordCol := f.LineAt(node.Attrs.KeywordOffset)
	endLine, endCol := f.LineAt(node.Attrs.EndOffset)
	if keywordLine <= 0 || endLine <= 0 || keywordLine == endLine {
		return
	}

	// Alignment is judged against the start of the keyword's own line, not
	// the keyword token itself, so e.g. "x = if ..." expects "end" at the
	// column where "x" starts. This start-of-line rule applies to every
	// rule that uses this helper; alignment with the keyword's own column
	// is not checked.
	keywordLineIndent := len(checker.IndentOf(f, keywordLine)) + 1
	_ = keywordCol

	if endCol == keywordLineIndent {
		return
	}

	endLineInfo := f.LineByNumber(endLine)
	start := endLineInfo.Info.StartOffset
	end := start + len(checker.IndentOf(f, endLine))

	replacement := make([]byte, keywordLineIndent-1)
	for i := range replacement {
		replacement[i] = ' '
	}

	fx := &fix.Fix{Rule: rule, Edits: []fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: string(replacement)}}}
	ctx.AddIssue(rule, start, end, "end at "+itoaCol(endCol)+" is not aligned with the opening keyword.", fx)
}

func itoaCol(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// EndAlignmentRule checks "end" alignment for if/unless/while/until/case/
// class/module constructs.
type EndAlignmentRule struct {
	checker.BaseASTRule
}

// NewEndAlignmentRule constructs the rule.
func NewEndAlignmentRule() *EndAlignmentRule {
	return &EndAlignmentRule{
		BaseASTRule: checker.NewBaseASTRule(
			ruleid.LayoutEndAlignment,
			"Checks whether the end keyword of if/unless/while/until/case/class/module is aligned with its opening line.",
			config.SeverityWarning,
			true,
			[]rbast.NodeKind{
				rbast.NodeIf,
				rbast.NodeUnless,
				rbast.NodeWhile,
				rbast.NodeUntil,
				rbast.NodeCase,
				rbast.NodeClassDef,
				rbast.NodeModuleDef,
			},
		),
	}
}

// CheckNode implements checker.ASTRule.
func (r *EndAlignmentRule) CheckNode(ctx *checker.RuleContext, node *rbast.Node, stack []*rbast.Node) {
	checkEndAlignment(ctx, r.ID(), node)
}

func init() {
	checker.DefaultRegistry.RegisterAST(NewEndAlignmentRule())
}
