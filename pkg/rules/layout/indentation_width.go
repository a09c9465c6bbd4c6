package layout

import (
	"strings"

	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// indentedKinds are the constructs whose body is expected to be indented
// relative to the line that opens them.
var indentedKinds = []rbast.NodeKind{
	rbast.NodeDef,
	rbast.NodeClassDef,
	rbast.NodeModuleDef,
	rbast.NodeIf,
	rbast.NodeUnless,
	rbast.NodeWhile,
	rbast.NodeUntil,
	rbast.NodeCase,
	rbast.NodeBegin,
	rbast.NodeBlock,
}

// IndentationWidthRule checks that a construct's first body line is
// indented exactly Width columns (default 2) past the line that opens it.
type IndentationWidthRule struct {
	checker.BaseASTRule
}

// NewIndentationWidthRule constructs the rule.
func NewIndentationWidthRule() *IndentationWidthRule {
	return &IndentationWidthRule{
		BaseASTRule: checker.NewBaseASTRule(
			ruleid.LayoutIndentationWidth,
			"Checks the indentation width of the first line of a method, class, module, or block body.",
			config.SeverityConvention,
			true,
			indentedKinds,
		),
	}
}

// CheckNode implements checker.ASTRule.
func (r *IndentationWidthRule) CheckNode(ctx *checker.RuleContext, node *rbast.Node, stack []*rbast.Node) {
	if node.Attrs == nil {
		return
	}
	// Modifier-form if/unless/while/until have no closing "end" and no body
	// to indent relative to.
	if node.Attrs.Style == rbast.StyleModifier {
		return
	}
	if node.Attrs.EndOffset < 0 {
		return
	}

	f := ctx.File
	keywordLine, _ := f.LineAt(node.Attrs.KeywordOffset)
	endLine, _ := f.LineAt(node.Attrs.EndOffset)
	if keywordLine <= 0 || endLine <= keywordLine {
		return
	}

	bodyLine := 0
	for l := keywordLine + 1; l < endLine; l++ {
		if !checker.IsBlankLine(f, l) {
			bodyLine = l
			break
		}
	}
	if bodyLine == 0 {
		return
	}

	width := ctx.OptionInt("Width", 2)
	keywordIndent := len(checker.IndentOf(f, keywordLine))
	bodyIndent := len(checker.IndentOf(f, bodyLine))
	expected := keywordIndent + width
	if bodyIndent == expected {
		return
	}

	line := f.LineByNumber(bodyLine)
	start := line.Info.StartOffset
	end := start + bodyIndent
	replacement := strings.Repeat(" ", expected)
	fx := &fix.Fix{Rule: r.ID(), Edits: []fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: replacement}}}
	ctx.AddIssue(r.ID(), start, end, "Inconsistent indentation detected.", fx)
}

func init() {
	checker.DefaultRegistry.RegisterAST(NewIndentationWidthRule())
}
