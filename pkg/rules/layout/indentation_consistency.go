package layout

import (
	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// consistencyParentKinds are node kinds whose direct children are expected
// to share a common indentation level.
var consistencyParentKinds = append(append([]rbast.NodeKind{}, indentedKinds...), rbast.NodeProgram)

// IndentationConsistencyRule flags a statement whose indentation does not
// match the majority indentation of its siblings within the same body.
type IndentationConsistencyRule struct {
	checker.BaseASTRule
}

// NewIndentationConsistencyRule constructs the rule.
func NewIndentationConsistencyRule() *IndentationConsistencyRule {
	return &IndentationConsistencyRule{
		BaseASTRule: checker.NewBaseASTRule(
			ruleid.LayoutIndentationConsistency,
			"Checks that sibling statements within the same body share one indentation level.",
			config.SeverityConvention,
			false,
			consistencyParentKinds,
		),
	}
}

// CheckNode implements checker.ASTRule.
func (r *IndentationConsistencyRule) CheckNode(ctx *checker.RuleContext, node *rbast.Node, stack []*rbast.Node) {
	children := node.Children()
	if len(children) < 2 {
		return
	}

	f := ctx.File
	lineOf := make([]int, len(children))
	indentOf := make([]int, len(children))
	counts := make(map[int]int)

	for i, c := range children {
		ln, _ := f.LineAt(c.SourceRange().StartOffset)
		lineOf[i] = ln
		indentOf[i] = len(checker.IndentOf(f, ln))
		counts[indentOf[i]]++
	}

	majority, majorityCount := 0, 0
	for indent, count := range counts {
		if count > majorityCount || (count == majorityCount && indent < majority) {
			majority, majorityCount = indent, count
		}
	}
	if majorityCount == len(children) {
		return
	}

	seenLines := make(map[int]bool)
	for i, c := range children {
		if indentOf[i] == majority || seenLines[lineOf[i]] {
			continue
		}
		seenLines[lineOf[i]] = true
		r.flag(ctx, f, lineOf[i])
		_ = c
	}
}

func (r *IndentationConsistencyRule) flag(ctx *checker.RuleContext, f *rbast.FileSnapshot, lineNo int) {
	line := f.LineByNumber(lineNo)
	indentLen := len(checker.IndentOf(f, lineNo))
	start := line.Info.StartOffset
	end := start + indentLen
	ctx.AddIssue(r.ID(), start, end, "Inconsistent indentation relative to sibling statements.", nil)
}

func init() {
	checker.DefaultRegistry.RegisterAST(NewIndentationConsistencyRule())
}
