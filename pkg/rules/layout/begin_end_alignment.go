package layout

import (
	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// BeginEndAlignmentRule checks "end" alignment for begin/rescue/ensure
// blocks.
type BeginEndAlignmentRule struct {
	checker.BaseASTRule
}

// NewBeginEndAlignmentRule constructs the rule.
func NewBeginEndAlignmentRule() *BeginEndAlignmentRule {
	return &BeginEndAlignmentRule{
		BaseASTRule: checker.NewBaseASTRule(
			ruleid.LayoutBeginEndAlignment,
			"Checks whether the end keyword of a begin block is aligned with its opening line.",
			config.SeverityWarning,
			true,
			[]rbast.NodeKind{rbast.NodeBegin},
		),
	}
}

// CheckNode implements checker.ASTRule.
func (r *BeginEndAlignmentRule) CheckNode(ctx *checker.RuleContext, node *rbast.Node, stack []*rbast.Node) {
	checkEndAlignment(ctx, r.ID(), node)
}

func init() {
	checker.DefaultRegistry.RegisterAST(NewBeginEndAlignmentRule())
}
