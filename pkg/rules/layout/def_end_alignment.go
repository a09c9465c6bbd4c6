package layout

import (
	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// DefEndAlignmentRule checks "end" alignment for method definitions.
type DefEndAlignmentRule struct {
	checker.BaseASTRule
}

// NewDefEndAlignmentRule constructs the rule.
func NewDefEndAlignmentRule() *DefEndAlignmentRule {
	return &DefEndAlignmentRule{
		BaseASTRule: checker.NewBaseASTRule(
			ruleid.LayoutDefEndAlignment,
			"Checks whether the end keyword of a method definition is aligned with the def keyword's line.",
			config.SeverityWarning,
			true,
			[]rbast.NodeKind{rbast.NodeDef},
		),
	}
}

// CheckNode implements checker.ASTRule.
func (r *DefEndAlignmentRule) CheckNode(ctx *checker.RuleContext, node *rbast.Node, stack []*rbast.Node) {
	checkEndAlignment(ctx, r.ID(), node)
}

func init() {
	checker.DefaultRegistry.RegisterAST(NewDefEndAlignmentRule())
}
