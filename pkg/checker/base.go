package checker

import (
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// BaseRule provides the common, rarely-overridden parts of a rule's
// identity. Embed this in LineRule/ASTRule implementations; override
// DefaultEnabled/DefaultSeverity only when a rule's defaults differ.
type BaseRule struct {
	id       ruleid.RuleID
	desc     string
	severity config.Severity
	fixable  bool
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id ruleid.RuleID, desc string, severity config.Severity, fixable bool) BaseRule {
	return BaseRule{id: id, desc: desc, severity: severity, fixable: fixable}
}

// ID returns the rule's identifier.
func (r *BaseRule) ID() ruleid.RuleID { return r.id }

// Name returns the rule's bare name, e.g. "TrailingWhitespace".
func (r *BaseRule) Name() string { return r.id.Name() }

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string { return r.desc }

// DefaultEnabled returns whether the rule is enabled by default.
func (r *BaseRule) DefaultEnabled() bool { return true }

// DefaultSeverity returns the default severity for this rule.
func (r *BaseRule) DefaultSeverity() config.Severity { return r.severity }

// CanFix returns whether this rule can auto-fix issues.
func (r *BaseRule) CanFix() bool { return r.fixable }

// BaseASTRule additionally carries the node-kind subscription list.
type BaseASTRule struct {
	BaseRule
	kinds []rbast.NodeKind
}

// NewBaseASTRule creates a BaseASTRule subscribed to the given node kinds.
func NewBaseASTRule(id ruleid.RuleID, desc string, severity config.Severity, fixable bool, kinds []rbast.NodeKind) BaseASTRule {
	return BaseASTRule{
		BaseRule: NewBaseRule(id, desc, severity, fixable),
		kinds:    kinds,
	}
}

// Kinds returns the node kinds this rule subscribes to.
func (r *BaseASTRule) Kinds() []rbast.NodeKind { return r.kinds }
