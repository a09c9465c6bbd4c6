package checker

import (
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// Registry is the static table of line rules and AST rules described in
// spec section 4.7: startup-materialized, immutable once built, with no
// open extension surface beyond registering more of the closed RuleID set.
type Registry struct {
	lineRules []LineRule
	astRules  []ASTRule
	byID      map[ruleid.RuleID]bool
	kindByID  map[ruleid.RuleID]string
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[ruleid.RuleID]bool), kindByID: make(map[ruleid.RuleID]string)}
}

// RegisterLine adds a line rule to the registry.
func (r *Registry) RegisterLine(rule LineRule) {
	r.lineRules = append(r.lineRules, rule)
	r.byID[rule.ID()] = true
	r.kindByID[rule.ID()] = "line"
	r.sortLine()
}

// RegisterAST adds an AST rule to the registry.
func (r *Registry) RegisterAST(rule ASTRule) {
	r.astRules = append(r.astRules, rule)
	r.byID[rule.ID()] = true
	r.kindByID[rule.ID()] = "ast"
	r.sortAST()
}

func (r *Registry) sortLine() {
	for i := 1; i < len(r.lineRules); i++ {
		for j := i; j > 0 && r.lineRules[j].ID().Less(r.lineRules[j-1].ID()); j-- {
			r.lineRules[j], r.lineRules[j-1] = r.lineRules[j-1], r.lineRules[j]
		}
	}
}

func (r *Registry) sortAST() {
	for i := 1; i < len(r.astRules); i++ {
		for j := i; j > 0 && r.astRules[j].ID().Less(r.astRules[j-1].ID()); j-- {
			r.astRules[j], r.astRules[j-1] = r.astRules[j-1], r.astRules[j]
		}
	}
}

// LineRules returns every registered line rule, in RuleID order.
func (r *Registry) LineRules() []LineRule { return r.lineRules }

// ASTRules returns every registered AST rule, in RuleID order.
func (r *Registry) ASTRules() []ASTRule { return r.astRules }

// Has reports whether a RuleID is registered under either table.
func (r *Registry) Has(id ruleid.RuleID) bool { return r.byID[id] }

// Resolve looks up a rule by bare name ("TrailingWhitespace") or qualified
// "Category/Name" ("Layout/TrailingWhitespace") and returns its canonical
// ID string, its kind ("line" or "ast"), and whether it was found and is
// registered in this registry.
func (r *Registry) Resolve(name string) (canonicalID string, kind string, found bool) {
	id, ok := ruleid.ByName(name)
	if !ok || !r.byID[id] {
		return "", "", false
	}
	return id.String(), r.kindByID[id], true
}

// DefaultRegistry is the global registry populated by pkg/rules/layout and
// pkg/rules/lint during their package init().
//
//nolint:gochecknoglobals // intentional single startup-initialized table
var DefaultRegistry = NewRegistry()
