package checker

import (
	"context"

	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// nodeKey identifies an AST node by its source span rather than pointer
// identity, so the ignored-node set stays valid across re-parses of an
// otherwise unchanged buffer.
type nodeKey struct {
	start, end int
}

// RuleContext is the per-file checker context: source bytes, resolved
// config, path, line index, ignored-node set, and the growing raw
// diagnostics buffer described in spec section 4.6.
//
// Design note: RuleContext stores context.Context as a field (Ctx) rather
// than passing it as a method parameter. This is acceptable because
// RuleContext is a short-lived parameter object created per-rule-invocation,
// not a long-lived struct. This keeps the Rule interface to a single Apply
// method while still allowing cooperative cancellation via Cancelled().
type RuleContext struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// File is the parsed FileSnapshot.
	File *rbast.FileSnapshot

	// Root is the AST root node (convenience alias for File.Root).
	Root *rbast.Node

	// Path is the repository-relative path used for include/exclude gating.
	Path string

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Severity is the resolved severity for whichever rule is currently
	// running. The engine sets this immediately before each CheckLine /
	// CheckNode / CheckEOF call.
	Severity config.Severity

	// Builder accumulates text edits for auto-fix.
	Builder *fix.EditBuilder

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	diagnostics []RawDiagnostic
	ignored     map[nodeKey]bool
	seen        map[string]bool
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(
	ctx context.Context,
	path string,
	file *rbast.FileSnapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *rbast.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Root:       root,
		Path:       path,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Builder:    fix.NewEditBuilder(),
		ignored:    make(map[nodeKey]bool),
		seen:       make(map[string]bool),
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// AddDiagnostic records a raw diagnostic, deduplicating on identical
// (RuleId, span) per spec section 4.2: a rule must not double-report.
func (rc *RuleContext) AddDiagnostic(rule ruleid.RuleID, start, end int, message string, severity config.Severity, f *fix.Fix) {
	key := rule.String() + ":" + itoa(start) + ":" + itoa(end)
	if rc.seen[key] {
		return
	}
	rc.seen[key] = true
	rc.diagnostics = append(rc.diagnostics, RawDiagnostic{
		Rule:     rule,
		Message:  message,
		Severity: severity,
		Start:    start,
		End:      end,
		Fix:      f,
	})
}

// AddIssue records a raw diagnostic using the currently-running rule's
// resolved severity (rc.Severity). This is the form rules normally call.
func (rc *RuleContext) AddIssue(rule ruleid.RuleID, start, end int, message string, f *fix.Fix) {
	rc.AddDiagnostic(rule, start, end, message, rc.Severity, f)
}

// Diagnostics returns the accumulated raw diagnostics for this file.
func (rc *RuleContext) Diagnostics() []RawDiagnostic {
	return rc.diagnostics
}

// IgnoreNode marks a node as already reported on, so a rule triggered from
// a second visitor entry point does not re-report the same offense.
func (rc *RuleContext) IgnoreNode(n *rbast.Node) {
	if n == nil {
		return
	}
	r := n.SourceRange()
	rc.ignored[nodeKey{r.StartOffset, r.EndOffset}] = true
}

// IsIgnored reports whether a node was previously marked via IgnoreNode.
func (rc *RuleContext) IsIgnored(n *rbast.Node) bool {
	if n == nil {
		return false
	}
	r := n.SourceRange()
	return rc.ignored[nodeKey{r.StartOffset, r.EndOffset}]
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	v := rc.Option(key, defaultValue)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	if iface, ok := v.([]interface{}); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
