// Package checker implements the rule engine, diagnostics, and dispatch for
// fastlint's Layout/Lint checking core.
package checker

import (
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// RawDiagnostic is the offense record as rules emit it: byte offsets into the
// source buffer rather than line/column, and an optional Fix describing the
// autocorrection. The engine converts these to Diagnostic after a check pass
// completes (spec section 4.2).
type RawDiagnostic struct {
	Rule     ruleid.RuleID
	Message  string
	Severity config.Severity
	Start    int
	End      int
	Fix      *fix.Fix
}

// Diagnostic is the public offense record: a RawDiagnostic plus the derived
// (line, column) coordinates required by the wire format (spec section 4.2).
type Diagnostic struct {
	Rule     ruleid.RuleID
	Message  string
	Severity config.Severity
	FilePath string

	StartLine   int
	StartColumn int
	LastLine    int
	LastColumn  int
	Length      int

	Corrected   bool
	Correctable bool
	Cancelled   bool
}

// SourcePosition returns the diagnostic's position as an rbast.SourcePosition.
func (d Diagnostic) SourcePosition() rbast.SourcePosition {
	return rbast.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.LastLine,
		EndColumn:   d.LastColumn,
	}
}

// LineRule examines the raw byte buffer and line index directly. Dispatch
// invokes every enabled line rule once per non-final line, in RuleID order,
// plus once more for whole-buffer EOF conditions (spec section 4.8).
type LineRule interface {
	ID() ruleid.RuleID
	Name() string
	Description() string
	DefaultEnabled() bool
	DefaultSeverity() config.Severity
	CanFix() bool

	// CheckLine is invoked once per non-final line.
	CheckLine(ctx *RuleContext, lineNo int, line rbast.Line)

	// CheckEOF is invoked once per file after the line loop, seeing the
	// whole buffer. Rules that don't care about EOF conditions may no-op.
	CheckEOF(ctx *RuleContext)
}

// ASTRule examines typed nodes during the depth-first AST walk. The engine
// dispatches only to rules subscribed to a given node's kind (spec 4.9).
type ASTRule interface {
	ID() ruleid.RuleID
	Name() string
	Description() string
	DefaultEnabled() bool
	DefaultSeverity() config.Severity
	CanFix() bool

	// Kinds returns the set of node kinds this rule subscribes to.
	Kinds() []rbast.NodeKind

	// CheckNode is invoked once per matching node, given the path from root
	// (stack[0]) to the node itself (stack[len(stack)-1] == node).
	CheckNode(ctx *RuleContext, node *rbast.Node, stack []*rbast.Node)
}
