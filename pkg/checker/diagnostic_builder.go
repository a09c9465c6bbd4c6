package checker

import (
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// RawDiagnosticBuilder helps construct RawDiagnostic values from within a
// rule's CheckLine/CheckNode implementation.
type RawDiagnosticBuilder struct {
	raw RawDiagnostic
}

// NewDiagnostic starts building a diagnostic anchored to a node's full span.
func NewDiagnostic(rule ruleid.RuleID, node *rbast.Node, message string) *RawDiagnosticBuilder {
	var start, end int
	if node != nil {
		r := node.SourceRange()
		start, end = r.StartOffset, r.EndOffset
	}
	return &RawDiagnosticBuilder{raw: RawDiagnostic{
		Rule:    rule,
		Message: message,
		Start:   start,
		End:     end,
	}}
}

// NewDiagnosticAt starts building a diagnostic anchored to an explicit byte
// range, for line rules that have no node to point at.
func NewDiagnosticAt(rule ruleid.RuleID, start, end int, message string) *RawDiagnosticBuilder {
	return &RawDiagnosticBuilder{raw: RawDiagnostic{
		Rule:    rule,
		Message: message,
		Start:   start,
		End:     end,
	}}
}

// WithSeverity sets the severity.
func (b *RawDiagnosticBuilder) WithSeverity(s config.Severity) *RawDiagnosticBuilder {
	b.raw.Severity = s
	return b
}

// WithFix attaches the autocorrection for this offense.
func (b *RawDiagnosticBuilder) WithFix(f *fix.Fix) *RawDiagnosticBuilder {
	b.raw.Fix = f
	return b
}

// WithEdits attaches a single-rule Fix built from edits collected so far.
func (b *RawDiagnosticBuilder) WithEdits(rule ruleid.RuleID, unsafe bool, edits ...fix.TextEdit) *RawDiagnosticBuilder {
	if len(edits) == 0 {
		return b
	}
	b.raw.Fix = &fix.Fix{Rule: rule, Edits: edits, Unsafe: unsafe}
	return b
}

// Build returns the constructed RawDiagnostic.
func (b *RawDiagnosticBuilder) Build() RawDiagnostic {
	return b.raw
}

// ResolveDiagnostic converts a RawDiagnostic (byte offsets) into the public
// Diagnostic (1-based line/column), per spec section 4.2. corrected reports
// whether this offense's fix was applied during the current fix pass.
func ResolveDiagnostic(raw RawDiagnostic, file *rbast.FileSnapshot, filePath string, corrected bool) Diagnostic {
	startLine, startCol := file.LineAt(raw.Start)
	endLine, endCol := file.LineAt(raw.End)

	return Diagnostic{
		Rule:        raw.Rule,
		Message:     raw.Message,
		Severity:    raw.Severity,
		FilePath:    filePath,
		StartLine:   startLine,
		StartColumn: startCol,
		LastLine:    endLine,
		LastColumn:  endCol,
		Length:      raw.End - raw.Start,
		Corrected:   corrected,
		Correctable: raw.Fix != nil,
	}
}
