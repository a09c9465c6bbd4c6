package checker_test

import (
	"testing"

	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

func TestNewDiagnostic(t *testing.T) {
	t.Parallel()

	content := []byte("  def widget\nend\n")
	file := &rbast.FileSnapshot{
		Path:    "test.rb",
		Content: content,
		Lines:   rbast.BuildLines(content),
	}

	raw := checker.NewDiagnosticAt(ruleid.LayoutTrailingWhitespace, 0, 2, "trailing whitespace").Build()

	if raw.Rule != ruleid.LayoutTrailingWhitespace {
		t.Errorf("Rule = %v, want %v", raw.Rule, ruleid.LayoutTrailingWhitespace)
	}
	if raw.Message != "trailing whitespace" {
		t.Errorf("Message = %q, want %q", raw.Message, "trailing whitespace")
	}

	diag := checker.ResolveDiagnostic(raw, file, "test.rb", false)
	if diag.FilePath != "test.rb" {
		t.Errorf("FilePath = %q, want test.rb", diag.FilePath)
	}
	if diag.StartLine != 1 {
		t.Errorf("StartLine = %d, want 1", diag.StartLine)
	}
}

func TestNewDiagnosticAt_NoNode(t *testing.T) {
	t.Parallel()

	raw := checker.NewDiagnosticAt(ruleid.LintDebugger, 5, 10, "debugger call").Build()

	if raw.Rule != ruleid.LintDebugger {
		t.Errorf("Rule = %v, want %v", raw.Rule, ruleid.LintDebugger)
	}
	if raw.Start != 5 || raw.End != 10 {
		t.Errorf("Start/End = %d/%d, want 5/10", raw.Start, raw.End)
	}
}

func TestDiagnosticBuilder_WithSeverity(t *testing.T) {
	t.Parallel()

	raw := checker.NewDiagnosticAt(ruleid.LintDebugger, 0, 1, "test").
		WithSeverity(config.SeverityError).
		Build()

	if raw.Severity != config.SeverityError {
		t.Errorf("Severity = %v, want error", raw.Severity)
	}
}

func TestDiagnosticBuilder_WithEdits(t *testing.T) {
	t.Parallel()

	raw := checker.NewDiagnosticAt(ruleid.LayoutTrailingWhitespace, 0, 5, "test").
		WithEdits(ruleid.LayoutTrailingWhitespace, false, fix.TextEdit{StartOffset: 0, EndOffset: 5, NewText: ""}).
		Build()

	if raw.Fix == nil {
		t.Fatal("expected Fix to be set")
	}
	if len(raw.Fix.Edits) != 1 {
		t.Fatalf("Fix.Edits length = %d, want 1", len(raw.Fix.Edits))
	}
	if raw.Fix.Edits[0].StartOffset != 0 {
		t.Errorf("Edits[0].StartOffset = %d, want 0", raw.Fix.Edits[0].StartOffset)
	}
}

func TestDiagnosticBuilder_WithEdits_Empty(t *testing.T) {
	t.Parallel()

	raw := checker.NewDiagnosticAt(ruleid.LayoutTrailingWhitespace, 0, 5, "test").
		WithEdits(ruleid.LayoutTrailingWhitespace, false).
		Build()

	if raw.Fix != nil {
		t.Error("expected Fix to remain nil with no edits")
	}
}

func TestDiagnosticBuilder_WithFix(t *testing.T) {
	t.Parallel()

	f := &fix.Fix{
		Rule:  ruleid.LayoutTrailingWhitespace,
		Edits: []fix.TextEdit{{StartOffset: 0, EndOffset: 5, NewText: "hello"}},
	}

	raw := checker.NewDiagnosticAt(ruleid.LayoutTrailingWhitespace, 0, 5, "test").
		WithFix(f).
		Build()

	if raw.Fix != f {
		t.Error("expected Fix to be set to the provided *fix.Fix")
	}
}

func TestDiagnosticBuilder_WithFix_Nil(t *testing.T) {
	t.Parallel()

	raw := checker.NewDiagnosticAt(ruleid.LayoutTrailingWhitespace, 0, 5, "test").
		WithFix(nil).
		Build()

	if raw.Fix != nil {
		t.Error("expected Fix to remain nil")
	}
}

func TestDiagnosticBuilder_Chaining(t *testing.T) {
	t.Parallel()

	raw := checker.NewDiagnosticAt(ruleid.LintDebugger, 0, 5, "debugger call").
		WithSeverity(config.SeverityWarning).
		WithEdits(ruleid.LintDebugger, true, fix.TextEdit{StartOffset: 0, EndOffset: 5, NewText: ""}).
		Build()

	if raw.Rule != ruleid.LintDebugger {
		t.Errorf("Rule = %v, want %v", raw.Rule, ruleid.LintDebugger)
	}
	if raw.Message != "debugger call" {
		t.Errorf("Message = %q, want debugger call", raw.Message)
	}
	if raw.Severity != config.SeverityWarning {
		t.Errorf("Severity = %v, want warning", raw.Severity)
	}
	if raw.Fix == nil || !raw.Fix.Unsafe {
		t.Error("expected an unsafe fix to be attached")
	}
}

func TestDiagnostic_SourcePosition(t *testing.T) {
	t.Parallel()

	diag := checker.Diagnostic{
		StartLine:   1,
		StartColumn: 5,
		LastLine:    2,
		LastColumn:  10,
	}

	pos := diag.SourcePosition()

	if pos.StartLine != 1 {
		t.Errorf("StartLine = %d, want 1", pos.StartLine)
	}
	if pos.StartColumn != 5 {
		t.Errorf("StartColumn = %d, want 5", pos.StartColumn)
	}
	if pos.EndLine != 2 {
		t.Errorf("EndLine = %d, want 2", pos.EndLine)
	}
	if pos.EndColumn != 10 {
		t.Errorf("EndColumn = %d, want 10", pos.EndColumn)
	}
}

func TestResolveDiagnostic_Correctable(t *testing.T) {
	t.Parallel()

	content := []byte("x = 1  \n")
	file := &rbast.FileSnapshot{
		Path:    "test.rb",
		Content: content,
		Lines:   rbast.BuildLines(content),
	}

	raw := checker.NewDiagnosticAt(ruleid.LayoutTrailingWhitespace, 5, 7, "trailing whitespace").
		WithEdits(ruleid.LayoutTrailingWhitespace, false, fix.TextEdit{StartOffset: 5, EndOffset: 7, NewText: ""}).
		Build()

	diag := checker.ResolveDiagnostic(raw, file, "test.rb", false)

	if !diag.Correctable {
		t.Error("expected Correctable to be true when Fix is set")
	}
	if diag.Corrected {
		t.Error("expected Corrected to be false")
	}
	if diag.Length != 2 {
		t.Errorf("Length = %d, want 2", diag.Length)
	}
}
