package checker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/fix"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// erroringParser always returns the configured error.
type erroringParser struct {
	err error
}

func (p *erroringParser) Parse(_ context.Context, _ string, _ []byte) (*rbast.FileSnapshot, error) {
	return nil, p.err
}

func TestNewChecker(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := checker.NewRegistry()

	chk := checker.NewChecker(parser, registry)

	if chk.Parser != parser {
		t.Error("Parser mismatch")
	}
	if chk.Registry != registry {
		t.Error("Registry mismatch")
	}
}

func TestChecker_CheckFile_Basic(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := checker.NewRegistry()
	chk := checker.NewChecker(parser, registry)

	cfg := config.NewConfig()
	result, err := chk.CheckFile(context.Background(), "test.rb", []byte("x = 1\n"), cfg)

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	if result.Snapshot == nil {
		t.Error("expected Snapshot to be set")
	}

	if result.Snapshot.Path != "test.rb" {
		t.Errorf("Path = %q, want test.rb", result.Snapshot.Path)
	}
}

func TestChecker_CheckFile_ParseError(t *testing.T) {
	t.Parallel()

	parseErr := errors.New("parse failed")
	parser := &erroringParser{err: parseErr}
	registry := checker.NewRegistry()
	chk := checker.NewChecker(parser, registry)

	cfg := config.NewConfig()
	_, err := chk.CheckFile(context.Background(), "test.rb", []byte("x = 1\n"), cfg)

	if err == nil {
		t.Fatal("expected error")
	}

	if !errors.Is(err, parseErr) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestChecker_CheckFile_WithDiagnostics(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := checker.NewRegistry()

	rule := &diagnosticRule{
		BaseRule: checker.NewBaseRule(ruleid.LintDebugger, "test-rule", config.SeverityWarning, false),
		diags: []checker.RawDiagnostic{
			{Rule: ruleid.LintDebugger, Message: "test issue", Start: 0, End: 1},
		},
	}
	registry.RegisterLine(rule)

	chk := checker.NewChecker(parser, registry)
	cfg := config.NewConfig()

	result, err := chk.CheckFile(context.Background(), "test.rb", []byte("x = 1\n"), cfg)

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	if !result.HasIssues() {
		t.Error("expected issues")
	}

	if result.IssueCount() != 1 {
		t.Errorf("expected 1 issue, got %d", result.IssueCount())
	}

	if result.Diagnostics[0].Message != "test issue" {
		t.Errorf("Message = %q, want test issue", result.Diagnostics[0].Message)
	}
}

func TestChecker_CheckFile_SeverityOverride(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := checker.NewRegistry()

	rule := &diagnosticRule{
		BaseRule: checker.NewBaseRule(ruleid.LintDebugger, "test-rule", config.SeverityInfo, false),
		diags: []checker.RawDiagnostic{
			{Rule: ruleid.LintDebugger, Message: "test", Start: 0, End: 1},
		},
	}
	registry.RegisterLine(rule)

	chk := checker.NewChecker(parser, registry)
	cfg := config.NewConfig()
	severity := string(config.SeverityError)
	cfg.Rules[ruleid.LintDebugger.String()] = config.RuleConfig{Severity: &severity}

	result, err := chk.CheckFile(context.Background(), "test.rb", []byte("x = 1\n"), cfg)

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	if result.Diagnostics[0].Severity != config.SeverityError {
		t.Errorf("Severity = %v, want error", result.Diagnostics[0].Severity)
	}
}

func TestChecker_CheckFile_RuleError(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := checker.NewRegistry()

	ruleErr := errors.New("rule failed")
	rule := &panickingRule{
		BaseRule: checker.NewBaseRule(ruleid.LintDebugger, "test-rule", config.SeverityWarning, false),
		err:      ruleErr,
	}
	registry.RegisterLine(rule)

	chk := checker.NewChecker(parser, registry)
	cfg := config.NewConfig()

	result, err := chk.CheckFile(context.Background(), "test.rb", []byte("x = 1\n"), cfg)

	if err != nil {
		t.Fatalf("CheckFile should not return error for rule panics: %v", err)
	}

	recorded, ok := result.RuleErrors[ruleid.LintDebugger]
	if !ok {
		t.Fatal("expected rule error to be recorded")
	}
	if recorded == nil {
		t.Error("expected a non-nil recorded error")
	}
}

// panickingRule panics from CheckEOF, exercising the engine's per-rule
// panic recovery.
type panickingRule struct {
	checker.BaseRule
	err error
}

func (r *panickingRule) CheckLine(_ *checker.RuleContext, _ int, _ rbast.Line) {}

func (r *panickingRule) CheckEOF(_ *checker.RuleContext) {
	panic(r.err)
}

func TestChecker_CheckFile_ContextCancellation(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := checker.NewRegistry()

	rule := &diagnosticRule{
		BaseRule: checker.NewBaseRule(ruleid.LintDebugger, "test-rule", config.SeverityWarning, false),
	}
	registry.RegisterLine(rule)

	chk := checker.NewChecker(parser, registry)
	cfg := config.NewConfig()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := chk.CheckFile(ctx, "test.rb", []byte("x = 1\n"), cfg)

	if err != nil {
		t.Logf("got error (possibly wrapped): %v", err)
		return
	}
	if result == nil {
		t.Error("expected either error or result")
	}
}

func TestChecker_CheckFile_WithFixes(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := checker.NewRegistry()

	rule := &fixableRule{
		BaseRule: checker.NewBaseRule(ruleid.LayoutTrailingWhitespace, "test-rule", config.SeverityError, true),
		diags: []checker.RawDiagnostic{
			{
				Rule:    ruleid.LayoutTrailingWhitespace,
				Message: "fixable issue",
				Start:   0,
				End:     5,
				Fix: &fix.Fix{
					Rule:  ruleid.LayoutTrailingWhitespace,
					Edits: []fix.TextEdit{{StartOffset: 0, EndOffset: 5, NewText: "hello"}},
				},
			},
		},
	}
	registry.RegisterLine(rule)

	chk := checker.NewChecker(parser, registry)
	cfg := config.NewConfig()
	cfg.AutoCorrect = true

	result, err := chk.CheckFile(context.Background(), "test.rb", []byte("world"), cfg)

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	if !result.HasFixes() {
		t.Error("expected fixes")
	}

	if result.FixableCount() != 1 {
		t.Errorf("expected 1 fixable, got %d", result.FixableCount())
	}
}

func TestChecker_CheckFile_FilePathSet(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := checker.NewRegistry()

	rule := &diagnosticRule{
		BaseRule: checker.NewBaseRule(ruleid.LintDebugger, "test-rule", config.SeverityWarning, false),
		diags: []checker.RawDiagnostic{
			{Rule: ruleid.LintDebugger, Message: "test issue", Start: 0, End: 1},
		},
	}
	registry.RegisterLine(rule)

	chk := checker.NewChecker(parser, registry)
	cfg := config.NewConfig()

	result, err := chk.CheckFile(context.Background(), "path/to/file.rb", []byte("x = 1\n"), cfg)

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	if result.Diagnostics[0].FilePath != "path/to/file.rb" {
		t.Errorf("FilePath = %q, want path/to/file.rb", result.Diagnostics[0].FilePath)
	}
}

func TestFileResult_Methods(t *testing.T) {
	t.Parallel()

	t.Run("HasIssues", func(t *testing.T) {
		t.Parallel()

		result := &checker.FileResult{}
		if result.HasIssues() {
			t.Error("expected no issues")
		}

		result.Diagnostics = []checker.Diagnostic{{}}
		if !result.HasIssues() {
			t.Error("expected issues")
		}
	})

	t.Run("HasFixes", func(t *testing.T) {
		t.Parallel()

		result := &checker.FileResult{}
		if result.HasFixes() {
			t.Error("expected no fixes")
		}

		result.Diagnostics = []checker.Diagnostic{{Correctable: true}}
		if !result.HasFixes() {
			t.Error("expected fixes")
		}
	})

	t.Run("IssueCount", func(t *testing.T) {
		t.Parallel()

		result := &checker.FileResult{}
		if result.IssueCount() != 0 {
			t.Error("expected 0")
		}

		result.Diagnostics = []checker.Diagnostic{{}, {}}
		if result.IssueCount() != 2 {
			t.Errorf("expected 2, got %d", result.IssueCount())
		}
	})

	t.Run("FixableCount", func(t *testing.T) {
		t.Parallel()

		result := &checker.FileResult{
			Diagnostics: []checker.Diagnostic{
				{Correctable: true},
				{},
				{Correctable: true},
			},
		}

		if result.FixableCount() != 2 {
			t.Errorf("expected 2 fixable, got %d", result.FixableCount())
		}
	})
}

// TestChecker_Integration_DefaultRegistry exercises the checker against the
// globally registered Layout/Lint rules.
func TestChecker_Integration_DefaultRegistry(t *testing.T) {
	t.Parallel()

	input := "x = 1  \n\n\n\ndef widget\n  binding.pry\nend\n"

	parser := &mockParser{}
	chk := checker.NewChecker(parser, checker.DefaultRegistry)
	cfg := config.NewConfig()

	result, err := chk.CheckFile(context.Background(), "test.rb", []byte(input), cfg)

	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}

	t.Logf("found %d diagnostics", result.IssueCount())

	if result.Snapshot == nil {
		t.Error("expected Snapshot to be set")
	}

	if result.RuleErrors == nil {
		t.Error("expected RuleErrors map to be initialized")
	}
}
