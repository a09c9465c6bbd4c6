package layout_test

import (
	"context"
	"testing"

	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	_ "github.com/fastlint/fastlint/pkg/rules/layout"
	"github.com/fastlint/fastlint/pkg/rbparser/structural"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

func checkSource(t *testing.T, source string) *checker.FileResult {
	t.Helper()
	c := checker.NewChecker(structural.New(), checker.DefaultRegistry)
	res, err := c.CheckFile(context.Background(), "sample.rb", []byte(source), config.NewConfig())
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	return res
}

func diagnosticsFor(res *checker.FileResult, id ruleid.RuleID) []checker.Diagnostic {
	var out []checker.Diagnostic
	for _, d := range res.Diagnostics {
		if d.Rule == id {
			out = append(out, d)
		}
	}
	return out
}

func TestTrailingWhitespaceDetected(t *testing.T) {
	res := checkSource(t, "def foo  \nend\n")
	diags := diagnosticsFor(res, ruleid.LayoutTrailingWhitespace)
	if len(diags) != 1 {
		t.Fatalf("got %d Layout/TrailingWhitespace diagnostics, want 1: %+v", len(diags), diags)
	}
	if !diags[0].Correctable {
		t.Fatal("expected a fix to be attached")
	}
}

func TestTrailingWhitespaceClean(t *testing.T) {
	res := checkSource(t, "def foo\nend\n")
	if diags := diagnosticsFor(res, ruleid.LayoutTrailingWhitespace); len(diags) != 0 {
		t.Fatalf("got %d diagnostics on clean source, want 0", len(diags))
	}
}

func TestTrailingEmptyLinesMissingFinalNewline(t *testing.T) {
	res := checkSource(t, "def foo\nend")
	diags := diagnosticsFor(res, ruleid.LayoutTrailingEmptyLines)
	if len(diags) != 1 {
		t.Fatalf("got %d Layout/TrailingEmptyLines diagnostics, want 1", len(diags))
	}
}

func TestTrailingEmptyLinesExtraBlankLines(t *testing.T) {
	res := checkSource(t, "def foo\nend\n\n\n")
	diags := diagnosticsFor(res, ruleid.LayoutTrailingEmptyLines)
	if len(diags) != 1 {
		t.Fatalf("got %d Layout/TrailingEmptyLines diagnostics, want 1", len(diags))
	}
}

func TestLeadingEmptyLinesDetected(t *testing.T) {
	res := checkSource(t, "\n\ndef foo\nend\n")
	diags := diagnosticsFor(res, ruleid.LayoutLeadingEmptyLines)
	if len(diags) != 1 {
		t.Fatalf("got %d Layout/LeadingEmptyLines diagnostics, want 1", len(diags))
	}
}

func TestEmptyLinesExcessRun(t *testing.T) {
	res := checkSource(t, "a\n\n\n\nb\n")
	diags := diagnosticsFor(res, ruleid.LayoutEmptyLines)
	if len(diags) != 1 {
		t.Fatalf("got %d Layout/EmptyLines diagnostics, want 1", len(diags))
	}
}

func TestIndentationStyleFlagsTabs(t *testing.T) {
	res := checkSource(t, "def foo\n\tbar\nend\n")
	diags := diagnosticsFor(res, ruleid.LayoutIndentationStyle)
	if len(diags) != 1 {
		t.Fatalf("got %d Layout/IndentationStyle diagnostics, want 1", len(diags))
	}
}

func TestEndAlignmentMismatch(t *testing.T) {
	res := checkSource(t, "if true\n  bar\n  end\n")
	diags := diagnosticsFor(res, ruleid.LayoutEndAlignment)
	if len(diags) != 1 {
		t.Fatalf("got %d Layout/EndAlignment diagnostics, want 1", len(diags))
	}
}

func TestDefEndAlignmentAligned(t *testing.T) {
	res := checkSource(t, "def foo\n  bar\nend\n")
	if diags := diagnosticsFor(res, ruleid.LayoutDefEndAlignment); len(diags) != 0 {
		t.Fatalf("got %d Layout/DefEndAlignment diagnostics on aligned source, want 0", len(diags))
	}
}
