package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/runner"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{},
	}

	report := Analyze(result, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, 0, report.Totals.Issues)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByRule)
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "file1.rb",
				Result: &checker.PipelineResult{
					FileResult: &checker.FileResult{
						Diagnostics: []checker.Diagnostic{
							{Rule: ruleid.LayoutTrailingWhitespace, Severity: config.SeverityError},
							{Rule: ruleid.LayoutTrailingWhitespace, Severity: config.SeverityError},
							{Rule: ruleid.LintDebugger, Severity: config.SeverityWarning},
						},
					},
				},
			},
			{
				Path: "file2.rb",
				Result: &checker.PipelineResult{
					FileResult: &checker.FileResult{
						Diagnostics: []checker.Diagnostic{
							{Rule: ruleid.LintDebugger, Severity: config.SeverityWarning},
						},
					},
				},
			},
		},
	}

	report := Analyze(result, DefaultOptions())

	assert.Equal(t, 4, report.Totals.Issues)
	assert.Equal(t, 2, report.Totals.Errors)
	assert.Equal(t, 2, report.Totals.Warnings)
	assert.Equal(t, 2, report.Totals.Files)
	assert.Equal(t, 2, report.Totals.FilesWithIssues)
}

func TestAnalyze_GroupsByRule(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "file1.rb",
				Result: &checker.PipelineResult{
					FileResult: &checker.FileResult{
						Diagnostics: []checker.Diagnostic{
							{Rule: ruleid.LayoutTrailingWhitespace, Severity: config.SeverityError},
							{Rule: ruleid.LintDebugger, Severity: config.SeverityWarning, Correctable: true},
						},
					},
				},
			},
			{
				Path: "file2.rb",
				Result: &checker.PipelineResult{
					FileResult: &checker.FileResult{
						Diagnostics: []checker.Diagnostic{
							{Rule: ruleid.LintDebugger, Severity: config.SeverityWarning, Correctable: true},
						},
					},
				},
			},
		},
	}

	report := Analyze(result, DefaultOptions())

	require.Len(t, report.ByRule, 2)

	// Sorted by count descending, Lint/Debugger has 2, Layout/TrailingWhitespace has 1
	assert.Equal(t, "Lint/Debugger", report.ByRule[0].RuleID)
	assert.Equal(t, 2, report.ByRule[0].Issues)
	assert.True(t, report.ByRule[0].Fixable)
	assert.ElementsMatch(t, []string{"file1.rb", "file2.rb"}, report.ByRule[0].Files)

	assert.Equal(t, "Layout/TrailingWhitespace", report.ByRule[1].RuleID)
	assert.Equal(t, 1, report.ByRule[1].Issues)
	assert.False(t, report.ByRule[1].Fixable)
}

func TestAnalyze_GroupsByFile(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "a.rb",
				Result: &checker.PipelineResult{
					FileResult: &checker.FileResult{
						Diagnostics: []checker.Diagnostic{
							{Rule: ruleid.LayoutTrailingWhitespace, Severity: config.SeverityError},
						},
					},
				},
			},
			{
				Path: "b.rb",
				Result: &checker.PipelineResult{
					FileResult: &checker.FileResult{
						Diagnostics: []checker.Diagnostic{
							{Rule: ruleid.LayoutTrailingWhitespace, Severity: config.SeverityError},
							{Rule: ruleid.LintDebugger, Severity: config.SeverityWarning},
							{Rule: ruleid.LintDebugger, Severity: config.SeverityWarning},
						},
					},
				},
			},
		},
	}

	report := Analyze(result, DefaultOptions())

	require.Len(t, report.ByFile, 2)

	// Sorted by count descending, b.rb has 3, a.rb has 1
	assert.Equal(t, "b.rb", report.ByFile[0].Path)
	assert.Equal(t, 3, report.ByFile[0].Issues)
	assert.Equal(t, 1, report.ByFile[0].Errors)
	assert.Equal(t, 2, report.ByFile[0].Warnings)

	assert.Equal(t, "a.rb", report.ByFile[1].Path)
	assert.Equal(t, 1, report.ByFile[1].Issues)
}

func TestAnalyze_SortByAlpha(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "z.rb",
				Result: &checker.PipelineResult{
					FileResult: &checker.FileResult{
						Diagnostics: []checker.Diagnostic{{Rule: ruleid.LayoutTrailingWhitespace}},
					},
				},
			},
			{
				Path: "a.rb",
				Result: &checker.PipelineResult{
					FileResult: &checker.FileResult{
						Diagnostics: []checker.Diagnostic{
							{Rule: ruleid.LayoutTrailingWhitespace},
							{Rule: ruleid.LayoutTrailingWhitespace},
						},
					},
				},
			},
		},
	}

	opts := DefaultOptions()
	opts.SortBy = SortByAlpha

	report := Analyze(result, opts)

	require.Len(t, report.ByFile, 2)
	assert.Equal(t, "a.rb", report.ByFile[0].Path)
	assert.Equal(t, "z.rb", report.ByFile[1].Path)
}

func TestAnalyze_ExcludeViews(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "file.rb",
				Result: &checker.PipelineResult{
					FileResult: &checker.FileResult{
						Diagnostics: []checker.Diagnostic{{Rule: ruleid.LayoutTrailingWhitespace}},
					},
				},
			},
		},
	}

	opts := Options{
		IncludeDiagnostics: false,
		IncludeByFile:      false,
		IncludeByRule:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
	}

	report := Analyze(result, opts)

	assert.Empty(t, report.Diagnostics, "diagnostics should be excluded")
	assert.Empty(t, report.ByFile, "byFile should be excluded")
	assert.NotEmpty(t, report.ByRule, "byRule should be included")
	assert.Equal(t, 1, report.Totals.Issues, "totals always computed")
}
