package reporter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/reporter"
	"github.com/fastlint/fastlint/pkg/ruleid"
	"github.com/fastlint/fastlint/pkg/runner"
)

func TestReporter_FacadeReturnsIssueCount(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.Options{
		Writer: &buf,
		Format: reporter.FormatJSON,
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "test.rb",
				Result: &checker.PipelineResult{
					FileResult: &checker.FileResult{
						Diagnostics: []checker.Diagnostic{
							{Rule: ruleid.LayoutTrailingWhitespace, Severity: config.SeverityError},
							{Rule: ruleid.LintDebugger, Severity: config.SeverityWarning},
						},
					},
				},
			},
		},
	}

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
