package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastlint/fastlint/internal/cli"
)

// rubyWithTrailingWhitespace is a test Ruby file with trailing whitespace on
// line 1. This triggers Layout/TrailingWhitespace.
const rubyWithTrailingWhitespace = "x = 1   \n\nputs x\n"

// TestIntegration_RuleFormatFlag tests the --rule-format flag with different formats.
func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	rbFile := filepath.Join(tmpDir, "test.rb")
	require.NoError(t, os.WriteFile(rbFile, []byte(rubyWithTrailingWhitespace), 0644))

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	tests := []struct {
		name           string
		ruleFormat     string
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "format name shows rule name only",
			ruleFormat:     "name",
			wantContains:   []string{"TrailingWhitespace"},
			wantNotContain: []string{"Layout/TrailingWhitespace"},
		},
		{
			name:           "format id shows rule ID only",
			ruleFormat:     "id",
			wantContains:   []string{"Layout/TrailingWhitespace"},
			wantNotContain: []string{},
		},
		{
			name:           "format combined shows both ID and name",
			ruleFormat:     "combined",
			wantContains:   []string{"Layout/TrailingWhitespace"},
			wantNotContain: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(info)

			var stdout, stderr bytes.Buffer
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)

			cfgDir := t.TempDir()
			cfgFile := filepath.Join(cfgDir, ".fastlint.yml")
			require.NoError(t, os.WriteFile(cfgFile, []byte("AllCops:\n  TargetRubyVersion: \"3.3\"\n"), 0644))

			cmd.SetArgs([]string{
				"lint",
				"--config", cfgFile,
				"--rule-format", tt.ruleFormat,
				"--no-context",
				"--color", "never",
				rbFile,
			})

			_ = cmd.Execute() //nolint:errcheck // lint issues expected

			output := stdout.String() + stderr.String()

			for _, want := range tt.wantContains {
				assert.Contains(t, output, want,
					"output should contain %q for rule-format=%s", want, tt.ruleFormat)
			}

			for _, notWant := range tt.wantNotContain {
				assert.NotContains(t, output, notWant,
					"output should not contain %q for rule-format=%s", notWant, tt.ruleFormat)
			}
		})
	}
}

// TestIntegration_ConfigWithRuleNames tests that config files can use rule names.
func TestIntegration_ConfigWithRuleNames(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	rbFile := filepath.Join(tmpDir, "test.rb")
	require.NoError(t, os.WriteFile(rbFile, []byte(rubyWithTrailingWhitespace), 0644))

	configContent := `
Layout/TrailingWhitespace:
  Enabled: false
`
	configFile := filepath.Join(tmpDir, ".fastlint.yml")
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", configFile,
		"--no-context",
		"--color", "never",
		rbFile,
	})

	err := cmd.Execute()

	output := stdout.String() + stderr.String()

	assert.NotContains(t, output, "TrailingWhitespace",
		"disabled rule should not appear in output")

	_ = err // command may or may not error depending on other rules
}

// TestIntegration_RulesCommandWithFormat tests that the rules command accepts --rule-format flag.
func TestIntegration_RulesCommandWithFormat(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	tests := []struct {
		name       string
		ruleFormat string
	}{
		{name: "format name", ruleFormat: "name"},
		{name: "format id", ruleFormat: "id"},
		{name: "format combined", ruleFormat: "combined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(info)

			var stdout, stderr bytes.Buffer
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)
			cmd.SetArgs([]string{
				"rules",
				"--rule-format", tt.ruleFormat,
			})

			err := cmd.Execute()
			require.NoError(t, err, "rules command should succeed with --rule-format=%s", tt.ruleFormat)
		})
	}
}

// TestIntegration_DefaultRuleFormat tests that the default rule format is "combined".
func TestIntegration_DefaultRuleFormat(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	rbFile := filepath.Join(tmpDir, "test.rb")
	require.NoError(t, os.WriteFile(rbFile, []byte(rubyWithTrailingWhitespace), 0644))

	cfgFile := filepath.Join(tmpDir, ".fastlint.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("AllCops:\n  TargetRubyVersion: \"3.3\"\n"), 0644))

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--no-context",
		"--color", "never",
		rbFile,
	})

	_ = cmd.Execute() //nolint:errcheck // lint issues expected

	output := stdout.String() + stderr.String()

	assert.Contains(t, output, "TrailingWhitespace",
		"default format should show rule name")
}

// TestIntegration_JSONOutputIncludesCopName tests that JSON output includes the rule name.
func TestIntegration_JSONOutputIncludesCopName(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	rbFile := filepath.Join(tmpDir, "test.rb")
	require.NoError(t, os.WriteFile(rbFile, []byte(rubyWithTrailingWhitespace), 0644))

	cfgFile := filepath.Join(tmpDir, ".fastlint.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("AllCops:\n  TargetRubyVersion: \"3.3\"\n"), 0644))

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--format", "json",
		"--color", "never",
		rbFile,
	})

	_ = cmd.Execute() //nolint:errcheck // lint issues expected

	output := stdout.String()

	assert.Contains(t, output, `"cop_name"`,
		"JSON output should include cop_name field")
	assert.Contains(t, output, `"Layout/TrailingWhitespace"`,
		"JSON output should include the rule name value")
}

// TestIntegration_EnableDisableByName tests --except with rule names.
func TestIntegration_EnableDisableByName(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	rbFile := filepath.Join(tmpDir, "test.rb")
	require.NoError(t, os.WriteFile(rbFile, []byte(rubyWithTrailingWhitespace), 0644))

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cfgDir := t.TempDir()
	cfgFile := filepath.Join(cfgDir, ".fastlint.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("AllCops:\n  TargetRubyVersion: \"3.3\"\n"), 0644))

	t.Run("disable by name", func(t *testing.T) {
		t.Parallel()

		cmd := cli.NewRootCommand(info)

		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{
			"lint",
			"--config", cfgFile,
			"--except", "Layout/TrailingWhitespace",
			"--no-context",
			"--color", "never",
			rbFile,
		})

		_ = cmd.Execute() //nolint:errcheck // lint issues expected

		output := stdout.String() + stderr.String()

		assert.NotContains(t, output, "TrailingWhitespace",
			"disabled rule should not appear in output")
	})
}

// TestIntegration_SummaryFormat tests that --format summary produces expected output.
func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	rbFile := filepath.Join(tmpDir, "test.rb")
	require.NoError(t, os.WriteFile(rbFile, []byte(rubyWithTrailingWhitespace), 0644))

	cfgFile := filepath.Join(tmpDir, ".fastlint.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("AllCops:\n  TargetRubyVersion: \"3.3\"\n"), 0644))

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--format", "summary",
		"--color", "never",
		rbFile,
	})

	_ = cmd.Execute() //nolint:errcheck // lint issues expected

	output := stdout.String() + stderr.String()

	assert.Contains(t, output, "Rules Summary",
		"summary format should show Rules Summary table")
	assert.Contains(t, output, "Files Summary",
		"summary format should show Files Summary table")
	assert.Contains(t, output, "Total:",
		"summary format should show Total line")
}

// TestIntegration_SummaryFormatRulesFirst tests that default order shows rules first.
func TestIntegration_SummaryFormatRulesFirst(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	rbFile := filepath.Join(tmpDir, "test.rb")
	require.NoError(t, os.WriteFile(rbFile, []byte(rubyWithTrailingWhitespace), 0644))

	cfgFile := filepath.Join(tmpDir, ".fastlint.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("AllCops:\n  TargetRubyVersion: \"3.3\"\n"), 0644))

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--format", "summary",
		"--summary-order", "rules",
		"--color", "never",
		rbFile,
	})

	_ = cmd.Execute() //nolint:errcheck // lint issues expected

	output := stdout.String() + stderr.String()

	rulesIdx := strings.Index(output, "Rules Summary")
	filesIdx := strings.Index(output, "Files Summary")

	assert.Greater(t, rulesIdx, -1, "output should contain Rules Summary")
	assert.Greater(t, filesIdx, -1, "output should contain Files Summary")
	assert.Less(t, rulesIdx, filesIdx,
		"with --summary-order rules, Rules Summary should appear before Files Summary")
}

// TestIntegration_SummaryFormatFilesFirst tests that --summary-order files shows files first.
func TestIntegration_SummaryFormatFilesFirst(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	rbFile := filepath.Join(tmpDir, "test.rb")
	require.NoError(t, os.WriteFile(rbFile, []byte(rubyWithTrailingWhitespace), 0644))

	cfgFile := filepath.Join(tmpDir, ".fastlint.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("AllCops:\n  TargetRubyVersion: \"3.3\"\n"), 0644))

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--format", "summary",
		"--summary-order", "files",
		"--color", "never",
		rbFile,
	})

	_ = cmd.Execute() //nolint:errcheck // lint issues expected

	output := stdout.String() + stderr.String()

	rulesIdx := strings.Index(output, "Rules Summary")
	filesIdx := strings.Index(output, "Files Summary")

	assert.Greater(t, rulesIdx, -1, "output should contain Rules Summary")
	assert.Greater(t, filesIdx, -1, "output should contain Files Summary")
	assert.Less(t, filesIdx, rulesIdx,
		"with --summary-order files, Files Summary should appear before Rules Summary")
}

// TestIntegration_SummaryFormatNoIssues tests that summary format with no issues shows clean output.
func TestIntegration_SummaryFormatNoIssues(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	rbFile := filepath.Join(tmpDir, "clean.rb")
	require.NoError(t, os.WriteFile(rbFile, []byte("x = 1\nputs x\n"), 0644))

	cfgFile := filepath.Join(tmpDir, ".fastlint.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("AllCops:\n  TargetRubyVersion: \"3.3\"\n"), 0644))

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--format", "summary",
		"--color", "never",
		rbFile,
	})

	err := cmd.Execute()

	output := stdout.String() + stderr.String()

	require.NoError(t, err, "lint command should succeed with no issues")

	assert.Contains(t, output, "No issues found",
		"summary format should show 'No issues found' when there are no issues")

	assert.NotContains(t, output, "Rules Summary",
		"summary format should not show Rules Summary when there are no issues")
	assert.NotContains(t, output, "Files Summary",
		"summary format should not show Files Summary when there are no issues")
}
