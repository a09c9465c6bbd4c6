package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastlint/fastlint/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Rules map", func(t *testing.T) {
		enabled := true
		severity := "error"
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"Layout/TrailingWhitespace": {
					Enabled:  &enabled,
					Severity: &severity,
					Options: map[string]any{
						"Width": 2,
					},
				},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		// Verify the Rules map is a different instance
		assert.NotSame(t, &original.Rules, &clone.Rules)

		// Verify the rule config values are copied
		require.Contains(t, clone.Rules, "Layout/TrailingWhitespace")
		assert.True(t, *clone.Rules["Layout/TrailingWhitespace"].Enabled)
		assert.Equal(t, "error", *clone.Rules["Layout/TrailingWhitespace"].Severity)

		// Verify modifying clone doesn't affect original
		newSeverity := "warning"
		clone.Rules["Layout/TrailingWhitespace"] = config.RuleConfig{Severity: &newSeverity}
		assert.Equal(t, "error", *original.Rules["Layout/TrailingWhitespace"].Severity)
	})

	t.Run("deep copies AllCops.Exclude slice", func(t *testing.T) {
		original := &config.Config{
			AllCops: config.AllCopsConfig{
				Exclude: []string{"vendor/**", "tmp/**"},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.AllCops.Exclude, clone.AllCops.Exclude)

		// Verify modifying clone doesn't affect original
		clone.AllCops.Exclude[0] = "changed"
		assert.Equal(t, "vendor/**", original.AllCops.Exclude[0])
	})

	t.Run("preserves all fields", func(t *testing.T) {
		enabled := true
		original := &config.Config{
			AllCops: config.AllCopsConfig{
				TargetRubyVersion: "3.3",
				ParserBackend:     "structural",
			},
			Rules: map[string]config.RuleConfig{
				"Layout/TrailingWhitespace": {Enabled: &enabled},
			},
			InheritFrom:     []string{"../.rubocop.yml"},
			AutoCorrect:     true,
			AutoCorrectAll:  false,
			ForceExclusion:  true,
			FailLevel:       config.SeverityWarning,
			Backups:         config.BackupsConfig{Enabled: true, Mode: "sidecar"},
			DryRun:          true,
			Format:          config.FormatJSON,
			RuleFormat:      config.RuleFormatCombined,
			Jobs:            4,
			DisplayCopNames: true,
			Color:           true,
			EnableRules:     []string{"Layout/TrailingWhitespace", "Layout/IndentationWidth"},
			DisableRules:    []string{"Lint/Debugger"},
			NoBackups:       true,
			StdinPath:       "lib/widget.rb",
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.AllCops, clone.AllCops)
		assert.Equal(t, original.InheritFrom, clone.InheritFrom)
		assert.Equal(t, original.AutoCorrect, clone.AutoCorrect)
		assert.Equal(t, original.AutoCorrectAll, clone.AutoCorrectAll)
		assert.Equal(t, original.ForceExclusion, clone.ForceExclusion)
		assert.Equal(t, original.FailLevel, clone.FailLevel)
		assert.Equal(t, original.Backups, clone.Backups)
		assert.Equal(t, original.DryRun, clone.DryRun)
		assert.Equal(t, original.Format, clone.Format)
		assert.Equal(t, original.RuleFormat, clone.RuleFormat)
		assert.Equal(t, original.Jobs, clone.Jobs)
		assert.Equal(t, original.DisplayCopNames, clone.DisplayCopNames)
		assert.Equal(t, original.Color, clone.Color)
		assert.Equal(t, original.NoBackups, clone.NoBackups)
		assert.Equal(t, original.StdinPath, clone.StdinPath)

		// Verify slices are copied
		assert.Equal(t, original.EnableRules, clone.EnableRules)
		assert.Equal(t, original.DisableRules, clone.DisableRules)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		cfg := &config.Config{
			AllCops: config.AllCopsConfig{
				TargetRubyVersion: "3.3",
			},
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "TargetRubyVersion: \"3.3\"")
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		yaml := []byte(`
AllCops:
  TargetRubyVersion: "3.3"
Layout/TrailingWhitespace:
  Enabled: true
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)
		assert.Equal(t, "3.3", cfg.AllCops.TargetRubyVersion)
		require.Contains(t, cfg.Rules, "Layout/TrailingWhitespace")
		assert.True(t, *cfg.Rules["Layout/TrailingWhitespace"].Enabled)
	})

	t.Run("initializes empty Rules map", func(t *testing.T) {
		yaml := []byte(`AllCops:
  TargetRubyVersion: "3.3"
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)
		assert.NotNil(t, cfg.Rules)
	})
}
