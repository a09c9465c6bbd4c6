package configloader

import "github.com/fastlint/fastlint/pkg/config"

// merge combines two configurations, with override taking precedence over
// base. AllCops and the per-rule table are deep-merged via config.Merge;
// CLI-only scalars (never persisted to a config file) are copied over
// whenever override sets a non-zero value.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	out := config.Merge(base, override)

	if override.AutoCorrect {
		out.AutoCorrect = override.AutoCorrect
	}
	if override.AutoCorrectAll {
		out.AutoCorrectAll = override.AutoCorrectAll
	}
	if override.ForceExclusion {
		out.ForceExclusion = override.ForceExclusion
	}
	if override.FailLevel != "" {
		out.FailLevel = override.FailLevel
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.RuleFormat != "" {
		out.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		out.Jobs = override.Jobs
	}
	if override.DisplayCopNames {
		out.DisplayCopNames = override.DisplayCopNames
	}
	if override.DryRun {
		out.DryRun = override.DryRun
	}
	if override.NoBackups {
		out.NoBackups = override.NoBackups
	}
	if override.Backups.Mode != "" {
		out.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		out.Backups.Enabled = override.Backups.Enabled
	}
	if override.StdinPath != "" {
		out.StdinPath = override.StdinPath
	}
	if override.EnableRules != nil {
		out.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		out.DisableRules = override.DisableRules
	}

	return out
}

// MergeAll merges multiple configurations in order, with later configs
// taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
