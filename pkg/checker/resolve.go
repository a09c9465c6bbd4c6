package checker

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/fastlint/fastlint/pkg/config"
)

// ResolvedRule pairs a rule ID with its resolved enable/severity/autofix
// state for one run. Produced once per (rule, file) dispatch decision.
type ResolvedRule struct {
	Enabled  bool
	Severity config.Severity
	AutoFix  bool
	Config   *config.RuleConfig
}

// resolve determines whether a rule (identified by its wire name) should
// run, and with what severity/autofix state, against cfg alone (not yet
// gated against a specific file path -- see ShouldRunOnFile).
func resolve(ruleName string, defaultSeverity config.Severity, canFix bool, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{Enabled: true, Severity: defaultSeverity, AutoFix: canFix}
	if cfg == nil {
		return rr
	}

	for _, id := range cfg.DisableRules {
		if id == ruleName {
			rr.Enabled = false
		}
	}
	for _, id := range cfg.EnableRules {
		if id == ruleName {
			rr.Enabled = true
		}
	}

	if ruleCfg, ok := cfg.Rules[ruleName]; ok {
		rr.Config = &ruleCfg
		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
	}

	if !cfg.AutoCorrect && !cfg.AutoCorrectAll {
		rr.AutoFix = false
	}

	return rr
}

// ShouldRunOnFile implements the gating function of spec section 4.5: a
// rule runs on file F iff enabled AND F matches the rule's include globs
// (empty means "all Ruby files") AND F matches neither the rule's exclude
// globs nor AllCops.Exclude.
func ShouldRunOnFile(rr ResolvedRule, cfg *config.Config, path string) bool {
	if !rr.Enabled {
		return false
	}

	if cfg != nil {
		for _, pattern := range cfg.AllCops.Exclude {
			if globMatch(pattern, path) {
				return false
			}
		}
	}

	if rr.Config != nil {
		if len(rr.Config.Include) > 0 {
			matched := false
			for _, pattern := range rr.Config.Include {
				if globMatch(pattern, path) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		for _, pattern := range rr.Config.Exclude {
			if globMatch(pattern, path) {
				return false
			}
		}
	}

	return true
}

func globMatch(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}
