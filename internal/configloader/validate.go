package configloader

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.Layout/TrailingWhitespace.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownSeverities lists valid severity values, per the six-level order of
// spec section 3.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownSeverities = map[config.Severity]bool{
	config.SeverityInfo:       true,
	config.SeverityRefactor:   true,
	config.SeverityConvention: true,
	config.SeverityWarning:    true,
	config.SeverityError:      true,
	config.SeverityFatal:      true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatJSON:     true,
	config.FormatSimple:   true,
	config.FormatQuiet:    true,
	config.FormatProgress: true,
	config.FormatTable:    true,
	"text":                true,
	"sarif":               true,
	"diff":                true,
	"summary":             true,
}

// knownParserBackends lists valid AllCops.ParserBackend values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownParserBackends = map[string]bool{
	"structural": true,
	"treesitter": true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.AllCops.ParserBackend != "" && !knownParserBackends[cfg.AllCops.ParserBackend] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "AllCops.ParserBackend",
			Value:   cfg.AllCops.ParserBackend,
			Message: fmt.Sprintf("invalid parser backend %q; must be one of: structural, treesitter", cfg.AllCops.ParserBackend),
		})
	}

	if cfg.FailLevel != "" && !knownSeverities[cfg.FailLevel] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "fail_level",
			Value:   cfg.FailLevel,
			Message: fmt.Sprintf("invalid severity %q; must be one of: info, refactor, convention, warning, error, fatal", cfg.FailLevel),
		})
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, table, json, sarif, diff, summary, simple, quiet, progress", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	validateRules(cfg, result)
	validateGlobs(cfg, result)

	return result
}

// validateRules checks rule configurations for errors and warnings.
func validateRules(cfg *config.Config, result *ValidationResult) {
	registry := checker.DefaultRegistry

	for ruleKey, ruleCfg := range cfg.Rules {
		if _, _, found := registry.Resolve(ruleKey); !found {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "rules." + ruleKey,
				Value:   ruleKey,
				Message: fmt.Sprintf("unknown rule %q; it will be ignored", ruleKey),
			})
		}

		if ruleCfg.Severity != nil && !knownSeverities[config.Severity(*ruleCfg.Severity)] {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "rules." + ruleKey + ".Severity",
				Value:   *ruleCfg.Severity,
				Message: fmt.Sprintf("invalid severity %q; must be one of: info, refactor, convention, warning, error, fatal", *ruleCfg.Severity),
			})
		}
	}
}

// validateGlobs checks that AllCops.Exclude and per-rule Include/Exclude
// are syntactically valid doublestar globs.
func validateGlobs(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.AllCops.Exclude {
		if !isValidGlob(pattern) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("AllCops.Exclude[%d]", i),
				Value:   pattern,
				Message: "invalid glob pattern",
			})
		}
	}
	for ruleKey, ruleCfg := range cfg.Rules {
		for i, pattern := range ruleCfg.Include {
			if !isValidGlob(pattern) {
				result.Errors = append(result.Errors, ValidationError{
					Field:   fmt.Sprintf("rules.%s.Include[%d]", ruleKey, i),
					Value:   pattern,
					Message: "invalid glob pattern",
				})
			}
		}
		for i, pattern := range ruleCfg.Exclude {
			if !isValidGlob(pattern) {
				result.Errors = append(result.Errors, ValidationError{
					Field:   fmt.Sprintf("rules.%s.Exclude[%d]", ruleKey, i),
					Value:   pattern,
					Message: "invalid glob pattern",
				})
			}
		}
	}
}

// isValidGlob reports whether pattern is a syntactically well-formed
// doublestar glob.
func isValidGlob(pattern string) bool {
	return doublestar.ValidatePattern(pattern)
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidSeverity returns true if the severity is valid.
func IsValidSeverity(s config.Severity) bool {
	return knownSeverities[s]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
