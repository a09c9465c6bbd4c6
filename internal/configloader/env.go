package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fastlint/fastlint/pkg/config"
)

// envVarPrefix is the prefix for all fastlint environment variables.
const envVarPrefix = "FASTLINT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"TARGET_RUBY_VERSION": {field: "target_ruby_version", typ: envTypeString},
	"PARSER_BACKEND":      {field: "parser_backend", typ: envTypeString},
	"AUTOCORRECT":         {field: "autocorrect", typ: envTypeBool},
	"AUTOCORRECT_ALL":     {field: "autocorrect_all", typ: envTypeBool},
	"DRY_RUN":             {field: "dry_run", typ: envTypeBool},
	"JOBS":                {field: "jobs", typ: envTypeInt},
	"FORMAT":              {field: "format", typ: envTypeString},
	"FAIL_LEVEL":          {field: "fail_level", typ: envTypeString},
	"BACKUPS_ENABLED":     {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":        {field: "backups.mode", typ: envTypeString},
	"NO_BACKUPS":          {field: "no_backups", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with FASTLINT_ (e.g., FASTLINT_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "target_ruby_version":
		cfg.AllCops.TargetRubyVersion = value
	case "parser_backend":
		cfg.AllCops.ParserBackend = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "fail_level":
		cfg.FailLevel = config.Severity(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "autocorrect":
		cfg.AutoCorrect = value
	case "autocorrect_all":
		cfg.AutoCorrectAll = value
	case "dry_run":
		cfg.DryRun = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"FASTLINT_TARGET_RUBY_VERSION": "Target Ruby version, e.g. 3.3",
		"FASTLINT_PARSER_BACKEND":      "Parser backend: structural or treesitter",
		"FASTLINT_AUTOCORRECT":         "Apply safe autocorrections: true or false",
		"FASTLINT_AUTOCORRECT_ALL":     "Apply all autocorrections, including unsafe: true or false",
		"FASTLINT_DRY_RUN":             "Dry-run mode: true or false",
		"FASTLINT_JOBS":                "Number of parallel workers (0 = auto)",
		"FASTLINT_FORMAT":              "Output format: json, simple, quiet, progress, or table",
		"FASTLINT_FAIL_LEVEL":          "Minimum severity causing non-zero exit",
		"FASTLINT_BACKUPS_ENABLED":     "Enable backups when fixing: true or false",
		"FASTLINT_BACKUPS_MODE":        "Backup mode: sidecar or none",
		"FASTLINT_NO_BACKUPS":          "Disable backups: true or false",
	}
}
