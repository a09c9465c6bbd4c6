package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// IncludeRules is a list of rule IDs to include.
	// If empty, all rules are included.
	IncludeRules []string

	// IncludeDefaults includes fields that match the default values.
	IncludeDefaults bool
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider, when non-nil, supplies the rule list for
// templates; when nil, getRuleInfos returns its built-in static list.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate(opts)
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# fastlint configuration
# See: https://github.com/fastlint/fastlint

AllCops:
  # TargetRubyVersion: "3.3"
  # ParserBackend: structural
  # Exclude:
  #   - "vendor/**/*"
  #   - "node_modules/**/*"

# Rule-specific configuration
# Layout/TrailingWhitespace:
#   Enabled: true
#   Severity: convention
# Layout/IndentationWidth:
#   Enabled: true
#   Width: 2
`)

	if opts.Format == "json" {
		return templateToJSON(buf.Bytes())
	}

	return buf.Bytes(), nil
}

// generateFullTemplate creates a full template with all rules documented.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# fastlint configuration - Full Template
# See: https://github.com/fastlint/fastlint
#
# This template includes all available rules with their default settings.
# Uncomment and modify settings as needed.

AllCops:
  TargetRubyVersion: "3.3"
  ParserBackend: structural
  Exclude:
    - "vendor/**/*"
    - "node_modules/**/*"
    - ".git/**/*"

# Rule-specific configuration
`)

	// Get rule information
	rules := getRuleInfos()

	// Filter by IncludeRules if specified
	if len(opts.IncludeRules) > 0 {
		includeSet := make(map[string]bool)
		for _, id := range opts.IncludeRules {
			includeSet[id] = true
		}
		filtered := make([]RuleInfo, 0)
		for _, r := range rules {
			if includeSet[r.ID] {
				filtered = append(filtered, r)
			}
		}
		rules = filtered
	}

	// Sort by ID
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})

	// Write each rule
	for _, rule := range rules {
		buf.WriteString(fmt.Sprintf("\n  # %s: %s\n", rule.ID, rule.Name))
		buf.WriteString(fmt.Sprintf("  # %s\n", wrapComment(rule.Description, commentWrapWidth)))
		if len(rule.Tags) > 0 {
			buf.WriteString(fmt.Sprintf("  # Tags: %s\n", strings.Join(rule.Tags, ", ")))
		}
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		buf.WriteString(fmt.Sprintf("%s:\n", rule.ID))
		buf.WriteString(fmt.Sprintf("  Enabled: %t\n", rule.Enabled))
		buf.WriteString(fmt.Sprintf("  Severity: %s\n", rule.Severity))
		buf.WriteString("  # rule-specific options sit beside Enabled/Severity:\n")
		buf.WriteString("  # key: value\n")
	}

	if opts.Format == "json" {
		return templateToJSON(buf.Bytes())
	}

	return buf.Bytes(), nil
}

// getRuleInfos returns information about all registered rules.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}

	// Fallback to a static list of known rules.
	return []RuleInfo{
		{
			ID: "Layout/TrailingWhitespace", Name: "TrailingWhitespace", Enabled: true, Severity: SeverityConvention,
			Description: "Trailing whitespace at the end of a line",
			Tags:        []string{"layout", "whitespace"}, CanFix: true,
		},
		{
			ID: "Layout/TrailingEmptyLines", Name: "TrailingEmptyLines", Enabled: true, Severity: SeverityConvention,
			Description: "Files should end with exactly one trailing newline",
			Tags:        []string{"layout", "whitespace"}, CanFix: true,
		},
		{
			ID: "Layout/LeadingEmptyLines", Name: "LeadingEmptyLines", Enabled: true, Severity: SeverityConvention,
			Description: "Files should not begin with blank lines",
			Tags:        []string{"layout", "whitespace"}, CanFix: true,
		},
		{
			ID: "Layout/EmptyLines", Name: "EmptyLines", Enabled: true, Severity: SeverityConvention,
			Description: "Consecutive blank lines should be limited",
			Tags:        []string{"layout", "whitespace"}, CanFix: true,
		},
		{
			ID: "Layout/IndentationStyle", Name: "IndentationStyle", Enabled: true, Severity: SeverityConvention,
			Description: "Indentation should use the configured style (spaces or tabs)",
			Tags:        []string{"layout", "indentation"}, CanFix: true,
		},
		{
			ID: "Layout/IndentationWidth", Name: "IndentationWidth", Enabled: true, Severity: SeverityConvention,
			Description: "Indentation should use the configured width",
			Tags:        []string{"layout", "indentation"}, CanFix: true,
		},
		{
			ID: "Layout/IndentationConsistency", Name: "IndentationConsistency", Enabled: true, Severity: SeverityConvention,
			Description: "Indentation within a single structure should be consistent",
			Tags:        []string{"layout", "indentation"},
		},
		{
			ID: "Layout/EndAlignment", Name: "EndAlignment", Enabled: true, Severity: SeverityConvention,
			Description: "An \"end\" keyword should align with its opening keyword's column",
			Tags:        []string{"layout"}, CanFix: true,
		},
		{
			ID: "Layout/DefEndAlignment", Name: "DefEndAlignment", Enabled: true, Severity: SeverityConvention,
			Description: "A method definition's \"end\" should align with \"def\"",
			Tags:        []string{"layout"}, CanFix: true,
		},
		{
			ID: "Layout/BeginEndAlignment", Name: "BeginEndAlignment", Enabled: true, Severity: SeverityConvention,
			Description: "A \"begin\" block's \"end\" should align with \"begin\"",
			Tags:        []string{"layout"}, CanFix: true,
		},
		{
			ID: "Lint/Debugger", Name: "Debugger", Enabled: true, Severity: SeverityWarning,
			Description: "Debugger entry points (e.g. binding.pry) should not be committed",
			Tags:        []string{"lint"},
		},
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON converts a YAML template to JSON format.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	// Parse the YAML (skipping comments)
	lines := strings.Split(string(yamlContent), "\n")
	var jsonLines []string

	// Build a simple config for JSON.
	cfg := map[string]any{
		"AllCops": map[string]any{
			"TargetRubyVersion": "3.3",
			"ParserBackend":     "structural",
			"Exclude":           []string{"vendor/**/*", "node_modules/**/*", ".git/**/*"},
		},
	}

	rules := getRuleInfos()
	for _, r := range rules {
		cfg[r.ID] = map[string]any{
			"Enabled":  r.Enabled,
			"Severity": string(r.Severity),
		}
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	// Keep the lines slice usage for future expansion
	_ = jsonLines
	_ = lines

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# fastlint configuration
# See: https://github.com/fastlint/fastlint`
}
