// Package config defines core configuration types for fastlint. These types
// are pure data structures with no dependency on any particular loader
// (YAML/TOML/koanf); internal/configloader builds a Config from disk.
package config

// Severity represents the severity level of a diagnostic. The six levels
// are totally ordered, least to most severe, per spec section 3.
type Severity string

const (
	SeverityInfo       Severity = "info"
	SeverityRefactor   Severity = "refactor"
	SeverityConvention Severity = "convention"
	SeverityWarning    Severity = "warning"
	SeverityError      Severity = "error"
	SeverityFatal      Severity = "fatal"
)

var severityRank = map[Severity]int{
	SeverityInfo:       0,
	SeverityRefactor:   1,
	SeverityConvention: 2,
	SeverityWarning:    3,
	SeverityError:      4,
	SeverityFatal:      5,
}

// Rank returns the severity's position in the total order (0 = least severe).
// An unrecognized severity ranks below SeverityInfo.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// RuleConfig holds per-rule configuration options: the base
// {enabled, severity, include, exclude} fields from spec section 3, plus a
// free-form Options map for typed per-rule settings (Width, EnforcedStyle...).
type RuleConfig struct {
	Enabled  *bool          `mapstructure:"Enabled"  yaml:"Enabled,omitempty"  toml:"Enabled,omitempty"`
	Severity *string        `mapstructure:"Severity" yaml:"Severity,omitempty" toml:"Severity,omitempty"`
	Include  []string       `mapstructure:"Include"  yaml:"Include,omitempty"  toml:"Include,omitempty"`
	Exclude  []string       `mapstructure:"Exclude"  yaml:"Exclude,omitempty"  toml:"Exclude,omitempty"`
	Options  map[string]any `mapstructure:",remain"  yaml:",inline"            toml:",inline"`
}

// merge deep-merges other into rc: a field explicitly set on other wins,
// everything else falls through to rc's existing value. Implements the
// "entire rule record is merged, not wholesale replaced" rule of section 4.5.
func (rc RuleConfig) merge(other RuleConfig) RuleConfig {
	out := rc
	if other.Enabled != nil {
		out.Enabled = other.Enabled
	}
	if other.Severity != nil {
		out.Severity = other.Severity
	}
	if other.Include != nil {
		out.Include = other.Include
	}
	if other.Exclude != nil {
		out.Exclude = other.Exclude
	}
	if len(other.Options) > 0 {
		merged := make(map[string]any, len(out.Options)+len(other.Options))
		for k, v := range out.Options {
			merged[k] = v
		}
		for k, v := range other.Options {
			merged[k] = v
		}
		out.Options = merged
	}
	return out
}

// AllCopsConfig is the global section applying to every rule unless
// overridden per-rule (spec section 3 and the glossary entry "AllCops").
type AllCopsConfig struct {
	Exclude           []string `mapstructure:"Exclude" yaml:"Exclude,omitempty" toml:"Exclude,omitempty"`
	TargetRubyVersion string   `mapstructure:"TargetRubyVersion" yaml:"TargetRubyVersion,omitempty" toml:"TargetRubyVersion,omitempty"`

	// ParserBackend selects which rbparser.Parser implementation the runner
	// wires in: "structural" (default) or "treesitter".
	ParserBackend string `mapstructure:"ParserBackend" yaml:"ParserBackend,omitempty" toml:"ParserBackend,omitempty"`
}

// BackupsConfig controls backup behavior when autocorrecting files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatJSON     OutputFormat = "json"
	FormatSimple   OutputFormat = "simple"
	FormatQuiet    OutputFormat = "quiet"
	FormatProgress OutputFormat = "progress"
	FormatTable    OutputFormat = "table"
)

// RuleFormat controls how rule identifiers appear in text-oriented output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"
	RuleFormatID       RuleFormat = "id"
	RuleFormatCombined RuleFormat = "combined"
)

// SummaryOrder controls which grouping comes first in a text summary: a
// table of offenses by rule, or a table of offenses by file.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// Config is the fully resolved, flattened configuration for one run: the
// AllCops section plus one merged RuleConfig per RuleID (spec section 4.5,
// "after merge the effective config is flattened to a single per-rule
// record").
type Config struct {
	AllCops AllCopsConfig `mapstructure:"AllCops" yaml:"AllCops" toml:"AllCops"`

	// Rules is keyed by the rule's stable textual name, e.g.
	// "Layout/TrailingWhitespace".
	Rules map[string]RuleConfig `mapstructure:"-" yaml:",inline" toml:",inline"`

	// InheritFrom lists parent config file paths, resolved depth-first by
	// internal/configloader before this Config is considered final.
	InheritFrom []string `mapstructure:"inherit_from" yaml:"inherit_from,omitempty" toml:"inherit_from,omitempty"`

	// CLI-level options (not persisted to config files).

	AutoCorrect    bool
	AutoCorrectAll bool
	ForceExclusion bool
	FailLevel      Severity
	Format         OutputFormat
	RuleFormat     RuleFormat
	Jobs           int
	DisplayCopNames bool
	Color          bool
	DryRun         bool
	Backups        BackupsConfig
	NoBackups      bool
	StdinPath      string

	EnableRules  []string
	DisableRules []string
}

// NewConfig returns a Config with the reference tool's documented defaults.
func NewConfig() *Config {
	return &Config{
		AllCops: AllCopsConfig{
			TargetRubyVersion: "3.3",
			ParserBackend:     "structural",
		},
		Rules:           make(map[string]RuleConfig),
		FailLevel:       SeverityConvention,
		Format:          FormatSimple,
		RuleFormat:      RuleFormatCombined,
		Jobs:            0,
		DisplayCopNames: true,
		Color:           true,
		Backups:         BackupsConfig{Enabled: true, Mode: "sidecar"},
	}
}

// Merge deep-merges other on top of base (other wins field-by-field, per rule),
// returning the combined Config. Used by the inheritance chain resolver.
func Merge(base, other *Config) *Config {
	if base == nil {
		return other
	}
	if other == nil {
		return base
	}

	out := *base
	out.Rules = make(map[string]RuleConfig, len(base.Rules)+len(other.Rules))
	for id, rc := range base.Rules {
		out.Rules[id] = rc
	}
	for id, rc := range other.Rules {
		if existing, ok := out.Rules[id]; ok {
			out.Rules[id] = existing.merge(rc)
		} else {
			out.Rules[id] = rc
		}
	}

	if len(other.AllCops.Exclude) > 0 {
		out.AllCops.Exclude = other.AllCops.Exclude
	}
	if other.AllCops.TargetRubyVersion != "" {
		out.AllCops.TargetRubyVersion = other.AllCops.TargetRubyVersion
	}
	if other.AllCops.ParserBackend != "" {
		out.AllCops.ParserBackend = other.AllCops.ParserBackend
	}

	return &out
}
