package config

// FormatRuleID formats a rule identifier based on the given format. ruleID is
// the full canonical identifier (e.g. "Layout/TrailingWhitespace"), which
// already embeds ruleName (e.g. "TrailingWhitespace") as its suffix, so
// RuleFormatID and RuleFormatCombined both resolve to ruleID unchanged.
// Falls back to ID if name is empty.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatName:
		return ruleName
	case RuleFormatID, RuleFormatCombined:
		return ruleID
	default:
		return ruleName
	}
}
