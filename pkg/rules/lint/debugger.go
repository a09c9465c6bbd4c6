// Package lint implements the Lint rule family: suspicious or unintentional
// constructs left in source, starting with debugger call detection.
package lint

import (
	"github.com/fastlint/fastlint/pkg/checker"
	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// bareDebuggerCalls are method names that are a debugger breakpoint on
// their own, with no receiver.
var bareDebuggerCalls = map[string]bool{
	"debugger":      true,
	"byebug":        true,
	"remote_byebug": true,
}

// receiverDebuggerCalls maps a receiver name to the method names on it
// that enter a debugger.
var receiverDebuggerCalls = map[string]map[string]bool{
	"binding": {"pry": true, "remote_pry": true, "pry_remote": true, "irb": true, "console": true},
	"Pry":     {"rescue": true},
}

// DebuggerRule flags calls into a debugger (binding.pry, byebug, debugger,
// Pry.rescue, ...) left in source.
type DebuggerRule struct {
	checker.BaseRule
}

// NewDebuggerRule constructs the rule.
func NewDebuggerRule() *DebuggerRule {
	return &DebuggerRule{
		BaseRule: checker.NewBaseRule(
			ruleid.LintDebugger,
			"Checks for calls to debugger or pry.",
			config.SeverityWarning,
			false,
		),
	}
}

// CheckLine implements checker.LineRule.
func (r *DebuggerRule) CheckLine(ctx *checker.RuleContext, lineNo int, line rbast.Line) {
	toks := tokensOnLine(ctx.File, line)

	for i, t := range toks {
		if t.Kind != rbast.TokIdentifier && t.Kind != rbast.TokConstant {
			continue
		}
		name := string(t.Text(ctx.File.Content))

		if bareDebuggerCalls[name] && !followedByDot(ctx.File, toks, i) && !precededByDot(ctx.File, toks, i) {
			ctx.AddIssue(r.ID(), t.StartOffset, t.EndOffset, "Debugger statement `"+name+"` detected.", nil)
			continue
		}

		methods, ok := receiverDebuggerCalls[name]
		if !ok {
			continue
		}
		j := nextSignificant(toks, i+1)
		if j < 0 || toks[j].Kind != rbast.TokOperator || string(toks[j].Text(ctx.File.Content)) != "." {
			continue
		}
		k := nextSignificant(toks, j+1)
		if k < 0 || (toks[k].Kind != rbast.TokIdentifier && toks[k].Kind != rbast.TokKeyword) {
			continue
		}
		method := string(toks[k].Text(ctx.File.Content))
		if methods[method] {
			ctx.AddIssue(r.ID(), t.StartOffset, toks[k].EndOffset, "Debugger statement `"+name+"."+method+"` detected.", nil)
		}
	}
}

// CheckEOF implements checker.LineRule.
func (r *DebuggerRule) CheckEOF(ctx *checker.RuleContext) {}

func tokensOnLine(f *rbast.FileSnapshot, line rbast.Line) []rbast.Token {
	var out []rbast.Token
	for _, t := range f.Tokens {
		if t.StartOffset >= line.Info.StartOffset && t.StartOffset < line.Info.NewlineStart {
			out = append(out, t)
		}
	}
	return out
}

func nextSignificant(toks []rbast.Token, from int) int {
	for i := from; i < len(toks); i++ {
		switch toks[i].Kind {
		case rbast.TokWhitespace, rbast.TokIndent, rbast.TokComment:
			continue
		}
		return i
	}
	return -1
}

func followedByDot(f *rbast.FileSnapshot, toks []rbast.Token, i int) bool {
	j := nextSignificant(toks, i+1)
	if j < 0 || toks[j].Kind != rbast.TokOperator {
		return false
	}
	return string(toks[j].Text(f.Content)) == "."
}

func precededByDot(f *rbast.FileSnapshot, toks []rbast.Token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch toks[j].Kind {
		case rbast.TokWhitespace, rbast.TokIndent, rbast.TokComment:
			continue
		case rbast.TokOperator:
			return string(toks[j].Text(f.Content)) == "."
		default:
			return false
		}
	}
	return false
}

func init() {
	checker.DefaultRegistry.RegisterLine(NewDebuggerRule())
}
