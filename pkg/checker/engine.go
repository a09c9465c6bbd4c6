package checker

import (
	"context"
	"fmt"
	"sort"

	"github.com/fastlint/fastlint/pkg/config"
	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/ruleid"
)

// FileResult is the outcome of one check pass over one file: every
// diagnostic the enabled rules produced, resolved to line/column and
// ordered (span.start, RuleId) per spec section 4.4.
type FileResult struct {
	Snapshot    *rbast.FileSnapshot
	Diagnostics []Diagnostic
	Raw         []RawDiagnostic
	RuleErrors  map[ruleid.RuleID]error
}

// HasIssues reports whether any diagnostics were produced.
func (r *FileResult) HasIssues() bool { return len(r.Diagnostics) > 0 }

// HasFixes reports whether any diagnostic carries an autocorrection.
func (r *FileResult) HasFixes() bool {
	for _, d := range r.Diagnostics {
		if d.Correctable {
			return true
		}
	}
	return false
}

// IssueCount returns the number of diagnostics.
func (r *FileResult) IssueCount() int { return len(r.Diagnostics) }

// FixableCount returns the number of diagnostics carrying an autocorrection.
func (r *FileResult) FixableCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Correctable {
			n++
		}
	}
	return n
}

// Checker dispatches the registered line rules and AST rules over one
// parsed file. Line rules run in a single forward scan (section 4.8); AST
// rules run during one depth-first walk, each node dispatched only to the
// rules subscribed to its kind (section 4.9).
type Checker struct {
	Parser   Parser
	Registry *Registry
}

// NewChecker creates a Checker using the given parser and rule registry.
func NewChecker(parser Parser, reg *Registry) *Checker {
	return &Checker{Parser: parser, Registry: reg}
}

type lineEntry struct {
	rule LineRule
	rr   ResolvedRule
}

type astEntry struct {
	rule ASTRule
	rr   ResolvedRule
}

// CheckFile parses content and runs every rule enabled by cfg for path,
// returning the resolved, sorted diagnostics against the parsed snapshot.
func (c *Checker) CheckFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	snapshot, err := c.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return c.CheckSnapshot(ctx, path, snapshot, cfg), nil
}

// CheckSnapshot runs every enabled rule against an already-parsed snapshot.
// Used by the fix loop, which re-parses once per round rather than once
// per rule.
func (c *Checker) CheckSnapshot(ctx context.Context, path string, snapshot *rbast.FileSnapshot, cfg *config.Config) *FileResult {
	raw, ruleErrs := c.dispatch(ctx, path, snapshot, cfg)

	sortRaw(raw)

	diags := make([]Diagnostic, len(raw))
	for i, r := range raw {
		diags[i] = ResolveDiagnostic(r, snapshot, path, false)
	}

	return &FileResult{Snapshot: snapshot, Diagnostics: diags, Raw: raw, RuleErrors: ruleErrs}
}

// dispatch resolves which rules run against path, then runs the line pass
// followed by the AST pass, returning the accumulated raw diagnostics.
func (c *Checker) dispatch(ctx context.Context, path string, snapshot *rbast.FileSnapshot, cfg *config.Config) ([]RawDiagnostic, map[ruleid.RuleID]error) {
	ruleErrs := make(map[ruleid.RuleID]error)

	var lineEntries []lineEntry
	for _, r := range c.Registry.LineRules() {
		rr := resolve(r.ID().String(), r.DefaultSeverity(), r.CanFix(), cfg)
		if ShouldRunOnFile(rr, cfg, path) {
			lineEntries = append(lineEntries, lineEntry{r, rr})
		}
	}

	var astEntries []astEntry
	astByKind := make(map[rbast.NodeKind][]astEntry)
	for _, r := range c.Registry.ASTRules() {
		rr := resolve(r.ID().String(), r.DefaultSeverity(), r.CanFix(), cfg)
		if !ShouldRunOnFile(rr, cfg, path) {
			continue
		}
		e := astEntry{r, rr}
		astEntries = append(astEntries, e)
		for _, k := range r.Kinds() {
			astByKind[k] = append(astByKind[k], e)
		}
	}

	ruleCtx := NewRuleContext(ctx, path, snapshot, cfg, nil)

	for _, line := range snapshot.AllLines() {
		if ruleCtx.Cancelled() {
			break
		}
		for _, e := range lineEntries {
			ln := line
			c.runLineRule(ruleCtx, e, func() { e.rule.CheckLine(ruleCtx, ln.Number, ln) }, ruleErrs)
		}
	}
	for _, e := range lineEntries {
		c.runLineRule(ruleCtx, e, func() { e.rule.CheckEOF(ruleCtx) }, ruleErrs)
	}

	if snapshot.Root != nil && len(astEntries) > 0 {
		var stack []*rbast.Node
		var walk func(n *rbast.Node)
		walk = func(n *rbast.Node) {
			if ruleCtx.Cancelled() {
				return
			}
			stack = append(stack, n)
			for _, e := range astByKind[n.Kind] {
				node, entryStack := n, append([]*rbast.Node(nil), stack...)
				c.runASTRule(ruleCtx, e, func() { e.rule.CheckNode(ruleCtx, node, entryStack) }, ruleErrs)
			}
			for child := n.FirstChild; child != nil; child = child.Next {
				walk(child)
			}
			stack = stack[:len(stack)-1]
		}
		walk(snapshot.Root)
	}

	return ruleCtx.Diagnostics(), ruleErrs
}

// runLineRule sets the per-invocation config/severity on ruleCtx and
// recovers from rule panics, recording any resulting error against the
// rule's ID rather than aborting the whole check pass.
func (c *Checker) runLineRule(ruleCtx *RuleContext, e lineEntry, invoke func(), ruleErrs map[ruleid.RuleID]error) {
	ruleCtx.RuleConfig = e.rr.Config
	ruleCtx.Severity = e.rr.Severity
	defer func() {
		if p := recover(); p != nil {
			ruleErrs[e.rule.ID()] = fmt.Errorf("panic in %s: %v", e.rule.ID(), p)
		}
	}()
	invoke()
}

// runASTRule is the AST-rule counterpart of runLineRule.
func (c *Checker) runASTRule(ruleCtx *RuleContext, e astEntry, invoke func(), ruleErrs map[ruleid.RuleID]error) {
	ruleCtx.RuleConfig = e.rr.Config
	ruleCtx.Severity = e.rr.Severity
	defer func() {
		if p := recover(); p != nil {
			ruleErrs[e.rule.ID()] = fmt.Errorf("panic in %s: %v", e.rule.ID(), p)
		}
	}()
	invoke()
}

// sortRaw orders raw diagnostics by (span start, RuleId) per spec 4.4, so
// output and fix-application order are deterministic regardless of which
// rule happened to report first.
func sortRaw(raw []RawDiagnostic) {
	sort.SliceStable(raw, func(i, j int) bool {
		if raw[i].Start != raw[j].Start {
			return raw[i].Start < raw[j].Start
		}
		return raw[i].Rule.Less(raw[j].Rule)
	})
}
