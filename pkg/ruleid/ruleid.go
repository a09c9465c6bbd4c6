// Package ruleid defines the closed set of rule identifiers the checker
// engine dispatches against: a sealed variant set with two arms, Layout and
// Lint, each carrying a stable textual name exposed on the wire format.
package ruleid

import "sort"

// Category is the top-level arm of the RuleID variant set.
type Category uint8

const (
	Layout Category = iota
	Lint
)

// String returns the wire-format category prefix.
func (c Category) String() string {
	if c == Lint {
		return "Lint"
	}
	return "Layout"
}

// RuleID is a closed, totally ordered, hashable rule identifier. Values are
// only ever produced by the package-level constants below; there is no open
// extension surface (spec design note, "Rule polymorphism").
type RuleID struct {
	cat Category
	idx uint8
}

// Category returns the rule's top-level arm.
func (r RuleID) Category() Category { return r.cat }

// Name returns the rule's bare name within its category, e.g. "TrailingWhitespace".
func (r RuleID) Name() string {
	if r.cat == Lint {
		return lintNames[r.idx]
	}
	return layoutNames[r.idx]
}

// String returns the stable textual name, e.g. "Layout/TrailingWhitespace".
func (r RuleID) String() string {
	return r.cat.String() + "/" + r.Name()
}

// Less implements the total order used to sort diagnostics: category first
// (Layout before Lint), then declaration order within the category.
func (r RuleID) Less(other RuleID) bool {
	if r.cat != other.cat {
		return r.cat < other.cat
	}
	return r.idx < other.idx
}

var layoutNames = []string{
	"TrailingWhitespace",
	"TrailingEmptyLines",
	"LeadingEmptyLines",
	"EmptyLines",
	"IndentationStyle",
	"IndentationWidth",
	"EndAlignment",
	"DefEndAlignment",
	"BeginEndAlignment",
	"IndentationConsistency",
}

var lintNames = []string{
	"Debugger",
}

// Layout rule identifiers.
var (
	LayoutTrailingWhitespace    = RuleID{cat: Layout, idx: 0}
	LayoutTrailingEmptyLines    = RuleID{cat: Layout, idx: 1}
	LayoutLeadingEmptyLines     = RuleID{cat: Layout, idx: 2}
	LayoutEmptyLines            = RuleID{cat: Layout, idx: 3}
	LayoutIndentationStyle      = RuleID{cat: Layout, idx: 4}
	LayoutIndentationWidth      = RuleID{cat: Layout, idx: 5}
	LayoutEndAlignment          = RuleID{cat: Layout, idx: 6}
	LayoutDefEndAlignment       = RuleID{cat: Layout, idx: 7}
	LayoutBeginEndAlignment     = RuleID{cat: Layout, idx: 8}
	LayoutIndentationConsistency = RuleID{cat: Layout, idx: 9}
)

// Lint rule identifiers.
var (
	LintDebugger = RuleID{cat: Lint, idx: 0}
)

// All returns every known RuleID in declaration (sorted) order.
func All() []RuleID {
	out := make([]RuleID, 0, len(layoutNames)+len(lintNames))
	for i := range layoutNames {
		out = append(out, RuleID{cat: Layout, idx: uint8(i)})
	}
	for i := range lintNames {
		out = append(out, RuleID{cat: Lint, idx: uint8(i)})
	}
	return out
}

// ByName resolves a bare name (e.g. "TrailingWhitespace") or a fully
// qualified "Category/Name" string to a RuleID.
func ByName(s string) (RuleID, bool) {
	for _, id := range All() {
		if id.String() == s || id.Name() == s {
			return id, true
		}
	}
	return RuleID{}, false
}

// conflicts declares, per spec section 4.3, rules whose fixes must not be
// combined in the same fix round with a given rule: the pair is serialized
// across rounds instead. The table is symmetric; entries are declared once
// and checked both ways by ConflictsWith.
var conflicts = map[RuleID][]RuleID{
	LayoutTrailingWhitespace: {LayoutTrailingEmptyLines},
	LayoutIndentationStyle:   {LayoutIndentationWidth},
}

// ConflictsWith reports whether fixes from a and b must not be applied in
// the same round, checked symmetrically regardless of declaration side.
func ConflictsWith(a, b RuleID) bool {
	for _, id := range conflicts[a] {
		if id == b {
			return true
		}
	}
	for _, id := range conflicts[b] {
		if id == a {
			return true
		}
	}
	return false
}

// SortRuleIDs sorts a slice of RuleID in ascending total order, in place.
func SortRuleIDs(ids []RuleID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}
