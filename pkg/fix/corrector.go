package fix

import (
	"fmt"
	"sort"

	"github.com/fastlint/fastlint/pkg/ruleid"
)

// Fix is a set of non-overlapping edits proposed by a single rule for a
// single offense, plus a safety flag. An unsafe fix may alter program
// semantics and is only applied under -A; a safe fix is applied under -a.
type Fix struct {
	Rule   ruleid.RuleID
	Edits  []TextEdit
	Unsafe bool

	// AnchorStart/AnchorEnd identify the AST node (by source span) this fix
	// is derived from, letting the caller suppress duplicate reports on the
	// same node without depending on pointer identity.
	AnchorStart int
	AnchorEnd   int
}

// ConflictKind distinguishes the three ways an incoming fix's edit can fail
// to merge into a Corrector's accumulated edit set (spec section 4.3).
type ConflictKind int

const (
	// DifferentReplacements: same span, different replacement text.
	DifferentReplacements ConflictKind = iota
	// SwallowedInsertion: an insertion point falls strictly inside another
	// edit's deletion range.
	SwallowedInsertion
	// Overlapping: any other overlap between two edits.
	Overlapping
)

func (k ConflictKind) String() string {
	switch k {
	case DifferentReplacements:
		return "DifferentReplacements"
	case SwallowedInsertion:
		return "SwallowedInsertion"
	default:
		return "Overlapping"
	}
}

// ClobberingError reports that an incoming fix's edit could not be merged
// into the Corrector because it conflicts with an edit already accepted in
// this round. It is never fatal: the offense simply remains uncorrected.
type ClobberingError struct {
	Kind     ConflictKind
	Rule     ruleid.RuleID
	Existing TextEdit
	Incoming TextEdit
}

func (e *ClobberingError) Error() string {
	return fmt.Sprintf("%s: rule %s edit [%d:%d) clobbers existing edit [%d:%d)",
		e.Kind, e.Rule, e.Incoming.StartOffset, e.Incoming.EndOffset,
		e.Existing.StartOffset, e.Existing.EndOffset)
}

// Corrector accumulates edits from many rules within one fix round, then
// applies them in ascending start order in a single forward pass. Grounded on
// reukocyte_checker's corrector.rs merge semantics.
type Corrector struct {
	edits []TextEdit
}

// NewCorrector creates an empty Corrector for one fix round.
func NewCorrector() *Corrector {
	return &Corrector{}
}

// Merge attempts to add every edit of f into the Corrector's accumulated
// set. On the first conflicting edit it rejects the whole fix (none of its
// edits are applied) and returns a *ClobberingError; the round continues
// with the edits merged so far.
func (c *Corrector) Merge(f *Fix) error {
	for _, incoming := range f.Edits {
		for _, existing := range c.edits {
			if err := checkConflict(f.Rule, existing, incoming); err != nil {
				return err
			}
		}
	}

	// Disjoint/identical: safe to add. Deduplicate identical edits.
	for _, incoming := range f.Edits {
		if !containsEdit(c.edits, incoming) {
			c.edits = append(c.edits, incoming)
		}
	}
	return nil
}

func containsEdit(edits []TextEdit, e TextEdit) bool {
	for _, existing := range edits {
		if existing == e {
			return true
		}
	}
	return false
}

// checkConflict classifies the relationship between an existing accepted
// edit and an incoming one, per spec section 4.3.
func checkConflict(rule ruleid.RuleID, existing, incoming TextEdit) error {
	if existing == incoming {
		return nil // identical edits collapse
	}

	sameSpan := existing.StartOffset == incoming.StartOffset && existing.EndOffset == incoming.EndOffset
	if sameSpan {
		return &ClobberingError{Kind: DifferentReplacements, Rule: rule, Existing: existing, Incoming: incoming}
	}

	return overlapConflict(rule, existing, incoming)
}

func overlapConflict(rule ruleid.RuleID, existing, incoming TextEdit) error {
	if !rangesOverlap(existing.StartOffset, existing.EndOffset, incoming.StartOffset, incoming.EndOffset) {
		return nil
	}

	// An insertion (start == end) landing strictly inside a deletion range
	// is a SwallowedInsertion; likewise the other way around.
	if isInsertion(incoming) && existing.StartOffset < incoming.StartOffset && incoming.StartOffset < existing.EndOffset {
		return &ClobberingError{Kind: SwallowedInsertion, Rule: rule, Existing: existing, Incoming: incoming}
	}
	if isInsertion(existing) && incoming.StartOffset < existing.StartOffset && existing.StartOffset < incoming.EndOffset {
		return &ClobberingError{Kind: SwallowedInsertion, Rule: rule, Existing: existing, Incoming: incoming}
	}

	return &ClobberingError{Kind: Overlapping, Rule: rule, Existing: existing, Incoming: incoming}
}

func isInsertion(e TextEdit) bool {
	return e.StartOffset == e.EndOffset
}

func rangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// Apply sorts the accumulated (already known non-overlapping) edits
// ascending by start offset and applies them to content in a single pass.
func (c *Corrector) Apply(content []byte) []byte {
	if len(c.edits) == 0 {
		return content
	}
	sorted := make([]TextEdit, len(c.edits))
	copy(sorted, c.edits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartOffset < sorted[j].StartOffset
	})
	return ApplyEdits(content, sorted)
}

// Edits returns the edits accumulated so far, in insertion order.
func (c *Corrector) Edits() []TextEdit {
	return c.edits
}

// ConflictRegistry expresses rule-to-rule incompatibilities within a single
// fix round: once a rule's fix has been applied, any rule declared to
// conflict with it is skipped until the next round. Cleared each round.
type ConflictRegistry struct {
	applied []ruleid.RuleID
}

// NewConflictRegistry creates an empty registry for one fix round.
func NewConflictRegistry() *ConflictRegistry {
	return &ConflictRegistry{}
}

// ConflictsWithApplied reports whether rule conflicts with any rule already
// marked applied this round.
func (r *ConflictRegistry) ConflictsWithApplied(rule ruleid.RuleID) bool {
	for _, applied := range r.applied {
		if ruleid.ConflictsWith(rule, applied) {
			return true
		}
	}
	return false
}

// MarkApplied records that rule successfully applied a fix this round.
func (r *ConflictRegistry) MarkApplied(rule ruleid.RuleID) {
	r.applied = append(r.applied, rule)
}
