package rbast

//go:generate stringer -type=NodeKind -trimprefix=Node

// NodeKind classifies the type of an AST node. The set is closed: rules
// subscribe to specific kinds via ASTRule.Kinds, and the engine dispatches
// only on kinds present here (spec section 3, "Program").
type NodeKind uint16

const (
	// NodeProgram is the root of every parsed file.
	NodeProgram NodeKind = iota

	// NodeDef is a method definition (def ... end / def ... = ...).
	NodeDef

	// NodeClassDef is a class declaration (class Foo ... end).
	NodeClassDef

	// NodeModuleDef is a module declaration (module Foo ... end).
	NodeModuleDef

	// NodeIf is an if/elsif/else conditional, including modifier-if.
	NodeIf

	// NodeUnless is an unless/else conditional, including modifier-unless.
	NodeUnless

	// NodeWhile is a while loop, including modifier-while and begin/end while.
	NodeWhile

	// NodeUntil is an until loop, including modifier-until.
	NodeUntil

	// NodeCase is a case/when/else (or case/in) statement.
	NodeCase

	// NodeBegin is a begin/rescue/else/ensure/end block.
	NodeBegin

	// NodeBlock is a do...end or {...} block attached to a method call.
	NodeBlock

	// NodeCall is a method call, with or without a receiver.
	NodeCall

	// NodeArgs is the argument list of a NodeCall or NodeDef.
	NodeArgs

	// NodeMethodIdentifier is a bare method or argument name token.
	NodeMethodIdentifier

	// NodeConstPath is a (possibly scoped) constant reference, e.g. Foo::Bar.
	NodeConstPath

	// NodeRaw is unclassified source text the parser could not resolve
	// further; line-oriented rules still see its bytes via the token stream.
	NodeRaw
)

// endKeywordKinds lists the node kinds whose canonical closing keyword is "end".
// Used by Layout/EndAlignment, Layout/DefEndAlignment, and
// Layout/BeginEndAlignment to find the keyword opening a given "end".
var endKeywordKinds = map[NodeKind]bool{
	NodeDef:       true,
	NodeClassDef:  true,
	NodeModuleDef: true,
	NodeIf:        true,
	NodeUnless:    true,
	NodeWhile:     true,
	NodeUntil:     true,
	NodeCase:      true,
	NodeBegin:     true,
}

// HasEndKeyword reports whether nodes of this kind are closed with a
// trailing "end" keyword (as opposed to e.g. NodeBlock, which may be closed
// with "}" instead).
func (k NodeKind) HasEndKeyword() bool {
	return endKeywordKinds[k]
}

// Node represents a single node in the Ruby AST. Nodes form a tree with
// parent/child/sibling pointers; children are ordered left to right.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Token span (indices into FileSnapshot.Tokens).
	// FirstToken <= LastToken for non-empty nodes.
	// Both are -1 for synthetic/degenerate nodes.
	FirstToken int
	LastToken  int

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Attrs holds kind-specific attributes (name, keyword style, receiver...).
	Attrs *NodeAttrs

	// explicitRange overrides SourceRange()'s token-based computation, for
	// parser backends (e.g. treesitter) whose node boundaries don't line up
	// with a separately-produced token stream's indices.
	explicitRange *SourceRange
}

// SetExplicitRange overrides the node's byte range, bypassing the
// FirstToken/LastToken lookup in SourceRange().
func (n *Node) SetExplicitRange(start, end int) {
	n.explicitRange = &SourceRange{StartOffset: start, EndOffset: end}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}
