package rbast

// KeywordStyle distinguishes the two surface forms a conditional or loop
// node may take: the block form closed by "end", or the single-line
// modifier form (e.g. "return if done", which has no "end" to align).
type KeywordStyle uint8

const (
	// StyleBlock is the multi-line "if cond ... end" form.
	StyleBlock KeywordStyle = iota

	// StyleModifier is the trailing "stmt if cond" / "stmt while cond" form.
	StyleModifier
)

// NodeAttrs holds kind-specific attributes. Only the fields relevant to a
// node's Kind are populated; the rest are zero.
type NodeAttrs struct {
	// Name is the identifier for NodeDef (method name), NodeClassDef,
	// NodeModuleDef, and NodeConstPath (the fully-scoped constant text).
	Name string

	// Style distinguishes block vs modifier form for NodeIf, NodeUnless,
	// NodeWhile, and NodeUntil.
	Style KeywordStyle

	// Receiver is the source text of the receiver expression for NodeCall,
	// e.g. "foo" in "foo.bar". Empty for receiver-less calls.
	Receiver string

	// EndOffset is the byte offset of the closing "end" keyword for nodes
	// with HasEndKeyword() == true, or -1 if the node has no "end" (e.g. a
	// modifier-style If/Unless/While/Until). Rules use this to locate the
	// keyword pair for Layout/*EndAlignment without re-scanning tokens.
	EndOffset int

	// KeywordOffset is the byte offset of the node's opening keyword
	// ("def", "class", "module", "if", "unless", "while", "until", "case",
	// "begin") or, for NodeCall with a NodeBlock child, the offset of the
	// call's first token. Used as the alignment anchor for *EndAlignment
	// rules, which compare this keyword's column against "end"'s column.
	KeywordOffset int

	// BraceStyle is true for NodeBlock nodes written as "{ ... }" rather
	// than "do ... end".
	BraceStyle bool
}

// NewNodeAttrs returns a NodeAttrs with EndOffset defaulted to -1 (no end
// keyword known yet).
func NewNodeAttrs() *NodeAttrs {
	return &NodeAttrs{EndOffset: -1}
}
