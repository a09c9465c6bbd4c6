package structural

import (
	"context"

	"github.com/fastlint/fastlint/pkg/rbast"
)

// Parser implements checker.Parser using Tokenize plus a keyword/indentation
// based tree builder. It recognizes method/class/module definitions,
// conditionals, loops, case, begin, do/brace blocks, and calls well enough
// to drive the Layout and Lint rule families, without implementing a full
// Ruby grammar (no operator precedence, no literal-vs-block brace
// disambiguation beyond step's heuristic of opening a brace block only
// right after a call).
type Parser struct{}

// New creates a structural Parser.
func New() *Parser { return &Parser{} }

// Parse implements checker.Parser.
func (p *Parser) Parse(_ context.Context, path string, content []byte) (*rbast.FileSnapshot, error) {
	snapshot := rbast.NewFileSnapshot(path, content)
	snapshot.Tokens = Tokenize(content)

	b := &builder{content: content, tokens: snapshot.Tokens, file: snapshot}
	snapshot.Root = b.build()

	return snapshot, nil
}

// frame is one entry on the builder's open-construct stack.
type frame struct {
	node *rbast.Node
}

type builder struct {
	content []byte
	tokens  []rbast.Token
	file    *rbast.FileSnapshot

	pos   int // index into tokens
	stack []frame

	// atLogicalStart is true when the next significant token is the first
	// one on its source line, used to tell block-form if/while/until from
	// their trailing-modifier form.
	atLogicalStart bool

	// lastCall is the most recently created NodeCall at the current
	// nesting level, used to attach a following do/brace block.
	lastCall *rbast.Node
}

func (b *builder) build() *rbast.Node {
	root := rbast.NewNode(rbast.NodeProgram)
	root.FirstToken, root.LastToken = 0, len(b.tokens)-1
	rbast.SetFile(root, b.file)
	b.stack = []frame{{node: root}}
	b.atLogicalStart = true

	for b.pos < len(b.tokens) {
		b.step()
	}

	return root
}

func (b *builder) current() *rbast.Node {
	return b.stack[len(b.stack)-1].node
}

func (b *builder) push(n *rbast.Node) {
	b.stack = append(b.stack, frame{node: n})
}

func (b *builder) pop() *rbast.Node {
	n := b.current()
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
	return n
}

// step consumes exactly one token (or one small fixed-size construct) and
// advances b.pos.
func (b *builder) step() {
	tok := b.tokens[b.pos]

	switch tok.Kind {
	case rbast.TokNewline:
		b.pos++
		b.atLogicalStart = true
		return
	case rbast.TokIndent, rbast.TokWhitespace, rbast.TokComment:
		b.pos++
		return
	}

	wasLogicalStart := b.atLogicalStart
	b.atLogicalStart = false

	if tok.Kind == rbast.TokKeyword {
		text := string(tok.Text(b.content))
		switch text {
		case "def":
			b.openNamed(rbast.NodeDef, tok)
			return
		case "class":
			b.openNamed(rbast.NodeClassDef, tok)
			return
		case "module":
			b.openNamed(rbast.NodeModuleDef, tok)
			return
		case "case", "begin":
			kind := rbast.NodeCase
			if text == "begin" {
				kind = rbast.NodeBegin
			}
			b.openPlain(kind, tok)
			return
		case "if", "unless":
			kind := rbast.NodeIf
			if text == "unless" {
				kind = rbast.NodeUnless
			}
			b.openConditional(kind, tok, wasLogicalStart)
			return
		case "while", "until":
			kind := rbast.NodeWhile
			if text == "until" {
				kind = rbast.NodeUntil
			}
			b.openConditional(kind, tok, wasLogicalStart)
			return
		case "do":
			b.openBlock(tok, false)
			return
		case "end":
			b.closeEnd(tok)
			return
		}
		b.pos++
		return
	}

	if (tok.Kind == rbast.TokIdentifier || tok.Kind == rbast.TokConstant) && b.peekIsCallLike() {
		b.lastCall = b.makeCall(tok)
		b.pos++
		return
	}

	if tok.Kind == rbast.TokPunctuation && string(tok.Text(b.content)) == "{" && b.lastCall != nil {
		b.openBlock(tok, true)
		return
	}
	if tok.Kind == rbast.TokPunctuation && string(tok.Text(b.content)) == "}" {
		if top := b.current(); top.Kind == rbast.NodeBlock && top.Attrs != nil && top.Attrs.BraceStyle {
			b.closeGeneric(tok)
			return
		}
	}

	b.pos++
}

// peekIsCallLike is a cheap heuristic: an identifier/constant counts as a
// method call if it's immediately followed (ignoring whitespace) by '(' or
// '.' or is simply a bare statement head; this intentionally over-detects
// (any bare word becomes a NodeCall) since Layout/Lint rules only need call
// nodes as anchors for "do"/"{" blocks, not full call-argument semantics.
func (b *builder) peekIsCallLike() bool {
	return true
}

func (b *builder) makeCall(tok rbast.Token) *rbast.Node {
	n := rbast.NewNode(rbast.NodeCall)
	n.Attrs = rbast.NewNodeAttrs()
	n.Attrs.Name = string(tok.Text(b.content))
	n.Attrs.KeywordOffset = tok.StartOffset
	n.FirstToken, n.LastToken = b.pos, b.pos
	rbast.SetFile(n, b.file)
	rbast.AppendChild(b.current(), n)
	return n
}

// openNamed handles def/class/module: consume the keyword, then the
// following identifier/constant chain as the node's Name.
func (b *builder) openNamed(kind rbast.NodeKind, kw rbast.Token) {
	n := rbast.NewNode(kind)
	n.Attrs = rbast.NewNodeAttrs()
	n.Attrs.KeywordOffset = kw.StartOffset
	n.FirstToken = b.pos
	rbast.SetFile(n, b.file)
	rbast.AppendChild(b.current(), n)
	b.pos++ // consume keyword

	name := b.consumeNamePath()
	n.Attrs.Name = name

	b.push(n)
}

// consumeNamePath greedily reads an identifier/constant "::"-joined chain
// (skipping intervening whitespace) as a name, without advancing past a
// following '(' argument list.
func (b *builder) consumeNamePath() string {
	name := ""
	for b.pos < len(b.tokens) {
		t := b.tokens[b.pos]
		switch t.Kind {
		case rbast.TokWhitespace:
			if name == "" {
				b.pos++
				continue
			}
			return name
		case rbast.TokIdentifier, rbast.TokConstant:
			name += string(t.Text(b.content))
			b.pos++
		case rbast.TokOperator:
			if string(t.Text(b.content)) == "::" {
				name += "::"
				b.pos++
				continue
			}
			return name
		default:
			return name
		}
	}
	return name
}

// openPlain handles case/begin: no name, just push.
func (b *builder) openPlain(kind rbast.NodeKind, kw rbast.Token) {
	n := rbast.NewNode(kind)
	n.Attrs = rbast.NewNodeAttrs()
	n.Attrs.KeywordOffset = kw.StartOffset
	n.FirstToken = b.pos
	rbast.SetFile(n, b.file)
	rbast.AppendChild(b.current(), n)
	b.pos++
	b.push(n)
}

// openConditional handles if/unless/while/until. When wasLogicalStart is
// false, the keyword is a trailing statement modifier: it gets a node (for
// rules that care about its position) but is not pushed onto the stack,
// since it has no matching "end".
func (b *builder) openConditional(kind rbast.NodeKind, kw rbast.Token, wasLogicalStart bool) {
	n := rbast.NewNode(kind)
	n.Attrs = rbast.NewNodeAttrs()
	n.Attrs.KeywordOffset = kw.StartOffset
	n.FirstToken = b.pos
	n.LastToken = b.pos
	rbast.SetFile(n, b.file)
	rbast.AppendChild(b.current(), n)
	b.pos++

	if wasLogicalStart {
		n.Attrs.Style = rbast.StyleBlock
		b.push(n)
	} else {
		n.Attrs.Style = rbast.StyleModifier
		n.Attrs.EndOffset = -1
	}
}

// openBlock handles "do" and "{" following a call.
func (b *builder) openBlock(tok rbast.Token, brace bool) {
	n := rbast.NewNode(rbast.NodeBlock)
	n.Attrs = rbast.NewNodeAttrs()
	n.Attrs.KeywordOffset = tok.StartOffset
	n.Attrs.BraceStyle = brace
	if b.lastCall != nil {
		n.Attrs.KeywordOffset = b.lastCall.Attrs.KeywordOffset
	}
	n.FirstToken = b.pos
	rbast.SetFile(n, b.file)
	rbast.AppendChild(b.current(), n)
	b.pos++
	b.push(n)
	b.lastCall = nil
}

// closeEnd pops the innermost open stack-based node (skipping none, since
// modifier-form nodes are never pushed) and records the "end" position.
func (b *builder) closeEnd(tok rbast.Token) {
	n := b.pop()
	n.Attrs.EndOffset = tok.StartOffset
	n.LastToken = b.pos
	b.pos++
}

// closeGeneric handles the "}" closer for brace-style blocks.
func (b *builder) closeGeneric(tok rbast.Token) {
	n := b.pop()
	n.Attrs.EndOffset = tok.StartOffset
	n.LastToken = b.pos
	b.pos++
}
