// Package treesitter adapts smacker/go-tree-sitter's Ruby grammar to the
// checker.Parser interface, as an alternative to pkg/rbparser/structural
// selected via AllCops.ParserBackend: treesitter. Unlike the structural
// scanner, this backend parses a real Ruby grammar and does not rely on
// heuristics to distinguish, e.g., block braces from hash literals.
package treesitter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/fastlint/fastlint/pkg/rbast"
	"github.com/fastlint/fastlint/pkg/rbparser/structural"
)

// Parser implements checker.Parser using tree-sitter's Ruby grammar for the
// AST and structural.Tokenize for the byte-level token stream (tree-sitter
// exposes a tree of named nodes, not a token stream covering every byte, so
// the two are produced independently and share only the Node/FileSnapshot
// shell).
type Parser struct {
	lang *sitter.Language
}

// New creates a tree-sitter backed Parser.
func New() *Parser {
	return &Parser{lang: ruby.GetLanguage()}
}

// Parse implements checker.Parser.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*rbast.FileSnapshot, error) {
	snapshot := rbast.NewFileSnapshot(path, content)
	snapshot.Tokens = structural.Tokenize(content)

	sp := sitter.NewParser()
	sp.SetLanguage(p.lang)

	tree, err := sp.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse %s: %w", path, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter parse %s: nil tree", path)
	}

	root := rbast.NewNode(rbast.NodeProgram)
	root.SetExplicitRange(0, len(content))
	c := &converter{content: content, file: snapshot}
	c.convertChildren(tree.RootNode(), root)
	rbast.SetFile(root, snapshot)
	snapshot.Root = root

	return snapshot, nil
}

var nodeKindByType = map[string]rbast.NodeKind{
	"method":           rbast.NodeDef,
	"singleton_method": rbast.NodeDef,
	"class":            rbast.NodeClassDef,
	"singleton_class":  rbast.NodeClassDef,
	"module":           rbast.NodeModuleDef,
	"if":               rbast.NodeIf,
	"if_modifier":      rbast.NodeIf,
	"unless":           rbast.NodeUnless,
	"unless_modifier":  rbast.NodeUnless,
	"while":            rbast.NodeWhile,
	"while_modifier":   rbast.NodeWhile,
	"until":            rbast.NodeUntil,
	"until_modifier":   rbast.NodeUntil,
	"case":             rbast.NodeCase,
	"begin":            rbast.NodeBegin,
	"do_block":         rbast.NodeBlock,
	"block":            rbast.NodeBlock,
	"method_call":      rbast.NodeCall,
	"call":             rbast.NodeCall,
	"identifier":       rbast.NodeMethodIdentifier,
	"scope_resolution": rbast.NodeConstPath,
}

type converter struct {
	content []byte
	file    *rbast.FileSnapshot
}

// convertChildren walks every child of tsNode, attaching recognized kinds
// as new rbast children of parent and recursing into everything (including
// unrecognized nodes, whose own recognized descendants still need to be
// reached).
func (c *converter) convertChildren(tsNode *sitter.Node, parent *rbast.Node) {
	count := int(tsNode.ChildCount())
	for i := 0; i < count; i++ {
		child := tsNode.Child(i)
		if child == nil {
			continue
		}
		c.convertNode(child, parent)
	}
}

func (c *converter) convertNode(tsNode *sitter.Node, parent *rbast.Node) {
	kind, recognized := nodeKindByType[tsNode.Type()]
	if !recognized {
		c.convertChildren(tsNode, parent)
		return
	}

	n := rbast.NewNode(kind)
	n.SetExplicitRange(int(tsNode.StartByte()), int(tsNode.EndByte()))
	n.Attrs = rbast.NewNodeAttrs()
	n.Attrs.KeywordOffset = int(tsNode.StartByte())
	n.Attrs.EndOffset = int(tsNode.EndByte())

	switch kind {
	case rbast.NodeDef, rbast.NodeClassDef, rbast.NodeModuleDef, rbast.NodeConstPath:
		if nameNode := tsNode.ChildByFieldName("name"); nameNode != nil {
			n.Attrs.Name = string(c.content[nameNode.StartByte():nameNode.EndByte()])
		}
	case rbast.NodeBlock:
		n.Attrs.BraceStyle = tsNode.Type() == "block"
	}

	rbast.AppendChild(parent, n)
	c.convertChildren(tsNode, n)
}
