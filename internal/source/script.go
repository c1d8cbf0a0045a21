package source

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sirkon/vuelint/internal/esnode"
)

// parseScript parses a script of the given language. The script starts at the shift
// offset of the file indexed by lines.
func parseScript(ctx context.Context, lang Language, src []byte, shift int, lines *Lines) (*esnode.Node, bool, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang.grammar())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, false, fmt.Errorf("parse %s script: %w", lang, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, false, fmt.Errorf("parse %s script: no root node", lang)
	}

	c := &converter{
		src:   src,
		shift: shift,
		lines: lines,
	}
	program := c.convert(root)
	if !esnode.IsProgram(program) {
		return nil, false, fmt.Errorf("parse %s script: unexpected root %s", lang, root.Type())
	}

	return program, root.HasError(), nil
}

// converter turns tree-sitter nodes of the TypeScript and JavaScript grammars into
// syntax tree nodes. Nodes without a dedicated kind become passthrough nodes.
type converter struct {
	src   []byte
	shift int
	lines *Lines
}

func (c *converter) convert(n *sitter.Node) *esnode.Node {
	if n == nil || n.IsMissing() {
		return nil
	}

	switch n.Type() {
	case "comment", "hash_bang_line":
		return nil

	case "program":
		return c.at(n, &esnode.Node{
			Kind: esnode.KindProgram,
			Body: c.convertAll(c.named(n)),
		})

	case "identifier", "property_identifier", "private_property_identifier", "undefined":
		return c.ident(n)

	case "parenthesized_expression":
		inner := c.named(n)
		if len(inner) != 1 {
			return c.other(n)
		}
		return c.convert(inner[0])

	case "lexical_declaration", "variable_declaration":
		var decls []*sitter.Node
		for _, child := range c.named(n) {
			if child.Type() == "variable_declarator" {
				decls = append(decls, child)
			}
		}
		return c.at(n, &esnode.Node{
			Kind:         esnode.KindVariableDeclaration,
			DeclKind:     n.Child(0).Type(),
			Declarations: c.convertAll(decls),
		})

	case "variable_declarator":
		return c.at(n, &esnode.Node{
			Kind: esnode.KindVariableDeclarator,
			ID:   c.convert(n.ChildByFieldName("name")),
			Init: c.convert(n.ChildByFieldName("value")),
		})

	case "call_expression":
		args := n.ChildByFieldName("arguments")
		if args == nil || args.Type() != "arguments" {
			// Tagged templates.
			return c.other(n)
		}
		return c.at(n, &esnode.Node{
			Kind:      esnode.KindCallExpression,
			Callee:    c.convert(n.ChildByFieldName("function")),
			Arguments: c.convertAll(c.named(args)),
		})

	case "member_expression":
		return c.at(n, &esnode.Node{
			Kind:     esnode.KindMemberExpression,
			Object:   c.convert(n.ChildByFieldName("object")),
			Property: c.convert(n.ChildByFieldName("property")),
		})

	case "subscript_expression":
		return c.at(n, &esnode.Node{
			Kind:     esnode.KindMemberExpression,
			Object:   c.convert(n.ChildByFieldName("object")),
			Property: c.convert(n.ChildByFieldName("index")),
			Computed: true,
		})

	case "non_null_expression":
		inner := c.named(n)
		if len(inner) == 0 {
			return c.other(n)
		}
		return c.at(n, &esnode.Node{
			Kind:       esnode.KindTSNonNullExpression,
			Expression: c.convert(inner[0]),
		})

	case "object":
		return c.at(n, &esnode.Node{
			Kind:       esnode.KindObjectExpression,
			Properties: c.properties(n),
		})

	case "object_pattern":
		return c.at(n, &esnode.Node{
			Kind:       esnode.KindObjectPattern,
			Properties: c.properties(n),
		})

	case "array":
		return c.at(n, &esnode.Node{
			Kind:     esnode.KindArrayExpression,
			Elements: c.convertAll(c.named(n)),
		})

	case "array_pattern":
		return c.at(n, &esnode.Node{
			Kind:     esnode.KindArrayPattern,
			Elements: c.convertAll(c.named(n)),
		})

	case "for_in_statement":
		return c.forIn(n)

	case "rest_pattern":
		inner := c.named(n)
		if len(inner) == 0 {
			return c.other(n)
		}
		return c.at(n, &esnode.Node{
			Kind:     esnode.KindRestElement,
			Argument: c.convert(inner[0]),
		})

	default:
		return c.other(n)
	}
}

// properties converts members of object literals and object patterns.
func (c *converter) properties(n *sitter.Node) []*esnode.Node {
	var res []*esnode.Node
	for _, child := range c.named(n) {
		var prop *esnode.Node

		switch child.Type() {
		case "pair", "pair_pattern":
			key, computed := c.key(child.ChildByFieldName("key"))
			prop = c.at(child, &esnode.Node{
				Kind:     esnode.KindProperty,
				Key:      key,
				Value:    c.convert(child.ChildByFieldName("value")),
				Computed: computed,
			})

		case "shorthand_property_identifier", "shorthand_property_identifier_pattern":
			prop = c.at(child, &esnode.Node{
				Kind:      esnode.KindProperty,
				Key:       c.ident(child),
				Value:     c.ident(child),
				Shorthand: true,
			})

		case "method_definition":
			// count() {}, get count() {}, set count(v) {}
			name := child.ChildByFieldName("name")
			key, computed := c.key(name)
			prop = c.at(child, &esnode.Node{
				Kind:     esnode.KindProperty,
				Key:      key,
				Value:    c.otherExcept(child, name),
				Computed: computed,
			})

		case "object_assignment_pattern":
			// { a = 1 }: the value is an assignment pattern with a as its target.
			left := child.ChildByFieldName("left")
			prop = c.at(child, &esnode.Node{
				Kind:      esnode.KindProperty,
				Value:     c.other(child),
				Shorthand: left != nil && left.Type() == "shorthand_property_identifier_pattern",
			})
			if prop.Shorthand {
				prop.Key = c.ident(left)
			}

		default:
			prop = c.convert(child)
		}

		if prop != nil {
			res = append(res, prop)
		}
	}

	return res
}

// key converts a property key. Computed keys give their inner expression.
func (c *converter) key(n *sitter.Node) (*esnode.Node, bool) {
	if n == nil {
		return nil, false
	}

	if n.Type() == "computed_property_name" {
		inner := c.named(n)
		if len(inner) == 0 {
			return c.other(n), true
		}
		return c.convert(inner[0]), true
	}

	return c.convert(n), false
}

func (c *converter) ident(n *sitter.Node) *esnode.Node {
	return c.at(n, &esnode.Node{
		Kind: esnode.KindIdentifier,
		Name: c.text(n),
	})
}

// forIn converts for (const x of xs) and for (let k in obj) loops. A declared loop binding
// becomes a declaration with a single declarator, bare targets stay as they are.
func (c *converter) forIn(n *sitter.Node) *esnode.Node {
	kind := loopKind(n)
	left := n.ChildByFieldName("left")
	if kind == nil || left == nil {
		return c.other(n)
	}

	res := c.otherExcept(n, left)
	decl := c.span(int(kind.StartByte()), int(left.EndByte()), &esnode.Node{
		Kind:     esnode.KindVariableDeclaration,
		DeclKind: kind.Type(),
		Declarations: []*esnode.Node{
			c.at(left, &esnode.Node{
				Kind: esnode.KindVariableDeclarator,
				ID:   c.convert(left),
			}),
		},
	})
	res.Children = append([]*esnode.Node{decl}, res.Children...)

	return res
}

func (c *converter) other(n *sitter.Node) *esnode.Node {
	return c.otherExcept(n, nil)
}

// otherExcept builds a passthrough node leaving out the skip child.
func (c *converter) otherExcept(n, skip *sitter.Node) *esnode.Node {
	var children []*esnode.Node
	for _, child := range c.named(n) {
		if skip != nil && sameNode(child, skip) {
			continue
		}
		if child.Type() == "shorthand_property_identifier_pattern" {
			children = append(children, c.ident(child))
			continue
		}
		if conv := c.convert(child); conv != nil {
			children = append(children, conv)
		}
	}

	return c.at(n, &esnode.Node{
		Kind:     esnode.KindOther,
		Raw:      n.Type(),
		Children: children,
	})
}

func (c *converter) at(n *sitter.Node, res *esnode.Node) *esnode.Node {
	return c.span(int(n.StartByte()), int(n.EndByte()), res)
}

// span positions res at [start, end) of the script.
func (c *converter) span(start, end int, res *esnode.Node) *esnode.Node {
	res.Start = c.shift + start
	res.End = c.shift + end
	res.Line, res.Column = c.lines.Position(res.Start)

	return res
}

// loopKind returns the const, let or var keyword of a loop header.
func loopKind(n *sitter.Node) *sitter.Node {
	if kind := n.ChildByFieldName("kind"); kind != nil {
		return kind
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		switch child := n.Child(i); child.Type() {
		case "const", "let", "var":
			return child
		}
	}

	return nil
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

// named lists named children of the node except comments.
func (c *converter) named(n *sitter.Node) []*sitter.Node {
	var res []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		res = append(res, child)
	}

	return res
}

func (c *converter) convertAll(nodes []*sitter.Node) []*esnode.Node {
	res := make([]*esnode.Node, 0, len(nodes))
	for _, n := range nodes {
		if conv := c.convert(n); conv != nil {
			res = append(res, conv)
		}
	}

	return res
}
