package source

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sirkon/vuelint/internal/esnode"
	"github.com/sirkon/vuelint/internal/markup"
)

// sfc splits a single-file component into script blocks and the template tree.
type sfc struct {
	content []byte
	lines   *Lines
}

// ScriptBlock is a <script> block of a single-file component.
type ScriptBlock struct {
	Language Language
	Setup    bool

	// Start and End delimit the script text, without tags.
	Start, End int
}

func parseSFC(ctx context.Context, f *File) error {
	parser := sitter.NewParser()
	parser.SetLanguage(LanguageVue.grammar())

	tree, err := parser.ParseCtx(ctx, nil, f.Content)
	if err != nil {
		return fmt.Errorf("parse component markup: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return fmt.Errorf("parse component markup: no root node")
	}
	if root.HasError() {
		f.SyntaxErrors = true
	}

	s := &sfc{
		content: f.Content,
		lines:   f.Lines,
	}

	program := &esnode.Node{Kind: esnode.KindProgram, Line: 1, Column: 1}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)

		switch child.Type() {
		case "script_element":
			block, body, err := s.script(child)
			if err != nil {
				return fmt.Errorf("component script at %d: %w", child.StartByte(), err)
			}
			if body == nil {
				continue
			}

			prog, hasErrors, err := parseScript(ctx, block.Language, body, block.Start, f.Lines)
			if err != nil {
				return err
			}
			if hasErrors {
				f.SyntaxErrors = true
			}

			if len(f.Scripts) == 0 {
				program.Start = prog.Start
				program.Line, program.Column = prog.Line, prog.Column
			}
			program.End = prog.End
			program.Body = append(program.Body, prog.Body...)
			f.Scripts = append(f.Scripts, block)

		case "element":
			if f.Template != nil {
				continue
			}
			if name, _ := s.tagName(child); name == "template" {
				f.Template = s.element(child)
			}
		}
	}

	f.Program = program
	return nil
}

// script returns the block and its text, nil text for empty blocks.
func (s *sfc) script(n *sitter.Node) (ScriptBlock, []byte, error) {
	var block ScriptBlock
	var text *sitter.Node
	var lang string

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "start_tag":
			for _, attr := range s.attributes(child) {
				switch attr.Key {
				case "lang":
					lang = attr.Value
				case "setup":
					block.Setup = true
				}
			}
		case "raw_text":
			text = child
		}
	}

	if err := block.Language.UnmarshalText([]byte(lang)); err != nil {
		return block, nil, fmt.Errorf("script language: %w", err)
	}
	if block.Language == LanguageVue {
		return block, nil, fmt.Errorf("script language: %w: %s", ErrUnsupportedFile, lang)
	}

	if text == nil {
		return block, nil, nil
	}

	block.Start = int(text.StartByte())
	block.End = int(text.EndByte())
	return block, s.content[block.Start:block.End], nil
}

// element builds the markup tree of an element node.
func (s *sfc) element(n *sitter.Node) *markup.Element {
	rawName, tag := s.tagName(n)

	var attrs []*markup.Attribute
	if tag != nil {
		attrs = s.attributes(tag)
	}

	el := markup.NewElement(rawName, attrs)
	el.Start = int(n.StartByte())
	el.End = int(n.EndByte())
	el.Line, el.Column = s.lines.Position(el.Start)

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "element" {
			el.AddChild(s.element(child))
		}
	}

	return el
}

// tagName returns the element name and its start tag.
func (s *sfc) tagName(n *sitter.Node) (string, *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		tag := n.NamedChild(i)
		if tag.Type() != "start_tag" && tag.Type() != "self_closing_tag" {
			continue
		}

		for j := 0; j < int(tag.NamedChildCount()); j++ {
			if name := tag.NamedChild(j); name.Type() == "tag_name" {
				return s.text(name), tag
			}
		}
		return "", tag
	}

	return "", nil
}

func (s *sfc) attributes(tag *sitter.Node) []*markup.Attribute {
	var res []*markup.Attribute
	for i := 0; i < int(tag.NamedChildCount()); i++ {
		n := tag.NamedChild(i)
		if n.Type() != "attribute" {
			continue
		}

		var key, value string
		var hasValue bool
		for j := 0; j < int(n.NamedChildCount()); j++ {
			child := n.NamedChild(j)
			switch child.Type() {
			case "attribute_name":
				key = s.text(child)
			case "attribute_value":
				value, hasValue = s.text(child), true
			case "quoted_attribute_value":
				value, hasValue = unquote(s.text(child)), true
			}
		}

		attr := markup.NewAttribute(key, value, hasValue)
		attr.Start = int(n.StartByte())
		attr.End = int(n.EndByte())
		attr.Line, attr.Column = s.lines.Position(attr.Start)
		res = append(res, attr)
	}

	return res
}

func (s *sfc) text(n *sitter.Node) string {
	return string(s.content[n.StartByte():n.EndByte()])
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}
