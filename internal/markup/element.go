// Package markup models the template part of single-file components: elements, their
// attributes and directive bindings.
package markup

import (
	"fmt"
	"strings"
)

// Element of the template tree.
type Element struct {
	// RawName is the tag name as written in the source.
	RawName string

	// Name is the lower-cased tag name.
	Name string

	Start, End   int
	Line, Column int

	Attributes []*Attribute
	Children   []*Element

	parent *Element
}

// NewElement creates a position-less element. Parent links of children are set here.
func NewElement(rawName string, attrs []*Attribute, children ...*Element) *Element {
	el := &Element{
		RawName:    rawName,
		Name:       strings.ToLower(rawName),
		Attributes: attrs,
		Children:   children,
	}
	for _, child := range children {
		child.parent = el
	}

	return el
}

// AddChild appends a child element and links it to e.
func (e *Element) AddChild(child *Element) {
	child.parent = e
	e.Children = append(e.Children, child)
}

// Parent returns the enclosing element, nil for the root.
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}

	return e.parent
}

// Directives returns attributes of the element that are directive bindings.
func (e *Element) Directives() []*Attribute {
	var res []*Attribute
	for _, attr := range e.Attributes {
		if attr.Directive != nil {
			res = append(res, attr)
		}
	}

	return res
}

func (e *Element) String() string {
	return fmt.Sprintf("<%s> at %d:%d", e.RawName, e.Line, e.Column)
}

// Attribute of a start tag.
type Attribute struct {
	// Key is the attribute name as written: class, v-if, :title, @click.stop, etc.
	Key string

	// Value is the unquoted attribute value, HasValue tells <input disabled> from <input disabled="">.
	Value    string
	HasValue bool

	Start, End   int
	Line, Column int

	// Directive is set for directive bindings only.
	Directive *Directive
}

// NewAttribute creates a position-less attribute, directive keys are parsed.
func NewAttribute(key, value string, hasValue bool) *Attribute {
	attr := &Attribute{
		Key:      key,
		Value:    value,
		HasValue: hasValue,
	}
	if d, ok := ParseDirective(key); ok {
		attr.Directive = d
	}

	return attr
}

// Walk traverses elements in pre-order. Children of an element are skipped when visit returns false.
func Walk(root *Element, visit func(el *Element) bool) {
	if root == nil {
		return
	}

	if !visit(root) {
		return
	}

	for _, child := range root.Children {
		Walk(child, visit)
	}
}
