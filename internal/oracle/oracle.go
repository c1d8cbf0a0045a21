// Package oracle connects lint rules to an external type checker.
//
// The checker is only asked for a rendered type description of an expression. Rules
// look into the description with substring tests and nothing else.
package oracle

import (
	"errors"
	"strings"

	"github.com/sirkon/vuelint/internal/esnode"
)

// ErrUnavailable is returned when a rule needs type information and there is none.
var ErrUnavailable = errors.New("type information is not available")

const (
	// WrapperMarker is contained in type descriptions of reactive wrappers: Ref<number>, ComputedRef<string>, etc.
	WrapperMarker = "Ref"

	// SuffixMarker is contained in type descriptions already accessed through the suffix.
	SuffixMarker = ".value"
)

// Oracle renders static types of expressions.
type Oracle interface {
	// TypeOf returns the rendered type of the node. An empty string means the type is unknown.
	TypeOf(node *esnode.Node) string
}

// Classifier is an optional structured interface of an oracle. When implemented, its answers
// are used instead of marker lookups in the rendered type.
type Classifier interface {
	IsReactiveWrapper(node *esnode.Node) bool
	HasValueSuffix(node *esnode.Node) bool
}

// Func adapts a function to the [Oracle] interface.
type Func func(node *esnode.Node) string

func (f Func) TypeOf(node *esnode.Node) string {
	return f(node)
}

// NeedsSuffix checks if the identifier is a reactive wrapper read without the access suffix.
// Non-null asserted reads (count!) never need it.
func NeedsSuffix(o Oracle, ident *esnode.Node) bool {
	if esnode.IsTSNonNullExpression(ident.Parent()) {
		return false
	}

	if c, ok := o.(Classifier); ok {
		return c.IsReactiveWrapper(ident) && !c.HasValueSuffix(ident)
	}

	typ := o.TypeOf(ident)
	return strings.Contains(typ, WrapperMarker) && !strings.Contains(typ, SuffixMarker)
}
