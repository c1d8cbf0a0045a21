package reactive

import (
	"slices"

	"github.com/sirkon/vuelint/internal/esnode"
)

// IsStoreUnwrapDeclaration checks if the declarator destructures a store unwrap:
//
//	const { a, b } = storeToRefs(store)
func IsStoreUnwrapDeclaration(decl *esnode.Node) bool {
	if !esnode.IsVariableDeclarator(decl) || !esnode.IsObjectPattern(decl.ID) {
		return false
	}

	if !esnode.IsCallExpression(decl.Init) || !HasIdentifierCallee(decl.Init) {
		return false
	}

	return decl.Init.Callee.Name == StoreUnwrapFunc
}

// IsIdentifierPropertyPair checks if both key and value of a destructuring property are
// plain identifiers. Rest elements and computed keys do not match.
//
//	{ a }          // matches
//	{ a: b }       // matches
//	{ a: { b } }   // does not
//	{ ...rest }    // does not
func IsIdentifierPropertyPair(prop *esnode.Node) bool {
	return esnode.IsProperty(prop) && esnode.IsIdentifier(prop.Key) && esnode.IsIdentifier(prop.Value)
}

// IsPropertyValueOfObjectLiteral checks if node is a property of an object literal
// rather than of a destructuring pattern.
func IsPropertyValueOfObjectLiteral(node *esnode.Node) bool {
	return esnode.IsProperty(node) && esnode.IsObjectExpression(node.Parent())
}

// HasIdentifierCallee checks if the call is made directly by name, obj.method() does not match.
func HasIdentifierCallee(call *esnode.Node) bool {
	return esnode.IsCallExpression(call) && esnode.IsIdentifier(call.Callee)
}

// FindAncestorCall returns the nearest call expression enclosing node, nil if there is none.
func FindAncestorCall(node *esnode.Node) *esnode.Node {
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		if esnode.IsCallExpression(cur) {
			return cur
		}
	}

	return nil
}

// IsWatchArgument checks if the identifier is a source of the nearest watch call:
//
//	watch(count, …)
//	watch([count, other], …)
func IsWatchArgument(ident *esnode.Node) bool {
	call := FindAncestorCall(ident)
	if !HasIdentifierCallee(call) || call.Callee.Name != WatchFunc {
		return false
	}

	if len(call.Arguments) == 0 {
		return false
	}

	first := call.Arguments[0]
	if first == ident {
		return true
	}

	return esnode.IsArrayExpression(first) && slices.Contains(first.Elements, ident)
}

// CheckFunctionArgument checks if the identifier is an argument of the call made by one of names.
func CheckFunctionArgument(ident, call *esnode.Node, names []string) bool {
	if call == nil {
		return false
	}

	if !slices.Contains(call.Arguments, ident) {
		return false
	}

	return HasIdentifierCallee(call) && slices.Contains(names, call.Callee.Name)
}

// IsSpecialFunctionArgument applies [CheckFunctionArgument] to the nearest enclosing call.
func IsSpecialFunctionArgument(ident *esnode.Node, names []string) bool {
	return CheckFunctionArgument(ident, FindAncestorCall(ident), names)
}

// IsArgumentOfIgnoredFunction applies [CheckFunctionArgument] to the immediate parent only.
// An identifier nested deeper than a direct argument does not match even if some outer
// call is in names.
func IsArgumentOfIgnoredFunction(ident *esnode.Node, names []string) bool {
	parent := ident.Parent()
	if !esnode.IsCallExpression(parent) {
		return false
	}

	return CheckFunctionArgument(ident, parent, names)
}

// IsComposablesFunctionArgument checks if the identifier is an argument of the nearest
// enclosing call of a composable, e.g. useCounter(count).
func IsComposablesFunctionArgument(ident *esnode.Node) bool {
	call := FindAncestorCall(ident)
	if !HasIdentifierCallee(call) || !IsComposableName(call.Callee.Name) {
		return false
	}

	return slices.Contains(call.Arguments, ident)
}
