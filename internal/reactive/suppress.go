package reactive

import (
	"github.com/sirkon/vuelint/internal/esnode"
)

// ShouldSuppress checks if a bare use of a reactive identifier must not be reported.
// Any of the categories below is enough.
func ShouldSuppress(ident, parent *esnode.Node, composableNames, ignoredNames []string) bool {
	return inDeclarationContext(ident, parent) ||
		inPropertyAccessContext(ident, parent) ||
		isSpecialArgument(ident, composableNames, ignoredNames) ||
		inLiteral(ident)
}

// inDeclarationContext:
//
//	const count = …
//	const [count] = …
//	{ count: … }
//	const { original: count } = …
func inDeclarationContext(ident, parent *esnode.Node) bool {
	if esnode.IsVariableDeclarator(parent) || esnode.IsArrayPattern(parent) {
		return true
	}

	if parent.Parent() != nil && IsPropertyValueOfObjectLiteral(parent) {
		return true
	}

	return esnode.IsProperty(parent) && parent.Value == ident && esnode.IsObjectPattern(parent.Parent())
}

// inPropertyAccessContext:
//
//	count.value
//	count.other   // the member access is checked on its own
//	{ count: … }
func inPropertyAccessContext(ident, parent *esnode.Node) bool {
	if esnode.IsMemberExpression(parent) {
		if esnode.IsIdentifierNamed(parent.Property, SuffixName) {
			return true
		}

		if parent.Property != ident {
			return true
		}
	}

	if esnode.IsProperty(parent) && parent.Key == ident {
		return true
	}

	return IsPropertyValueOfObjectLiteral(parent)
}

// isSpecialArgument:
//
//	watch(count, …)
//	increment(count)       // increment was destructured from a composable call
//	ignoredFn(count)       // configured
//	useCounter(count)
func isSpecialArgument(ident *esnode.Node, composableNames, ignoredNames []string) bool {
	return IsWatchArgument(ident) ||
		IsSpecialFunctionArgument(ident, composableNames) ||
		IsArgumentOfIgnoredFunction(ident, ignoredNames) ||
		IsComposablesFunctionArgument(ident)
}

// inLiteral:
//
//	[count, other]
func inLiteral(ident *esnode.Node) bool {
	return esnode.IsArrayExpression(ident.Parent())
}
