package reactive

import (
	"github.com/sirkon/vuelint/internal/esnode"
)

// topLevelDeclarators lists declarators of top-level variable declarations.
// Declarations nested into function bodies are not binding sources.
func topLevelDeclarators(program *esnode.Node) []*esnode.Node {
	if !esnode.IsProgram(program) {
		return nil
	}

	var res []*esnode.Node
	for _, stmt := range program.Body {
		if !esnode.IsVariableDeclaration(stmt) {
			continue
		}

		res = append(res, stmt.Declarations...)
	}

	return res
}

// initCallee returns callee name of a declarator initialized with a call by name.
func initCallee(decl *esnode.Node) (string, bool) {
	if !esnode.IsVariableDeclarator(decl) || !HasIdentifierCallee(decl.Init) {
		return "", false
	}

	return decl.Init.Callee.Name, true
}

// identifierPairValues returns value names of identifier pair properties of the pattern.
func identifierPairValues(pattern *esnode.Node) []string {
	if !esnode.IsObjectPattern(pattern) {
		return nil
	}

	var res []string
	for _, prop := range pattern.Properties {
		if IsIdentifierPropertyPair(prop) {
			res = append(res, prop.Value.Name)
		}
	}

	return res
}

// CollectReactiveNames returns names bound to reactive values at the top level of the program:
//
//	const count = ref(0)                 // count
//	const { a, b: c } = toRefs(state)    // a, c
//	const { x } = storeToRefs(store)     // x
//
// The list keeps discovery order, constructor bindings go first, store unwraps next.
// Duplicates are kept.
func CollectReactiveNames(program *esnode.Node) []string {
	decls := topLevelDeclarators(program)

	var res []string
	for _, decl := range decls {
		name, ok := initCallee(decl)
		if !ok || !IsReactiveFunc(name) {
			continue
		}

		switch {
		case esnode.IsIdentifier(decl.ID):
			res = append(res, decl.ID.Name)
		case esnode.IsObjectPattern(decl.ID):
			for _, prop := range decl.ID.Properties {
				if esnode.IsProperty(prop) && esnode.IsIdentifier(prop.Value) {
					res = append(res, prop.Value.Name)
				}
			}
		}
	}

	for _, decl := range decls {
		if IsStoreUnwrapDeclaration(decl) {
			res = append(res, identifierPairValues(decl.ID)...)
		}
	}

	return res
}

// CollectComposableNames returns names destructured from composable calls at the top level:
//
//	const { count, inc } = useCounter()   // count, inc
//	const counter = useCounter()          // nothing
func CollectComposableNames(program *esnode.Node) []string {
	var res []string
	for _, decl := range topLevelDeclarators(program) {
		name, ok := initCallee(decl)
		if !ok || !IsComposableName(name) {
			continue
		}

		res = append(res, identifierPairValues(decl.ID)...)
	}

	return res
}
