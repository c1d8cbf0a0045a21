package esnode

func isKind(n *Node, k Kind) bool {
	return n != nil && n.Kind == k
}

// Kind predicates. They are false for nil nodes.

func IsProgram(n *Node) bool             { return isKind(n, KindProgram) }
func IsIdentifier(n *Node) bool          { return isKind(n, KindIdentifier) }
func IsProperty(n *Node) bool            { return isKind(n, KindProperty) }
func IsCallExpression(n *Node) bool      { return isKind(n, KindCallExpression) }
func IsObjectPattern(n *Node) bool       { return isKind(n, KindObjectPattern) }
func IsArrayPattern(n *Node) bool        { return isKind(n, KindArrayPattern) }
func IsArrayExpression(n *Node) bool     { return isKind(n, KindArrayExpression) }
func IsObjectExpression(n *Node) bool    { return isKind(n, KindObjectExpression) }
func IsMemberExpression(n *Node) bool    { return isKind(n, KindMemberExpression) }
func IsVariableDeclaration(n *Node) bool { return isKind(n, KindVariableDeclaration) }
func IsVariableDeclarator(n *Node) bool  { return isKind(n, KindVariableDeclarator) }
func IsTSNonNullExpression(n *Node) bool { return isKind(n, KindTSNonNullExpression) }
func IsRestElement(n *Node) bool         { return isKind(n, KindRestElement) }

// IsIdentifierNamed checks if n is an identifier with the given name.
func IsIdentifierNamed(n *Node, name string) bool {
	return IsIdentifier(n) && n.Name == name
}
