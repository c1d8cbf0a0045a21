package esnode

// Constructors below build position-less nodes. They are handy for synthetic trees;
// the parser front end fills positions itself. None of them sets parent links,
// call [Link] on the finished root.

func Program(body ...*Node) *Node {
	return &Node{Kind: KindProgram, Body: body}
}

func Ident(name string) *Node {
	return &Node{Kind: KindIdentifier, Name: name}
}

func Call(callee *Node, args ...*Node) *Node {
	return &Node{Kind: KindCallExpression, Callee: callee, Arguments: args}
}

func Member(object, property *Node) *Node {
	return &Node{Kind: KindMemberExpression, Object: object, Property: property}
}

// Prop builds a key: value property.
func Prop(key, value *Node) *Node {
	return &Node{Kind: KindProperty, Key: key, Value: value}
}

// ShorthandProp builds { name } property with distinct key and value identifiers.
func ShorthandProp(name string) *Node {
	return &Node{Kind: KindProperty, Key: Ident(name), Value: Ident(name), Shorthand: true}
}

func ObjectPattern(props ...*Node) *Node {
	return &Node{Kind: KindObjectPattern, Properties: props}
}

func ObjectExpr(props ...*Node) *Node {
	return &Node{Kind: KindObjectExpression, Properties: props}
}

func ArrayPattern(elems ...*Node) *Node {
	return &Node{Kind: KindArrayPattern, Elements: elems}
}

func ArrayExpr(elems ...*Node) *Node {
	return &Node{Kind: KindArrayExpression, Elements: elems}
}

func NonNull(expr *Node) *Node {
	return &Node{Kind: KindTSNonNullExpression, Expression: expr}
}

func Rest(arg *Node) *Node {
	return &Node{Kind: KindRestElement, Argument: arg}
}

// Declare builds a variable declaration of the given kind ("const", "let", "var").
func Declare(kind string, decls ...*Node) *Node {
	return &Node{Kind: KindVariableDeclaration, DeclKind: kind, Declarations: decls}
}

func Declarator(id, init *Node) *Node {
	return &Node{Kind: KindVariableDeclarator, ID: id, Init: init}
}

// Other builds a passthrough node of the given raw type.
func Other(raw string, children ...*Node) *Node {
	return &Node{Kind: KindOther, Raw: raw, Children: children}
}
