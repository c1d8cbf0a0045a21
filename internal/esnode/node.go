package esnode

import (
	"fmt"
)

// Kind is a tag of the syntax node.
type Kind int

const (
	kindInvalid Kind = iota

	KindProgram
	KindIdentifier
	KindProperty
	KindCallExpression
	KindObjectPattern
	KindArrayPattern
	KindArrayExpression
	KindObjectExpression
	KindMemberExpression
	KindVariableDeclaration
	KindVariableDeclarator
	KindTSNonNullExpression
	KindRestElement

	// KindOther is a passthrough for everything the rules do not look into.
	// Such nodes keep the parser's node type in Raw and their children in Children.
	KindOther
)

var kindValueMap = map[Kind]string{
	KindProgram:             "Program",
	KindIdentifier:          "Identifier",
	KindProperty:            "Property",
	KindCallExpression:      "CallExpression",
	KindObjectPattern:       "ObjectPattern",
	KindArrayPattern:        "ArrayPattern",
	KindArrayExpression:     "ArrayExpression",
	KindObjectExpression:    "ObjectExpression",
	KindMemberExpression:    "MemberExpression",
	KindVariableDeclaration: "VariableDeclaration",
	KindVariableDeclarator:  "VariableDeclarator",
	KindTSNonNullExpression: "TSNonNullExpression",
	KindRestElement:         "RestElement",
	KindOther:               "Other",
}

func (k Kind) String() string {
	v, ok := kindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}

	return v
}

// UnmarshalText for setting values with fixtures, CLI, etc.
func (k *Kind) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for kk, v := range kindValueMap {
		if v == text {
			*k = kk
			return nil
		}
	}

	return fmt.Errorf("unknown node kind %q", text)
}

// Node is a syntax tree node. Which fields are meaningful depends on Kind:
//
//	Program              Body
//	Identifier           Name
//	Property             Key, Value, Shorthand, Computed
//	CallExpression       Callee, Arguments
//	ObjectPattern        Properties
//	ObjectExpression     Properties
//	ArrayPattern         Elements (nil entries are holes)
//	ArrayExpression      Elements (nil entries are holes)
//	MemberExpression     Object, Property, Computed
//	VariableDeclaration  DeclKind, Declarations
//	VariableDeclarator   ID, Init (Init may be nil)
//	TSNonNullExpression  Expression
//	RestElement          Argument
//	Other                Raw, Children
type Node struct {
	Kind Kind

	// Start and End are byte offsets of the node in the source file, End is exclusive.
	Start int
	End   int

	// Line and Column are 1-based. Column counts bytes.
	Line   int
	Column int

	Name string
	Raw  string

	Body         []*Node
	Key          *Node
	Value        *Node
	Shorthand    bool
	Computed     bool
	Callee       *Node
	Arguments    []*Node
	Properties   []*Node
	Elements     []*Node
	Object       *Node
	Property     *Node
	DeclKind     string
	Declarations []*Node
	ID           *Node
	Init         *Node
	Expression   *Node
	Argument     *Node
	Children     []*Node

	parent *Node
}

// Parent returns the syntactic parent of the node, nil for the root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}

	return n.parent
}

// Span returns [Start, End) of the node.
func (n *Node) Span() (start, end int) {
	return n.Start, n.End
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}

	switch n.Kind {
	case KindIdentifier:
		return fmt.Sprintf("Identifier(%s)@%d:%d", n.Name, n.Line, n.Column)
	case KindOther:
		return fmt.Sprintf("Other(%s)@%d:%d", n.Raw, n.Line, n.Column)
	default:
		return fmt.Sprintf("%s@%d:%d", n.Kind, n.Line, n.Column)
	}
}

// ChildNodes returns direct children of the node in source order. Holes of array
// patterns and literals are skipped.
func (n *Node) ChildNodes() []*Node {
	if n == nil {
		return nil
	}

	var res []*Node
	add := func(nodes ...*Node) {
		for _, c := range nodes {
			if c != nil {
				res = append(res, c)
			}
		}
	}

	switch n.Kind {
	case KindProgram:
		add(n.Body...)
	case KindProperty:
		add(n.Key, n.Value)
	case KindCallExpression:
		add(n.Callee)
		add(n.Arguments...)
	case KindObjectPattern, KindObjectExpression:
		add(n.Properties...)
	case KindArrayPattern, KindArrayExpression:
		add(n.Elements...)
	case KindMemberExpression:
		add(n.Object, n.Property)
	case KindVariableDeclaration:
		add(n.Declarations...)
	case KindVariableDeclarator:
		add(n.ID, n.Init)
	case KindTSNonNullExpression:
		add(n.Expression)
	case KindRestElement:
		add(n.Argument)
	case KindOther:
		add(n.Children...)
	}

	return res
}

// Link sets parent links of the whole tree under root and returns root.
// It is meant to be called once, by whoever builds the tree.
func Link(root *Node) *Node {
	if root == nil {
		return nil
	}

	root.parent = nil
	link(root)
	return root
}

func link(n *Node) {
	for _, c := range n.ChildNodes() {
		c.parent = n
		link(c)
	}
}

// Walk traverses the tree depth first calling visit for every node before its
// children. Children are skipped when visit returns false.
func Walk(root *Node, visit func(n *Node) bool) {
	if root == nil {
		return
	}

	if !visit(root) {
		return
	}

	for _, c := range root.ChildNodes() {
		Walk(c, visit)
	}
}
