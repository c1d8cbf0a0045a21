package reactive

import (
	"slices"
	"sync"

	"github.com/sirkon/vuelint/internal/esnode"
	"github.com/sirkon/vuelint/internal/oracle"
	"github.com/sirkon/vuelint/internal/rules"
)

// Reporter receives violations found by the checker. The name is the surface text of the
// flagged identifier.
type Reporter interface {
	Report(rule rules.Rule, node *esnode.Node, name string)
}

// Options of the require-reactive-value-suffix rule.
type Options struct {
	// FunctionNamesToIgnoreValueCheck lists functions whose direct arguments are not checked.
	FunctionNamesToIgnoreValueCheck []string `yaml:"functionNamesToIgnoreValueCheck" json:"functionNamesToIgnoreValueCheck"`
}

// Checker of the require-reactive-value-suffix rule for one file. Binding names of the file
// are collected once, at the first visit.
type Checker struct {
	program  *esnode.Node
	oracle   oracle.Oracle
	reporter Reporter
	ignored  []string

	reactiveNames   func() []string
	composableNames func() []string
}

// NewChecker creates a checker for the given program.
func NewChecker(program *esnode.Node, o oracle.Oracle, r Reporter, opts Options) *Checker {
	c := &Checker{
		program:  program,
		oracle:   o,
		reporter: r,
		ignored:  slices.Clone(opts.FunctionNamesToIgnoreValueCheck),
	}
	c.setCollectors(CollectReactiveNames, CollectComposableNames)

	return c
}

func (c *Checker) setCollectors(reactive, composable func(*esnode.Node) []string) {
	c.reactiveNames = sync.OnceValue(func() []string {
		return reactive(c.program)
	})
	c.composableNames = sync.OnceValue(func() []string {
		return composable(c.program)
	})
}

// Bindings returns reactive and composable binding names of the file.
func (c *Checker) Bindings() (reactiveNames, composableNames []string) {
	return c.reactiveNames(), c.composableNames()
}

// Identifier checks a bare use of a reactive identifier:
//
//	const count = ref(0)
//	console.log(count) // reported
func (c *Checker) Identifier(ident *esnode.Node) {
	reactiveNames, composableNames := c.Bindings()

	parent := ident.Parent()
	if parent == nil || !slices.Contains(reactiveNames, ident.Name) {
		return
	}

	if ShouldSuppress(ident, parent, composableNames, c.ignored) {
		return
	}

	if oracle.NeedsSuffix(c.oracle, ident) {
		c.reporter.Report(rules.RequireReactiveValueSuffix, ident, ident.Name)
	}
}

// MemberExpression checks member access on a reactive identifier:
//
//	const items = ref([])
//	items.length // reported on items
func (c *Checker) MemberExpression(member *esnode.Node) {
	reactiveNames, _ := c.Bindings()

	object := member.Object
	if !esnode.IsIdentifier(object) || !slices.Contains(reactiveNames, object.Name) {
		return
	}

	if esnode.IsIdentifierNamed(member.Property, SuffixName) {
		return
	}

	if IsPropertyValueOfObjectLiteral(member.Parent()) {
		return
	}

	if oracle.NeedsSuffix(c.oracle, object) {
		c.reporter.Report(rules.RequireReactiveValueSuffix, object, object.Name)
	}
}
