package reactive

import (
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"

	"github.com/sirkon/vuelint/internal/esnode"
	"github.com/sirkon/vuelint/internal/oracle"
	"github.com/sirkon/vuelint/internal/rules"
)

type reported struct {
	rule rules.Rule
	node *esnode.Node
	name string
}

type recorder struct {
	reports []reported
}

func (r *recorder) Report(rule rules.Rule, node *esnode.Node, name string) {
	r.reports = append(r.reports, reported{rule: rule, node: node, name: name})
}

func (r *recorder) names() []string {
	var res []string
	for _, rep := range r.reports {
		res = append(res, rep.name)
	}

	return res
}

// typesOf returns an oracle giving the same type to every identifier of a name.
func typesOf(t *testing.T, types map[string]string) oracle.Oracle {
	return oracle.Func(func(node *esnode.Node) string {
		typ, ok := types[node.Name]
		if !ok {
			t.Errorf("unexpected type request for %s", node)
		}
		return typ
	})
}

func drive(c *Checker, program *esnode.Node) {
	esnode.Walk(program, func(n *esnode.Node) bool {
		switch n.Kind {
		case esnode.KindIdentifier:
			c.Identifier(n)
		case esnode.KindMemberExpression:
			c.MemberExpression(n)
		}
		return true
	})
}

func TestCheckerBareUse(t *testing.T) {
	use := esnode.Ident("count")
	program := esnode.Link(esnode.Program(
		constDecl(esnode.Ident("count"), call("ref", esnode.Other("number"))),
		esnode.Other("expression_statement", esnode.Call(esnode.Member(esnode.Ident("console"), esnode.Ident("log")), use)),
	))

	var r recorder
	drive(NewChecker(program, typesOf(t, map[string]string{"count": "Ref<number>"}), &r, Options{}), program)

	want := []reported{{rule: rules.RequireReactiveValueSuffix, node: use, name: "count"}}
	if len(r.reports) != 1 || r.reports[0] != want[0] {
		deepequal.SideBySide(t, "reports", want, r.reports)
	}
}

func TestCheckerSuffixedUse(t *testing.T) {
	program := esnode.Link(esnode.Program(
		constDecl(esnode.Ident("count"), call("ref", esnode.Other("number"))),
		esnode.Other("expression_statement", esnode.Call(
			esnode.Member(esnode.Ident("console"), esnode.Ident("log")),
			esnode.Member(esnode.Ident("count"), esnode.Ident("value")),
		)),
	))

	var r recorder
	drive(NewChecker(program, typesOf(t, map[string]string{"count": "Ref<number>"}), &r, Options{}), program)

	if len(r.reports) != 0 {
		t.Errorf("no reports were expected, got %v", r.names())
	}
}

func TestCheckerStoreWatch(t *testing.T) {
	program := esnode.Link(esnode.Program(
		constDecl(esnode.ObjectPattern(esnode.ShorthandProp("x")), call("storeToRefs", esnode.Ident("store"))),
		esnode.Other("expression_statement", call("watch", esnode.Ident("x"), esnode.Other("arrow_function"))),
	))

	var r recorder
	drive(NewChecker(program, typesOf(t, map[string]string{"x": "Ref<string>"}), &r, Options{}), program)

	if len(r.reports) != 0 {
		t.Errorf("no reports were expected, got %v", r.names())
	}
}

func TestCheckerMemberAccess(t *testing.T) {
	flagged := esnode.Ident("items")
	program := esnode.Link(esnode.Program(
		constDecl(esnode.Ident("items"), call("ref", esnode.ArrayExpr())),
		// items.length
		esnode.Other("expression_statement", esnode.Member(flagged, esnode.Ident("length"))),
		// items.value.length
		esnode.Other("expression_statement", esnode.Member(
			esnode.Member(esnode.Ident("items"), esnode.Ident("value")),
			esnode.Ident("length"),
		)),
	))

	var r recorder
	drive(NewChecker(program, typesOf(t, map[string]string{"items": "Ref<string[]>"}), &r, Options{}), program)

	want := []string{"items"}
	if !reflect.DeepEqual(want, r.names()) {
		deepequal.SideBySide(t, "reported names", want, r.names())
	}
	for _, rep := range r.reports {
		if rep.node != flagged {
			t.Errorf("the object of items.length was expected to be reported, got %s", rep.node)
		}
	}
}

func TestCheckerMemberAccessChecks(t *testing.T) {
	var r recorder
	c := NewChecker(
		esnode.Link(esnode.Program(constDecl(esnode.Ident("items"), call("ref", esnode.ArrayExpr())))),
		typesOf(t, map[string]string{"items": "Ref<string[]>"}),
		&r,
		Options{},
	)

	tests := []struct {
		name   string
		member *esnode.Node
		want   int
	}{
		{
			name:   "plain access",
			member: esnode.Member(esnode.Ident("items"), esnode.Ident("length")),
			want:   1,
		},
		{
			name:   "value suffix",
			member: esnode.Member(esnode.Ident("items"), esnode.Ident("value")),
		},
		{
			name:   "not reactive",
			member: esnode.Member(esnode.Ident("list"), esnode.Ident("length")),
		},
		{
			name:   "call result",
			member: esnode.Member(call("getItems"), esnode.Ident("length")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.reports = nil
			esnode.Link(esnode.Program(esnode.Other("expression_statement", tt.member)))
			c.MemberExpression(tt.member)
			if len(r.reports) != tt.want {
				t.Errorf("got %d reports, want %d", len(r.reports), tt.want)
			}
		})
	}

	t.Run("object literal property", func(t *testing.T) {
		r.reports = nil
		// { size: items.length }
		member := esnode.Member(esnode.Ident("items"), esnode.Ident("length"))
		esnode.Link(esnode.Program(esnode.Other("expression_statement", esnode.ObjectExpr(esnode.Prop(esnode.Ident("size"), member)))))

		c.MemberExpression(member)
		if len(r.reports) != 0 {
			t.Errorf("got %d reports, want 0", len(r.reports))
		}
	})
}

func TestCheckerTypes(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		want int
	}{
		{name: "ref", typ: "Ref<number>", want: 1},
		{name: "computed", typ: "ComputedRef<string>", want: 1},
		{name: "already unwrapped", typ: "Ref<number>.value"},
		{name: "plain", typ: "number"},
		{name: "unknown", typ: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := esnode.Link(esnode.Program(
				constDecl(esnode.Ident("count"), call("computed", esnode.Ident("getter"))),
				esnode.Other("expression_statement", esnode.Other("return_statement", esnode.Ident("count"))),
			))

			var r recorder
			drive(NewChecker(program, typesOf(t, map[string]string{"count": tt.typ}), &r, Options{}), program)
			if len(r.reports) != tt.want {
				t.Errorf("got %d reports, want %d", len(r.reports), tt.want)
			}
		})
	}
}

func TestCheckerNonNull(t *testing.T) {
	program := esnode.Link(esnode.Program(
		constDecl(esnode.Ident("count"), call("ref", esnode.Other("number"))),
		esnode.Other("expression_statement", esnode.NonNull(esnode.Ident("count"))),
	))

	var r recorder
	drive(NewChecker(program, typesOf(t, map[string]string{"count": "Ref<number>"}), &r, Options{}), program)

	if len(r.reports) != 0 {
		t.Errorf("no reports were expected, got %v", r.names())
	}
}

func TestCheckerIgnoredFunctions(t *testing.T) {
	program := esnode.Link(esnode.Program(
		constDecl(esnode.Ident("count"), call("ref", esnode.Other("number"))),
		esnode.Other("expression_statement", call("toRaw", esnode.Ident("count"))),
		esnode.Other("expression_statement", call("unref", esnode.Ident("count"))),
	))

	opts := Options{FunctionNamesToIgnoreValueCheck: []string{"toRaw"}}
	var r recorder
	drive(NewChecker(program, typesOf(t, map[string]string{"count": "Ref<number>"}), &r, opts), program)

	want := []string{"count"}
	if !reflect.DeepEqual(want, r.names()) {
		deepequal.SideBySide(t, "reported names", want, r.names())
		return
	}
	if got := r.reports[0].node.Parent().Callee.Name; got != "unref" {
		t.Errorf("the argument of unref was expected to be reported, got an argument of %s", got)
	}
}

func TestCheckerComposables(t *testing.T) {
	program := esnode.Link(esnode.Program(
		constDecl(esnode.Ident("count"), call("ref", esnode.Other("number"))),
		constDecl(esnode.ObjectPattern(esnode.ShorthandProp("increment")), call("useCounter")),
		esnode.Other("expression_statement", call("increment", esnode.Ident("count"))),
		esnode.Other("expression_statement", call("useDouble", esnode.Ident("count"))),
	))

	var r recorder
	drive(NewChecker(program, typesOf(t, map[string]string{"count": "Ref<number>"}), &r, Options{}), program)

	if len(r.reports) != 0 {
		t.Errorf("no reports were expected, got %v", r.names())
	}
}

func TestCheckerNotReactive(t *testing.T) {
	program := esnode.Link(esnode.Program(
		constDecl(esnode.Ident("plain"), esnode.Other("number")),
		esnode.Other("expression_statement", call("log", esnode.Ident("plain"))),
		esnode.Other("expression_statement", esnode.Member(esnode.Ident("plain"), esnode.Ident("toFixed"))),
	))

	var r recorder
	// Any type request fails the test.
	drive(NewChecker(program, typesOf(t, nil), &r, Options{}), program)

	if len(r.reports) != 0 {
		t.Errorf("no reports were expected, got %v", r.names())
	}
}

func TestCheckerCollectsOnce(t *testing.T) {
	program := sampleProgram()

	var reactiveCalls, composableCalls int
	c := NewChecker(program, oracle.Func(func(*esnode.Node) string { return "" }), &recorder{}, Options{})
	c.setCollectors(
		func(p *esnode.Node) []string {
			reactiveCalls++
			return CollectReactiveNames(p)
		},
		func(p *esnode.Node) []string {
			composableCalls++
			return CollectComposableNames(p)
		},
	)

	for range 3 {
		drive(c, program)
	}

	if reactiveCalls != 1 || composableCalls != 1 {
		t.Errorf("bindings must be collected once, got %d and %d collections", reactiveCalls, composableCalls)
	}

	reactiveNames, composableNames := c.Bindings()
	if !reflect.DeepEqual([]string{"inc", "sum"}, composableNames) {
		deepequal.SideBySide(t, "composable names", []string{"inc", "sum"}, composableNames)
	}
	if len(reactiveNames) != 9 {
		t.Errorf("got %d reactive names, want 9", len(reactiveNames))
	}
}
