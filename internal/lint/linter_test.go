package lint

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"
	"go.uber.org/zap/zaptest"

	"github.com/sirkon/vuelint/internal/config"
	"github.com/sirkon/vuelint/internal/esnode"
	"github.com/sirkon/vuelint/internal/oracle"
	"github.com/sirkon/vuelint/internal/report"
	"github.com/sirkon/vuelint/internal/rules"
	"github.com/sirkon/vuelint/internal/source"
)

const counterTS = `import { ref } from 'vue'

const count = ref(0)
console.log(count)
console.log(count.value)
`

const counterTypes = `types:
  - { line: 3, column: 7, name: count, type: Ref<number> }
  - { line: 4, column: 13, name: count, type: Ref<number> }
  - { line: 5, column: 13, name: count, type: Ref<number> }
`

const counterVue = `<script setup lang="ts">
const items = ref([])
const total = items.length
</script>

<template>
  <ul v-if="total">
    <template v-for="item in items"><li v-else-if="item">{{ item }}</li></template>
  </ul>
</template>
`

const counterVueTypes = `{"types": [
  {"line": 2, "column": 7, "name": "items", "type": "Ref<never[]>"},
  {"line": 3, "column": 15, "name": "items", "type": "Ref<never[]>"}
]}`

type brief struct {
	Rule   rules.Rule
	Line   int
	Column int
	Name   string
}

func briefs(reps []report.Report) []brief {
	var res []brief
	for _, rep := range reps {
		res = append(res, brief{Rule: rep.Rule, Line: rep.Pos.Line, Column: rep.Pos.Column, Name: rep.Name})
	}

	return res
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func TestLint(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"counter.ts":            counterTS,
		"counter.ts.types.yaml": counterTypes,
		"List.vue":              counterVue,
		"List.vue.types.json":   counterVueTypes,
	})

	cfg := config.Default()
	cfg.Rules.DirectiveToTemplate.Severity = rules.SeverityWarn

	// The component has a JSON table.
	jsonTypes := func(f *source.File) (oracle.Oracle, error) {
		suffix := config.DefaultTypesSuffix
		if f.Language == source.LanguageVue {
			suffix = ".types.json"
		}
		return oracle.LoadTable(f.Path+suffix, f.Lines)
	}

	l := New(cfg, WithLogger(zaptest.NewLogger(t)), WithJobs(2), WithOracles(jsonTypes))
	reps, err := l.Lint(context.Background(), []string{
		filepath.Join(dir, "counter.ts"),
		filepath.Join(dir, "List.vue"),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []brief{
		{Rule: rules.RequireReactiveValueSuffix, Line: 3, Column: 15, Name: "items"},
		{Rule: rules.RestrictDirectiveToTemplate, Line: 7, Column: 7, Name: "if"},
		{Rule: rules.RestrictDirectiveToTemplate, Line: 8, Column: 41, Name: "else-if"},
		{Rule: rules.RequireReactiveValueSuffix, Line: 4, Column: 13, Name: "count"},
	}
	if got := briefs(reps); !reflect.DeepEqual(want, got) {
		deepequal.SideBySide(t, "reports", want, got)
	}

	for _, rep := range reps {
		wantSeverity := rules.SeverityError
		if rep.Rule == rules.RestrictDirectiveToTemplate {
			wantSeverity = rules.SeverityWarn
		}
		if rep.Severity != wantSeverity {
			t.Errorf("%s: got severity %s, want %s", rep.Pos, rep.Severity, wantSeverity)
		}
	}
}

func TestLintDefaultTables(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"counter.ts":            counterTS,
		"counter.ts.types.yaml": counterTypes,
	})

	reps, err := New(config.Default()).Lint(context.Background(), []string{filepath.Join(dir, "counter.ts")})
	if err != nil {
		t.Fatal(err)
	}

	want := []brief{{Rule: rules.RequireReactiveValueSuffix, Line: 4, Column: 13, Name: "count"}}
	if got := briefs(reps); !reflect.DeepEqual(want, got) {
		deepequal.SideBySide(t, "reports", want, got)
	}
	if want := `Reactive variable "count" should be accessed as "count.value"`; reps[0].Message != want {
		t.Errorf("got message %q, want %q", reps[0].Message, want)
	}
}

func TestLintNoTypes(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"counter.ts": counterTS,
	})
	path := filepath.Join(dir, "counter.ts")

	_, err := New(config.Default()).Lint(context.Background(), []string{path})
	if !errors.Is(err, oracle.ErrUnavailable) {
		t.Fatalf("type information error was expected, got %v", err)
	}

	cfg := config.Default()
	cfg.Rules.ReactiveValueSuffix.Severity = rules.SeverityOff
	reps, err := New(cfg).Lint(context.Background(), []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if len(reps) != 0 {
		t.Errorf("no reports were expected, got %v", briefs(reps))
	}
}

func TestLintSourceDisabledDirectives(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.DirectiveToTemplate.Severity = rules.SeverityOff

	none := func(*source.File) (oracle.Oracle, error) {
		return oracle.Func(func(*esnode.Node) string { return "" }), nil
	}

	reps, err := New(cfg, WithOracles(none)).LintSource(context.Background(), "List.vue", []byte(counterVue))
	if err != nil {
		t.Fatal(err)
	}
	if len(reps) != 0 {
		t.Errorf("no reports were expected, got %v", briefs(reps))
	}
}

func TestLintIgnoredFunctions(t *testing.T) {
	const src = `const count = ref(0)
toRaw(count)
unref(count)
`

	ref := func(*source.File) (oracle.Oracle, error) {
		return oracle.Func(func(*esnode.Node) string { return "Ref<number>" }), nil
	}

	cfg := config.Default()
	cfg.Rules.ReactiveValueSuffix.FunctionNamesToIgnoreValueCheck = []string{"toRaw"}
	reps, err := New(cfg, WithOracles(ref)).LintSource(context.Background(), "a.js", []byte(src))
	if err != nil {
		t.Fatal(err)
	}

	want := []brief{{Rule: rules.RequireReactiveValueSuffix, Line: 3, Column: 7, Name: "count"}}
	if got := briefs(reps); !reflect.DeepEqual(want, got) {
		deepequal.SideBySide(t, "reports", want, got)
	}
}

func TestLintParseErrors(t *testing.T) {
	_, err := New(config.Default()).Lint(context.Background(), []string{"main.go"})
	if !errors.Is(err, source.ErrUnsupportedFile) {
		t.Errorf("unsupported file error was expected, got %v", err)
	}

	_, err = New(config.Default()).Lint(context.Background(), []string{filepath.Join(t.TempDir(), "missing.ts")})
	if err == nil || errors.Is(err, source.ErrUnsupportedFile) {
		t.Errorf("read error was expected, got %v", err)
	}
}

func TestLintBindingsAreNotReads(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []brief
	}{
		{
			name: "method",
			src:  "const count = ref(0); const o = { count() { return 1 } };",
		},
		{
			name: "getter",
			src:  "const count = ref(0); const o = { get count() { return 1 } };",
		},
		{
			name: "setter",
			src:  "const count = ref(0); const o = { set count(v) {} };",
		},
		{
			name: "getter body",
			src:  "const count = ref(0); const o = { get total() { return count } };",
			want: []brief{{Rule: rules.RequireReactiveValueSuffix, Line: 1, Column: 56, Name: "count"}},
		},
		{
			name: "for of binding",
			src:  "const count = ref(0); for (const count of list) {}",
		},
		{
			name: "for in binding",
			src:  "const count = ref(0); for (let count in obj) {}",
		},
		{
			name: "for of destructuring",
			src:  "const count = ref(0); for (const { count } of list) {}",
		},
		{
			name: "for of source",
			src:  "const count = ref(0); for (const item of count) {}",
			want: []brief{{Rule: rules.RequireReactiveValueSuffix, Line: 1, Column: 42, Name: "count"}},
		},
	}

	ref := func(*source.File) (oracle.Oracle, error) {
		return oracle.Func(func(*esnode.Node) string { return "Ref<number>" }), nil
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reps, err := New(config.Default(), WithOracles(ref)).LintSource(context.Background(), "a.ts", []byte(tt.src))
			if err != nil {
				t.Fatal(err)
			}

			if got := briefs(reps); !reflect.DeepEqual(tt.want, got) {
				deepequal.SideBySide(t, "reports", tt.want, got)
			}
		})
	}
}
