// Package rules defines identities of the lint rules, their messages and severities.
package rules

import (
	"fmt"
	"strings"
)

// Rule represents a lint rule.
type Rule int

const (
	ruleInvalid Rule = iota

	RequireReactiveValueSuffix
	RestrictDirectiveToTemplate
)

var ruleValueMap = map[Rule]string{
	RequireReactiveValueSuffix:  "require-reactive-value-suffix",
	RestrictDirectiveToTemplate: "restrict-directive-to-template",
}

// All returns every known rule.
func All() []Rule {
	return []Rule{RequireReactiveValueSuffix, RestrictDirectiveToTemplate}
}

// String returns the rule name used in configs and reports.
func (r Rule) String() string {
	v, ok := ruleValueMap[r]
	if !ok {
		return fmt.Sprintf("rule-unknown(%d)", r)
	}

	return v
}

func (r Rule) MarshalText() ([]byte, error) {
	v, ok := ruleValueMap[r]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Rule(%d)", r)
	}

	return []byte(v), nil
}

func (r *Rule) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range ruleValueMap {
		if v == text {
			*r = k
			return nil
		}
	}

	return fmt.Errorf("unknown rule %q", text)
}

// Description returns the human-readable explanation of the rule.
func (r Rule) Description() string {
	switch r {
	case RequireReactiveValueSuffix:
		return "Enforce using .value suffix when accessing reactive values."
	case RestrictDirectiveToTemplate:
		return "Enforce specific directives to be used only in template tags."
	default:
		return fmt.Sprintf("unknown-rule(%d)", r)
	}
}

// messageTemplate is interpolated with report data, {{name}} is the only placeholder.
func (r Rule) messageTemplate() string {
	switch r {
	case RequireReactiveValueSuffix:
		return `Reactive variable "{{name}}" should be accessed as "{{name}}.value"`
	case RestrictDirectiveToTemplate:
		return "v-{{name}} directive should only be used in template tags"
	default:
		return r.Description()
	}
}

// Message renders the rule message for the given name.
func (r Rule) Message(name string) string {
	return strings.NewReplacer("{{name}}", name, "{{ name }}", name).Replace(r.messageTemplate())
}
