// Package directive implements the restrict-directive-to-template rule: structural
// directives are only allowed on <template> elements.
//
//	<div v-if="ok">…</div>                  <!-- reported -->
//	<template v-if="ok"><div>…</div></template>
package directive

import (
	"slices"

	"github.com/sirkon/vuelint/internal/markup"
	"github.com/sirkon/vuelint/internal/rules"
)

// TemplateTag is the only element allowed to carry restricted directives.
const TemplateTag = "template"

// DefaultDirectives is the set of restricted directive names.
func DefaultDirectives() []string {
	return []string{"if", "else-if", "else"}
}

// Reporter receives attributes violating the rule.
type Reporter interface {
	ReportAttribute(rule rules.Rule, attr *markup.Attribute, name string)
}

// Options of the rule.
type Options struct {
	// Directives overrides the set of restricted directive names when not empty.
	Directives []string `yaml:"directives" json:"directives"`
}

// Checker of the rule.
type Checker struct {
	directives []string
	reporter   Reporter
}

// NewChecker creates a checker.
func NewChecker(r Reporter, opts Options) *Checker {
	directives := DefaultDirectives()
	if len(opts.Directives) > 0 {
		directives = slices.Clone(opts.Directives)
	}

	return &Checker{
		directives: directives,
		reporter:   r,
	}
}

// Element checks attributes of one element.
func (c *Checker) Element(el *markup.Element) {
	if el.RawName == TemplateTag {
		return
	}

	for _, attr := range el.Attributes {
		if attr.Directive == nil || !slices.Contains(c.directives, attr.Directive.Name) {
			continue
		}

		c.reporter.ReportAttribute(rules.RestrictDirectiveToTemplate, attr, attr.Directive.Name)
	}
}
