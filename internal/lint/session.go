package lint

import (
	"github.com/sirkon/vuelint/internal/directive"
	"github.com/sirkon/vuelint/internal/esnode"
	"github.com/sirkon/vuelint/internal/markup"
	"github.com/sirkon/vuelint/internal/reactive"
	"github.com/sirkon/vuelint/internal/report"
	"github.com/sirkon/vuelint/internal/rules"
	"github.com/sirkon/vuelint/internal/source"
)

var (
	_ reactive.Reporter  = (*Session)(nil)
	_ directive.Reporter = (*Session)(nil)
)

// Session checks a single file. Nothing is shared between sessions but the report collector.
type Session struct {
	file     *source.File
	reporter *report.FileReporter

	suffix     *reactive.Checker
	directives *directive.Checker
}

// Report for [reactive.Reporter] implementation.
func (s *Session) Report(rule rules.Rule, node *esnode.Node, name string) {
	s.reporter.Report(rule, node.Start, node.Line, node.Column, name)
}

// ReportAttribute for [directive.Reporter] implementation.
func (s *Session) ReportAttribute(rule rules.Rule, attr *markup.Attribute, name string) {
	s.reporter.Report(rule, attr.Start, attr.Line, attr.Column, name)
}

// Run visits every node of the syntax tree in pre-order, then every template element.
func (s *Session) Run() {
	if s.suffix != nil {
		esnode.Walk(s.file.Program, func(n *esnode.Node) bool {
			switch n.Kind {
			case esnode.KindIdentifier:
				s.suffix.Identifier(n)
			case esnode.KindMemberExpression:
				s.suffix.MemberExpression(n)
			}
			return true
		})
	}

	if s.directives != nil && s.file.Template != nil {
		markup.Walk(s.file.Template, func(el *markup.Element) bool {
			s.directives.Element(el)
			return true
		})
	}
}
