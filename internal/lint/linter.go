// Package lint is the host engine: it parses files, runs rule checkers over them and
// collects reports.
package lint

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sirkon/vuelint/internal/config"
	"github.com/sirkon/vuelint/internal/directive"
	"github.com/sirkon/vuelint/internal/oracle"
	"github.com/sirkon/vuelint/internal/reactive"
	"github.com/sirkon/vuelint/internal/report"
	"github.com/sirkon/vuelint/internal/rules"
	"github.com/sirkon/vuelint/internal/source"
)

// OracleSource provides type information of a parsed file.
type OracleSource func(f *source.File) (oracle.Oracle, error)

// Linter runs enabled rules over files.
type Linter struct {
	cfg     *config.Config
	logger  *zap.Logger
	oracles OracleSource
	jobs    int
}

// Option of the linter.
type Option func(l *Linter)

// WithLogger sets the logger, no-op logger is used by default.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Linter) {
		l.logger = logger
	}
}

// WithOracles replaces type table files lookup.
func WithOracles(src OracleSource) Option {
	return func(l *Linter) {
		l.oracles = src
	}
}

// WithJobs limits the number of files checked at once.
func WithJobs(n int) Option {
	return func(l *Linter) {
		if n > 0 {
			l.jobs = n
		}
	}
}

// New creates a linter.
func New(cfg *config.Config, opts ...Option) *Linter {
	l := &Linter{
		cfg:    cfg,
		logger: zap.NewNop(),
		jobs:   runtime.GOMAXPROCS(0),
	}
	l.oracles = l.loadTable

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Linter) loadTable(f *source.File) (oracle.Oracle, error) {
	t, err := oracle.LoadTable(l.cfg.TypesPath(f.Path), f.Lines)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("type table loaded", zap.String("file", f.Path), zap.Int("types", t.Len()))
	return t, nil
}

// Lint checks files concurrently. Reports are sorted by position.
func (l *Linter) Lint(ctx context.Context, paths []string) ([]report.Report, error) {
	var c report.Collector

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.jobs)
	for _, path := range paths {
		g.Go(func() error {
			f, err := source.ParseFile(ctx, path)
			if err != nil {
				return err
			}

			return l.check(f, &c)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return c.Sorted(), nil
}

// LintSource checks a single file given with its content.
func (l *Linter) LintSource(ctx context.Context, path string, content []byte) ([]report.Report, error) {
	f, err := source.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	var c report.Collector
	if err := l.check(f, &c); err != nil {
		return nil, err
	}

	return c.Sorted(), nil
}

func (l *Linter) check(f *source.File, c *report.Collector) error {
	started := time.Now()
	logger := l.logger.With(zap.String("file", f.Path))

	logger.Debug(
		"file parsed",
		zap.Stringer("language", f.Language),
		zap.Int("statements", len(f.Program.Body)),
		zap.Bool("template", f.Template != nil),
	)
	if f.SyntaxErrors {
		logger.Warn("file has syntax errors, reports may be incomplete")
	}

	sess, err := l.newSession(f, c)
	if err != nil {
		return fmt.Errorf("set up checks of %s: %w", f.Path, err)
	}
	sess.Run()

	if sess.suffix != nil {
		reactiveNames, composableNames := sess.suffix.Bindings()
		logger.Debug(
			"bindings collected",
			zap.Int("reactive", len(reactiveNames)),
			zap.Int("composable", len(composableNames)),
		)
	}
	logger.Debug("file checked", zap.Duration("elapsed", time.Since(started)))

	return nil
}

func (l *Linter) newSession(f *source.File, c *report.Collector) (*Session, error) {
	sess := &Session{
		file:     f,
		reporter: c.File(f.Path, f.Content, l.cfg.Severities()),
	}

	if l.cfg.Enabled(rules.RequireReactiveValueSuffix) {
		o, err := l.oracles(f)
		if err != nil {
			return nil, fmt.Errorf("get type information: %w", err)
		}

		sess.suffix = reactive.NewChecker(f.Program, o, sess, l.cfg.Rules.ReactiveValueSuffix.Options)
	}

	if l.cfg.Enabled(rules.RestrictDirectiveToTemplate) {
		sess.directives = directive.NewChecker(sess, l.cfg.Rules.DirectiveToTemplate.Options)
	}

	return sess, nil
}
