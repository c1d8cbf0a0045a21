package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/sirkon/vuelint/internal/config"
	"github.com/sirkon/vuelint/internal/lint"
	"github.com/sirkon/vuelint/internal/report"
	"github.com/sirkon/vuelint/internal/rules"
	"github.com/sirkon/vuelint/internal/source"
)

const doc = `vuelint checks reactive value access and template directives of Vue components.

Usage:

	vuelint [flags] paths...

Directories are walked for .vue, .ts, .tsx, .js and .jsx files. Type information
of every file is read from its type table, a sidecar file with the configured suffix.

Flags:
`

const (
	exitOK = iota
	exitReports
	exitFailure
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("vuelint", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		_, _ = fmt.Fprint(flags.Output(), doc)
		flags.PrintDefaults()
	}

	configPath := flags.String("config", "", "config file, "+config.DefaultFile+" is used when present")
	format := OutputFormatText
	flags.TextVar(&format, "format", OutputFormatText, "output format: text or json")
	verbose := flags.Bool("v", false, "verbose logging")
	jobs := flags.Int("j", 0, "files checked at once, GOMAXPROCS by default")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return exitFailure
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "set up logging:", err)
		return exitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", zap.Error(err))
		return exitFailure
	}

	files, err := collectFiles(flags.Args())
	if err != nil {
		logger.Error("failed to collect files", zap.Error(err))
		return exitFailure
	}
	logger.Debug("files collected", zap.Int("count", len(files)))

	reps, err := lint.New(cfg, lint.WithLogger(logger), lint.WithJobs(*jobs)).Lint(ctx, files)
	if err != nil {
		logger.Error("failed to lint", zap.Error(err))
		return exitFailure
	}

	switch format {
	case OutputFormatJSON:
		err = report.WriteJSON(stdout, reps)
	default:
		err = report.PrintSummary(stdout, reps)
	}
	if err != nil {
		logger.Error("failed to output reports", zap.Error(err))
		return exitFailure
	}

	if report.Count(reps, rules.SeverityError) > 0 {
		return exitReports
	}

	return exitOK
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load(config.DefaultFile, false)
	}

	return config.Load(path, true)
}

// collectFiles expands directories into supported source files. Dependencies and
// hidden directories are skipped. Files given explicitly are kept as is.
func collectFiles(paths []string) ([]string, error) {
	var res []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("check path: %w", err)
		}

		if !info.IsDir() {
			res = append(res, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if p != path && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if source.Supported(p) {
				res = append(res, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}

	slices.Sort(res)
	return slices.Compact(res), nil
}

func skipDir(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}
