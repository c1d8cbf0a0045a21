package main

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sirkon/deepequal"
	"golang.org/x/tools/txtar"

	"github.com/sirkon/vuelint/internal/report"
	"github.com/sirkon/vuelint/internal/rules"
)

//go:embed testdata/cases
var lintTestCases embed.FS

// lintCase is a txtar archive. Its args, exit, stdout and want.json sections describe the
// run, every other section is a file of the working directory.
type lintCase struct {
	args     []string
	exit     int
	stdout   *string
	wantJSON []byte
	files    []txtar.File
}

func parseCase(data []byte) (*lintCase, error) {
	var c lintCase
	for _, f := range txtar.Parse(data).Files {
		switch f.Name {
		case "args":
			c.args = strings.Fields(string(f.Data))
		case "exit":
			code, err := strconv.Atoi(strings.TrimSpace(string(f.Data)))
			if err != nil {
				return nil, fmt.Errorf("parse exit code: %w", err)
			}
			c.exit = code
		case "stdout":
			out := string(f.Data)
			c.stdout = &out
		case "want.json":
			c.wantJSON = f.Data
		default:
			c.files = append(c.files, f)
		}
	}

	return &c, nil
}

type jsonReport struct {
	Rule     rules.Rule      `json:"rule"`
	Severity rules.Severity  `json:"severity"`
	Name     string          `json:"name"`
	Pos      report.Position `json:"position"`
}

func TestLintCases(t *testing.T) {
	files, err := lintTestCases.ReadDir("testdata/cases")
	if err != nil {
		t.Fatal(fmt.Errorf("list lint cases: %w", err))
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		if !strings.HasPrefix(file.Name(), "case_") {
			continue
		}

		t.Run(file.Name(), func(t *testing.T) {
			data, err := lintTestCases.ReadFile("testdata/cases/" + file.Name())
			if err != nil {
				t.Fatalf("read file %s: %s", file.Name(), err)
			}

			c, err := parseCase(data)
			if err != nil {
				t.Fatal(err)
			}

			dir := t.TempDir()
			for _, f := range c.files {
				path := filepath.Join(dir, filepath.FromSlash(f.Name))
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, f.Data, 0o644); err != nil {
					t.Fatal(err)
				}
			}
			t.Chdir(dir)

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), c.args, &stdout, &stderr)
			if code != c.exit {
				t.Errorf("got exit code %d, want %d\n%s", code, c.exit, stderr.String())
			}

			if c.stdout != nil && stdout.String() != *c.stdout {
				want := strings.Split(*c.stdout, "\n")
				got := strings.Split(stdout.String(), "\n")
				deepequal.SideBySide(t, "stdout", want, got)
			}

			if c.wantJSON != nil {
				var want, got []jsonReport
				if err := json.Unmarshal(c.wantJSON, &want); err != nil {
					t.Fatalf("decode want.json: %s", err)
				}
				if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
					t.Fatalf("decode output: %s\n%s", err, stdout.String())
				}
				if !reflect.DeepEqual(want, got) {
					deepequal.SideBySide(t, "json reports", want, got)
				}
			}
		})
	}
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "no paths", args: nil, want: exitFailure},
		{name: "help", args: []string{"-h"}, want: exitOK},
		{name: "unknown format", args: []string{"-format", "xml", "."}, want: exitFailure},
		{name: "unknown flag", args: []string{"-fix", "."}, want: exitFailure},
		{name: "missing path", args: []string{"no/such/dir"}, want: exitFailure},
		{name: "missing config", args: []string{"-config", "no/such/config.yaml", "."}, want: exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())

			var stdout, stderr bytes.Buffer
			if got := run(context.Background(), tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("got exit code %d, want %d\n%s", got, tt.want, stderr.String())
			}
			if stdout.Len() != 0 {
				t.Errorf("unexpected output %q", stdout.String())
			}
		})
	}
}

func TestOutputFormatText(t *testing.T) {
	for _, f := range []OutputFormat{OutputFormatText, OutputFormatJSON} {
		text, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}

		var got OutputFormat
		if err := got.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if got != f {
			t.Errorf("%s: got %s back", f, got)
		}
	}

	if _, err := OutputFormatInvalid.MarshalText(); err == nil {
		t.Error("invalid formats must not be marshaled")
	}
}
