// Package report collects rule violations of concurrent file sessions and renders them.
package report

import (
	"cmp"
	"encoding/hex"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/zeebo/xxh3"

	"github.com/sirkon/vuelint/internal/rules"
)

// Collector collects reports of all files.
type Collector struct {
	mu      sync.Mutex
	reports []Report
}

// Report represents a single diagnostic entry.
type Report struct {
	Rule     rules.Rule     `json:"rule"`
	Severity rules.Severity `json:"severity"`
	Pos      Position       `json:"position"`
	Message  string         `json:"message"`

	// Name is the message argument: a binding or a directive name.
	Name string `json:"name"`

	// Fingerprint identifies the report regardless of its line, for baselines.
	Fingerprint string `json:"fingerprint"`
}

// Position of a report.
type Position struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// FileReporter binds a Collector to a file. It is used during the session of the file to
// record rule violations without repeating the file and severities.
type FileReporter struct {
	parent     *Collector
	file       string
	content    []byte
	severities map[rules.Rule]rules.Severity
}

// File returns a file-bound reporter. Rules without a severity are reported as errors.
func (c *Collector) File(path string, content []byte, severities map[rules.Rule]rules.Severity) *FileReporter {
	return &FileReporter{
		parent:     c,
		file:       path,
		content:    content,
		severities: severities,
	}
}

// Report adds a new record.
func (c *Collector) Report(rep Report) {
	c.mu.Lock()
	c.reports = append(c.reports, rep)
	c.mu.Unlock()
}

// Report records a rule violation at the given byte offset, line and column of the file.
func (fr *FileReporter) Report(rule rules.Rule, offset, line, column int, name string) {
	severity, ok := fr.severities[rule]
	if !ok {
		severity = rules.SeverityError
	}

	fr.parent.Report(Report{
		Rule:        rule,
		Severity:    severity,
		Pos:         Position{File: fr.file, Line: line, Column: column, Offset: offset},
		Message:     rule.Message(name),
		Name:        name,
		Fingerprint: Fingerprint(rule, fr.file, name, lineAt(fr.content, offset)),
	})
}

// Reports returns a snapshot of all collected records.
func (c *Collector) Reports() []Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Report, len(c.reports))
	copy(out, c.reports)
	return out
}

// Sorted returns a snapshot ordered by file, line, column and rule.
func (c *Collector) Sorted() []Report {
	reps := c.Reports()
	Sort(reps)
	return reps
}

// Sort orders reports by file, line, column and rule.
func Sort(reps []Report) {
	slices.SortStableFunc(reps, func(a, b Report) int {
		return cmp.Or(
			cmp.Compare(a.Pos.File, b.Pos.File),
			cmp.Compare(a.Pos.Line, b.Pos.Line),
			cmp.Compare(a.Pos.Column, b.Pos.Column),
			cmp.Compare(a.Rule, b.Rule),
		)
	})
}

// Fingerprint hashes the rule, the file, the name and the trimmed text of the line
// the report points to.
func Fingerprint(rule rules.Rule, file, name, line string) string {
	h := xxh3.New()
	for _, part := range []string{rule.String(), file, name, strings.TrimSpace(line)} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}

func lineAt(content []byte, offset int) string {
	if offset < 0 || offset > len(content) {
		return ""
	}

	start := offset
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(content) && content[end] != '\n' {
		end++
	}

	return string(content[start:end])
}

// PrintSummary prints reports in a compact, human-readable form.
func PrintSummary(w io.Writer, reps []Report) error {
	for _, rep := range reps {
		if _, err := fmt.Fprintf(w, "%s: %s: %s [%s]\n", rep.Pos, rep.Severity, rep.Message, rep.Rule); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return nil
}

// WriteJSON writes reports as a JSON array.
func WriteJSON(w io.Writer, reps []Report) error {
	if reps == nil {
		reps = []Report{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reps); err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	return nil
}

// Count returns the number of reports of the given severity.
func Count(reps []Report, severity rules.Severity) int {
	var n int
	for _, rep := range reps {
		if rep.Severity == severity {
			n++
		}
	}

	return n
}
