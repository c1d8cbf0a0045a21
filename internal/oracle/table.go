package oracle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/sirkon/vuelint/internal/esnode"
	"github.com/sirkon/vuelint/internal/spanidx"
)

// Table is an oracle backed by a precomputed type table of one source file.
// A node gets the type of the entry with exactly the same span, other nodes
// get an empty type.
type Table struct {
	idx *spanidx.Index[string]
}

// Locator turns 1-based line and column of a source file into a byte offset.
type Locator interface {
	Offset(line, column int) (int, bool)
}

// TableEntry is a single record of a type table file. A record either sets the span
// directly with Start and End or points at the first byte of Name with Line and Column.
type TableEntry struct {
	Start  *int   `yaml:"start,omitempty" json:"start,omitempty"`
	End    *int   `yaml:"end,omitempty" json:"end,omitempty"`
	Line   int    `yaml:"line,omitempty" json:"line,omitempty"`
	Column int    `yaml:"column,omitempty" json:"column,omitempty"`
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
	Type   string `yaml:"type" json:"type"`
}

type tableFile struct {
	Types []TableEntry `yaml:"types" json:"types"`
}

// NewTable creates a table oracle from the given entries.
func NewTable(entries []TableEntry, loc Locator) (*Table, error) {
	spans := make([]spanidx.Entry[string], 0, len(entries))
	for i, e := range entries {
		span, err := e.span(loc)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		spans = append(spans, spanidx.Entry[string]{Span: span, Value: e.Type})
	}

	idx, err := spanidx.Build(spans)
	if err != nil {
		return nil, fmt.Errorf("build span index: %w", err)
	}

	return &Table{idx: idx}, nil
}

func (e *TableEntry) span(loc Locator) (spanidx.Span, error) {
	switch {
	case e.Start != nil && e.End != nil:
		return spanidx.Span{Start: *e.Start, End: *e.End}, nil

	case e.Start != nil || e.End != nil:
		return spanidx.Span{}, errors.New("both start and end must be set")

	case e.Line > 0 && e.Column > 0 && e.Name != "":
		if loc == nil {
			return spanidx.Span{}, errors.New("line and column positions need the source file")
		}

		off, ok := loc.Offset(e.Line, e.Column)
		if !ok {
			return spanidx.Span{}, fmt.Errorf("position %d:%d is out of the source file", e.Line, e.Column)
		}
		return spanidx.Span{Start: off, End: off + len(e.Name)}, nil

	default:
		return spanidx.Span{}, errors.New("either start and end or line, column and name must be set")
	}
}

// ParseTable parses a type table. The format is picked by the extension of the name:
// .json for JSON, .yaml and .yml for YAML.
func ParseTable(name string, data []byte, loc Locator) (*Table, error) {
	var file tableFile
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}

	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported type table format %q", filepath.Ext(name))
	}

	return NewTable(file.Types, loc)
}

// LoadTable reads a type table from the file. A missing file results in [ErrUnavailable].
func LoadTable(path string, loc Locator) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no type table %s", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("read type table: %w", err)
	}

	t, err := ParseTable(path, data, loc)
	if err != nil {
		return nil, fmt.Errorf("parse type table %s: %w", path, err)
	}

	return t, nil
}

// TypeOf for [Oracle] implementation.
func (t *Table) TypeOf(node *esnode.Node) string {
	if node == nil {
		return ""
	}

	typ, _ := t.idx.Exact(spanidx.Span{Start: node.Start, End: node.End})
	return typ
}

// Len returns the number of typed spans.
func (t *Table) Len() int {
	return t.idx.Len()
}
