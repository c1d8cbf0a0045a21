package spanidx

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/sirkon/rbtree"
)

// ErrPartialOverlap is returned when two spans overlap without one containing the other.
var ErrPartialOverlap = errors.New("partially overlapping spans")

// Span is a [Start, End) byte range.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

func (s Span) contains(o Span) bool {
	return s.Start <= o.Start && s.End >= o.End
}

// Entry is a value attached to a span.
type Entry[T any] struct {
	Span  Span
	Value T
}

// Index of values by their spans.
type Index[T any] struct {
	tree *rbtree.Tree[*nodeSpan[T]]
	size int
}

// nodeSpan is a span with its value and, if needed, a nested tree for the spans it contains.
type nodeSpan[T any] struct {
	span     Span
	value    T
	children *rbtree.Tree[*nodeSpan[T]]
}

// Cmp orders spans of the same level "disjoint by position":
//   - -1 if this span ends before other starts;
//   - 1 if this span starts after other ends;
//   - 0 for any overlap, containment and equality included.
func (n *nodeSpan[T]) Cmp(other *nodeSpan[T]) int {
	if n.span.End <= other.span.Start {
		return -1
	}
	if n.span.Start >= other.span.End {
		return 1
	}
	return 0
}

// Build creates an index of the given entries. A later entry wins over an earlier one
// with the same span.
func Build[T any](entries []Entry[T]) (*Index[T], error) {
	sorted := slices.Clone(entries)

	// Outer spans go first, so an inserted span can only be contained by what is
	// already there or be equal to it.
	slices.SortStableFunc(sorted, func(a, b Entry[T]) int {
		if c := cmp.Compare(a.Span.Start, b.Span.Start); c != 0 {
			return c
		}
		return cmp.Compare(b.Span.End, a.Span.End)
	})

	x := &Index[T]{tree: rbtree.New[*nodeSpan[T]]()}
	for _, e := range sorted {
		if e.Span.Start < 0 || e.Span.End <= e.Span.Start {
			return nil, fmt.Errorf("invalid span %s", e.Span)
		}

		inserted, err := attachInto(x.tree, &nodeSpan[T]{span: e.Span, value: e.Value})
		if err != nil {
			return nil, fmt.Errorf("attach span %s: %w", e.Span, err)
		}
		if inserted {
			x.size++
		}
	}

	return x, nil
}

// Len returns the number of distinct spans in the index.
func (x *Index[T]) Len() int {
	return x.size
}

// attachInto inserts s into t following containment rules:
//   - no overlapping node in t: s becomes a new entry of t;
//   - the overlapping node has the same span: its value is replaced;
//   - the overlapping node contains s: s goes into its children.
func attachInto[T any](t *rbtree.Tree[*nodeSpan[T]], s *nodeSpan[T]) (bool, error) {
	r := t.InsertReturn(s)
	if r == s {
		return true, nil
	}

	if r.span == s.span {
		r.value = s.value
		return false, nil
	}

	if r.span.contains(s.span) {
		if r.children == nil {
			r.children = rbtree.New[*nodeSpan[T]]()
		}
		return attachInto(r.children, s)
	}

	return false, fmt.Errorf("%w: %s and %s", ErrPartialOverlap, r.span, s.span)
}

// Innermost returns the innermost entry covering the offset.
func (x *Index[T]) Innermost(pos int) (Entry[T], bool) {
	var found *nodeSpan[T]
	for t := x.tree; t != nil; {
		n := searchPos(t, pos)
		if n == nil {
			break
		}

		found = n
		t = n.children
	}

	if found == nil {
		return Entry[T]{}, false
	}

	return Entry[T]{Span: found.span, Value: found.value}, true
}

// Exact returns the value attached to exactly this span.
func (x *Index[T]) Exact(span Span) (T, bool) {
	var zero T
	if span.End <= span.Start {
		return zero, false
	}

	for t := x.tree; t != nil; {
		n := searchPos(t, span.Start)
		if n == nil || !n.span.contains(span) {
			return zero, false
		}

		if n.span == span {
			return n.value, true
		}

		t = n.children
	}

	return zero, false
}

func searchPos[T any](t *rbtree.Tree[*nodeSpan[T]], pos int) *nodeSpan[T] {
	return t.Search(&nodeSpan[T]{span: Span{Start: pos, End: pos + 1}})
}
