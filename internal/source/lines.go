package source

import (
	"sort"
)

// Lines maps byte offsets of a file to 1-based line and column pairs and back.
// Columns count bytes.
type Lines struct {
	starts []int
	ends   []int
	size   int
}

// NewLines indexes line starts of the content.
func NewLines(content []byte) *Lines {
	starts := []int{0}
	var ends []int
	for i, c := range content {
		if c == '\n' {
			ends = append(ends, lineEnd(content, starts[len(starts)-1], i))
			starts = append(starts, i+1)
		}
	}
	ends = append(ends, lineEnd(content, starts[len(starts)-1], len(content)))

	return &Lines{
		starts: starts,
		ends:   ends,
		size:   len(content),
	}
}

// lineEnd excludes the carriage return of CRLF line breaks.
func lineEnd(content []byte, start, end int) int {
	if end > start && content[end-1] == '\r' {
		return end - 1
	}

	return end
}

// Count returns the number of lines.
func (l *Lines) Count() int {
	return len(l.starts)
}

// Offset returns the byte offset of the position. Positions past the end of their
// line are rejected.
func (l *Lines) Offset(line, column int) (int, bool) {
	if line < 1 || line > len(l.starts) || column < 1 {
		return 0, false
	}

	off := l.starts[line-1] + column - 1
	if off >= l.ends[line-1] {
		return 0, false
	}

	return off, true
}

// Position returns line and column of the offset. Offsets out of the file are clamped.
func (l *Lines) Position(offset int) (line, column int) {
	offset = max(0, min(offset, l.size))

	// The first line starting after the offset.
	i := sort.SearchInts(l.starts, offset+1)
	return i, offset - l.starts[i-1] + 1
}
