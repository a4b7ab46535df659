package source

import "fmt"

// Span is a half-open byte range `[Start, End)` within a Source, per
// spec §3: `start ≤ end ≤ source.len`. The empty span is
// `(empty_source, 0, 0)`.
type Span struct {
	src   Source
	start int
	end   int
}

// NewSpan builds a span, panicking if the range is malformed (spec
// invariant 2: start ≤ end ≤ source.len).
func NewSpan(src Source, start, end int) Span {
	if start < 0 || end < start || end > src.Len() {
		panic(fmt.Sprintf("source: invalid span [%d,%d) over source of length %d", start, end, src.Len()))
	}
	return Span{src: src, start: start, end: end}
}

// Empty returns the canonical empty span.
func Empty() Span { return Span{src: empty} }

// Source returns the span's source.
func (s Span) Source() Source { return s.src }

// Start returns the span's starting byte offset.
func (s Span) Start() int { return s.start }

// End returns the span's ending byte offset.
func (s Span) End() int { return s.end }

// Len returns the span's byte length.
func (s Span) Len() int { return s.end - s.start }

// IsEmpty reports whether this is the zero-length span over the empty
// source.
func (s Span) IsEmpty() bool {
	return s.start == 0 && s.end == 0 && s.src.Equal(empty)
}

// Text returns the slice of source text this span covers.
func (s Span) Text() string {
	text := s.src.Text()
	return text[s.start:s.end]
}

// Location returns a Cursor positioned at the span's start.
func (s Span) Location() Cursor {
	c := NewCursor(s.src)
	c.SkipLen(s.start)
	return c
}

// Line returns the 1-based line number at the span's start.
func (s Span) Line() int { return s.Location().Line() }

// Column returns the 1-based column number at the span's start.
func (s Span) Column() int { return s.Location().Column() }

// Merge returns the smallest span covering both a and b. An empty operand
// is ignored, matching the source's Span::merge.
func Merge(a, b Span) Span {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	if !a.src.Equal(b.src) {
		panic("source: cannot merge spans from different sources")
	}
	if b.start < a.start {
		a, b = b, a
	}
	end := a.end
	if b.end > end {
		end = b.end
	}
	return Span{src: a.src, start: a.start, end: end}
}

// MergeAll merges a non-empty slice of spans into their covering span,
// matching the source's Span::range over an iterator of HasSpan.
func MergeAll(spans []Span) Span {
	out := Empty()
	for _, s := range spans {
		out = Merge(out, s)
	}
	return out
}

func (s Span) String() string {
	loc := s.Location()
	out := fmt.Sprintf("%s:%d:%d", s.src, loc.Line(), loc.Column())
	if n := s.Len(); n > 0 {
		out += fmt.Sprintf("+%d", n)
	}
	return out
}
